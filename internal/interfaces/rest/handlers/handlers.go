// Package handlers exposes the gateway's HTTP surface.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
)

// DeviceService is what the device endpoints need from the application layer.
type DeviceService interface {
	OpenDevice(ctx context.Context, req dto.OpenDeviceRequest) (*domain.DeviceSession, error)
	CloseDevice(ctx context.Context, req dto.CloseDeviceRequest) (*application.DeviceSummary, error)
	LatestSessionID(ctx context.Context) (string, error)
}

// PaymentService is what the payment endpoints need from the application layer.
type PaymentService interface {
	GenerateQRCode(ctx context.Context, req dto.PaymentRequest) (*application.QRCodeResult, error)
	GetTransaction(ctx context.Context, req dto.TransactionLookupRequest) (*application.TransactionStatus, error)
	CancelTransaction(ctx context.Context, req dto.TransactionCancelRequest) (*application.TransactionCancellation, error)
}

type Handlers struct {
	deviceService  DeviceService
	paymentService PaymentService
	logger         *slog.Logger
}

func NewHandlers(deviceService DeviceService, paymentService PaymentService, logger *slog.Logger) *Handlers {
	return &Handlers{
		deviceService:  deviceService,
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/open-device", h.HandleOpenDevice)
	mux.HandleFunc("DELETE /api/close-device", h.HandleCloseDevice)
	mux.HandleFunc("POST /api/generate-qrcode/{type}", h.HandleGenerateQRCode)
	mux.HandleFunc("GET /api/transaction/{transactionId}", h.HandleGetTransaction)
	mux.HandleFunc("PUT /api/transaction/{transactionId}", h.HandleCancelTransaction)
}

// decodeBody reads the request body into an untyped map for the validators.
// An empty body decodes to an empty map; endpoints that require fields will
// reject it with the right message.
func decodeBody(r *http.Request) (map[string]any, error) {
	raw := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return raw, nil
		}
		return nil, domain.NewValidationError("invalid request body")
	}
	return raw, nil
}
