package handlers

import (
	"net/http"
	"strings"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/interfaces/rest"
)

// qrCodeResponse echoes the request's type and optional fields next to the
// provider's result.
type qrCodeResponse struct {
	QRCodeURL     string  `json:"qrCodeUrl"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	ExpiresAt     string  `json:"expiresAt,omitempty"`
	Type          string  `json:"type"`
	OrderID       string  `json:"orderId,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// HandleGenerateQRCode validates the QR type from the path and the amount
// breakdown from the body, then requests a QR payment.
func (h *Handlers) HandleGenerateQRCode(w http.ResponseWriter, r *http.Request) {
	qrType := r.PathValue("type")
	if qrType == "" {
		rest.WriteError(w, domain.NewValidationError("device type is required in URL path"), h.logger)
		return
	}
	upperType := strings.ToUpper(qrType)
	if upperType != dto.QRTypeDynamic && upperType != dto.QRTypeHybrid {
		rest.WriteError(w, domain.NewValidationError(`device type must be either "DYN" or "HYB"`), h.logger)
		return
	}

	raw, err := decodeBody(r)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}
	raw["type"] = upperType

	req, err := dto.NewPaymentRequest(raw)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	result, err := h.paymentService.GenerateQRCode(r.Context(), *req)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Response{
		OK:      true,
		Message: "QR Code generated successfully",
		Data: qrCodeResponse{
			QRCodeURL:     result.QRCodeURL,
			TransactionID: result.TransactionID,
			Amount:        result.Amount,
			ExpiresAt:     result.ExpiresAt,
			Type:          req.Type,
			OrderID:       req.OrderID,
			Description:   req.Description,
		},
	})
}

// HandleGetTransaction reports the provider's status for a transaction.
func (h *Handlers) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := dto.NewTransactionLookupRequest(map[string]any{
		"transactionId": r.PathValue("transactionId"),
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	status, err := h.paymentService.GetTransaction(r.Context(), *req)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteData(w, http.StatusOK, status)
}

// HandleCancelTransaction cancels a pending transaction.
func (h *Handlers) HandleCancelTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := dto.NewTransactionCancelRequest(map[string]any{
		"transactionId": r.PathValue("transactionId"),
	})
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	result, err := h.paymentService.CancelTransaction(r.Context(), *req)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteData(w, http.StatusOK, result)
}
