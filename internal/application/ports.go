package application

import (
	"context"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
)

// SessionRepository is the port for session persistence. Implementations
// wrap I/O failures as domain.StorageError; a simple not-found is reported
// as (nil, nil), never as an error.
type SessionRepository interface {
	// Save upserts by session ID, overwriting silently if present.
	Save(ctx context.Context, session *domain.DeviceSession) error
	// FindByID returns (nil, nil) when the session does not exist.
	FindByID(ctx context.Context, sessionID string) (*domain.DeviceSession, error)
	// Delete removes the session if present; absent is not an error.
	Delete(ctx context.Context, sessionID string) error
	// FindAll returns every persisted session in storage order (insertion
	// order). A store that does not exist yet yields an empty slice.
	FindAll(ctx context.Context) ([]*domain.DeviceSession, error)
}

// DeviceClient is the port for the provider's device-session calls.
type DeviceClient interface {
	// OpenDevice performs the device-authentication exchange and returns the
	// bearer token issued by the provider.
	OpenDevice(ctx context.Context, req dto.OpenDeviceRequest) (string, error)
	// CloseDevice closes the device session behind the token and returns its
	// usage summary.
	CloseDevice(ctx context.Context, token string) (*DeviceSummary, error)
}

// PaymentClient is the port for the provider's payment calls. Every call
// carries the bearer token of an open device session.
type PaymentClient interface {
	GenerateQRCode(ctx context.Context, req dto.PaymentRequest, token string) (*QRCodeResult, error)
	GetTransaction(ctx context.Context, transactionID, token string) (*TransactionStatus, error)
	CancelTransaction(ctx context.Context, transactionID, token string) (*TransactionCancellation, error)
}

// DeviceSummary is what the provider reports when a device session closes.
type DeviceSummary struct {
	Transactions int     `json:"transactions"`
	Amount       float64 `json:"amount"`
}

// QRCodeResult is the outcome of a QR generation call. Amount echoes the
// validated total of the request that produced it.
type QRCodeResult struct {
	QRCodeURL     string  `json:"qrCodeUrl"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	ExpiresAt     string  `json:"expiresAt,omitempty"`
}

// TransactionStatus is the outcome of a status query.
type TransactionStatus struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
}

// TransactionCancellation is the outcome of a cancel call.
type TransactionCancellation struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}
