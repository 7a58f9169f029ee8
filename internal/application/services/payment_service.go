package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
)

// PaymentService orchestrates the three payment operations against the
// provider. QR generation provisions a session on demand; status and cancel
// require one to already exist.
type PaymentService struct {
	tokens        *TokenProvider
	paymentClient application.PaymentClient
	logger        *slog.Logger
}

func NewPaymentService(
	tokens *TokenProvider,
	paymentClient application.PaymentClient,
	logger *slog.Logger,
) *PaymentService {
	return &PaymentService{
		tokens:        tokens,
		paymentClient: paymentClient,
		logger:        logger,
	}
}

// GenerateQRCode requests a QR payment from the provider. Remote failures are
// surfaced as-is; there is no retry.
func (s *PaymentService) GenerateQRCode(ctx context.Context, req dto.PaymentRequest) (*application.QRCodeResult, error) {
	token, err := s.tokens.ProvisionToken(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.paymentClient.GenerateQRCode(ctx, req, token)
	if err != nil {
		return nil, err
	}

	s.logger.Info("qr code generated",
		"transaction_id", result.TransactionID,
		"type", req.Type,
		"amount", req.Total,
	)
	return result, nil
}

// GetTransaction queries the provider for the current status of a transaction.
func (s *PaymentService) GetTransaction(ctx context.Context, req dto.TransactionLookupRequest) (*application.TransactionStatus, error) {
	token, err := s.tokens.ActiveToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.paymentClient.GetTransaction(ctx, req.TransactionID, token)
}

// CancelTransaction cancels a pending transaction with the provider.
func (s *PaymentService) CancelTransaction(ctx context.Context, req dto.TransactionCancelRequest) (*application.TransactionCancellation, error) {
	token, err := s.tokens.ActiveToken(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.paymentClient.CancelTransaction(ctx, req.TransactionID, token)
	if err != nil {
		return nil, err
	}

	s.logger.Info("transaction cancelled", "transaction_id", req.TransactionID)
	return result, nil
}
