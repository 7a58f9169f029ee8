package dto

import (
	"strings"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
)

// MinTransactionIDLength is the shortest identifier the provider issues.
const MinTransactionIDLength = 10

// TransactionLookupRequest carries a validated transaction identifier for a
// status query.
type TransactionLookupRequest struct {
	TransactionID string
}

// TransactionCancelRequest carries a validated transaction identifier for a
// cancellation.
type TransactionCancelRequest struct {
	TransactionID string
}

// NewTransactionLookupRequest validates the transactionId of a status query.
// An absent field and an empty string both fail the required check; a value
// that is only whitespace fails with a distinct "cannot be empty" message.
func NewTransactionLookupRequest(raw map[string]any) (*TransactionLookupRequest, error) {
	id, err := transactionIDField(raw["transactionId"])
	if err != nil {
		return nil, err
	}
	return &TransactionLookupRequest{TransactionID: id}, nil
}

// NewTransactionCancelRequest validates the transactionId of a cancellation.
// The identifier is accepted under either "transactionId" or
// "transaction_id"; the former wins when both are present.
func NewTransactionCancelRequest(raw map[string]any) (*TransactionCancelRequest, error) {
	v := raw["transactionId"]
	if v == nil || v == "" {
		v = raw["transaction_id"]
	}
	id, err := transactionIDField(v)
	if err != nil {
		return nil, err
	}
	return &TransactionCancelRequest{TransactionID: id}, nil
}

func transactionIDField(v any) (string, error) {
	if v == nil || v == "" {
		return "", domain.NewValidationError("transactionId is required")
	}
	s, isString := v.(string)
	if !isString {
		return "", domain.NewValidationError("transactionId must be a string")
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", domain.NewValidationError("transactionId cannot be empty")
	}
	if len(trimmed) < MinTransactionIDLength {
		return "", domain.NewValidationError("transactionId must be at least 10 characters")
	}
	return trimmed, nil
}
