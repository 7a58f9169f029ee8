// Package dto turns untrusted request input into validated, typed requests.
//
// Every constructor takes the raw key-value map decoded from the request body
// and returns either the request or a domain.ValidationError describing the
// first rule that failed. The check order is fixed so error messages are
// deterministic for a given input.
package dto

import (
	"math"
	"strconv"
	"strings"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
)

// QR code types accepted by the provider.
const (
	QRTypeDynamic = "DYN"
	QRTypeHybrid  = "HYB"
)

// AmountTolerance is the maximum allowed difference between the provided
// total and the computed one, after both are rounded to 2 decimals.
const AmountTolerance = 0.01

// PaymentRequest is a validated QR payment request. It can only be built
// through NewPaymentRequest, so holders can rely on every invariant below:
// all amounts are non-negative and rounded to 2 decimals, Total is positive
// and arithmetically consistent, Type is normalized to upper case.
type PaymentRequest struct {
	SubTotal    float64
	Tax         float64
	Tip         float64
	Discount    float64
	Total       float64
	Type        string
	OrderID     string
	Description string
}

// NewPaymentRequest validates the raw body of a generate-qrcode call.
//
// Rule order: sub_total, tax, tip, discount (required, number, non-negative,
// in that order), then total (required, number, > 0), then type, then the
// cross-field arithmetic check, then the optional order_id/description shape
// checks.
func NewPaymentRequest(raw map[string]any) (*PaymentRequest, error) {
	subTotal, err := amountField(raw, "sub_total")
	if err != nil {
		return nil, err
	}
	tax, err := amountField(raw, "tax")
	if err != nil {
		return nil, err
	}
	tip, err := amountField(raw, "tip")
	if err != nil {
		return nil, err
	}
	discount, err := amountField(raw, "discount")
	if err != nil {
		return nil, err
	}

	total, ok, err := numberField(raw, "total")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewValidationError("total is required")
	}
	if total <= 0 {
		return nil, domain.NewValidationError("total must be greater than 0")
	}

	qrType, err := typeField(raw)
	if err != nil {
		return nil, err
	}

	// Compared in integer cents: both sides are rounded to the cent anyway,
	// and a float subtraction lands off by ulps exactly at the tolerance.
	calculatedCents := math.Round((subTotal + tax + tip - discount) * 100)
	providedCents := math.Round(total * 100)
	if math.Abs(calculatedCents-providedCents) > AmountTolerance*100 {
		return nil, domain.NewValidationError(
			"total mismatch: expected " + formatAmount(calculatedCents/100) + " but got " + formatAmount(providedCents/100))
	}

	orderID, err := optionalStringField(raw, "order_id")
	if err != nil {
		return nil, err
	}
	description, err := optionalStringField(raw, "description")
	if err != nil {
		return nil, err
	}

	return &PaymentRequest{
		SubTotal:    round2(subTotal),
		Tax:         round2(tax),
		Tip:         round2(tip),
		Discount:    round2(discount),
		Total:       round2(total),
		Type:        qrType,
		OrderID:     orderID,
		Description: description,
	}, nil
}

// CalculatedTotal returns the total implied by the amount breakdown.
func (r *PaymentRequest) CalculatedTotal() float64 {
	return round2(r.SubTotal + r.Tax + r.Tip - r.Discount)
}

// amountField runs the required/number/non-negative checks shared by
// sub_total, tax, tip and discount.
func amountField(raw map[string]any, key string) (float64, error) {
	v, ok, err := numberField(raw, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, domain.NewValidationError(key + " is required")
	}
	if v < 0 {
		return 0, domain.NewValidationError(key + " cannot be negative")
	}
	return v, nil
}

// numberField extracts a numeric field. ok is false when the field is absent
// or nil; a present non-numeric (or NaN) value is a validation error.
func numberField(raw map[string]any, key string) (float64, bool, error) {
	v, present := raw[key]
	if !present || v == nil {
		return 0, false, nil
	}
	f, isNumber := toFloat(v)
	if !isNumber || math.IsNaN(f) {
		return 0, false, domain.NewValidationError(key + " must be a valid number")
	}
	return f, true, nil
}

// toFloat accepts the numeric shapes a raw map can carry: float64 from JSON
// decoding, plus the integer kinds tests and in-process callers pass.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func typeField(raw map[string]any) (string, error) {
	v, present := raw["type"]
	if !present || v == nil {
		return "", domain.NewValidationError("type is required")
	}
	s, isString := v.(string)
	if !isString {
		return "", domain.NewValidationError(`type must be either "DYN" or "HYB"`)
	}
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return "", domain.NewValidationError("type is required")
	}
	if normalized != QRTypeDynamic && normalized != QRTypeHybrid {
		return "", domain.NewValidationError(`type must be either "DYN" or "HYB"`)
	}
	return normalized, nil
}

// optionalStringField returns the trimmed value of an optional field, or ""
// when absent. Present values must be non-empty strings after trimming.
func optionalStringField(raw map[string]any, key string) (string, error) {
	v, present := raw[key]
	if !present || v == nil {
		return "", nil
	}
	s, isString := v.(string)
	if !isString || strings.TrimSpace(s) == "" {
		return "", domain.NewValidationError(key + " must be a non-empty string if provided")
	}
	return strings.TrimSpace(s), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatAmount renders an amount the shortest way that round-trips, so
// messages read "expected 10.5 but got 10.75" rather than "10.500000".
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
