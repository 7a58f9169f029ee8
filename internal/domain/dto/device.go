package dto

import (
	"strings"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/google/uuid"
)

// OpenDeviceRequest describes the POS device registering with the provider.
type OpenDeviceRequest struct {
	IDDevice   string
	NameDevice string
	UserDevice string
	GroupID    string
}

// NewOpenDeviceRequest validates the device descriptor of an open-device
// call. Every field is a required non-empty string.
func NewOpenDeviceRequest(raw map[string]any) (*OpenDeviceRequest, error) {
	idDevice, ok := nonEmptyString(raw["idDevice"])
	if !ok {
		return nil, domain.NewValidationError(`invalid or missing "idDevice" field`)
	}
	nameDevice, ok := nonEmptyString(raw["nameDevice"])
	if !ok {
		return nil, domain.NewValidationError(`invalid or missing "nameDevice" field`)
	}
	userDevice, ok := nonEmptyString(raw["userDevice"])
	if !ok {
		return nil, domain.NewValidationError(`invalid or missing "userDevice" field`)
	}
	groupID, ok := nonEmptyString(raw["groupId"])
	if !ok {
		return nil, domain.NewValidationError(`invalid or missing "groupId" field`)
	}
	return &OpenDeviceRequest{
		IDDevice:   idDevice,
		NameDevice: nameDevice,
		UserDevice: userDevice,
		GroupID:    groupID,
	}, nil
}

// CloseDeviceRequest names the session to close.
type CloseDeviceRequest struct {
	SessionID string
}

// NewCloseDeviceRequest validates the sessionId of a close-device call.
// Session IDs are generated as UUIDs, so anything else is rejected early.
func NewCloseDeviceRequest(raw map[string]any) (*CloseDeviceRequest, error) {
	v := raw["sessionId"]
	if v == nil || v == "" {
		return nil, domain.NewValidationError("sessionId is required")
	}
	s, isString := v.(string)
	if !isString {
		return nil, domain.NewValidationError("sessionId must be a string")
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, domain.NewValidationError("sessionId cannot be empty")
	}
	if _, err := uuid.Parse(trimmed); err != nil {
		return nil, domain.NewValidationError("sessionId must be a valid UUID")
	}
	return &CloseDeviceRequest{SessionID: trimmed}, nil
}

func nonEmptyString(v any) (string, bool) {
	s, isString := v.(string)
	if !isString || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
