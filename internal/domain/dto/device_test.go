package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenDeviceRequest_Valid(t *testing.T) {
	req, err := NewOpenDeviceRequest(map[string]any{
		"idDevice":   "pos-01",
		"nameDevice": "Front Counter",
		"userDevice": "cashier",
		"groupId":    "group-9",
	})
	require.NoError(t, err)
	assert.Equal(t, "pos-01", req.IDDevice)
	assert.Equal(t, "Front Counter", req.NameDevice)
	assert.Equal(t, "cashier", req.UserDevice)
	assert.Equal(t, "group-9", req.GroupID)
}

func TestNewOpenDeviceRequest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		wantErr string
	}{
		{"missing idDevice", map[string]any{"nameDevice": "n", "userDevice": "u", "groupId": "g"}, `invalid or missing "idDevice" field`},
		{"blank nameDevice", map[string]any{"idDevice": "d", "nameDevice": " ", "userDevice": "u", "groupId": "g"}, `invalid or missing "nameDevice" field`},
		{"non-string userDevice", map[string]any{"idDevice": "d", "nameDevice": "n", "userDevice": 3.0, "groupId": "g"}, `invalid or missing "userDevice" field`},
		{"missing groupId", map[string]any{"idDevice": "d", "nameDevice": "n", "userDevice": "u"}, `invalid or missing "groupId" field`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewOpenDeviceRequest(tt.raw)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestNewCloseDeviceRequest_Valid(t *testing.T) {
	id := uuid.NewString()
	req, err := NewCloseDeviceRequest(map[string]any{"sessionId": id})
	require.NoError(t, err)
	assert.Equal(t, id, req.SessionID)
}

func TestNewCloseDeviceRequest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string]any
		wantErr string
	}{
		{"absent", map[string]any{}, "sessionId is required"},
		{"empty", map[string]any{"sessionId": ""}, "sessionId is required"},
		{"non-string", map[string]any{"sessionId": 4.2}, "sessionId must be a string"},
		{"whitespace", map[string]any{"sessionId": "  "}, "sessionId cannot be empty"},
		{"not a uuid", map[string]any{"sessionId": "not-a-uuid"}, "sessionId must be a valid UUID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewCloseDeviceRequest(tt.raw)
			require.Error(t, err)
			assert.Nil(t, req)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
