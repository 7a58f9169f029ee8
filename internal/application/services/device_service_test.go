package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
)

func testDevice() dto.OpenDeviceRequest {
	return dto.OpenDeviceRequest{
		IDDevice:   "pos-01",
		NameDevice: "Front Counter",
		UserDevice: "cashier",
		GroupID:    "group-9",
	}
}

func TestOpenDevice_SavesSession(t *testing.T) {
	repo := NewMockSessionRepository()
	device := &MockDeviceClient{
		OpenDeviceFn: func(ctx context.Context, req dto.OpenDeviceRequest) (string, error) {
			assert.Equal(t, "pos-01", req.IDDevice)
			return "issued-token", nil
		},
	}
	svc := NewDeviceService(repo, device, testLogger())

	session, err := svc.OpenDevice(context.Background(), testDevice())
	require.NoError(t, err)
	assert.Equal(t, "issued-token", session.Token)
	assert.NotEmpty(t, session.SessionID)
	assert.False(t, session.IsExpired())

	stored, err := repo.FindByID(context.Background(), session.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "issued-token", stored.Token)
}

func TestOpenDevice_ClientFailureDoesNotSave(t *testing.T) {
	repo := NewMockSessionRepository()
	device := &MockDeviceClient{
		OpenDeviceFn: func(ctx context.Context, req dto.OpenDeviceRequest) (string, error) {
			return "", domain.NewRemoteServiceError("could not reach yappy", errors.New("dial tcp: refused"))
		},
	}
	svc := NewDeviceService(repo, device, testLogger())

	_, err := svc.OpenDevice(context.Background(), testDevice())
	require.Error(t, err)
	assert.Equal(t, 0, repo.GetCalls("Save"))
}

func TestCloseDevice_DeletesSessionAndReturnsSummary(t *testing.T) {
	session := liveSession(t, "close-me-token")
	repo := NewMockSessionRepository(session)
	device := &MockDeviceClient{
		CloseDeviceFn: func(ctx context.Context, token string) (*application.DeviceSummary, error) {
			assert.Equal(t, "close-me-token", token)
			return &application.DeviceSummary{Transactions: 7, Amount: 123.45}, nil
		},
	}
	svc := NewDeviceService(repo, device, testLogger())

	summary, err := svc.CloseDevice(context.Background(), dto.CloseDeviceRequest{SessionID: session.SessionID})
	require.NoError(t, err)
	assert.Equal(t, 7, summary.Transactions)
	assert.Equal(t, 123.45, summary.Amount)

	stored, err := repo.FindByID(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

// Closing an unknown session fails before touching the provider or the store.
func TestCloseDevice_UnknownSession(t *testing.T) {
	repo := NewMockSessionRepository()
	device := &MockDeviceClient{}
	svc := NewDeviceService(repo, device, testLogger())

	_, err := svc.CloseDevice(context.Background(), dto.CloseDeviceRequest{SessionID: "missing-id"})
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNotFound))
	assert.Equal(t, "session missing-id not found", err.Error())

	assert.Equal(t, 0, device.GetCalls("CloseDevice"))
	assert.Equal(t, 0, repo.GetCalls("Delete"))
}

// A provider failure leaves the session in the store so the caller can retry.
func TestCloseDevice_RemoteFailureKeepsSession(t *testing.T) {
	session := liveSession(t, "sticky-token")
	repo := NewMockSessionRepository(session)
	device := &MockDeviceClient{
		CloseDeviceFn: func(ctx context.Context, token string) (*application.DeviceSummary, error) {
			return nil, domain.NewRemoteServiceError("could not reach yappy", errors.New("dial tcp: refused"))
		},
	}
	svc := NewDeviceService(repo, device, testLogger())

	_, err := svc.CloseDevice(context.Background(), dto.CloseDeviceRequest{SessionID: session.SessionID})
	require.Error(t, err)
	assert.Equal(t, 0, repo.GetCalls("Delete"))

	stored, err := repo.FindByID(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestLatestSessionID(t *testing.T) {
	first := liveSession(t, "first-token")
	second := liveSession(t, "second-token")
	repo := NewMockSessionRepository(first, second)
	svc := NewDeviceService(repo, &MockDeviceClient{}, testLogger())

	id, err := svc.LatestSessionID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.SessionID, id)
}

func TestLatestSessionID_EmptyStore(t *testing.T) {
	svc := NewDeviceService(NewMockSessionRepository(), &MockDeviceClient{}, testLogger())

	_, err := svc.LatestSessionID(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeNotFound))
	assert.Equal(t, "no active sessions to close", err.Error())
}
