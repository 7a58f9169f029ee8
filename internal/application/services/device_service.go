package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
)

// DeviceService handles the explicit device-session lifecycle: opening a
// session against the provider and closing it down again.
type DeviceService struct {
	sessionRepo  application.SessionRepository
	deviceClient application.DeviceClient
	logger       *slog.Logger
}

func NewDeviceService(
	sessionRepo application.SessionRepository,
	deviceClient application.DeviceClient,
	logger *slog.Logger,
) *DeviceService {
	return &DeviceService{
		sessionRepo:  sessionRepo,
		deviceClient: deviceClient,
		logger:       logger,
	}
}

// OpenDevice exchanges the device descriptor for a provider token, wraps it
// in a new session and persists it.
func (s *DeviceService) OpenDevice(ctx context.Context, req dto.OpenDeviceRequest) (*domain.DeviceSession, error) {
	token, err := s.deviceClient.OpenDevice(ctx, req)
	if err != nil {
		return nil, err
	}

	session, err := domain.NewSession(token)
	if err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("device session opened", "session_id", session.SessionID)
	return session, nil
}

// CloseDevice closes the named session with the provider, deletes it from the
// store and returns the provider's usage summary. An unknown session fails
// with a not-found error before any remote call is made.
func (s *DeviceService) CloseDevice(ctx context.Context, req dto.CloseDeviceRequest) (*application.DeviceSummary, error) {
	session, err := s.sessionRepo.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("session %s not found", req.SessionID))
	}

	summary, err := s.deviceClient.CloseDevice(ctx, session.Token)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Delete(ctx, req.SessionID); err != nil {
		return nil, err
	}

	s.logger.Info("device session closed",
		"session_id", req.SessionID,
		"transactions", summary.Transactions,
		"amount", summary.Amount,
	)
	return summary, nil
}

// LatestSessionID returns the ID of the most recently stored session, used
// when a close-device call does not name one. A not-found error is returned
// when the store is empty.
func (s *DeviceService) LatestSessionID(ctx context.Context) (string, error) {
	sessions, err := s.sessionRepo.FindAll(ctx)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "", domain.NewNotFoundError("no active sessions to close")
	}
	return sessions[len(sessions)-1].SessionID, nil
}
