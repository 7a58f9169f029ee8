package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
)

// TokenProvider supplies a usable bearer token to the payment orchestrators,
// hiding whether it came from a stored session or a fresh device exchange.
type TokenProvider struct {
	sessionRepo  application.SessionRepository
	deviceClient application.DeviceClient
	device       dto.OpenDeviceRequest
	logger       *slog.Logger
}

// NewTokenProvider builds a provider around the configured device descriptor,
// used whenever a new session has to be provisioned.
func NewTokenProvider(
	sessionRepo application.SessionRepository,
	deviceClient application.DeviceClient,
	device dto.OpenDeviceRequest,
	logger *slog.Logger,
) *TokenProvider {
	return &TokenProvider{
		sessionRepo:  sessionRepo,
		deviceClient: deviceClient,
		device:       device,
		logger:       logger,
	}
}

// ActiveToken returns the token of a live stored session, or a no-active-
// session error when every stored session is expired or none exist. It never
// provisions.
func (p *TokenProvider) ActiveToken(ctx context.Context) (string, error) {
	token, err := p.storedToken(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", application.NewNoActiveSessionError()
	}
	return token, nil
}

// ProvisionToken returns the token of a live stored session, performing a new
// device-authentication exchange and persisting the resulting session when
// none is usable.
func (p *TokenProvider) ProvisionToken(ctx context.Context) (string, error) {
	token, err := p.storedToken(ctx)
	if err != nil {
		return "", err
	}
	if token != "" {
		return token, nil
	}

	token, err = p.deviceClient.OpenDevice(ctx, p.device)
	if err != nil {
		return "", err
	}

	session, err := domain.NewSession(token)
	if err != nil {
		return "", err
	}
	if err := p.sessionRepo.Save(ctx, session); err != nil {
		return "", err
	}

	p.logger.Info("provisioned new device session",
		"session_id", session.SessionID,
		"expires_in", session.ExpiresIn,
	)
	return token, nil
}

// storedToken scans stored sessions for a usable token. Among the live ones
// it picks the last element in the order the repository returned them; both
// repository implementations preserve insertion order, so that is the most
// recently saved session.
func (p *TokenProvider) storedToken(ctx context.Context) (string, error) {
	sessions, err := p.sessionRepo.FindAll(ctx)
	if err != nil {
		return "", err
	}

	var live []*domain.DeviceSession
	for _, s := range sessions {
		if !s.IsExpired() {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		return "", nil
	}
	return live[len(live)-1].Token, nil
}
