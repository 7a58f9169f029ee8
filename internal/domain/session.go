// Package domain defines the domain model for the POS payment gateway.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultExpiresIn is how long a device token stays valid, in seconds (6 hours).
const DefaultExpiresIn int64 = 21600

// DeviceSession pairs a generated identifier with the bearer token obtained
// from the payment provider and its expiry window. Sessions are value objects:
// never mutated after creation, updates are modeled as delete+recreate.
type DeviceSession struct {
	SessionID string
	Token     string
	CreatedAt int64 // epoch milliseconds
	ExpiresIn int64 // seconds
}

// NewSession creates a fresh session around a token just issued by the
// provider. The session ID is generated, CreatedAt is the current time and
// ExpiresIn is the default window.
func NewSession(token string) (*DeviceSession, error) {
	if token == "" {
		return nil, NewValidationError("token is required")
	}
	return &DeviceSession{
		SessionID: uuid.NewString(),
		Token:     token,
		CreatedAt: time.Now().UnixMilli(),
		ExpiresIn: DefaultExpiresIn,
	}, nil
}

// SessionFromStorage reconstructs a session from its persisted fields.
//
// A zero createdAt is substituted with the current time rather than rejected,
// which silently turns such a record into a "new" session. Stored epoch-ms
// timestamps are virtually never exactly 0, so this matches the behavior the
// storage layer has always had.
func SessionFromStorage(sessionID, token string, createdAt, expiresIn int64) (*DeviceSession, error) {
	if sessionID == "" {
		return nil, NewValidationError("session ID is required")
	}
	if token == "" {
		return nil, NewValidationError("token is required")
	}
	if createdAt == 0 {
		createdAt = time.Now().UnixMilli()
	}
	if expiresIn == 0 {
		expiresIn = DefaultExpiresIn
	}
	return &DeviceSession{
		SessionID: sessionID,
		Token:     token,
		CreatedAt: createdAt,
		ExpiresIn: expiresIn,
	}, nil
}

// ExpiresAtMillis returns the instant the token stops being valid, epoch ms.
func (s *DeviceSession) ExpiresAtMillis() int64 {
	return s.CreatedAt + s.ExpiresIn*1000
}

// IsExpiredAt reports whether the session is expired at the given instant.
// The boundary instant itself counts as expired.
func (s *DeviceSession) IsExpiredAt(now time.Time) bool {
	return now.UnixMilli() >= s.ExpiresAtMillis()
}

// IsExpired reports whether the session is expired right now. Expiry is a
// pure function of time; there is no background eviction, staleness is only
// checked on read.
func (s *DeviceSession) IsExpired() bool {
	return s.IsExpiredAt(time.Now())
}

// SessionRecord is the durable representation of a session.
type SessionRecord struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresIn int64  `json:"expiresIn"`
}

// SessionView is the API-facing representation: the stored fields plus the
// derived expiry instant and flag.
type SessionView struct {
	SessionID string `json:"sessionId"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresIn int64  `json:"expiresIn"`
	ExpiresAt string `json:"expiresAt"`
	IsExpired bool   `json:"isExpired"`
}

func (s *DeviceSession) ToRecord() SessionRecord {
	return SessionRecord{
		SessionID: s.SessionID,
		Token:     s.Token,
		CreatedAt: s.CreatedAt,
		ExpiresIn: s.ExpiresIn,
	}
}

func (s *DeviceSession) ToView() SessionView {
	return SessionView{
		SessionID: s.SessionID,
		Token:     s.Token,
		CreatedAt: s.CreatedAt,
		ExpiresIn: s.ExpiresIn,
		ExpiresAt: time.UnixMilli(s.ExpiresAtMillis()).UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		IsExpired: s.IsExpired(),
	}
}
