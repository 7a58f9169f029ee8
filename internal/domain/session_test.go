package domain

import (
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	before := time.Now().UnixMilli()
	session, err := NewSession("token-abc123")
	after := time.Now().UnixMilli()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Token != "token-abc123" {
		t.Errorf("expected token token-abc123, got %s", session.Token)
	}
	if session.SessionID == "" {
		t.Error("expected generated session ID")
	}
	if session.CreatedAt < before || session.CreatedAt > after {
		t.Errorf("expected CreatedAt in [%d, %d], got %d", before, after, session.CreatedAt)
	}
	if session.ExpiresIn != DefaultExpiresIn {
		t.Errorf("expected default ExpiresIn %d, got %d", DefaultExpiresIn, session.ExpiresIn)
	}
}

func TestNewSession_UniqueIDs(t *testing.T) {
	s1, err := NewSession("token-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	s2, err := NewSession("token-2")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s1.SessionID == s2.SessionID {
		t.Errorf("expected unique session IDs, both were %s", s1.SessionID)
	}
}

func TestNewSession_EmptyToken(t *testing.T) {
	_, err := NewSession("")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsErrorCode(err, ErrCodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSessionFromStorage(t *testing.T) {
	createdAt := time.Now().UnixMilli() - 1000

	session, err := SessionFromStorage("session-123", "token-xyz", createdAt, 21600)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.SessionID != "session-123" {
		t.Errorf("expected session-123, got %s", session.SessionID)
	}
	if session.Token != "token-xyz" {
		t.Errorf("expected token-xyz, got %s", session.Token)
	}
	if session.CreatedAt != createdAt {
		t.Errorf("expected CreatedAt %d, got %d", createdAt, session.CreatedAt)
	}
	if session.ExpiresIn != 21600 {
		t.Errorf("expected ExpiresIn 21600, got %d", session.ExpiresIn)
	}
}

func TestSessionFromStorage_MissingFields(t *testing.T) {
	if _, err := SessionFromStorage("", "token", 1, 1); err == nil {
		t.Error("expected error for missing session ID")
	}
	if _, err := SessionFromStorage("session-123", "", 1, 1); err == nil {
		t.Error("expected error for missing token")
	}
}

// A zero createdAt reads back as a session created "now" rather than one
// created at the epoch. See SessionFromStorage.
func TestSessionFromStorage_ZeroCreatedAtBecomesNow(t *testing.T) {
	before := time.Now().UnixMilli()
	session, err := SessionFromStorage("session-123", "token-abc", 0, 21600)
	after := time.Now().UnixMilli()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.CreatedAt < before || session.CreatedAt > after {
		t.Errorf("expected CreatedAt substituted with now, got %d", session.CreatedAt)
	}
	if session.IsExpired() {
		t.Error("expected freshly substituted session to not be expired")
	}
}

func TestSessionFromStorage_ZeroExpiresInDefaults(t *testing.T) {
	session, err := SessionFromStorage("session-123", "token-abc", time.Now().UnixMilli(), 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.ExpiresIn != DefaultExpiresIn {
		t.Errorf("expected default ExpiresIn, got %d", session.ExpiresIn)
	}
}

func TestIsExpiredAt_Boundary(t *testing.T) {
	createdAt := int64(1_700_000_000_000)
	session, err := SessionFromStorage("session-123", "token-abc", createdAt, 21600)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	boundary := createdAt + 21600*1000

	if !session.IsExpiredAt(time.UnixMilli(boundary)) {
		t.Error("expected session to be expired exactly at the boundary instant")
	}
	if session.IsExpiredAt(time.UnixMilli(boundary - 1)) {
		t.Error("expected session to not be expired 1ms before the boundary")
	}
}

func TestIsExpired_Lifecycle(t *testing.T) {
	session, err := NewSession("tok")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if session.IsExpired() {
		t.Error("expected fresh session to not be expired")
	}

	advanced := time.UnixMilli(session.CreatedAt).Add(21_600_000 * time.Millisecond)
	if !session.IsExpiredAt(advanced) {
		t.Error("expected session to be expired after 21,600,000 ms")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	original, err := NewSession("token-round-trip")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	record := original.ToRecord()
	restored, err := SessionFromStorage(record.SessionID, record.Token, record.CreatedAt, record.ExpiresIn)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if *restored != *original {
		t.Errorf("expected round-tripped session to equal original: %+v vs %+v", restored, original)
	}
}

func TestToView(t *testing.T) {
	createdAt := int64(1_700_000_000_000)
	session, err := SessionFromStorage("session-123", "token-abc", createdAt, 21600)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	view := session.ToView()
	if view.SessionID != "session-123" || view.Token != "token-abc" {
		t.Errorf("unexpected view identity fields: %+v", view)
	}
	wantExpiresAt := time.UnixMilli(createdAt + 21600*1000).UTC().Format("2006-01-02T15:04:05.000Z07:00")
	if view.ExpiresAt != wantExpiresAt {
		t.Errorf("expected expiresAt %s, got %s", wantExpiresAt, view.ExpiresAt)
	}
	if !view.IsExpired {
		t.Error("expected a 2023-era session to report expired")
	}
}
