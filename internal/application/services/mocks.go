package services

import (
	"context"
	"sync"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain/dto"
)

// MockSessionRepository keeps sessions in a slice so FindAll preserves
// insertion order, the same contract the real stores honor.
type MockSessionRepository struct {
	mu       sync.Mutex
	sessions []*domain.DeviceSession
	calls    map[string]int

	SaveFn     func(ctx context.Context, session *domain.DeviceSession) error
	FindByIDFn func(ctx context.Context, sessionID string) (*domain.DeviceSession, error)
	DeleteFn   func(ctx context.Context, sessionID string) error
	FindAllFn  func(ctx context.Context) ([]*domain.DeviceSession, error)
}

func NewMockSessionRepository(seed ...*domain.DeviceSession) *MockSessionRepository {
	return &MockSessionRepository{sessions: seed}
}

func (m *MockSessionRepository) inc(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *MockSessionRepository) GetCalls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockSessionRepository) Save(ctx context.Context, session *domain.DeviceSession) error {
	m.inc("Save")
	if m.SaveFn != nil {
		return m.SaveFn(ctx, session)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.sessions {
		if s.SessionID == session.SessionID {
			m.sessions[i] = session
			return nil
		}
	}
	m.sessions = append(m.sessions, session)
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.DeviceSession, error) {
	m.inc("FindByID")
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.SessionID == sessionID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	m.inc("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.sessions[:0]
	for _, s := range m.sessions {
		if s.SessionID != sessionID {
			kept = append(kept, s)
		}
	}
	m.sessions = kept
	return nil
}

func (m *MockSessionRepository) FindAll(ctx context.Context) ([]*domain.DeviceSession, error) {
	m.inc("FindAll")
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.DeviceSession, len(m.sessions))
	copy(out, m.sessions)
	return out, nil
}

// MockDeviceClient
type MockDeviceClient struct {
	mu    sync.Mutex
	calls map[string]int

	OpenDeviceFn  func(ctx context.Context, req dto.OpenDeviceRequest) (string, error)
	CloseDeviceFn func(ctx context.Context, token string) (*application.DeviceSummary, error)
}

func (m *MockDeviceClient) inc(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *MockDeviceClient) GetCalls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockDeviceClient) OpenDevice(ctx context.Context, req dto.OpenDeviceRequest) (string, error) {
	m.inc("OpenDevice")
	if m.OpenDeviceFn != nil {
		return m.OpenDeviceFn(ctx, req)
	}
	return "token-123", nil
}

func (m *MockDeviceClient) CloseDevice(ctx context.Context, token string) (*application.DeviceSummary, error) {
	m.inc("CloseDevice")
	if m.CloseDeviceFn != nil {
		return m.CloseDeviceFn(ctx, token)
	}
	return &application.DeviceSummary{Transactions: 3, Amount: 42.5}, nil
}

// MockPaymentClient
type MockPaymentClient struct {
	mu    sync.Mutex
	calls map[string]int

	GenerateQRCodeFn    func(ctx context.Context, req dto.PaymentRequest, token string) (*application.QRCodeResult, error)
	GetTransactionFn    func(ctx context.Context, transactionID, token string) (*application.TransactionStatus, error)
	CancelTransactionFn func(ctx context.Context, transactionID, token string) (*application.TransactionCancellation, error)
}

func (m *MockPaymentClient) inc(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *MockPaymentClient) GetCalls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockPaymentClient) GenerateQRCode(ctx context.Context, req dto.PaymentRequest, token string) (*application.QRCodeResult, error) {
	m.inc("GenerateQRCode")
	if m.GenerateQRCodeFn != nil {
		return m.GenerateQRCodeFn(ctx, req, token)
	}
	return &application.QRCodeResult{
		QRCodeURL:     "hash-abc",
		TransactionID: "tx-1234567890",
		Amount:        req.Total,
		ExpiresAt:     "2025-01-01T00:00:00Z",
	}, nil
}

func (m *MockPaymentClient) GetTransaction(ctx context.Context, transactionID, token string) (*application.TransactionStatus, error) {
	m.inc("GetTransaction")
	if m.GetTransactionFn != nil {
		return m.GetTransactionFn(ctx, transactionID, token)
	}
	return &application.TransactionStatus{TransactionID: transactionID, Status: "PENDING"}, nil
}

func (m *MockPaymentClient) CancelTransaction(ctx context.Context, transactionID, token string) (*application.TransactionCancellation, error) {
	m.inc("CancelTransaction")
	if m.CancelTransactionFn != nil {
		return m.CancelTransactionFn(ctx, transactionID, token)
	}
	return &application.TransactionCancellation{
		TransactionID: transactionID,
		Status:        "CANCELLED",
		Message:       "Transaction cancelled successfully",
	}, nil
}
