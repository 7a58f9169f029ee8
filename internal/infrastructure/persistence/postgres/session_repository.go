package postgres

import (
	"context"
	"errors"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema keeps a monotonically growing seq so FindAll can return sessions in
// insertion order, matching the JSON file store's contract. Upserts keep the
// row's original seq, the same way rewriting a key leaves its position in the
// file unchanged.
const schema = `
CREATE TABLE IF NOT EXISTS device_sessions (
	session_id    TEXT PRIMARY KEY,
	token         TEXT NOT NULL,
	created_at_ms BIGINT NOT NULL,
	expires_in_s  BIGINT NOT NULL,
	seq           BIGSERIAL
)`

type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db.Pool}
}

var _ application.SessionRepository = (*SessionRepository)(nil)

// Migrate creates the sessions table when it does not exist yet.
func (r *SessionRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return domain.NewStorageError("failed to migrate sessions table", err)
	}
	return nil
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.DeviceSession) error {
	query := `
		INSERT INTO device_sessions (session_id, token, created_at_ms, expires_in_s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id) DO UPDATE SET
			token = EXCLUDED.token,
			created_at_ms = EXCLUDED.created_at_ms,
			expires_in_s = EXCLUDED.expires_in_s
	`
	_, err := r.db.Exec(ctx, query, session.SessionID, session.Token, session.CreatedAt, session.ExpiresIn)
	if err != nil {
		return domain.NewStorageError("failed to save session", err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.DeviceSession, error) {
	query := `
		SELECT session_id, token, created_at_ms, expires_in_s
		FROM device_sessions
		WHERE session_id = $1
	`
	var id, token string
	var createdAt, expiresIn int64
	err := r.db.QueryRow(ctx, query, sessionID).Scan(&id, &token, &createdAt, &expiresIn)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStorageError("failed to find session", err)
	}
	return domain.SessionFromStorage(id, token, createdAt, expiresIn)
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM device_sessions WHERE session_id = $1`, sessionID)
	if err != nil {
		return domain.NewStorageError("failed to delete session", err)
	}
	return nil
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]*domain.DeviceSession, error) {
	query := `
		SELECT session_id, token, created_at_ms, expires_in_s
		FROM device_sessions
		ORDER BY seq
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, domain.NewStorageError("failed to list sessions", err)
	}
	defer rows.Close()

	sessions := make([]*domain.DeviceSession, 0)
	for rows.Next() {
		var id, token string
		var createdAt, expiresIn int64
		if err := rows.Scan(&id, &token, &createdAt, &expiresIn); err != nil {
			return nil, domain.NewStorageError("failed to scan session", err)
		}
		session, err := domain.SessionFromStorage(id, token, createdAt, expiresIn)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("failed to list sessions", err)
	}
	return sessions, nil
}
