package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/config"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
)

func setupTestRepo(t *testing.T) *SessionRepository {
	t.Helper()
	if os.Getenv("SKIP_INTEGRATION_TESTS") != "" {
		t.Skip("integration tests disabled")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbConfig := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Connect(ctx, dbConfig, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	repo := NewSessionRepository(db)
	require.NoError(t, repo.Migrate(ctx))
	return repo
}

func storedSession(t *testing.T, id, token string) *domain.DeviceSession {
	t.Helper()
	s, err := domain.SessionFromStorage(id, token, time.Now().UnixMilli(), domain.DefaultExpiresIn)
	require.NoError(t, err)
	return s
}

func TestSessionRepository(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("save and find", func(t *testing.T) {
		session := storedSession(t, "session-1", "token-1")
		require.NoError(t, repo.Save(ctx, session))

		found, err := repo.FindByID(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, *session, *found)
	})

	t.Run("find absent returns nil", func(t *testing.T) {
		found, err := repo.FindByID(ctx, "no-such-session")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("find all preserves insertion order", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, storedSession(t, "session-z", "token-z")))
		require.NoError(t, repo.Save(ctx, storedSession(t, "session-a", "token-a")))

		sessions, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(sessions), 3)

		last := sessions[len(sessions)-1]
		assert.Equal(t, "session-a", last.SessionID)
	})

	t.Run("upsert keeps position", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, storedSession(t, "session-1", "token-updated")))

		sessions, err := repo.FindAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, "session-1", sessions[0].SessionID)
		assert.Equal(t, "token-updated", sessions[0].Token)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, storedSession(t, "session-del", "token-del")))
		require.NoError(t, repo.Delete(ctx, "session-del"))

		found, err := repo.FindByID(ctx, "session-del")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("delete absent is noop", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "no-such-session"))
	})
}
