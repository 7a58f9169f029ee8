// Package jsonfile persists device sessions in a single JSON file, keyed by
// session ID. Every mutation rewrites the whole file; the workload is one POS
// device, so a read-modify-write cycle without locking is acceptable as long
// as there is a single writer process.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DanielPopoola/yappy-pos-gateway/internal/application"
	"github.com/DanielPopoola/yappy-pos-gateway/internal/domain"
)

const fileName = "sessions.json"

type SessionRepository struct {
	filePath string
}

func NewSessionRepository(dataDir string) *SessionRepository {
	return &SessionRepository{
		filePath: filepath.Join(dataDir, fileName),
	}
}

var _ application.SessionRepository = (*SessionRepository)(nil)

// fileEntry keeps the session ID next to its record so the file's key order
// survives the trip through Go, where maps would shuffle it. FindAll's
// "insertion order" contract depends on this.
type fileEntry struct {
	id     string
	record domain.SessionRecord
}

func (r *SessionRepository) Save(ctx context.Context, session *domain.DeviceSession) error {
	entries, err := r.readFile()
	if err != nil {
		return err
	}

	record := session.ToRecord()
	replaced := false
	for i := range entries {
		if entries[i].id == session.SessionID {
			entries[i].record = record
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, fileEntry{id: session.SessionID, record: record})
	}

	return r.writeFile(entries)
}

func (r *SessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.DeviceSession, error) {
	entries, err := r.readFile()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.id == sessionID {
			return r.toSession(e)
		}
	}
	return nil, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	entries, err := r.readFile()
	if err != nil {
		return err
	}

	kept := entries[:0]
	found := false
	for _, e := range entries {
		if e.id == sessionID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil
	}
	return r.writeFile(kept)
}

func (r *SessionRepository) FindAll(ctx context.Context) ([]*domain.DeviceSession, error) {
	entries, err := r.readFile()
	if err != nil {
		return nil, err
	}

	sessions := make([]*domain.DeviceSession, 0, len(entries))
	for _, e := range entries {
		session, err := r.toSession(e)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (r *SessionRepository) toSession(e fileEntry) (*domain.DeviceSession, error) {
	session, err := domain.SessionFromStorage(e.id, e.record.Token, e.record.CreatedAt, e.record.ExpiresIn)
	if err != nil {
		return nil, domain.NewStorageError(fmt.Sprintf("corrupt session record %s", e.id), err)
	}
	return session, nil
}

// readFile parses the sessions file preserving key order. A file that does
// not exist yet reads as empty, not as an error. Legacy records where the
// value is a bare token string are still understood.
func (r *SessionRepository) readFile() ([]fileEntry, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.NewStorageError("failed to read sessions file", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, domain.NewStorageError("failed to parse sessions file", err)
	}

	var entries []fileEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, domain.NewStorageError("failed to parse sessions file", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, domain.NewStorageError("failed to parse sessions file", fmt.Errorf("unexpected key token %v", keyTok))
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, domain.NewStorageError("failed to parse sessions file", err)
		}

		var record domain.SessionRecord
		if len(raw) > 0 && raw[0] == '"' {
			// Legacy shape: value is the token itself.
			if err := json.Unmarshal(raw, &record.Token); err != nil {
				return nil, domain.NewStorageError("failed to parse sessions file", err)
			}
		} else if err := json.Unmarshal(raw, &record); err != nil {
			return nil, domain.NewStorageError("failed to parse sessions file", err)
		}
		record.SessionID = key

		entries = append(entries, fileEntry{id: key, record: record})
	}
	return entries, nil
}

// writeFile rewrites the whole file atomically: the new content lands in a
// temp file in the same directory and replaces the old one with a rename.
func (r *SessionRepository) writeFile(entries []fileEntry) error {
	dir := filepath.Dir(r.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewStorageError("failed to create data directory", err)
	}

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, e := range entries {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		key, err := json.Marshal(e.id)
		if err != nil {
			return domain.NewStorageError("failed to encode sessions file", err)
		}
		value, err := json.Marshal(storedRecord{
			Token:     e.record.Token,
			CreatedAt: e.record.CreatedAt,
			ExpiresIn: e.record.ExpiresIn,
		})
		if err != nil {
			return domain.NewStorageError("failed to encode sessions file", err)
		}
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
	}
	buf.WriteString("\n}\n")

	tmp, err := os.CreateTemp(dir, fileName+".tmp")
	if err != nil {
		return domain.NewStorageError("failed to write sessions file", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return domain.NewStorageError("failed to write sessions file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return domain.NewStorageError("failed to write sessions file", err)
	}
	if err := os.Rename(tmp.Name(), r.filePath); err != nil {
		os.Remove(tmp.Name())
		return domain.NewStorageError("failed to write sessions file", err)
	}
	return nil
}

// storedRecord is the on-disk value shape: the session ID lives in the key,
// not the value.
type storedRecord struct {
	Token     string `json:"token"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresIn int64  `json:"expiresIn"`
}
