package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"health-records-app/internal/models"
)

const sessionKey = "user"

// SessionStore persists the single logged-in user slot as one small JSON
// file, shaped {"user": {"username": ..., "role": ...}}. Engine failures
// are logged to the diagnostic file and surfaced as StorageError; the raw
// cause never crosses the core boundary.
type SessionStore struct {
	mu     sync.Mutex
	path   string
	logger *slog.Logger
}

// NewSessionStore creates a session store backed by the given file path.
// The file is created lazily on the first Put.
func NewSessionStore(path string, logger *slog.Logger) *SessionStore {
	return &SessionStore{path: path, logger: logger}
}

// Put overwrites the session slot. Idempotent.
func (s *SessionStore) Put(username string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := map[string]models.Session{
		sessionKey: {Username: username, Role: role},
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return s.storageError("session put", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return s.storageError("session put", err)
	}

	// Write-then-rename so a crash mid-write never leaves a torn slot.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return s.storageError("session put", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return s.storageError("session put", err)
	}
	return nil
}

// Exists reports whether a readable session is currently persisted.
// An unreadable slot counts as absent; the cause still goes to the
// diagnostic log.
func (s *SessionStore) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.read("session exists")
	return err == nil
}

// Get returns the persisted session, or ErrNotFound when logged out.
func (s *SessionStore) Get() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read("session get")
}

// Delete clears the slot. Deleting when absent is a no-op.
func (s *SessionStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return s.storageError("session delete", err)
	}
	return nil
}

func (s *SessionStore) read(op string) (*models.Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, s.storageError(op, err)
	}

	var payload map[string]models.Session
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, s.storageError(op, err)
	}
	session, ok := payload[sessionKey]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (s *SessionStore) storageError(op string, err error) error {
	s.logger.Error("session store failure", "op", op, "error", err)
	return &StorageError{Op: op, Err: err}
}
