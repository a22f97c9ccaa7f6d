// Package session holds the current user identity and bearer token and
// persists them across restarts.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/adboard/internal/client/models"
	"github.com/dmitrijs2005/adboard/internal/logging"
)

// Session is the authenticated state of the client.
// Invariant: User is non-nil iff Token is non-empty.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Store owns the in-memory session and its on-disk copy. Both the token
// and the user are persisted, so a restart never leaves the client
// authenticated but user-less.
//
// Contract:
//   - Login sets the session and persists it; the in-memory state always
//     updates even if the write fails (the failure is only logged).
//   - Logout clears memory and removes the file; idempotent.
//   - IsAuthenticated is a pure derived predicate.
type Store struct {
	mu   sync.RWMutex
	s    Session
	path string
	log  logging.Logger
}

// NewStore creates a Store persisting to path. An empty path picks the
// default location under the user config dir.
func NewStore(path string, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		path = filepath.Join(dir, "adboard", "session.json")
	}
	return &Store{path: path, log: log}, nil
}

// Load rehydrates the session from disk. A missing file is not an error;
// a corrupt file is discarded so the client starts unauthenticated.
func (st *Store) Load(ctx context.Context) error {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		st.log.Warn(ctx, "discarding corrupt session file", "path", st.path, "error", err)
		return nil
	}
	if s.Token == "" || s.User == nil {
		// Half a session is no session.
		return nil
	}

	st.mu.Lock()
	st.s = s
	st.mu.Unlock()
	st.log.Info(ctx, "session restored", "user", s.User.Email)
	return nil
}

// Login stores the token and user and persists them.
func (st *Store) Login(ctx context.Context, token string, user models.User) {
	st.mu.Lock()
	st.s = Session{Token: token, User: &user}
	st.mu.Unlock()

	if err := st.save(); err != nil {
		st.log.Warn(ctx, "session not persisted", "error", err)
	}
}

// Logout clears the session and removes the persisted copy.
func (st *Store) Logout(ctx context.Context) {
	st.mu.Lock()
	st.s = Session{}
	st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		st.log.Warn(ctx, "session file not removed", "error", err)
	}
}

// IsAuthenticated reports whether a token is present.
func (st *Store) IsAuthenticated() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s.Token != ""
}

// Token returns the current bearer token, empty when unauthenticated.
// Satisfies the api.TokenSource the HTTP client is wired with.
func (st *Store) Token() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s.Token
}

// User returns the current user, nil when unauthenticated.
func (st *Store) User() *models.User {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s.User
}

func (st *Store) save() error {
	st.mu.RLock()
	data, err := json.MarshalIndent(st.s, "", "  ")
	st.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(st.path), err)
	}
	return os.WriteFile(st.path, data, 0o600)
}
