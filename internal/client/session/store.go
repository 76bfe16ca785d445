// Package session keeps the CLI's login state between runs.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	wire "worldexplorer/internal/api"
	"worldexplorer/internal/client/api"
)

// Messages surfaced to the user.
const (
	MsgSessionExpired     = "Session expired. Please login again."
	MsgRegistrationFailed = "Registration failed. Please try again."
	MsgInvalidCredentials = "Invalid credentials"
)

// ErrSessionExpired is returned by Start when the persisted token was rejected.
var ErrSessionExpired = errors.New(MsgSessionExpired)

// AuthAPI is the part of the server API the store needs.
type AuthAPI interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*wire.User, error)
}

// Store holds the persisted token and the user it resolves to.
type Store struct {
	mu    sync.RWMutex
	api   AuthAPI
	path  string
	token string
	user  *wire.User
	err   string
}

// DefaultPath is $XDG_CONFIG_HOME/worldexplorer/token (or the OS equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "worldexplorer", "token"), nil
}

// NewStore returns a store persisting its token at path.
func NewStore(authAPI AuthAPI, path string) *Store {
	return &Store{api: authAPI, path: path}
}

// Start restores a persisted session. A rejected token is discarded and
// ErrSessionExpired returned; no persisted token is not an error.
func (s *Store) Start(ctx context.Context) error {
	token, err := s.readToken()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.loadUser(ctx); err != nil {
		s.discard(MsgSessionExpired)
		return ErrSessionExpired
	}
	return nil
}

// Register creates an account, persists its token and loads the user.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	token, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		return s.fail(err, MsgRegistrationFailed)
	}
	return s.establish(ctx, token)
}

// Login authenticates, persists the token and loads the user.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return s.fail(err, MsgInvalidCredentials)
	}
	return s.establish(ctx, token)
}

// Logout forgets the session locally. The server is not contacted.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.err = ""
	s.mu.Unlock()
	return s.removeToken()
}

// IsAuthenticated reports whether a user is loaded.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// User returns the loaded user, or nil.
func (s *Store) User() *wire.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token returns the current token, or "".
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Err returns the last user-facing error message, or "".
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) establish(ctx context.Context, token string) error {
	if err := s.writeToken(token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.err = ""
	s.mu.Unlock()

	if err := s.loadUser(ctx); err != nil {
		s.discard(MsgSessionExpired)
		return ErrSessionExpired
	}
	return nil
}

func (s *Store) loadUser(ctx context.Context) error {
	user, err := s.api.Me(ctx, s.Token())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// fail records the server's message, or fallback when there is none.
func (s *Store) fail(err error, fallback string) error {
	msg := fallback
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
	return errors.New(msg)
}

func (s *Store) discard(msg string) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.err = msg
	s.mu.Unlock()
	_ = s.removeToken()
}

func (s *Store) readToken() (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *Store) writeToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *Store) removeToken() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
