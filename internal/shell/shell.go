// Package shell is the client session holder: it keeps the logged-in
// user, persists it across restarts and answers route guard checks.
package shell

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/riskwatch/riskwatch/internal/directory"
	"github.com/riskwatch/riskwatch/internal/web/navigation"
)

// SessionKey is the well-known record key the session is stored under.
const SessionKey = "user"

// LoginPath is where Guard sends unauthenticated visitors.
const LoginPath = "/login"

// ErrNoSession is returned when no persisted session record exists.
var ErrNoSession = errors.New("no persisted session")

// Session is the client-side login state.
type Session struct {
	Token string             `json:"token"`
	User  *directory.Profile `json:"user"`
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil
}

// DisplayRole reduces the session's role set to the single role the
// navigation works with.
func (s *Session) DisplayRole() string {
	if !s.IsAuthenticated() {
		return ""
	}

	return navigation.DisplayRole(s.User.Roles)
}

// Store persists session records under string keys.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// FileStore is a Store writing one JSON file per key in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads the record for key, ErrNoSession when absent.
func (f *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}

	return data, err
}

// Set writes the record atomically: write aside, then rename, so a
// reader never sees a partial record.
func (f *FileStore) Set(key string, value []byte) error {
	tmp := f.path(key) + ".tmp"

	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, f.path(key))
}

// Delete removes the record for key; absent records are not an error.
func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return err
}

// Shell owns the current session and its persistence.
type Shell struct {
	mu      sync.RWMutex
	store   Store
	session *Session
}

// New creates a shell on the given store without touching it; call
// Hydrate to restore a persisted session.
func New(store Store) *Shell {
	return &Shell{store: store}
}

// Hydrate restores the persisted session, if any. The restored token
// is accepted as-is; its freshness is only re-checked when the server
// rejects it.
func (s *Shell) Hydrate() error {
	data, err := s.store.Get(SessionKey)
	if errors.Is(err, ErrNoSession) {
		return nil
	}

	if err != nil {
		return err
	}

	session := new(Session)
	if err := json.Unmarshal(data, session); err != nil {
		// unreadable record, drop it and start logged out
		log.Warn().Err(err).Msg("shell: discarding corrupt session record")

		return s.store.Delete(SessionKey)
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return nil
}

// Login stores the session in memory and persists it.
func (s *Shell) Login(token string, user *directory.Profile) error {
	session := &Session{Token: token, User: user}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := s.store.Set(SessionKey, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	return nil
}

// Logout clears the session and the persisted record. No server call
// happens; the token simply ages out.
func (s *Shell) Logout() error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	return s.store.Delete(SessionKey)
}

// Session returns the current session, nil when logged out.
func (s *Shell) Session() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.session
}

// Guard returns the path a visitor should land on: the login path when
// unauthenticated, the requested path otherwise.
func (s *Shell) Guard(path string) string {
	if !s.Session().IsAuthenticated() {
		return LoginPath
	}

	return path
}

// VisibleNavigation returns the navigation entries the current session
// may see.
func (s *Shell) VisibleNavigation() []navigation.Entry {
	session := s.Session()
	if !session.IsAuthenticated() {
		return nil
	}

	return navigation.Filter(navigation.Default(), session.DisplayRole())
}
