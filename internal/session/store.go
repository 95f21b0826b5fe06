package session

import (
	"errors"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/teachforge-io/agent/internal/models"
)

// sessionRecord is the on-disk shape. Token and user are written together,
// never one without the other.
type sessionRecord struct {
	Version   string              `yaml:"version"`
	Timestamp time.Time           `yaml:"timestamp"`
	Session   models.LocalSession `yaml:"session"`
}

// Store is the single authoritative holder of the bearer token and teacher
// profile. All mutation goes through SetAuth, ClearAuth and MarkTransient;
// reads are synchronous and safe from any goroutine.
//
// The current state is persisted to a YAML file on every mutation so a
// restart resumes the session, except while the session is marked transient,
// during which the durable record is removed rather than written.
type Store struct {
	lock      sync.Mutex
	path      string
	current   models.LocalSession
	transient bool
}

var defaultStore *Store
var defaultOnce sync.Once

// GetStore returns the process-wide store backed by the default session file.
func GetStore() *Store {
	defaultOnce.Do(func() {
		defaultStore = NewStore(defaultSessionPath())
	})
	return defaultStore
}

// NewStore creates a store persisting to the given file path. The file is
// not read until Load is called.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the durable session record if one exists. A missing file means
// an unauthenticated start. A corrupt file is logged and reset rather than
// failing startup.
func (s *Store) Load() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	var record sessionRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		logrus.WithError(err).Errorf("Failed to parse session file %s, resetting", s.path)
		s.current = models.LocalSession{}
		return s.removeLocked()
	}

	s.current = record.Session
	return nil
}

// SetAuth replaces the token and user as a pair and persists immediately.
// Callers must always supply both; the store does not validate the token.
func (s *Store) SetAuth(token string, user *models.User) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.current = models.LocalSession{
		Version: 1,
		Token:   token,
		User:    user,
	}

	if s.transient {
		// Transient sessions stay in memory only. Remove any stale record
		// so a restart comes back unauthenticated.
		return s.removeLocked()
	}

	return s.commitLocked()
}

// ClearAuth empties the session, drops the transient flag and removes the
// durable record so a restart does not resurrect the session. Idempotent.
func (s *Store) ClearAuth() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.current = models.LocalSession{}
	s.transient = false

	return s.removeLocked()
}

// MarkTransient flags the in-memory session as exempt from persistence and
// startup verification. While set, the durable record is removed instead of
// written, so a restart returns to the unauthenticated state.
func (s *Store) MarkTransient(flag bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.transient = flag

	if flag {
		return s.removeLocked()
	}
	return s.commitLocked()
}

// Token returns the current bearer token, or "" when unauthenticated.
// Callers must re-read before every request rather than caching the value
// across blocking calls; a concurrent logout can occur mid-flight.
func (s *Store) Token() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.current.Token
}

// User returns the current teacher profile, or nil when unauthenticated.
func (s *Store) User() *models.User {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.current.User
}

func (s *Store) Authenticated() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.current.IsAuthenticated()
}

// Transient reports whether the current session is excluded from
// persistence and startup verification.
func (s *Store) Transient() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.transient
}

func (s *Store) commitLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return err
	}

	record := sessionRecord{
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Session:   s.current,
	}

	data, err := yaml.Marshal(record)
	if err != nil {
		return err
	}

	// Only allow read/write access to the owner
	return os.WriteFile(s.path, data, 0600)
}

func (s *Store) removeLocked() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func defaultSessionPath() string {
	usr, err := user.Current()
	if err != nil {
		logrus.WithError(err).Error("Failed to get current user, using working directory for session state")
		return filepath.Join(".teachforge", "session.yaml")
	}
	return filepath.Join(usr.HomeDir, ".config", "teachforge", "session.yaml")
}
