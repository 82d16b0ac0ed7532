package memstore

import (
	"context"
	"sync"
	"time"

	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
)

var _ sessions.Repo = (*Store)(nil)

// Store is the in-memory session store. A duration of zero means sessions
// never expire. Operations on the same identifier are serialized by the
// store lock, so a destroy racing a resolve cannot produce an inconsistent
// read.
type Store struct {
	duration time.Duration
	nowTime  func() time.Time // nowTime function (injectable for testing)

	lock     sync.Mutex
	sessions map[string]sessions.Session
}

// Option defines a function type to modify the Store instance.
type Option func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

func New(duration time.Duration, options ...Option) *Store {
	store := &Store{
		duration: duration,
		nowTime:  time.Now,
		sessions: make(map[string]sessions.Session),
	}
	for _, opt := range options {
		opt(store)
	}
	return store
}

func (s *Store) Create(_ context.Context, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}

	sessionID, err := sessions.NewID()
	if err != nil {
		return "", interrors.Wrapf(err, "[Store.Create]")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.sessions[sessionID] = sessions.Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: s.nowTime(),
	}
	return sessionID, nil
}

func (s *Store) Resolve(_ context.Context, sessionID string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return "", interrors.ErrSessionNotFound
	}

	if s.expired(session) {
		delete(s.sessions, sessionID)
		return "", interrors.ErrSessionExpired
	}
	return session.UserID, nil
}

func (s *Store) Destroy(_ context.Context, sessionID string) (bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return false, nil
	}
	delete(s.sessions, sessionID)
	return true, nil
}

// expired evaluates the lifetime policy: a session is gone once
// now - created_at >= duration.
func (s *Store) expired(session sessions.Session) bool {
	if s.duration <= 0 {
		return false
	}
	return !s.nowTime().Before(session.CreatedAt.Add(s.duration))
}
