package redisstore

import (
	"context"
	"encoding/json"
	"time"

	interrors "github.com/jrsteele09/go-session-auth/internal/errors"
	"github.com/jrsteele09/go-session-auth/sessions"
	"github.com/redis/go-redis/v9"
)

var _ sessions.Repo = (*Store)(nil)

const keyPrefix = "session:"

// Store is the durable session store. Sessions survive process restarts
// and every Resolve reloads from Redis, so there is no caching staleness.
type Store struct {
	client   *redis.Client
	duration time.Duration
	nowTime  func() time.Time
}

// Option defines a function type to modify the Store instance.
type Option func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

func New(client *redis.Client, duration time.Duration, options ...Option) *Store {
	store := &Store{
		client:   client,
		duration: duration,
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(store)
	}
	return store
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *Store) Create(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", nil
	}

	sessionID, err := sessions.NewID()
	if err != nil {
		return "", interrors.Wrapf(err, "[Store.Create]")
	}

	session := sessions.Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: s.nowTime(),
	}
	data, err := json.Marshal(session)
	if err != nil {
		return "", interrors.Wrapf(err, "[Store.Create] marshal")
	}

	// TTL zero means the key persists until destroyed.
	var ttl time.Duration
	if s.duration > 0 {
		ttl = s.duration
	}
	if err := s.client.Set(ctx, key(sessionID), data, ttl).Err(); err != nil {
		return "", interrors.Wrapf(interrors.ErrStorage, "[Store.Create] %v", err)
	}
	return sessionID, nil
}

func (s *Store) Resolve(ctx context.Context, sessionID string) (string, error) {
	value, err := s.client.Get(ctx, key(sessionID)).Result()
	if err == redis.Nil {
		return "", interrors.ErrSessionNotFound
	}
	if err != nil {
		return "", interrors.Wrapf(interrors.ErrStorage, "[Store.Resolve] %v", err)
	}

	var session sessions.Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return "", interrors.Wrapf(err, "[Store.Resolve] unmarshal")
	}

	// The TTL already evicts expired keys; the explicit check keeps the
	// lifetime policy exact even when the key outlives a reconfigured
	// duration.
	if s.duration > 0 && !s.nowTime().Before(session.CreatedAt.Add(s.duration)) {
		_ = s.client.Del(ctx, key(sessionID)).Err()
		return "", interrors.ErrSessionExpired
	}
	return session.UserID, nil
}

func (s *Store) Destroy(ctx context.Context, sessionID string) (bool, error) {
	removed, err := s.client.Del(ctx, key(sessionID)).Result()
	if err != nil {
		return false, interrors.Wrapf(interrors.ErrStorage, "[Store.Destroy] %v", err)
	}
	return removed > 0, nil
}
