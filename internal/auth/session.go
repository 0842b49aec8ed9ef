package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mvaldes/memberhub/internal/models"
)

const (
	// SessionTTL is the absolute lifetime of a session. Sessions are not
	// renewed on use; the user logs in again after expiry.
	SessionTTL = time.Hour

	// SessionCookie is the name of the opaque session token cookie.
	SessionCookie = "session_id"
)

// Session is the identity snapshot captured at signup or login time. All
// authorization decisions during the session's lifetime read this snapshot;
// a role change in the user store does not take effect until re-login.
type Session struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Expired reports whether the session has passed its absolute expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionStore persists sessions server-side, keyed by an opaque token.
type SessionStore interface {
	// Create stores the snapshot under a fresh random token and returns
	// the token. ExpiresAt is set by the store.
	Create(ctx context.Context, sess Session) (string, error)

	// Get returns the session for a token, or nil if the token is absent,
	// unknown, or expired. Expired sessions are treated as absent.
	Get(ctx context.Context, token string) (*Session, error)

	// Destroy removes a session. Idempotent.
	Destroy(ctx context.Context, token string) error
}

// RedisSessionStore backs sessions with Redis, one JSON value per token
// under "session:<token>", with the key TTL matching the session expiry.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *RedisSessionStore) Create(ctx context.Context, sess Session) (string, error) {
	token := uuid.New().String()
	sess.ExpiresAt = time.Now().Add(s.ttl)
	data, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKey(token), data, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	// Redis eviction already bounds the key lifetime, but the snapshot's
	// own expiry is authoritative.
	if sess.Expired() {
		return nil, nil
	}
	return &sess, nil
}

func (s *RedisSessionStore) Destroy(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string { return "session:" + token }

// MemorySessionStore keeps sessions in a process-local map. Used in tests
// and when no Redis address is configured.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{ttl: ttl, sessions: make(map[string]Session)}
}

func (s *MemorySessionStore) Create(_ context.Context, sess Session) (string, error) {
	token := uuid.New().String()
	sess.ExpiresAt = time.Now().Add(s.ttl)
	s.mu.Lock()
	s.sessions[token] = sess
	s.mu.Unlock()
	return token, nil
}

func (s *MemorySessionStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok || sess.Expired() {
		return nil, nil
	}
	return &sess, nil
}

func (s *MemorySessionStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

var (
	_ SessionStore = (*RedisSessionStore)(nil)
	_ SessionStore = (*MemorySessionStore)(nil)
)
