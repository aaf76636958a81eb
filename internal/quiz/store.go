package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore holds in-flight quiz sessions.
type SessionStore interface {
	Save(ctx context.Context, s *Session) error
	// Load returns ErrSessionNotFound for unknown or expired sessions.
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	// Lock serializes updates to one session. It returns ErrSessionBusy when
	// another update holds the lock.
	Lock(ctx context.Context, id uuid.UUID) (unlock func(), err error)
}

const (
	defaultSessionTTL = 2 * time.Hour
	lockTTL           = 10 * time.Second
)

// RedisSessionStore keeps sessions as JSON documents with a TTL.
type RedisSessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisSessionStore creates a store. A non-positive ttl uses two hours.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{redis: client, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("quizsession:%s", id.String())
}

// Save writes the session and refreshes its TTL.
func (s *RedisSessionStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads a session.
func (s *RedisSessionStore) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock acquires a short-lived lock. The returned func only releases the lock
// it acquired.
func (s *RedisSessionStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	key := sessionKey(id) + ":lock"
	token := uuid.NewString()

	acquired, err := s.redis.SetNX(ctx, key, token, lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !acquired {
		return nil, ErrSessionBusy
	}

	return func() {
		_ = unlockScript.Run(context.WithoutCancel(ctx), s.redis, []string{key}, token).Err()
	}, nil
}
