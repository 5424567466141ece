// Package sessions provides the server-side session store. A session is an
// opaque token delivered via an HTTP-only cookie; the stored value holds the
// user id and the isAdmin snapshot taken at login time. The store is the
// sole authority for "who is logged in now".
package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a token does not resolve to a live session
var ErrNoSession = errors.New("session not found")

// Session is the server-side session record. IsAdmin is a snapshot taken
// when the session was created and can go stale relative to the user record.
type Session struct {
	Token   string `json:"-"`
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// Store is the session store interface
type Store interface {
	// Create issues a new session token for the user. Callers that already
	// hold a session must Delete it first (session regeneration).
	Create(ctx context.Context, userID string, isAdmin bool) (string, error)
	// Get resolves a token to its session, or ErrNoSession
	Get(ctx context.Context, token string) (*Session, error)
	// Delete destroys a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}

const keyPrefix = "sess:"

// redisStore implements Store on top of redis with a per-session TTL
type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a redis-backed session store
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *redisStore {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, userID string, isAdmin bool) (string, error) {
	token := uuid.New().String()
	val, err := json.Marshal(Session{UserID: userID, IsAdmin: isAdmin})
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+token, val, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (*Session, error) {
	val, err := s.rdb.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	sess := &Session{}
	if err := json.Unmarshal([]byte(val), sess); err != nil {
		return nil, err
	}
	sess.Token = token
	return sess, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
