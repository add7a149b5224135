package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Session is the per-browser state: the API bearer token, the raw user payload
// from sign-in, and the contact the user signed in with. The user JSON is kept
// verbatim because its shape varies; deriving anything from it goes through
// user.go.
type Session struct {
	ID      string          `json:"-"`
	Token   string          `json:"token,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
	Contact string          `json:"contact,omitempty"`
}

// IsAuthenticated reports whether a bearer token is present.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

// Store persists sessions in Redis.
type Store struct {
	Rdb *redis.Client
	TTL time.Duration
}

// NewStore connects to Redis using a URL (same scheme as the session middleware
// it replaces).
func NewStore(redisURL string, ttl time.Duration) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{Rdb: redis.NewClient(opt), TTL: ttl}, nil
}

// NewID mints a session id for a fresh browser.
func NewID() string {
	return uuid.New().String()
}

// Load returns the session for id, or an empty session when none is stored.
func (s *Store) Load(ctx context.Context, id string) (*Session, error) {
	sess := &Session{ID: id}
	if id == "" {
		return sess, nil
	}
	b, err := s.Rdb.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return sess, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, sess); err != nil {
		return nil, err
	}
	sess.ID = id
	return sess, nil
}

// Save writes the session back with the store TTL.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Rdb.Set(ctx, keyPrefix+sess.ID, b, s.TTL).Err()
}

// Clear removes the session (logout).
func (s *Store) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.Rdb.Del(ctx, keyPrefix+id).Err()
}
