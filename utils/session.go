package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"stayadmin/config"
	"stayadmin/models"
)

const sessionPrefix = "session:"

// ErrSessionNotFound is returned when a session id has no stored session,
// typically because it expired or was cleared on logout.
var ErrSessionNotFound = fmt.Errorf("session not found")

// Session is the durable server-side state behind one authenticated console
// login: the staff identity plus the bearer credential for the remote API.
type Session struct {
	ID        string      `json:"id"`
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	CreatedAt time.Time   `json:"createdAt"`
}

// SessionStore persists console sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore implements SessionStore on a Redis key-value store.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisSessionStore connects to Redis using the app configuration and
// verifies the connection before returning.
func NewRedisSessionStore() *RedisSessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (sessions): %v", err)
	}
	ttl := time.Duration(config.AppConfig.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionPrefix+session.ID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.Client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionPrefix+sessionID).Err()
}
