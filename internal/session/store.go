package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store holds the only server-side state the gateway keeps: per-session
// compare selections and the one-time popup dismissal flag. Everything
// else is owned by the backend.
type Store interface {
	CompareList(ctx context.Context, sessionID string) ([]string, error)
	SaveCompareList(ctx context.Context, sessionID string, slugs []string) error
	PopupDismissed(ctx context.Context, sessionID string) (bool, error)
	DismissPopup(ctx context.Context, sessionID string) error
}

const (
	compareTTL = 30 * 24 * time.Hour
	popupTTL   = 24 * time.Hour
)

// RedisStore keeps session state in Redis with TTLs so abandoned sessions
// expire on their own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient connects to Redis from a URL and verifies the connection.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func compareKey(sessionID string) string {
	return "compare:session:" + sessionID
}

func popupKey(sessionID string) string {
	return "popup:session:" + sessionID
}

func (s *RedisStore) CompareList(ctx context.Context, sessionID string) ([]string, error) {
	data, err := s.client.Get(ctx, compareKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var slugs []string
	if err := json.Unmarshal([]byte(data), &slugs); err != nil {
		// Unparseable state is treated as empty, not as an error.
		return nil, nil
	}
	return slugs, nil
}

func (s *RedisStore) SaveCompareList(ctx context.Context, sessionID string, slugs []string) error {
	data, err := json.Marshal(slugs)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, compareKey(sessionID), data, compareTTL).Err()
}

func (s *RedisStore) PopupDismissed(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.client.Get(ctx, popupKey(sessionID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) DismissPopup(ctx context.Context, sessionID string) error {
	return s.client.Set(ctx, popupKey(sessionID), "1", popupTTL).Err()
}

// MemoryStore backs redis-less development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	compare map[string][]string
	popups  map[string]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		compare: make(map[string][]string),
		popups:  make(map[string]bool),
	}
}

func (s *MemoryStore) CompareList(_ context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slugs := s.compare[sessionID]
	out := make([]string, len(slugs))
	copy(out, slugs)
	return out, nil
}

func (s *MemoryStore) SaveCompareList(_ context.Context, sessionID string, slugs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]string, len(slugs))
	copy(stored, slugs)
	s.compare[sessionID] = stored
	return nil
}

func (s *MemoryStore) PopupDismissed(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.popups[sessionID], nil
}

func (s *MemoryStore) DismissPopup(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.popups[sessionID] = true
	return nil
}
