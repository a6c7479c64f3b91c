package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dashboard/internal/domain/models"
)

// StoredSnapshot is the persisted form of a ready snapshot.
type StoredSnapshot struct {
	Records   []models.User `json:"records"`
	FetchedAt time.Time     `json:"fetchedAt"`
}

// SnapshotStore shares snapshots between service instances.
type SnapshotStore interface {
	Load(ctx context.Context) (StoredSnapshot, bool, error)
	Save(ctx context.Context, snap StoredSnapshot, ttl time.Duration) error
}

const snapshotKey = "users:snapshot"

// RedisStore keeps the latest snapshot as one JSON value with an expiry.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore stores under prefix + "users:snapshot".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, key: prefix + snapshotKey}
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Load(ctx context.Context) (StoredSnapshot, bool, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return StoredSnapshot{}, false, nil
	}
	if err != nil {
		return StoredSnapshot{}, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	var snap StoredSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return StoredSnapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

func (s *RedisStore) Save(ctx context.Context, snap StoredSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
