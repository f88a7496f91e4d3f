package investigation

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "investigation:"
	redisIndexKey  = "investigations"
)

// RedisOptions configures the Redis connection for a shared investigation
// store.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// RedisStore implements Store using go-redis/v9. Investigations are stored
// as JSON values under "investigation:<id>" with a set index of known IDs,
// so multiple workbench processes can share one session store.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store and verifies connectivity.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}

	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Save writes the investigation as JSON and records its ID in the index.
func (s *RedisStore) Save(ctx context.Context, inv *Investigation) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to marshal investigation: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+inv.ID, data, 0)
	pipe.SAdd(ctx, redisIndexKey, inv.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save investigation: %w", err)
	}
	return nil
}

// Get retrieves and unmarshals an investigation by ID.
func (s *RedisStore) Get(ctx context.Context, id string) (*Investigation, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investigation: %w", err)
	}

	var inv Investigation
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal investigation: %w", err)
	}
	return &inv, nil
}

// List returns all stored investigations ordered by creation time.
func (s *RedisStore) List(ctx context.Context) ([]*Investigation, error) {
	ids, err := s.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list investigations: %w", err)
	}

	out := make([]*Investigation, 0, len(ids))
	for _, id := range ids {
		inv, err := s.Get(ctx, id)
		if err == ErrNotFound {
			// Index entry without a value: another process deleted the
			// session between SMembers and Get.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete removes an investigation and its index entry.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, redisKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete investigation: %w", err)
	}
	if err := s.client.SRem(ctx, redisIndexKey, id).Err(); err != nil {
		return fmt.Errorf("failed to remove investigation from index: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
