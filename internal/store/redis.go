package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRecord struct {
	ShortCode string    `json:"short_code"`
	LongURL   string    `json:"long_url"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStore is a Redis implementation of Store. Each mapping is a JSON
// record under "url:<code>", written with SETNX so a code is never
// overwritten once claimed.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore creates a new Redis-backed URL store. Every operation is
// bounded by the given timeout.
func NewRedisStore(client *redis.Client, timeout time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  "url:",
		timeout: timeout,
	}
}

func (r *RedisStore) Put(ctx context.Context, code, longURL string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	payload, err := json.Marshal(redisRecord{
		ShortCode: code,
		LongURL:   longURL,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	set, err := r.client.SetNX(ctx, r.prefix+code, payload, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if set {
		return nil
	}

	stored, err := r.get(ctx, code)
	if err != nil {
		return err
	}

	if stored != longURL {
		return ErrCodeTaken
	}

	return nil
}

func (r *RedisStore) Get(ctx context.Context, code string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.get(ctx, code)
}

func (r *RedisStore) get(ctx context.Context, code string) (string, error) {
	payload, err := r.client.Get(ctx, r.prefix+code).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}

		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var record redisRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return "", err
	}

	return record.LongURL, nil
}

func (r *RedisStore) Exists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	count, err := r.client.Exists(ctx, r.prefix+code).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return count > 0, nil
}

// Ping checks Redis connectivity.
func (r *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}
