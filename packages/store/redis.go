package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultRedisPrefix namespaces every key written to Redis.
const DefaultRedisPrefix = "respvars:"

const (
	redisScanCount    = 100
	redisWriteTimeout = 2 * time.Second
)

// RedisConfig holds the connection settings for a Redis store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient is the subset of the go-redis client used by the store.
type RedisClient interface {
	redis.Cmdable
	Close() error
}

// Redis persists entries as JSON strings under a key prefix.
type Redis struct {
	client RedisClient
	prefix string
}

// RedisOption is a functional option for configuring a Redis store.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix. An empty prefix is ignored.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

func NewRedis(cfg RedisConfig, opts ...RedisOption) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisWithClient(client, opts...)
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client RedisClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client: client,
		prefix: DefaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Get(ctx context.Context, key string) (any, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}

	value, err := decodeValue(raw)
	if err != nil {
		return nil, false, fmt.Errorf("key %q: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, redisWriteTimeout)
	defer cancel()
	if err := r.client.Set(ctx, r.prefix+key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (r *Redis) All(ctx context.Context) ([]Entry, error) {
	keys, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(keys))
	if len(keys) == 0 {
		return entries, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// removed between SCAN and MGET
			continue
		}
		key := strings.TrimPrefix(keys[i], r.prefix)
		value, err := decodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

func (r *Redis) Clear(ctx context.Context) error {
	keys, err := r.scan(ctx)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("error deleting keys: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// scan returns every prefixed key, still carrying the prefix.
func (r *Redis) scan(ctx context.Context) ([]string, error) {
	var (
		all    []string
		cursor uint64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", redisScanCount).Result()
		if err != nil {
			return nil, fmt.Errorf("error scanning keys: %w", err)
		}
		all = append(all, keys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(all)
	return all, nil
}
