package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per data class
const (
	TTLProfile  = 5 * time.Minute  // creator profiles
	TTLTools    = 2 * time.Minute  // tool catalog pages
	TTLPreviews = 30 * time.Second // message previews (refreshed on every write anyway)
	TTLSummary  = 30 * time.Second // notification summaries
	TTLDefault  = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixProfile  = "creator:"
	PrefixTools    = "tools:"
	PrefixPreviews = "previews:"
	PrefixSummary  = "summary:"
)

// Service is the Redis cache interface
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Creator profile cache
	GetProfile(ctx context.Context, userID string) ([]byte, error)
	SetProfile(ctx context.Context, userID string, data interface{}) error
	InvalidateProfile(ctx context.Context, userID string) error

	// Tool catalog cache
	GetTools(ctx context.Context, category string, page, limit int) ([]byte, error)
	SetTools(ctx context.Context, category string, page, limit int, data interface{}) error
	InvalidateTools(ctx context.Context) error

	// Message preview cache
	GetPreviews(ctx context.Context, userID string) ([]byte, error)
	SetPreviews(ctx context.Context, userID string, data interface{}) error
	InvalidatePreviews(ctx context.Context, userIDs ...string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, silently skip
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *redisCache) profileKey(userID string) string {
	return PrefixProfile + userID
}

func (c *redisCache) GetProfile(ctx context.Context, userID string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.profileKey(userID)).Bytes()
}

func (c *redisCache) SetProfile(ctx context.Context, userID string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.profileKey(userID), jsonData, TTLProfile).Err()
}

func (c *redisCache) InvalidateProfile(ctx context.Context, userID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.profileKey(userID)).Err()
}

func (c *redisCache) toolsKey(category string, page, limit int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("%s%s:%d:%d", PrefixTools, category, page, limit)
}

func (c *redisCache) GetTools(ctx context.Context, category string, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.toolsKey(category, page, limit)).Bytes()
}

func (c *redisCache) SetTools(ctx context.Context, category string, page, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.toolsKey(category, page, limit), jsonData, TTLTools).Err()
}

// InvalidateTools drops all cached tool pages. SCAN instead of KEYS to
// avoid blocking Redis on large keyspaces.
func (c *redisCache) InvalidateTools(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, PrefixTools+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) previewsKey(userID string) string {
	return PrefixPreviews + userID
}

func (c *redisCache) GetPreviews(ctx context.Context, userID string) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.previewsKey(userID)).Bytes()
}

func (c *redisCache) SetPreviews(ctx context.Context, userID string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.previewsKey(userID), jsonData, TTLPreviews).Err()
}

func (c *redisCache) InvalidatePreviews(ctx context.Context, userIDs ...string) error {
	if c.client == nil || len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = c.previewsKey(id)
	}
	return c.client.Del(ctx, keys...).Err()
}
