package cache

import (
	"adaptivequiz/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache caches a user's result history in front of the result store
type ResultCache interface {
	GetUserResults(ctx context.Context, userID string) ([]*model.Result, error)
	SetUserResults(ctx context.Context, userID string, results []*model.Result) error
	Invalidate(ctx context.Context, userID string) error
}

type resultCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewResultCache creates a new result cache
func NewResultCache(client *redis.Client, prefix string, ttl time.Duration) ResultCache {
	if prefix == "" {
		prefix = "quiz"
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &resultCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *resultCache) key(userID string) string {
	return fmt.Sprintf("%s:user:%s:results", c.prefix, userID)
}

// GetUserResults returns nil, nil on a miss
func (c *resultCache) GetUserResults(ctx context.Context, userID string) ([]*model.Result, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	results := []*model.Result{}
	if err := json.Unmarshal([]byte(data), &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *resultCache) SetUserResults(ctx context.Context, userID string, results []*model.Result) error {
	if results == nil {
		results = []*model.Result{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

func (c *resultCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}
