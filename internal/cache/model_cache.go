package cache

import (
	"adaptivequiz/internal/model"
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// ModelCache keeps the trained difficulty predictor in Redis
type ModelCache interface {
	Load(ctx context.Context) (*model.DifficultyModel, error)
	Save(ctx context.Context, m *model.DifficultyModel) error
	Clear(ctx context.Context) error
}

type modelCache struct {
	client *redis.Client
	prefix string
}

// NewModelCache creates a model cache. Keys are namespaced by prefix.
func NewModelCache(client *redis.Client, prefix string) ModelCache {
	if prefix == "" {
		prefix = "quiz"
	}
	return &modelCache{
		client: client,
		prefix: prefix,
	}
}

func (c *modelCache) key() string {
	return c.prefix + ":predictor:model"
}

func (c *modelCache) Load(ctx context.Context) (*model.DifficultyModel, error) {
	data, err := c.client.Get(ctx, c.key()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var m model.DifficultyModel
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save stores the model without expiry
func (c *modelCache) Save(ctx context.Context, m *model.DifficultyModel) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(), data, 0).Err()
}

func (c *modelCache) Clear(ctx context.Context) error {
	return c.client.Del(ctx, c.key()).Err()
}
