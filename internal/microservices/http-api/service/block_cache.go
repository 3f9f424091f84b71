package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"commenthub/internal/microservices/http-api/dto"
)

// BlockCache caches the published block list of a region. A miss is
// (nil, false, nil); cache errors are reported so the service can fall
// through to the database.
type BlockCache interface {
	Get(ctx context.Context, regionAlias string) ([]dto.BlockResponse, bool, error)
	Set(ctx context.Context, regionAlias string, blocks []dto.BlockResponse) error
	Invalidate(ctx context.Context, regionAlias string) error
}

type redisBlockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBlockCache connects to redis and returns a block cache
func NewRedisBlockCache(redisURL string, ttl time.Duration) (BlockCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisBlockCache{client: rdb, ttl: ttl}, nil
}

func blockCacheKey(regionAlias string) string {
	return fmt.Sprintf("blocks:region:%s", regionAlias)
}

func (c *redisBlockCache) Get(ctx context.Context, regionAlias string) ([]dto.BlockResponse, bool, error) {
	raw, err := c.client.Get(ctx, blockCacheKey(regionAlias)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var blocks []dto.BlockResponse
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, false, err
	}
	return blocks, true, nil
}

func (c *redisBlockCache) Set(ctx context.Context, regionAlias string, blocks []dto.BlockResponse) error {
	raw, err := json.Marshal(blocks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, blockCacheKey(regionAlias), raw, c.ttl).Err()
}

func (c *redisBlockCache) Invalidate(ctx context.Context, regionAlias string) error {
	return c.client.Del(ctx, blockCacheKey(regionAlias)).Err()
}
