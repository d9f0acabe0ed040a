package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"notable-server/internal/config"
	"notable-server/internal/domain"

	"github.com/go-redis/redis/v8"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(ctx context.Context, cfg config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

func listingKey(userID string) string {
	return "notes:" + userID
}

// Get treats any redis or decode failure as a miss so the listing falls
// back to the store.
func (c *RedisCache) Get(ctx context.Context, userID string) ([]*domain.Note, bool) {
	data, err := c.client.Get(ctx, listingKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get failed for user %s: %v", userID, err)
		}
		return nil, false
	}

	var notes []*domain.Note
	if err := json.Unmarshal(data, &notes); err != nil {
		log.Printf("cache decode failed for user %s: %v", userID, err)
		return nil, false
	}

	return notes, true
}

func (c *RedisCache) Set(ctx context.Context, userID string, notes []*domain.Note) {
	data, err := json.Marshal(notes)
	if err != nil {
		log.Printf("cache encode failed for user %s: %v", userID, err)
		return
	}

	if err := c.client.Set(ctx, listingKey(userID), data, c.ttl).Err(); err != nil {
		log.Printf("cache set failed for user %s: %v", userID, err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, listingKey(userID)).Err(); err != nil {
		log.Printf("cache invalidate failed for user %s: %v", userID, err)
	}
}
