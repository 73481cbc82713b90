package internal

import (
	"context"
	"fmt"
	"time"

	"frisbee/config"
	"frisbee/services"

	"github.com/redis/go-redis/v9"
)

// RedisSessions backs session stores with Redis so checkout deduplication
// survives process restarts and works across replicas. Expiry is native key
// TTL; reads of expired keys simply miss, which matches the lazy-invalidation
// contract of the memory store.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(conf *config.Config) (*RedisSessions, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %v", err)
	}

	return &RedisSessions{client: client}, nil
}

func (r *RedisSessions) ForSession(id string) services.SessionStore {
	return &redisStore{
		client: r.client,
		prefix: fmt.Sprintf("session:%s:", id),
	}
}

type redisStore struct {
	client *redis.Client
	prefix string
}

func (s *redisStore) Has(ctx context.Context, key string) bool {
	count, err := s.client.Exists(ctx, s.prefix+key).Result()
	return err == nil && count > 0
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		// redis.Nil and transport errors both read as a miss
		return "", false
	}
	return value, true
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, value, ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
