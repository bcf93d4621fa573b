package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cart:{session_id} -> JSON cart document
const redisKeyCart = "cart:%s"

// RedisStore is the durable session cart store.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(redisKeyCart, sessionID)).Bytes()
	if err == redis.Nil {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("load cart: %w", err)
	}
	return decodeCart(ctx, sessionID, raw), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, fmt.Sprintf(redisKeyCart, sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, fmt.Sprintf(redisKeyCart, sessionID)).Err(); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
