package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so several portal instances can share
// them. Expiry is delegated to Redis key TTLs.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (int64, error) {
	userID, err := s.Client.Get(ctx, redisKeyPrefix+id).Int64()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	return userID, err
}

func (s *RedisStore) Set(ctx context.Context, id string, userID int64, ttl time.Duration) error {
	return s.Client.Set(ctx, redisKeyPrefix+id, userID, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, redisKeyPrefix+id).Err()
}
