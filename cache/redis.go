// file: cache/redis.go

package cache

import (
	"context"
	"errors"
	"fmt"
	"livelib-api/logger"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProvider implements Provider on top of a go-redis client. It is
// stateless; all consistency comes from Redis' per-key atomicity.
type RedisProvider struct {
	client *redis.Client
}

func NewRedisProvider(client *redis.Client) *RedisProvider {
	return &RedisProvider{client: client}
}

func (p *RedisProvider) GetString(ctx context.Context, key string) (string, error) {
	val, err := p.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		logger.Log.WithError(err).WithField("key", key).Error("Redis GET failed")
		return "", fmt.Errorf("%w: get %q: %v", ErrUnavailable, key, err)
	}
	return val, nil
}

func (p *RedisProvider) SetString(ctx context.Context, key, value string, expiry time.Duration) error {
	if err := p.client.Set(ctx, key, value, expiry).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Redis SET failed")
		return fmt.Errorf("%w: set %q: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (p *RedisProvider) GetBytes(ctx context.Context, key string) ([]byte, error) {
	val, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logger.Log.WithError(err).WithField("key", key).Error("Redis GET failed")
		return nil, fmt.Errorf("%w: get %q: %v", ErrUnavailable, key, err)
	}
	return val, nil
}

func (p *RedisProvider) SetBytes(ctx context.Context, key string, value []byte, expiry time.Duration) error {
	if err := p.client.Set(ctx, key, value, expiry).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Redis SET failed")
		return fmt.Errorf("%w: set %q: %v", ErrUnavailable, key, err)
	}
	return nil
}

func (p *RedisProvider) AddToSet(ctx context.Context, setKey, value string, expiry time.Duration) error {
	if err := p.client.SAdd(ctx, setKey, value).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", setKey).Error("Redis SADD failed")
		return fmt.Errorf("%w: sadd %q: %v", ErrUnavailable, setKey, err)
	}
	if expiry > 0 {
		if err := p.client.Expire(ctx, setKey, expiry).Err(); err != nil {
			logger.Log.WithError(err).WithField("key", setKey).Error("Redis EXPIRE failed")
			return fmt.Errorf("%w: expire %q: %v", ErrUnavailable, setKey, err)
		}
	}
	return nil
}

func (p *RedisProvider) GetSet(ctx context.Context, setKey string) ([]string, error) {
	members, err := p.client.SMembers(ctx, setKey).Result()
	if err != nil {
		logger.Log.WithError(err).WithField("key", setKey).Error("Redis SMEMBERS failed")
		return nil, fmt.Errorf("%w: smembers %q: %v", ErrUnavailable, setKey, err)
	}
	return members, nil
}

func (p *RedisProvider) RemoveFromSet(ctx context.Context, setKey, value string) error {
	if err := p.client.SRem(ctx, setKey, value).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", setKey).Error("Redis SREM failed")
		return fmt.Errorf("%w: srem %q: %v", ErrUnavailable, setKey, err)
	}
	return nil
}

func (p *RedisProvider) Remove(ctx context.Context, key string) error {
	if err := p.client.Del(ctx, key).Err(); err != nil {
		logger.Log.WithError(err).WithField("key", key).Error("Redis DEL failed")
		return fmt.Errorf("%w: del %q: %v", ErrUnavailable, key, err)
	}
	return nil
}
