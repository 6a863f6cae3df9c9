package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ==================== Redis 实现 ====================

// RedisStore Redis 凭据存储
// 凭据跨进程重启仍然有效，多实例部署时共享会话
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 连接 Redis 并创建存储
// url 形如 redis://localhost:6379/0
func NewRedisStore(url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis 地址解析失败: %v", err)
	}

	client := redis.NewClient(opts)

	// 启动时探活，连不上直接报错而不是等第一次登录才暴露
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %v", err)
	}

	if prefix == "" {
		prefix = "buysini:sess:"
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) redisKey(sid, key string) string {
	return s.prefix + sid + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, sid, key string) (string, error) {
	val, err := s.client.Get(ctx, s.redisKey(sid, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, sid, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.redisKey(sid, key), value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		redisKeys = append(redisKeys, s.redisKey(sid, key))
	}
	return s.client.Del(ctx, redisKeys...).Err()
}

// Close 关闭连接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
