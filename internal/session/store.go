package session

import (
	"context"
	"errors"
	"time"

	"buysini_admin_202601/pkg/utils"
)

// ErrKeyNotFound 键不存在（或已过期）
var ErrKeyNotFound = errors.New("session: key not found")

// ==================== Store 凭据存储接口 ====================

// Store 按会话隔离的 key-value 凭据存储
// 两个实现：memoryStore（进程内，对应会话级存储）
// 和 RedisStore（跨重启持久，对应持久级存储）
type Store interface {
	Get(ctx context.Context, sid, key string) (string, error)
	Set(ctx context.Context, sid, key, value string, ttl time.Duration) error
	// Delete 删除指定键，键不存在不算错误
	Delete(ctx context.Context, sid string, keys ...string) error
}

// ==================== 内存实现 ====================

type memoryStore struct {
	cache *utils.TTLCache
}

// NewMemoryStore 创建进程内凭据存储
func NewMemoryStore(defaultTTL time.Duration) Store {
	return &memoryStore{
		cache: utils.NewTTLCache(defaultTTL),
	}
}

func compositeKey(sid, key string) string {
	return sid + "/" + key
}

func (s *memoryStore) Get(_ context.Context, sid, key string) (string, error) {
	val, ok := s.cache.Get(compositeKey(sid, key))
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (s *memoryStore) Set(_ context.Context, sid, key, value string, ttl time.Duration) error {
	if ttl > 0 {
		s.cache.SetWithTTL(compositeKey(sid, key), value, ttl)
	} else {
		s.cache.Set(compositeKey(sid, key), value)
	}
	return nil
}

func (s *memoryStore) Delete(_ context.Context, sid string, keys ...string) error {
	for _, key := range keys {
		s.cache.Delete(compositeKey(sid, key))
	}
	return nil
}

// Sweep 清理过期条目（定时任务调用）
func (s *memoryStore) Sweep() int {
	return s.cache.Sweep()
}
