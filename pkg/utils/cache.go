package utils

import (
	"sync"
	"time"
)

// TTLCache 带过期时间的内存缓存
// 使用 sync.Map 保证并发安全，过期条目懒删除
type TTLCache struct {
	entries    sync.Map
	defaultTTL time.Duration
}

// cacheItem 内部结构，包含值和过期时间
type cacheItem struct {
	value      string
	expiration int64
}

// NewTTLCache 创建缓存实例
func NewTTLCache(defaultTTL time.Duration) *TTLCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &TTLCache{defaultTTL: defaultTTL}
}

// Set 设置缓存（使用默认过期时间）
func (c *TTLCache) Set(key, value string) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL 设置缓存并指定过期时间
func (c *TTLCache) SetWithTTL(key, value string, ttl time.Duration) {
	c.entries.Store(key, cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	})
}

// Get 获取缓存并验证是否过期
func (c *TTLCache) Get(key string) (string, bool) {
	val, ok := c.entries.Load(key)
	if !ok {
		return "", false
	}

	item := val.(cacheItem)

	// 检查是否过期
	if time.Now().UnixNano() > item.expiration {
		c.entries.Delete(key) // 懒删除
		return "", false
	}

	return item.value, true
}

// Delete 删除缓存 (用完即焚)
func (c *TTLCache) Delete(key string) {
	c.entries.Delete(key)
}

// Sweep 清理所有过期条目，返回清理数量
// 懒删除只在读取时触发，定时任务调用 Sweep 兜底
func (c *TTLCache) Sweep() int {
	now := time.Now().UnixNano()
	removed := 0
	c.entries.Range(func(key, val interface{}) bool {
		if now > val.(cacheItem).expiration {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
