// Package cache 实现按 (会话, prompt) 记忆化生成结果的响应缓存
// 缓存只是尽力而为：任何后端故障都降级为未命中，不向调用方传播
package cache

import (
	"context"
	"log"
	"strconv"
	"time"
)

// DefaultTTL 缓存条目默认过期时间
const DefaultTTL = 3600 * time.Second

// ResponseCache 响应缓存
type ResponseCache struct {
	kv         KV
	defaultTTL time.Duration
}

// NewResponseCache 创建响应缓存
// defaultTTL <= 0 时使用 DefaultTTL
func NewResponseCache(kv KV, defaultTTL time.Duration) *ResponseCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &ResponseCache{kv: kv, defaultTTL: defaultTTL}
}

// DefaultTTL 返回配置的默认过期时间
func (c *ResponseCache) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Get 查询缓存，返回 (内容, 是否命中)
// 命中时顺带自增 hits:<hash> 计数，计数失败不影响读取
func (c *ResponseCache) Get(ctx context.Context, sessionID, prompt string) (string, bool) {
	hash := DeriveKey(sessionID, prompt)

	val, ok, err := c.kv.Get(ctx, CacheKey(hash))
	if err != nil {
		log.Printf("Warning: cache get failed, treating as miss: %v", err)
		return "", false
	}
	if !ok {
		return "", false
	}

	if _, err := c.kv.Incr(ctx, HitsKey(hash)); err != nil {
		log.Printf("Warning: failed to increment hit counter: %v", err)
	}

	return val, true
}

// Set 写入缓存，无条件覆盖同键旧值
// ttl <= 0 时使用默认过期时间
func (c *ResponseCache) Set(ctx context.Context, sessionID, prompt, content string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	hash := DeriveKey(sessionID, prompt)
	return c.kv.Set(ctx, CacheKey(hash), content, ttl)
}

// Hits 读取某条目的命中计数，仅用于统计
func (c *ResponseCache) Hits(ctx context.Context, sessionID, prompt string) int64 {
	hash := DeriveKey(sessionID, prompt)
	val, ok, err := c.kv.Get(ctx, HitsKey(hash))
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ClearAll 清空全部缓存条目，不影响数据库中的历史
func (c *ResponseCache) ClearAll(ctx context.Context) error {
	return c.kv.FlushAll(ctx)
}
