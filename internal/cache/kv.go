package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV 缓存后端抽象
// 生产环境用 Redis 实现，开发与测试用内存实现
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	FlushAll(ctx context.Context) error
}

// RedisKV Redis 实现
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV 创建 Redis KV
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Get 读取键值
func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set 写入键值并设置过期时间
func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Incr 自增计数
func (r *RedisKV) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

// FlushAll 清空缓存库
func (r *RedisKV) FlushAll(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err()
}

// MemoryKV 内存实现，带过期时间
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// 测试可替换时钟
	now func() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // 零值表示不过期
}

// NewMemoryKV 创建内存 KV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get 读取键值，惰性剔除过期条目
func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

// Set 写入键值并设置过期时间
func (m *MemoryKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

// Incr 自增计数
func (m *MemoryKV) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	if e, ok := m.entries[key]; ok {
		parsed, err := strconv.ParseInt(e.value, 10, 64)
		if err == nil {
			n = parsed
		}
	}
	n++
	m.entries[key] = memoryEntry{value: strconv.FormatInt(n, 10)}
	return n, nil
}

// FlushAll 清空缓存库
func (m *MemoryKV) FlushAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
	return nil
}
