package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key 前缀：cache:<hash> 存响应，hits:<hash> 存命中计数
const (
	cacheKeyPrefix = "cache:"
	hitsKeyPrefix  = "hits:"
)

// DeriveKey 从 (会话ID, prompt) 派生定长缓存键
// prompt 去除首尾空白后参与哈希，只差空白的 prompt 刻意共享同一键
func DeriveKey(sessionID, prompt string) string {
	raw := sessionID + ":" + strings.TrimSpace(prompt)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// CacheKey 响应存储键
func CacheKey(hash string) string {
	return cacheKeyPrefix + hash
}

// HitsKey 命中计数键
func HitsKey(hash string) string {
	return hitsKeyPrefix + hash
}
