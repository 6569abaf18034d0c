package ledger

import (
	"sync"
	"time"
)

// MemoryTotalCache 进程内会话总额缓存，带 TTL
// 会话级、非权威数据：登出或用户主动清除数据时被清空
type MemoryTotalCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]totalEntry
}

type totalEntry struct {
	total     float64
	expiresAt time.Time
}

// NewMemoryTotalCache 创建会话总额缓存
func NewMemoryTotalCache(ttl time.Duration) *MemoryTotalCache {
	return &MemoryTotalCache{
		ttl:   ttl,
		items: make(map[string]totalEntry),
	}
}

// GetTotal 读取缓存的总额，不存在或已过期返回 false
func (c *MemoryTotalCache) GetTotal(sessionKey string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[sessionKey]
	if !ok {
		return 0, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.items, sessionKey)
		return 0, false
	}
	return entry.total, true
}

// SetTotal 写入总额并刷新过期时间
func (c *MemoryTotalCache) SetTotal(sessionKey string, total float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[sessionKey] = totalEntry{
		total:     total,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// ClearTotal 清除指定会话的总额（登出 / 清除数据）
func (c *MemoryTotalCache) ClearTotal(sessionKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, sessionKey)
}
