package ledger

import "sync"

// Manager 按用户维护账本实例
// 账本生命周期与认证会话绑定：首次访问时创建，登出时释放并清除缓存总额
type Manager struct {
	store Store
	cache TotalCache

	mu      sync.Mutex
	ledgers map[uint]*Ledger
}

// NewManager 创建账本管理器
func NewManager(store Store, cache TotalCache) *Manager {
	return &Manager{
		store:   store,
		cache:   cache,
		ledgers: make(map[uint]*Ledger),
	}
}

// ForUser 获取（必要时创建）指定用户的账本
func (m *Manager) ForUser(userID uint) *Ledger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.ledgers[userID]; ok {
		return l
	}
	l := New(m.store, m.cache, userID)
	m.ledgers[userID] = l
	return l
}

// Release 释放指定用户的账本并清除其缓存总额（登出时调用）
func (m *Manager) Release(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.ledgers[userID]; ok {
		m.cache.ClearTotal(l.sessionKey())
		delete(m.ledgers, userID)
	}
}

// ClearCachedTotal 仅清除指定用户的缓存总额（用户主动“清除数据”）
func (m *Manager) ClearCachedTotal(userID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if l, ok := m.ledgers[userID]; ok {
		m.cache.ClearTotal(l.sessionKey())
		return
	}
	// 账本尚未创建时直接按会话键清除
	m.cache.ClearTotal(New(m.store, m.cache, userID).sessionKey())
}
