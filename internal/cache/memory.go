package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryItem struct {
	data     []byte
	expireAt time.Time
	storedAt time.Time
}

// MemoryCache implements Service in process. Values round-trip through JSON
// so callers observe the same semantics as with Redis.
type MemoryCache struct {
	mu      sync.Mutex
	data    map[string]memoryItem
	maxSize int
	now     func() time.Time
}

func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{MaxSize: 1000, Now: time.Now}
	for _, opt := range opts {
		opt(cfg)
	}
	return &MemoryCache{
		data:    make(map[string]memoryItem),
		maxSize: cfg.MaxSize,
		now:     cfg.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string, dest any) error {
	m.mu.Lock()
	item, ok := m.data[key]
	if ok && !item.expireAt.IsZero() && m.now().After(item.expireAt) {
		delete(m.data, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(item.data, dest)
}

func (m *MemoryCache) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.data[key]; !exists && m.maxSize > 0 && len(m.data) >= m.maxSize {
		m.evictOldest()
	}

	item := memoryItem{data: data, storedAt: now}
	if expiration > 0 {
		item.expireAt = now.Add(expiration)
	}
	m.data[key] = item
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *MemoryCache) Close() error {
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, item := range m.data {
		if oldestKey == "" || item.storedAt.Before(oldest) {
			oldestKey, oldest = k, item.storedAt
		}
	}
	delete(m.data, oldestKey)
}
