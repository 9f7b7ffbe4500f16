// Package cache keeps rendered catalog pages keyed by their canonical filter
// query. Malformed parameters never reach the key.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront-filters/models"
)

const TTL = 5 * time.Minute

type PageCache interface {
	Get(ctx context.Context, key string) (*models.CatalogPage, bool)
	Set(ctx context.Context, key string, page *models.CatalogPage)
	Invalidate(ctx context.Context)
}

// PageKey builds the cache key for one page of a canonical filter query.
func PageKey(query string, page, limit int) string {
	return fmt.Sprintf("catalog:page:%s:%d:%d", query, page, limit)
}

// ── In-process cache ─────────────────────────────────────────────────────────

type pageEntry struct {
	page      *models.CatalogPage
	fetchedAt time.Time
}

type MemoryPageCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]pageEntry
	now     func() time.Time
}

func NewMemoryPageCache(ttl time.Duration) *MemoryPageCache {
	if ttl <= 0 {
		ttl = TTL
	}
	return &MemoryPageCache{ttl: ttl, entries: map[string]pageEntry{}, now: time.Now}
}

func (m *MemoryPageCache) Get(_ context.Context, key string) (*models.CatalogPage, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if ok && m.now().Sub(e.fetchedAt) < m.ttl {
		return e.page, true
	}
	return nil, false
}

func (m *MemoryPageCache) Set(_ context.Context, key string, page *models.CatalogPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = pageEntry{page: page, fetchedAt: m.now()}
}

// Invalidate drops every page (call on any product create/update/delete).
func (m *MemoryPageCache) Invalidate(_ context.Context) {
	m.mu.Lock()
	m.entries = map[string]pageEntry{}
	m.mu.Unlock()
}
