package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/sirupsen/logrus"
)

// CacheEntry represents a cached item with expiration
type CacheEntry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// IsExpired checks if the cache entry has expired
func (ce *CacheEntry) IsExpired(now time.Time) bool {
	return now.After(ce.ExpiresAt)
}

// CacheService is an in-memory TTL cache with bounded size.
// Expired entries are removed by CleanupExpired, which the cache cleanup job calls.
type CacheService struct {
	cache      map[string]*CacheEntry
	mutex      sync.RWMutex
	defaultTTL time.Duration
	maxSize    int
	now        func() time.Time
}

// NewCacheService creates a cache service with custom configuration
func NewCacheService(defaultTTL time.Duration, maxSize int) *CacheService {
	return &CacheService{
		cache:      make(map[string]*CacheEntry),
		defaultTTL: defaultTTL,
		maxSize:    maxSize,
		now:        time.Now,
	}
}

// Get retrieves a value from cache
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	entry, exists := cs.cache[key]
	if !exists || entry.IsExpired(cs.now()) {
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value in cache with default TTL
func (cs *CacheService) Set(key string, value interface{}) {
	cs.SetWithTTL(key, value, cs.defaultTTL)
}

// SetWithTTL stores a value in cache with custom TTL
func (cs *CacheService) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	if _, exists := cs.cache[key]; !exists && len(cs.cache) >= cs.maxSize {
		cs.evictOldest()
	}

	cs.cache[key] = &CacheEntry{
		Data:      value,
		ExpiresAt: cs.now().Add(ttl),
	}
}

// evictOldest removes the entry closest to expiry
func (cs *CacheService) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range cs.cache {
		if oldestKey == "" || entry.ExpiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(cs.cache, oldestKey)
	}
}

// Delete removes a value from cache
func (cs *CacheService) Delete(key string) {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	delete(cs.cache, key)
}

// Clear removes all values from cache
func (cs *CacheService) Clear() {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	cs.cache = make(map[string]*CacheEntry)
}

// Size returns the number of items in cache
func (cs *CacheService) Size() int {
	cs.mutex.RLock()
	defer cs.mutex.RUnlock()

	return len(cs.cache)
}

// CleanupExpired removes expired entries and returns how many were removed
func (cs *CacheService) CleanupExpired() int {
	cs.mutex.Lock()
	defer cs.mutex.Unlock()

	now := cs.now()
	removed := 0
	for key, entry := range cs.cache {
		if entry.IsExpired(now) {
			delete(cs.cache, key)
			removed++
		}
	}
	return removed
}

// CachedDashboardService wraps DashboardService with caching keyed by dataset
// revision, so a wholesale dataset replacement never serves stale views.
type CachedDashboardService struct {
	dashboard *DashboardService
	cache     *CacheService
}

// NewCachedDashboardService creates a new cached dashboard service
func NewCachedDashboardService(dashboard *DashboardService, cache *CacheService) *CachedDashboardService {
	return &CachedDashboardService{
		dashboard: dashboard,
		cache:     cache,
	}
}

// Evaluate returns the dashboard view for req, using cache when possible
func (cds *CachedDashboardService) Evaluate(ctx context.Context, req EvaluateRequest) (*DashboardView, error) {
	snapshot := cds.dashboard.Store().Snapshot()
	cacheKey := fmt.Sprintf("view:%s:%d:%q:%s:%s",
		snapshot.Revision, cds.dashboard.CurrentYear(), req.Search, req.Field, req.Direction)

	if cached, found := cds.cache.Get(cacheKey); found {
		if view, ok := cached.(*DashboardView); ok {
			cds.dashboard.metrics.IncrementCounter("cache_hits")
			return view, nil
		}
	}

	view, err := cds.dashboard.evaluateSnapshot(ctx, snapshot, req)
	if err != nil {
		return nil, err
	}

	cds.dashboard.metrics.IncrementCounter("cache_misses")
	cds.cache.Set(cacheKey, view)
	return view, nil
}

// Suggestions returns autocomplete entries, using cache when possible
func (cds *CachedDashboardService) Suggestions(raw string) []models.Suggestion {
	snapshot := cds.dashboard.Store().Snapshot()
	cacheKey := fmt.Sprintf("suggest:%s:%d:%q", snapshot.Revision, cds.dashboard.CurrentYear(), raw)

	if cached, found := cds.cache.Get(cacheKey); found {
		if suggestions, ok := cached.([]models.Suggestion); ok {
			return suggestions
		}
	}

	suggestions := GenerateSuggestions(raw, snapshot.Records, cds.dashboard.now())
	cds.cache.Set(cacheKey, suggestions)
	return suggestions
}

// ReplaceDataset installs a new collection and drops every cached view
func (cds *CachedDashboardService) ReplaceDataset(records []models.IPORecord, source string) error {
	if err := cds.dashboard.ReplaceDataset(records, source); err != nil {
		return err
	}
	cds.InvalidateAll()
	return nil
}

// InvalidateAll removes all cached views
func (cds *CachedDashboardService) InvalidateAll() {
	cds.cache.Clear()
	logrus.WithField("component", "CachedDashboardService").Debug("Dashboard cache cleared")
}

// Dashboard returns the wrapped service
func (cds *CachedDashboardService) Dashboard() *DashboardService {
	return cds.dashboard
}

// GetCacheStats returns cache statistics
func (cds *CachedDashboardService) GetCacheStats() map[string]interface{} {
	return map[string]interface{}{
		"size": cds.cache.Size(),
		"type": "in-memory",
	}
}
