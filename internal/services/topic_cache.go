package services

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"instructly_go_backend/internal/metrics"
	"instructly_go_backend/internal/models"
)

type topicCacheEntry struct {
	topic     *models.Topic
	createdAt time.Time
}

// InMemoryTopicCache is a process-local cache of classified topics. Entries
// expire lazily after the TTL and the oldest entry is evicted once the cache
// grows past its capacity. A cache hit never reaches the model provider, so
// staleness only costs money, not correctness.
type InMemoryTopicCache struct {
	mu         sync.Mutex
	entries    map[string]topicCacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewInMemoryTopicCache(ttl time.Duration, maxEntries int) *InMemoryTopicCache {
	return &InMemoryTopicCache{
		entries:    make(map[string]topicCacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// cacheKey derives a stable key from the literal content and analysis type.
func cacheKey(content string, analysisType models.AnalysisType) string {
	h := sha256.Sum256([]byte(content + "::" + string(analysisType)))
	return hex.EncodeToString(h[:])
}

func (c *InMemoryTopicCache) Get(content string, analysisType models.AnalysisType) (*models.Topic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(content, analysisType)
	entry, ok := c.entries[key]
	if !ok {
		metrics.TopicCacheMisses.Inc()
		return nil, false
	}

	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		metrics.TopicCacheMisses.Inc()
		return nil, false
	}

	metrics.TopicCacheHits.Inc()
	return entry.topic, true
}

func (c *InMemoryTopicCache) Set(content string, analysisType models.AnalysisType, topic *models.Topic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(content, analysisType)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}

	c.entries[key] = topicCacheEntry{topic: topic, createdAt: c.now()}
	metrics.TopicCacheEntries.Set(float64(len(c.entries)))
}

func (c *InMemoryTopicCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *InMemoryTopicCache) evictOldestLocked() {
	var oldestKey string
	var oldestTime time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.createdAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.createdAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
