package services

import (
	"fmt"
	"testing"
	"time"

	"instructly_go_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTopic(content string) *models.Topic {
	return &models.Topic{
		ID:             uuid.New(),
		Content:        content,
		Classification: models.ClassificationFacts,
		GeneratedAt:    time.Now(),
	}
}

func TestTopicCacheGetSet(t *testing.T) {
	cache := NewInMemoryTopicCache(24*time.Hour, 50)

	_, ok := cache.Get("Python syntax", models.AnalysisTypeInstructionalDesign)
	assert.False(t, ok)

	topic := newTestTopic("Python syntax")
	cache.Set("Python syntax", models.AnalysisTypeInstructionalDesign, topic)

	got, ok := cache.Get("Python syntax", models.AnalysisTypeInstructionalDesign)
	require.True(t, ok)
	assert.Equal(t, topic.ID, got.ID)

	t.Run("Analysis type is part of the key", func(t *testing.T) {
		_, ok := cache.Get("Python syntax", models.AnalysisTypeBloomTaxonomy)
		assert.False(t, ok)
	})
}

func TestTopicCacheTTLExpiry(t *testing.T) {
	cache := NewInMemoryTopicCache(24*time.Hour, 50)

	now := time.Now()
	cache.now = func() time.Time { return now }
	cache.Set("topic", models.AnalysisTypeInstructionalDesign, newTestTopic("topic"))

	// Just inside the TTL
	cache.now = func() time.Time { return now.Add(24 * time.Hour) }
	_, ok := cache.Get("topic", models.AnalysisTypeInstructionalDesign)
	assert.True(t, ok)

	// Past the TTL the entry is evicted on read
	cache.now = func() time.Time { return now.Add(24*time.Hour + time.Second) }
	_, ok = cache.Get("topic", models.AnalysisTypeInstructionalDesign)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestTopicCacheCapacityEviction(t *testing.T) {
	cache := NewInMemoryTopicCache(24*time.Hour, 3)

	base := time.Now()
	for i := 0; i < 3; i++ {
		tick := base.Add(time.Duration(i) * time.Second)
		cache.now = func() time.Time { return tick }
		content := fmt.Sprintf("topic-%d", i)
		cache.Set(content, models.AnalysisTypeInstructionalDesign, newTestTopic(content))
	}
	assert.Equal(t, 3, cache.Len())

	// Adding a fourth entry evicts the oldest
	tick := base.Add(10 * time.Second)
	cache.now = func() time.Time { return tick }
	cache.Set("topic-3", models.AnalysisTypeInstructionalDesign, newTestTopic("topic-3"))

	assert.Equal(t, 3, cache.Len())
	_, ok := cache.Get("topic-0", models.AnalysisTypeInstructionalDesign)
	assert.False(t, ok)
	_, ok = cache.Get("topic-3", models.AnalysisTypeInstructionalDesign)
	assert.True(t, ok)
}

func TestTopicCacheOverwriteDoesNotEvict(t *testing.T) {
	cache := NewInMemoryTopicCache(24*time.Hour, 2)

	cache.Set("a", models.AnalysisTypeInstructionalDesign, newTestTopic("a"))
	cache.Set("b", models.AnalysisTypeInstructionalDesign, newTestTopic("b"))
	cache.Set("a", models.AnalysisTypeInstructionalDesign, newTestTopic("a"))

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("b", models.AnalysisTypeInstructionalDesign)
	assert.True(t, ok)
}
