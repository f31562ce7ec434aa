package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDiscovery(t *testing.T) (*DiscoveryService, *ProfileStore) {
	t.Helper()

	store := newTestStore(t)
	pc := newTestClassifier()
	ds := NewDiscoveryService(store, pc, pc.logger)
	ds.now = func() time.Time {
		return time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	}
	return ds, store
}

func TestDiscoveryService_EmptyProfileUsesDefaults(t *testing.T) {
	ds, _ := newTestDiscovery(t)

	queries := ds.GenerateQueries()

	assert.Equal(t, defaultQueries, queries)
}

func TestDiscoveryService_PreferredTopicsBeforeAnyLearning(t *testing.T) {
	ds, store := newTestDiscovery(t)
	store.SetPreferredTopics([]string{"woodworking", "astronomy"})

	queries := ds.GenerateQueries()

	assert.Equal(t, []string{"astronomy", "woodworking"}, queries)
}

func TestDiscoveryService_LearnedProfile(t *testing.T) {
	ds, store := newTestDiscovery(t)
	store.Update(func(b *UserBrain) {
		b.TotalInteractions = 60
		b.Core.Topics["woodworking"] = 0.9
		b.Core.Topics["joinery"] = 0.6
		b.Evening.Topics["ambient"] = 0.8
	})

	queries := ds.GenerateQueries()

	require.NotEmpty(t, queries)
	assert.LessOrEqual(t, len(queries), maxDiscoveryQueries)

	assert.Contains(t, queries, "woodworking")
	assert.Contains(t, queries, "joinery")
	assert.Contains(t, queries, "woodworking joinery", "bridge between top interests")
	assert.Contains(t, queries, "ambient", "dominant topic of the current time bucket")

	// Exactly one exploration query from the least-covered macro category
	essentials := 0
	for _, q := range queries {
		if len(q) > len(" essentials") && q[len(q)-len(" essentials"):] == " essentials" {
			essentials++
		}
	}
	assert.Equal(t, 1, essentials)

	// No duplicates
	seen := make(map[string]bool)
	for _, q := range queries {
		assert.False(t, seen[q], "duplicate query %q", q)
		seen[q] = true
	}
}

func TestDiscoveryService_PersonaAngle(t *testing.T) {
	ds, store := newTestDiscovery(t)
	store.Update(func(b *UserBrain) {
		b.TotalInteractions = 60
		b.Core.Topics["woodworking"] = 0.9
		b.Core.Complexity = 0.8 // scholar
	})

	queries := ds.GenerateQueries()

	assert.Contains(t, queries, "woodworking explained")
}

func TestDedupe(t *testing.T) {
	out := dedupe([]string{"a", "b", "a", " ", "c", "b"}, 2)
	assert.Equal(t, []string{"a", "b"}, out)
}
