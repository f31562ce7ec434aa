package services

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/pkg/models"
)

func testLearningConfig() *config.LearningConfig {
	return &config.LearningConfig{
		ClickRate:               0.10,
		LikeRate:                0.30,
		WatchedRate:             0.15,
		SkipRate:                -0.15,
		DislikeRate:             -0.40,
		TimeBucketRatio:         1.5,
		TopicDecay:              0.97,
		TopicPruneBelow:         0.05,
		ChannelEMAFactor:        0.95,
		MaxConsecutiveSkip:      30,
		NotInterestedGlobalRate: -0.35,
		NotInterestedBucketRate: -0.25,
		NotInterestedChannelPeg: 0.05,
	}
}

func newTestLearningEngine(t *testing.T) (*LearningEngine, *ProfileStore) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	store := newTestStore(t)
	metrics := NewMetricsCollector(prometheus.NewRegistry())
	engine := NewLearningEngine(store, testLearningConfig(), metrics, logger)
	// Pin the clock to a morning hour so the bucket is deterministic
	engine.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	}
	return engine, store
}

func chessItem() models.VideoItem {
	return models.VideoItem{
		ID:              "v1",
		Title:           "Sicilian Defense Opening Theory",
		ChannelID:       "chess-ch",
		ChannelName:     "GothamChess",
		DurationSeconds: 900,
	}
}

func TestLearningEngine_PositiveInteractionGrowsProfile(t *testing.T) {
	engine, store := newTestLearningEngine(t)

	engine.ApplyInteraction(chessItem(), models.InteractionLike, 0)

	snap := store.Snapshot()
	assert.Greater(t, snap.Core.Topics["sicilian"], 0.0)
	assert.Greater(t, snap.Morning.Topics["sicilian"], snap.Core.Topics["sicilian"],
		"time bucket learns faster than the core vector")
	assert.Empty(t, snap.Night.Topics, "other buckets are untouched")
	assert.Equal(t, 1, snap.TotalInteractions)
}

func TestLearningEngine_WatchedScalesWithFraction(t *testing.T) {
	engineFull, storeFull := newTestLearningEngine(t)
	engineHalf, storeHalf := newTestLearningEngine(t)

	engineFull.ApplyInteraction(chessItem(), models.InteractionWatched, 1.0)
	engineHalf.ApplyInteraction(chessItem(), models.InteractionWatched, 0.5)

	full := storeFull.Snapshot().Core.Topics["sicilian"]
	half := storeHalf.Snapshot().Core.Topics["sicilian"]
	assert.Greater(t, full, half)
	assert.Greater(t, half, 0.0)
}

func TestLearningEngine_ChannelScoreEMA(t *testing.T) {
	engine, store := newTestLearningEngine(t)

	engine.ApplyInteraction(chessItem(), models.InteractionLike, 0)
	snap := store.Snapshot()
	// 0 * 0.95 + 1 * 0.05
	assert.InDelta(t, 0.05, snap.ChannelScores["chess-ch"], 1e-9)

	engine.ApplyInteraction(chessItem(), models.InteractionSkip, 0)
	snap = store.Snapshot()
	// 0.05 * 0.95 + 0 * 0.05
	assert.InDelta(t, 0.0475, snap.ChannelScores["chess-ch"], 1e-9)
}

func TestLearningEngine_SkipStreak(t *testing.T) {
	engine, store := newTestLearningEngine(t)

	for i := 0; i < 40; i++ {
		engine.ApplyInteraction(chessItem(), models.InteractionSkip, 0)
	}
	assert.Equal(t, 30, store.Snapshot().ConsecutiveSkips, "streak caps at the configured maximum")

	engine.ApplyInteraction(chessItem(), models.InteractionClick, 0)
	assert.Equal(t, 0, store.Snapshot().ConsecutiveSkips, "any positive signal resets the streak")
}

func TestLearningEngine_DislikeCountsTowardStreak(t *testing.T) {
	engine, store := newTestLearningEngine(t)

	engine.ApplyInteraction(chessItem(), models.InteractionDislike, 0)
	assert.Equal(t, 1, store.Snapshot().ConsecutiveSkips)
}

func TestLearningEngine_NegativeInteractionPushesAway(t *testing.T) {
	engine, store := newTestLearningEngine(t)

	engine.ApplyInteraction(chessItem(), models.InteractionLike, 0)
	before := store.Snapshot().Core.Topics["sicilian"]

	engine.ApplyInteraction(chessItem(), models.InteractionDislike, 0)
	after := store.Snapshot().Core.Topics["sicilian"]

	assert.Less(t, after, before)
}

func TestLearningEngine_MarkNotInterested(t *testing.T) {
	engine, store := newTestLearningEngine(t)

	// Build up some affinity first
	for i := 0; i < 5; i++ {
		engine.ApplyInteraction(chessItem(), models.InteractionLike, 0)
	}
	before := store.Snapshot()
	assert.Greater(t, before.ChannelScores["chess-ch"], 0.05)

	engine.MarkNotInterested(chessItem())

	snap := store.Snapshot()
	assert.Equal(t, 0.05, snap.ChannelScores["chess-ch"],
		"channel score is pegged, not averaged")
	assert.Less(t, snap.Core.Topics["sicilian"], before.Core.Topics["sicilian"])
	assert.Equal(t, before.TotalInteractions, snap.TotalInteractions,
		"not-interested is not an interaction event")
}

func TestLearningEngine_UnknownKindIgnored(t *testing.T) {
	engine, store := newTestLearningEngine(t)

	engine.ApplyInteraction(chessItem(), models.InteractionKind("hover"), 0)

	snap := store.Snapshot()
	assert.Empty(t, snap.Core.Topics)
	assert.Equal(t, 0, snap.TotalInteractions)
}
