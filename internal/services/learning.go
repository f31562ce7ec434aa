package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/internal/ml"
	"github.com/flowtv/flowfeed/pkg/models"
)

// LearningEngine folds interaction events into the profile. Every update
// runs under the store's exclusive lock and is persisted before the lock
// is released.
type LearningEngine struct {
	store   *ProfileStore
	config  *config.LearningConfig
	metrics *MetricsCollector
	logger  *logrus.Logger

	now func() time.Time
}

func NewLearningEngine(
	store *ProfileStore,
	cfg *config.LearningConfig,
	metrics *MetricsCollector,
	logger *logrus.Logger,
) *LearningEngine {
	return &LearningEngine{
		store:   store,
		config:  cfg,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// baseRate maps an interaction kind to its signed learning rate. The
// watched rate scales with the fraction of the item actually watched.
func (le *LearningEngine) baseRate(kind models.InteractionKind, percentWatched float64) float64 {
	switch kind {
	case models.InteractionClick:
		return le.config.ClickRate
	case models.InteractionLike:
		return le.config.LikeRate
	case models.InteractionWatched:
		return le.config.WatchedRate * ml.Clamp01(percentWatched)
	case models.InteractionSkip:
		return le.config.SkipRate
	case models.InteractionDislike:
		return le.config.DislikeRate
	default:
		return 0
	}
}

// ApplyInteraction updates the global vector, the current time-bucket
// vector (at TimeBucketRatio times the base rate), the channel outcome
// EMA, the skip streak and the interaction counter, then persists.
func (le *LearningEngine) ApplyInteraction(item models.VideoItem, kind models.InteractionKind, percentWatched float64) {
	rate := le.baseRate(kind, percentWatched)
	if rate == 0 && !kind.Valid() {
		le.logger.WithField("kind", kind).Warn("Ignoring unknown interaction kind")
		return
	}

	target := ml.ExtractFeatures(item)
	bucket := BucketForHour(le.now().Hour())

	le.store.Update(func(b *UserBrain) {
		ml.AdjustVector(&b.Core, target, rate, le.config.TopicDecay, le.config.TopicPruneBelow)
		ml.AdjustVector(b.Bucket(bucket), target, rate*le.config.TimeBucketRatio,
			le.config.TopicDecay, le.config.TopicPruneBelow)

		outcome := 0.0
		if rate > 0 {
			outcome = 1.0
		}
		old := b.ChannelScores[item.ChannelID]
		b.ChannelScores[item.ChannelID] = old*le.config.ChannelEMAFactor +
			outcome*(1-le.config.ChannelEMAFactor)

		if kind.Positive() {
			b.ConsecutiveSkips = 0
		} else if b.ConsecutiveSkips < le.config.MaxConsecutiveSkip {
			b.ConsecutiveSkips++
		}

		b.TotalInteractions++
	})

	le.metrics.RecordInteraction(string(kind))
	le.logger.WithFields(logrus.Fields{
		"item_id":     item.ID,
		"channel_id":  item.ChannelID,
		"kind":        kind,
		"rate":        rate,
		"time_bucket": bucket.String(),
	}).Debug("Applied interaction")
}

// MarkNotInterested is the one-shot "never show me this" signal. It pushes
// the profile away from the item harder than an ordinary skip and pegs the
// channel score to a fixed floor, bypassing the moving average.
func (le *LearningEngine) MarkNotInterested(item models.VideoItem) {
	target := ml.ExtractFeatures(item)
	bucket := BucketForHour(le.now().Hour())

	le.store.Update(func(b *UserBrain) {
		ml.AdjustVector(&b.Core, target, le.config.NotInterestedGlobalRate,
			le.config.TopicDecay, le.config.TopicPruneBelow)
		ml.AdjustVector(b.Bucket(bucket), target, le.config.NotInterestedBucketRate,
			le.config.TopicDecay, le.config.TopicPruneBelow)
		b.ChannelScores[item.ChannelID] = le.config.NotInterestedChannelPeg
	})

	le.metrics.RecordInteraction("not_interested")
	le.logger.WithFields(logrus.Fields{
		"item_id":    item.ID,
		"channel_id": item.ChannelID,
	}).Info("Marked not interested")
}
