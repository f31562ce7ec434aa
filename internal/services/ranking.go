package services

import (
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/internal/ml"
	"github.com/flowtv/flowfeed/pkg/models"
)

// classicViewThreshold marks items whose sheer view count earns a softened
// recency factor.
const classicViewThreshold = 5_000_000

var leadingNumber = regexp.MustCompile(`(\d+)`)

// scoredCandidate pairs a candidate with its extracted vector and running
// score while it moves through scoring and re-ranking.
type scoredCandidate struct {
	item   models.VideoItem
	vector ml.ContentVector
	score  float64
}

// RankingEngine scores candidates against a profile snapshot. Scoring is
// CPU-bound and runs entirely outside the profile lock.
type RankingEngine struct {
	store     *ProfileStore
	diversity *DiversityReranker
	config    *config.RankingConfig
	metrics   *MetricsCollector
	logger    *logrus.Logger

	now func() time.Time
	rng func() float64
}

func NewRankingEngine(
	store *ProfileStore,
	diversity *DiversityReranker,
	cfg *config.RankingConfig,
	metrics *MetricsCollector,
	logger *logrus.Logger,
) *RankingEngine {
	return &RankingEngine{
		store:     store,
		diversity: diversity,
		config:    cfg,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
		rng:       rand.Float64,
	}
}

// Rank filters, scores and diversity-reranks the candidate list. Empty
// input (or input fully removed by blocklists) yields empty output.
func (re *RankingEngine) Rank(
	candidates []models.VideoItem,
	subscribedChannels []string,
	recentTopics []string,
) []models.RankedItem {
	started := re.now()
	snap := re.store.Snapshot()

	filtered := filterBlocked(snap, candidates)
	if len(filtered) == 0 {
		return nil
	}

	bucket := snap.Bucket(BucketForHour(re.now().Hour()))

	// A disengaged user gets progressively more novelty-weighted results.
	boredom := math.Min(float64(snap.ConsecutiveSkips)/20.0, 0.5)
	wPersonality := 0.4 - 0.5*boredom
	wContext := 0.4 - 0.5*boredom
	wNovelty := 0.2 + boredom

	subscribed := make(map[string]bool, len(subscribedChannels))
	for _, id := range subscribedChannels {
		subscribed[id] = true
	}
	topicHistory := make(map[string]int, len(recentTopics))
	for _, t := range recentTopics {
		topicHistory[t]++
	}

	coldStart := snap.TotalInteractions < re.config.ColdStartThreshold
	jitterRange := re.config.SteadyStateJitter
	if coldStart {
		jitterRange = re.config.ColdStartJitter
	}

	scored := make([]scoredCandidate, 0, len(filtered))
	for _, item := range filtered {
		vec := ml.ExtractFeatures(item)
		isSubscribed := subscribed[item.ChannelID]

		personality := ml.CosineSimilarity(snap.Core, vec)
		score := re.affinityScore(personality, *bucket, vec, wPersonality, wContext, wNovelty, isSubscribed)
		score *= re.recencyFactor(item, isSubscribed)

		// Curiosity gap: a familiar topic whose complexity differs sharply
		// from the profile surfaces challenging content on safe ground.
		if personality > 0.65 && math.Abs(snap.Core.Complexity-vec.Complexity) > 0.35 {
			score += re.config.CuriosityBonus
		}

		// Distinguish "consistently ignored" from "never seen".
		if tracked, ok := snap.ChannelScores[item.ChannelID]; ok && tracked < re.config.ChannelBoredomFloor {
			score *= 0.5
		}

		score *= fatigueFactor(vec.PrimaryTopic(), topicHistory)
		score += re.rng() * jitterRange

		scored = append(scored, scoredCandidate{item: item, vector: vec, score: score})
	}

	ranked := re.diversity.Rerank(scored)

	re.metrics.ObserveRank(re.now().Sub(started), len(ranked))
	re.logger.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"filtered":   len(filtered),
		"ranked":     len(ranked),
		"cold_start": coldStart,
		"boredom":    boredom,
	}).Debug("Ranked candidates")

	return ranked
}

// affinityScore is the additive stage of scoring: the personality/context/
// novelty blend plus the subscription and serendipity bonuses. Multipliers
// (recency, boredom, fatigue) apply on top of its result.
func (re *RankingEngine) affinityScore(
	personality float64,
	bucket ml.ContentVector,
	vec ml.ContentVector,
	wPersonality, wContext, wNovelty float64,
	subscribed bool,
) float64 {
	context := ml.CosineSimilarity(bucket, vec)
	novelty := 1 - personality

	score := personality*wPersonality + context*wContext + novelty*wNovelty
	if subscribed {
		score += re.config.SubscriptionBonus
	}
	if novelty > 0.6 && context > 0.5 {
		score += re.config.SerendipityBonus
	}
	return score
}

// recencyFactor derives a multiplier from the item's human-readable age
// text. Classics and subscribed channels get the factor softened toward
// 1.0: their appeal does not decay the way ordinary uploads do.
func (re *RankingEngine) recencyFactor(item models.VideoItem, subscribed bool) float64 {
	factor := ageFactor(item.AgeText, item.IsLive)
	if item.ViewCount >= classicViewThreshold || subscribed {
		factor = (factor + 1) / 2
	}
	return factor
}

func ageFactor(ageText string, isLive bool) float64 {
	age := strings.ToLower(ageText)
	switch {
	case isLive || strings.Contains(age, "live"):
		return 1.15
	case strings.Contains(age, "year"):
		years := 1.0
		if m := leadingNumber.FindString(age); m != "" {
			if n, err := strconv.Atoi(m); err == nil && n > 0 {
				years = float64(n)
			}
		}
		return 1 / (1 + 0.35*years)
	case strings.Contains(age, "second"), strings.Contains(age, "minute"), strings.Contains(age, "hour"):
		return 1.15
	case strings.Contains(age, "day"):
		return 1.12
	case strings.Contains(age, "week"):
		return 1.08
	case strings.Contains(age, "month"):
		return 1.0
	default:
		return 0.85
	}
}

// fatigueFactor penalizes topics the user has just been watching.
func fatigueFactor(primaryTopic string, topicHistory map[string]int) float64 {
	if primaryTopic == "" {
		return 1.0
	}
	switch seen := topicHistory[primaryTopic]; {
	case seen >= 3:
		return 0.4
	case seen > 0:
		return 0.7
	default:
		return 1.0
	}
}

// filterBlocked drops candidates from blocked channels or whose title or
// channel name contains a blocked topic, case-insensitively.
func filterBlocked(brain *UserBrain, candidates []models.VideoItem) []models.VideoItem {
	if len(brain.BlockedChannels) == 0 && len(brain.BlockedTopics) == 0 {
		return candidates
	}

	filtered := make([]models.VideoItem, 0, len(candidates))
	for _, item := range candidates {
		if brain.BlockedChannels[item.ChannelID] {
			continue
		}
		title := strings.ToLower(item.Title)
		channel := strings.ToLower(item.ChannelName)
		blocked := false
		for topic := range brain.BlockedTopics {
			t := strings.ToLower(topic)
			if strings.Contains(title, t) || strings.Contains(channel, t) {
				blocked = true
				break
			}
		}
		if !blocked {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
