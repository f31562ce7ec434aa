package services

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/pkg/models"
)

// DiversityReranker spreads channels, topics and near-duplicate titles
// across the top of the final ordering. Phase 1 is strict about the first
// screen of results; phase 2 appends the rest with only a loose
// near-duplicate check.
type DiversityReranker struct {
	config *config.DiversityConfig
	logger *logrus.Logger
}

func NewDiversityReranker(cfg *config.DiversityConfig, logger *logrus.Logger) *DiversityReranker {
	return &DiversityReranker{config: cfg, logger: logger}
}

// Rerank consumes candidates already filtered and scored and returns the
// final ordered list.
func (dr *DiversityReranker) Rerank(scored []scoredCandidate) []models.RankedItem {
	if len(scored) == 0 {
		return nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	accepted := make([]scoredCandidate, 0, len(scored))
	var leftover []scoredCandidate

	// Phase 1: strict constraints over the first screen of slots. A
	// candidate rejected here stays eligible for phase 2.
	usedChannels := make(map[string]bool)
	topicUse := make(map[string]int)
	for _, cand := range scored {
		if len(accepted) >= dr.config.StrictSlots {
			leftover = append(leftover, cand)
			continue
		}

		topic := cand.vector.PrimaryTopic()
		if usedChannels[cand.item.ChannelID] ||
			(topic != "" && topicUse[topic] >= dr.config.MaxPerTopic) ||
			dr.tooSimilar(cand, accepted, dr.config.Phase1Window, dr.config.TitleSimilarityPhase1) {
			leftover = append(leftover, cand)
			continue
		}

		usedChannels[cand.item.ChannelID] = true
		if topic != "" {
			topicUse[topic]++
		}
		accepted = append(accepted, cand)
	}

	// Phase 2: append the rest in score order, skipping only obvious
	// near-duplicates of what was just accepted.
	for _, cand := range leftover {
		if dr.tooSimilar(cand, accepted, dr.config.Phase2Window, dr.config.TitleSimilarityPhase2) {
			continue
		}
		accepted = append(accepted, cand)
	}

	result := make([]models.RankedItem, len(accepted))
	for i, cand := range accepted {
		result[i] = models.RankedItem{
			VideoItem: cand.item,
			Score:     cand.score,
			Position:  i + 1,
		}
	}
	return result
}

// tooSimilar reports whether the candidate's title exceeds the similarity
// threshold against any of the last window accepted items.
func (dr *DiversityReranker) tooSimilar(cand scoredCandidate, accepted []scoredCandidate, window int, threshold float64) bool {
	start := len(accepted) - window
	if start < 0 {
		start = 0
	}
	for _, prev := range accepted[start:] {
		if titleSimilarity(cand.item.Title, prev.item.Title) > threshold {
			return true
		}
	}
	return false
}

// titleSimilarity is Jaccard similarity over lower-cased words longer than
// 2 characters; 0 if either word set is empty.
func titleSimilarity(a, b string) float64 {
	wordsA := titleWords(a)
	wordsB := titleWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	intersection := 0
	union := len(wordsA)
	for w := range wordsB {
		if wordsA[w] {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

func titleWords(title string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if len(w) > 2 {
			words[w] = true
		}
	}
	return words
}
