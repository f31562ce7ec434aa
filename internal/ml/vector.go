package ml

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ContentVector is the feature representation of one item: a sparse
// topic-weight map plus four scalar heuristics, all in [0,1].
type ContentVector struct {
	Topics     map[string]float64 `json:"topics"`
	Duration   float64            `json:"duration"`
	Pacing     float64            `json:"pacing"`
	Complexity float64            `json:"complexity"`
	IsLive     float64            `json:"is_live"`
}

// NewContentVector returns an empty vector with an allocated topic map.
func NewContentVector() ContentVector {
	return ContentVector{Topics: make(map[string]float64)}
}

// Clone deep-copies the vector.
func (v ContentVector) Clone() ContentVector {
	c := v
	c.Topics = make(map[string]float64, len(v.Topics))
	for k, w := range v.Topics {
		c.Topics[k] = w
	}
	return c
}

// Magnitude returns the L2 norm of the topic weights.
func (v ContentVector) Magnitude() float64 {
	if len(v.Topics) == 0 {
		return 0
	}
	weights := make([]float64, 0, len(v.Topics))
	for _, w := range v.Topics {
		weights = append(weights, w)
	}
	return floats.Norm(weights, 2)
}

// Normalize scales the topic weights to unit L2 magnitude. Empty maps are
// left untouched.
func (v *ContentVector) Normalize() {
	mag := v.Magnitude()
	if mag == 0 {
		return
	}
	for k, w := range v.Topics {
		v.Topics[k] = w / mag
	}
}

// TotalWeight returns the sum of all topic weights.
func (v ContentVector) TotalWeight() float64 {
	weights := make([]float64, 0, len(v.Topics))
	for _, w := range v.Topics {
		weights = append(weights, w)
	}
	return floats.Sum(weights)
}

// PrimaryTopic returns the highest-weight topic key, or "" for an empty
// map. Ties break toward the lexicographically smaller key so repeated
// calls over the same vector are deterministic.
func (v ContentVector) PrimaryTopic() string {
	best := ""
	bestWeight := math.Inf(-1)
	for k, w := range v.Topics {
		if w > bestWeight || (w == bestWeight && k < best) {
			best = k
			bestWeight = w
		}
	}
	return best
}

// TopTopics returns the n highest-weight topic keys, heaviest first. Ties
// break toward the lexicographically smaller key.
func (v ContentVector) TopTopics(n int) []string {
	keys := make([]string, 0, len(v.Topics))
	for k := range v.Topics {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if v.Topics[keys[i]] != v.Topics[keys[j]] {
			return v.Topics[keys[i]] > v.Topics[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Clamp01 bounds x to [0,1].
func Clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
