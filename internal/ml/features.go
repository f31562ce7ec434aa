package ml

import (
	"github.com/flowtv/flowfeed/pkg/models"
)

const (
	channelTokenWeight = 1.0
	titleTokenWeight   = 0.5
	bigramWeight       = 0.75

	durationSaturation = 1200.0 // 20 minutes
	defaultDurationSec = 300
	defaultLiveSec     = 3600
	complexityDivisor  = 60.0
)

// ExtractFeatures derives a ContentVector from one candidate item. It never
// fails; missing fields fall back to documented defaults and the topic map
// may come out empty.
func ExtractFeatures(item models.VideoItem) ContentVector {
	vec := NewContentVector()

	// Channel identity is a strong signal, title tokens a weaker additive
	// one, and adjacent title pairs capture phrases single words miss.
	for _, token := range Tokenize(item.ChannelName) {
		vec.Topics[token] = channelTokenWeight
	}

	titleTokens := Tokenize(item.Title)
	for _, token := range titleTokens {
		vec.Topics[token] += titleTokenWeight
	}
	for i := 0; i+1 < len(titleTokens); i++ {
		vec.Topics[titleTokens[i]+" "+titleTokens[i+1]] += bigramWeight
	}

	vec.Normalize()

	seconds := item.DurationSeconds
	if seconds <= 0 {
		if item.IsLive {
			seconds = defaultLiveSec
		} else {
			seconds = defaultDurationSec
		}
	}
	vec.Duration = Clamp01(float64(seconds) / durationSaturation)
	vec.Pacing = 1 - vec.Duration
	vec.Complexity = Clamp01(float64(len(item.Title)) / complexityDivisor)
	if item.IsLive {
		vec.IsLive = 1.0
	}

	return vec
}
