package services

import (
	"encoding/json"
	"fmt"

	"github.com/flowtv/flowfeed/internal/ml"
	"github.com/flowtv/flowfeed/internal/validation"
)

// currentSchemaVersion tags every written profile document. Version 1 is
// the legacy layout that stored only a "likes" vector and a single
// "context" vector; version 2 is the five-vector layout.
const currentSchemaVersion = 2

type vectorDocument struct {
	Topics     map[string]float64 `json:"topics,omitempty"`
	Duration   float64            `json:"duration"`
	Pacing     float64            `json:"pacing"`
	Complexity float64            `json:"complexity"`
	IsLive     float64            `json:"is_live"`
}

type profileDocument struct {
	SchemaVersion int `json:"schema_version"`

	Core      vectorDocument `json:"core"`
	Morning   vectorDocument `json:"morning"`
	Afternoon vectorDocument `json:"afternoon"`
	Evening   vectorDocument `json:"evening"`
	Night     vectorDocument `json:"night"`

	ChannelScores map[string]float64 `json:"channel_scores,omitempty"`

	TotalInteractions int `json:"total_interactions"`
	ConsecutiveSkips  int `json:"consecutive_skips"`

	BlockedTopics   []string `json:"blocked_topics,omitempty"`
	BlockedChannels []string `json:"blocked_channels,omitempty"`
	PreferredTopics []string `json:"preferred_topics,omitempty"`

	OnboardingComplete bool `json:"onboarding_complete"`
}

// legacyProfileDocument is the version-1 layout: a global "likes" vector
// and one undifferentiated "context" vector, with no filter sets and no
// onboarding flag.
type legacyProfileDocument struct {
	Likes         vectorDocument     `json:"likes"`
	Context       vectorDocument     `json:"context"`
	ChannelScores map[string]float64 `json:"channels,omitempty"`
	Interactions  int                `json:"interactions"`
	Skips         int                `json:"skips"`
}

// upgrades[n] migrates a document from schema version n+1 to n+2. The
// chain is applied in order until the document reaches the current version.
var upgrades = []func([]byte) ([]byte, error){
	upgradeV1toV2,
}

// upgradeV1toV2 spreads the legacy context vector across all four time
// buckets and defaults the fields version 1 never stored.
func upgradeV1toV2(data []byte) ([]byte, error) {
	var legacy legacyProfileDocument
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("failed to parse legacy profile: %w", err)
	}

	doc := profileDocument{
		SchemaVersion:     2,
		Core:              legacy.Likes,
		Morning:           cloneVectorDocument(legacy.Context),
		Afternoon:         cloneVectorDocument(legacy.Context),
		Evening:           cloneVectorDocument(legacy.Context),
		Night:             cloneVectorDocument(legacy.Context),
		ChannelScores:     legacy.ChannelScores,
		TotalInteractions: legacy.Interactions,
		ConsecutiveSkips:  legacy.Skips,
	}
	return json.Marshal(doc)
}

func cloneVectorDocument(v vectorDocument) vectorDocument {
	c := v
	if v.Topics != nil {
		c.Topics = make(map[string]float64, len(v.Topics))
		for k, w := range v.Topics {
			c.Topics[k] = w
		}
	}
	return c
}

// encodeProfile serializes the brain into the current document layout.
func encodeProfile(b *UserBrain) ([]byte, error) {
	doc := profileDocument{
		SchemaVersion:      currentSchemaVersion,
		Core:               vectorToDocument(b.Core),
		Morning:            vectorToDocument(b.Morning),
		Afternoon:          vectorToDocument(b.Afternoon),
		Evening:            vectorToDocument(b.Evening),
		Night:              vectorToDocument(b.Night),
		ChannelScores:      b.ChannelScores,
		TotalInteractions:  b.TotalInteractions,
		ConsecutiveSkips:   b.ConsecutiveSkips,
		BlockedTopics:      sortedKeys(b.BlockedTopics),
		BlockedChannels:    sortedKeys(b.BlockedChannels),
		PreferredTopics:    sortedKeys(b.PreferredTopics),
		OnboardingComplete: b.OnboardingComplete,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// decodeProfile migrates raw document bytes up to the current schema
// version, validates them, and rebuilds the brain.
func decodeProfile(data []byte, validator *validation.ProfileValidator) (*UserBrain, error) {
	version, err := detectSchemaVersion(data)
	if err != nil {
		return nil, err
	}
	if version > currentSchemaVersion {
		return nil, fmt.Errorf("profile schema version %d is newer than supported version %d",
			version, currentSchemaVersion)
	}

	for v := version; v < currentSchemaVersion; v++ {
		data, err = upgrades[v-1](data)
		if err != nil {
			return nil, fmt.Errorf("failed to upgrade profile from schema version %d: %w", v, err)
		}
	}

	if result := validator.ValidateProfile(data); !result.Valid {
		return nil, fmt.Errorf("profile document failed schema validation: %v", result.Errors)
	}

	var doc profileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	brain := NewUserBrain()
	brain.Core = documentToVector(doc.Core)
	brain.Morning = documentToVector(doc.Morning)
	brain.Afternoon = documentToVector(doc.Afternoon)
	brain.Evening = documentToVector(doc.Evening)
	brain.Night = documentToVector(doc.Night)
	brain.TotalInteractions = doc.TotalInteractions
	brain.ConsecutiveSkips = doc.ConsecutiveSkips
	brain.OnboardingComplete = doc.OnboardingComplete
	for id, score := range doc.ChannelScores {
		brain.ChannelScores[id] = score
	}
	for _, t := range doc.BlockedTopics {
		brain.BlockedTopics[t] = true
	}
	for _, id := range doc.BlockedChannels {
		brain.BlockedChannels[id] = true
	}
	for _, t := range doc.PreferredTopics {
		brain.PreferredTopics[t] = true
	}
	return brain, nil
}

// detectSchemaVersion reads the version tag; documents written before the
// tag existed are version 1.
func detectSchemaVersion(data []byte) (int, error) {
	var head struct {
		SchemaVersion int `json:"schema_version"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return 0, fmt.Errorf("profile document is not valid JSON: %w", err)
	}
	if head.SchemaVersion < 0 {
		return 0, fmt.Errorf("profile schema version %d is invalid", head.SchemaVersion)
	}
	if head.SchemaVersion == 0 {
		return 1, nil
	}
	return head.SchemaVersion, nil
}

func vectorToDocument(v ml.ContentVector) vectorDocument {
	doc := vectorDocument{
		Duration:   v.Duration,
		Pacing:     v.Pacing,
		Complexity: v.Complexity,
		IsLive:     v.IsLive,
	}
	if len(v.Topics) > 0 {
		doc.Topics = v.Topics
	}
	return doc
}

func documentToVector(doc vectorDocument) ml.ContentVector {
	v := ml.NewContentVector()
	for k, w := range doc.Topics {
		v.Topics[k] = ml.Clamp01(w)
	}
	v.Duration = ml.Clamp01(doc.Duration)
	v.Pacing = ml.Clamp01(doc.Pacing)
	v.Complexity = ml.Clamp01(doc.Complexity)
	v.IsLive = ml.Clamp01(doc.IsLive)
	return v
}
