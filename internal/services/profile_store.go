package services

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/internal/ml"
	"github.com/flowtv/flowfeed/internal/validation"
)

// TimeBucket is one of four fixed wall-clock windows, each with its own
// preference vector.
type TimeBucket int

const (
	BucketMorning TimeBucket = iota
	BucketAfternoon
	BucketEvening
	BucketNight
)

// BucketForHour maps a wall-clock hour to its time bucket: 6-11 morning,
// 12-17 afternoon, 18-23 evening, everything else night.
func BucketForHour(hour int) TimeBucket {
	switch {
	case hour >= 6 && hour <= 11:
		return BucketMorning
	case hour >= 12 && hour <= 17:
		return BucketAfternoon
	case hour >= 18 && hour <= 23:
		return BucketEvening
	default:
		return BucketNight
	}
}

func (tb TimeBucket) String() string {
	switch tb {
	case BucketMorning:
		return "morning"
	case BucketAfternoon:
		return "afternoon"
	case BucketEvening:
		return "evening"
	default:
		return "night"
	}
}

// UserBrain is the persisted, continuously-updated representation of one
// user's interests: a global "core personality" vector, four time-bucket
// vectors, smoothed per-channel outcomes, counters and content filters.
type UserBrain struct {
	Core      ml.ContentVector
	Morning   ml.ContentVector
	Afternoon ml.ContentVector
	Evening   ml.ContentVector
	Night     ml.ContentVector

	ChannelScores map[string]float64

	TotalInteractions int
	ConsecutiveSkips  int

	BlockedTopics   map[string]bool
	BlockedChannels map[string]bool
	PreferredTopics map[string]bool

	OnboardingComplete bool
}

// NewUserBrain returns an all-default profile for a first run.
func NewUserBrain() *UserBrain {
	return &UserBrain{
		Core:            ml.NewContentVector(),
		Morning:         ml.NewContentVector(),
		Afternoon:       ml.NewContentVector(),
		Evening:         ml.NewContentVector(),
		Night:           ml.NewContentVector(),
		ChannelScores:   make(map[string]float64),
		BlockedTopics:   make(map[string]bool),
		BlockedChannels: make(map[string]bool),
		PreferredTopics: make(map[string]bool),
	}
}

// Bucket returns a pointer to the vector for the given time bucket.
func (b *UserBrain) Bucket(tb TimeBucket) *ml.ContentVector {
	switch tb {
	case BucketMorning:
		return &b.Morning
	case BucketAfternoon:
		return &b.Afternoon
	case BucketEvening:
		return &b.Evening
	default:
		return &b.Night
	}
}

// Clone deep-copies the brain.
func (b *UserBrain) Clone() *UserBrain {
	c := &UserBrain{
		Core:               b.Core.Clone(),
		Morning:            b.Morning.Clone(),
		Afternoon:          b.Afternoon.Clone(),
		Evening:            b.Evening.Clone(),
		Night:              b.Night.Clone(),
		ChannelScores:      make(map[string]float64, len(b.ChannelScores)),
		TotalInteractions:  b.TotalInteractions,
		ConsecutiveSkips:   b.ConsecutiveSkips,
		BlockedTopics:      make(map[string]bool, len(b.BlockedTopics)),
		BlockedChannels:    make(map[string]bool, len(b.BlockedChannels)),
		PreferredTopics:    make(map[string]bool, len(b.PreferredTopics)),
		OnboardingComplete: b.OnboardingComplete,
	}
	for k, v := range b.ChannelScores {
		c.ChannelScores[k] = v
	}
	for k := range b.BlockedTopics {
		c.BlockedTopics[k] = true
	}
	for k := range b.BlockedChannels {
		c.BlockedChannels[k] = true
	}
	for k := range b.PreferredTopics {
		c.PreferredTopics[k] = true
	}
	return c
}

// ProfileStore owns the single in-memory UserBrain and its durable copy.
// Mutations hold the lock for their full duration, including the
// persistence write, so readers never observe a partially-updated profile.
// Expensive read paths take a Snapshot and work outside the lock.
type ProfileStore struct {
	mu     sync.Mutex
	brain  *UserBrain
	loaded bool

	path      string
	validator *validation.ProfileValidator
	metrics   *MetricsCollector
	logger    *logrus.Logger
}

func NewProfileStore(
	cfg *config.ProfileConfig,
	validator *validation.ProfileValidator,
	metrics *MetricsCollector,
	logger *logrus.Logger,
) *ProfileStore {
	return &ProfileStore{
		brain:     NewUserBrain(),
		path:      cfg.Path,
		validator: validator,
		metrics:   metrics,
		logger:    logger,
	}
}

// Load reads the persisted profile once. Subsequent calls are no-ops. Read
// or decode failures are logged and leave the default profile in place;
// they are never surfaced to the caller.
func (ps *ProfileStore) Load() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.loaded {
		return
	}
	ps.loaded = true

	data, err := os.ReadFile(ps.path)
	if err != nil {
		if !os.IsNotExist(err) {
			ps.logger.WithError(err).WithField("path", ps.path).
				Warn("Failed to read profile, starting with defaults")
		}
		return
	}

	brain, err := decodeProfile(data, ps.validator)
	if err != nil {
		ps.logger.WithError(err).WithField("path", ps.path).
			Warn("Failed to decode profile, starting with defaults")
		return
	}

	ps.brain = brain
	ps.logger.WithFields(logrus.Fields{
		"path":         ps.path,
		"interactions": brain.TotalInteractions,
		"topics":       len(brain.Core.Topics),
	}).Info("Loaded user profile")
}

// Snapshot returns a deep copy of the current profile taken under a short
// critical section. Callers score candidates against the copy without
// blocking concurrent learning updates.
func (ps *ProfileStore) Snapshot() *UserBrain {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.brain.Clone()
}

// Update applies fn to the profile under the exclusive lock and persists
// the result before releasing it.
func (ps *ProfileStore) Update(fn func(*UserBrain)) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	fn(ps.brain)
	ps.saveLocked()
}

// Reset clears the profile to defaults and persists immediately.
func (ps *ProfileStore) Reset() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.brain = NewUserBrain()
	ps.saveLocked()
	ps.logger.Info("User profile reset to defaults")
}

// BlockTopic adds topics to the blocked-topic set.
func (ps *ProfileStore) BlockTopic(topics ...string) {
	ps.Update(func(b *UserBrain) {
		for _, t := range topics {
			b.BlockedTopics[t] = true
		}
	})
}

// UnblockTopic removes topics from the blocked-topic set.
func (ps *ProfileStore) UnblockTopic(topics ...string) {
	ps.Update(func(b *UserBrain) {
		for _, t := range topics {
			delete(b.BlockedTopics, t)
		}
	})
}

// BlockChannel adds channel ids to the blocked-channel set.
func (ps *ProfileStore) BlockChannel(channelIDs ...string) {
	ps.Update(func(b *UserBrain) {
		for _, id := range channelIDs {
			b.BlockedChannels[id] = true
		}
	})
}

// UnblockChannel removes channel ids from the blocked-channel set.
func (ps *ProfileStore) UnblockChannel(channelIDs ...string) {
	ps.Update(func(b *UserBrain) {
		for _, id := range channelIDs {
			delete(b.BlockedChannels, id)
		}
	})
}

// SetPreferredTopics replaces the preferred-topic set.
func (ps *ProfileStore) SetPreferredTopics(topics []string) {
	ps.Update(func(b *UserBrain) {
		b.PreferredTopics = make(map[string]bool, len(topics))
		for _, t := range topics {
			b.PreferredTopics[t] = true
		}
	})
}

// CompleteOnboarding marks onboarding done, optionally seeding preferred
// topics in the same mutation.
func (ps *ProfileStore) CompleteOnboarding(preferredTopics []string) {
	ps.Update(func(b *UserBrain) {
		for _, t := range preferredTopics {
			b.PreferredTopics[t] = true
		}
		b.OnboardingComplete = true
	})
}

// BlockedTopics returns the blocked-topic set, sorted.
func (ps *ProfileStore) BlockedTopics() []string {
	return sortedKeys(ps.Snapshot().BlockedTopics)
}

// BlockedChannels returns the blocked-channel set, sorted.
func (ps *ProfileStore) BlockedChannels() []string {
	return sortedKeys(ps.Snapshot().BlockedChannels)
}

// PreferredTopics returns the preferred-topic set, sorted.
func (ps *ProfileStore) PreferredTopics() []string {
	return sortedKeys(ps.Snapshot().PreferredTopics)
}

// saveLocked writes the profile to disk. Must be called with the lock
// held. Failures are logged and swallowed; the in-memory copy stays
// authoritative and the next mutation retries the write.
func (ps *ProfileStore) saveLocked() {
	data, err := encodeProfile(ps.brain)
	if err != nil {
		ps.logger.WithError(err).Error("Failed to encode profile")
		ps.metrics.RecordProfileSave(err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(ps.path), 0o755); err != nil {
		ps.logger.WithError(err).Error("Failed to create profile directory")
		ps.metrics.RecordProfileSave(err)
		return
	}

	// Write-then-rename keeps the document whole even if we crash mid-save.
	tmp := ps.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		ps.logger.WithError(err).Error("Failed to write profile")
		ps.metrics.RecordProfileSave(err)
		return
	}
	if err := os.Rename(tmp, ps.path); err != nil {
		ps.logger.WithError(err).Error("Failed to replace profile file")
		ps.metrics.RecordProfileSave(err)
		return
	}

	ps.metrics.RecordProfileSave(nil)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
