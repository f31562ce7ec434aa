package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/pkg/models"
)

func testPersonaConfig() *config.PersonaConfig {
	return &config.PersonaConfig{
		ColdStartInteractions: 15,
		MusicScoreThreshold:   0.4,
		LiveAffinityThreshold: 0.6,
		NocturnalRatio:        1.5,
		NocturnalMinWeight:    5.0,
		BingerInteractions:    100,
		BingerPacing:          0.6,
		ScholarComplexity:     0.65,
		DeepDiverDuration:     0.7,
		SkimmerDuration:       0.3,
		SkimmerPacing:         0.7,
		SpecialistDiversity:   0.15,
	}
}

func newTestClassifier() *PersonaClassifier {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewPersonaClassifier(testPersonaConfig(), logger)
}

// establishedBrain has enough history to pass the newcomer gate and neutral
// scalars that trip none of the other rules.
func establishedBrain() *UserBrain {
	b := NewUserBrain()
	b.TotalInteractions = 50
	b.Core.Duration = 0.5
	b.Core.Pacing = 0.5
	b.Core.Complexity = 0.4
	return b
}

func TestPersonaClassifier(t *testing.T) {
	pc := newTestClassifier()

	t.Run("newcomer under the interaction floor", func(t *testing.T) {
		b := NewUserBrain()
		b.TotalInteractions = 5
		// Even a strong signal cannot escape the cold start gate
		b.Core.Topics["music"] = 0.9
		assert.Equal(t, models.PersonaNewcomer, pc.Classify(b))
	})

	t.Run("audiophile on dominant music weight", func(t *testing.T) {
		b := establishedBrain()
		b.Core.Topics["music"] = 0.3
		b.Core.Topics["remix culture"] = 0.2
		assert.Equal(t, models.PersonaAudiophile, pc.Classify(b))
	})

	t.Run("feat marker counts as music", func(t *testing.T) {
		b := establishedBrain()
		b.Core.Topics["artist feat someone"] = 0.5
		assert.Equal(t, models.PersonaAudiophile, pc.Classify(b))
	})

	t.Run("livewire on live affinity", func(t *testing.T) {
		b := establishedBrain()
		b.Core.IsLive = 0.7
		assert.Equal(t, models.PersonaLivewire, pc.Classify(b))
	})

	t.Run("night owl on nocturnal weight", func(t *testing.T) {
		b := establishedBrain()
		for _, topic := range []string{"lofi", "ambient", "asmr", "space", "ocean", "rain"} {
			b.Night.Topics[topic] = 1.0
		}
		b.Morning.Topics["news"] = 0.5
		assert.Equal(t, models.PersonaNightOwl, pc.Classify(b))
	})

	t.Run("binger needs volume and pace", func(t *testing.T) {
		b := establishedBrain()
		b.TotalInteractions = 150
		b.Core.Pacing = 0.7
		b.Core.Duration = 0.3
		assert.Equal(t, models.PersonaBinger, pc.Classify(b))
	})

	t.Run("scholar on high complexity", func(t *testing.T) {
		b := establishedBrain()
		b.Core.Complexity = 0.8
		assert.Equal(t, models.PersonaScholar, pc.Classify(b))
	})

	t.Run("deep diver on long durations", func(t *testing.T) {
		b := establishedBrain()
		b.Core.Duration = 0.8
		b.Core.Pacing = 0.2
		assert.Equal(t, models.PersonaDeepDiver, pc.Classify(b))
	})

	t.Run("skimmer on short fast content", func(t *testing.T) {
		b := establishedBrain()
		b.Core.Duration = 0.2
		b.Core.Pacing = 0.8
		assert.Equal(t, models.PersonaSkimmer, pc.Classify(b))
	})

	t.Run("specialist when one topic dominates", func(t *testing.T) {
		b := establishedBrain()
		b.Core.Topics["woodworking"] = 1.0
		b.Core.Topics["joinery"] = 0.05
		b.Core.Topics["chisels"] = 0.04
		b.Core.Topics["sawdust"] = 0.03
		b.Core.Topics["varnish"] = 0.02
		assert.Equal(t, models.PersonaSpecialist, pc.Classify(b))
	})

	t.Run("explorer is the fallback", func(t *testing.T) {
		b := establishedBrain()
		b.Core.Topics["cooking"] = 0.5
		b.Core.Topics["travel"] = 0.45
		b.Core.Topics["chemistry"] = 0.4
		b.Core.Topics["woodworking"] = 0.35
		b.Core.Topics["history"] = 0.3
		assert.Equal(t, models.PersonaExplorer, pc.Classify(b))
	})

	t.Run("empty established profile is explorer", func(t *testing.T) {
		assert.Equal(t, models.PersonaExplorer, pc.Classify(establishedBrain()))
	})
}

func TestPersonaClassifier_ConfigurableThresholds(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	cfg := testPersonaConfig()
	cfg.ScholarComplexity = 0.3
	pc := NewPersonaClassifier(cfg, logger)

	b := establishedBrain()
	// 0.4 complexity is explorer territory under the defaults
	assert.Equal(t, models.PersonaScholar, pc.Classify(b))
}

func TestTopicDiversityIndex(t *testing.T) {
	t.Run("fewer than five topics", func(t *testing.T) {
		assert.Equal(t, 0.0, topicDiversityIndex(map[string]float64{"a": 1.0, "b": 0.5}))
	})

	t.Run("flat distribution scores high", func(t *testing.T) {
		topics := map[string]float64{"a": 0.5, "b": 0.5, "c": 0.5, "d": 0.5, "e": 0.5}
		assert.InDelta(t, 1.0, topicDiversityIndex(topics), 1e-9)
	})

	t.Run("dominated distribution scores low", func(t *testing.T) {
		topics := map[string]float64{"a": 1.0, "b": 0.05, "c": 0.04, "d": 0.03, "e": 0.02}
		assert.InDelta(t, 0.02, topicDiversityIndex(topics), 1e-9)
	})
}

func TestIsMusicTopic(t *testing.T) {
	assert.True(t, isMusicTopic("music"))
	assert.True(t, isMusicTopic("remix culture"))
	assert.True(t, isMusicTopic("artist feat someone"))
	assert.False(t, isMusicTopic("musical theater"))
	assert.False(t, isMusicTopic("woodworking"))
}
