package services

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/pkg/models"
)

// musicKeywords is the small fixed set used to detect a music-dominant
// profile; any topic containing "feat" counts as well.
var musicKeywords = map[string]bool{
	"music": true, "song": true, "album": true, "remix": true,
	"cover": true, "lyric": true, "beat": true, "playlist": true,
	"concert": true, "mix": true,
}

// PersonaClassifier derives a discrete behavioral label from the profile.
// Pure function of the snapshot; it never mutates state.
type PersonaClassifier struct {
	config *config.PersonaConfig
	logger *logrus.Logger
}

func NewPersonaClassifier(cfg *config.PersonaConfig, logger *logrus.Logger) *PersonaClassifier {
	return &PersonaClassifier{config: cfg, logger: logger}
}

// Classify applies the persona rules in order and returns the first match.
func (pc *PersonaClassifier) Classify(brain *UserBrain) models.FlowPersona {
	if brain.TotalInteractions < pc.config.ColdStartInteractions {
		return models.PersonaNewcomer
	}

	musicScore := 0.0
	for topic, weight := range brain.Core.Topics {
		if isMusicTopic(topic) {
			musicScore += weight
		}
	}

	diversityIndex := topicDiversityIndex(brain.Core.Topics)

	nightWeight := brain.Night.TotalWeight()
	isNocturnal := nightWeight > pc.config.NocturnalRatio*brain.Morning.TotalWeight() &&
		nightWeight > pc.config.NocturnalMinWeight

	switch {
	case musicScore > pc.config.MusicScoreThreshold:
		return models.PersonaAudiophile
	case brain.Core.IsLive > pc.config.LiveAffinityThreshold:
		return models.PersonaLivewire
	case isNocturnal:
		return models.PersonaNightOwl
	case brain.TotalInteractions > pc.config.BingerInteractions && brain.Core.Pacing > pc.config.BingerPacing:
		return models.PersonaBinger
	case brain.Core.Complexity > pc.config.ScholarComplexity:
		return models.PersonaScholar
	case brain.Core.Duration > pc.config.DeepDiverDuration:
		return models.PersonaDeepDiver
	case brain.Core.Duration < pc.config.SkimmerDuration && brain.Core.Pacing > pc.config.SkimmerPacing:
		return models.PersonaSkimmer
	case len(brain.Core.Topics) > 0 && diversityIndex < pc.config.SpecialistDiversity:
		return models.PersonaSpecialist
	default:
		return models.PersonaExplorer
	}
}

func isMusicTopic(topic string) bool {
	if strings.Contains(topic, "feat") {
		return true
	}
	for _, word := range strings.Fields(topic) {
		if musicKeywords[word] {
			return true
		}
	}
	return false
}

// topicDiversityIndex is the ratio of the 5th-largest topic weight to the
// largest; 0 if the profile has fewer than 5 topics. A low value means a
// few topics dominate everything else.
func topicDiversityIndex(topics map[string]float64) float64 {
	if len(topics) < 5 {
		return 0
	}
	weights := make([]float64, 0, len(topics))
	for _, w := range topics {
		weights = append(weights, w)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))
	if weights[0] == 0 {
		return 0
	}
	return weights[4] / weights[0]
}
