package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/internal/validation"
)

type Services struct {
	Profile   *ProfileStore
	Learning  *LearningEngine
	Ranking   *RankingEngine
	Diversity *DiversityReranker
	Persona   *PersonaClassifier
	Discovery *DiscoveryService
	Health    *HealthService
	Metrics   *MetricsCollector
}

func New(cfg *config.Config, logger *logrus.Logger) (*Services, error) {
	validator, err := validation.NewProfileValidator()
	if err != nil {
		return nil, err
	}

	metrics := NewMetricsCollector(prometheus.DefaultRegisterer)

	profileStore := NewProfileStore(&cfg.Profile, validator, metrics, logger)
	profileStore.Load()

	diversity := NewDiversityReranker(&cfg.Engine.Diversity, logger)
	learning := NewLearningEngine(profileStore, &cfg.Engine.Learning, metrics, logger)
	ranking := NewRankingEngine(profileStore, diversity, &cfg.Engine.Ranking, metrics, logger)
	persona := NewPersonaClassifier(&cfg.Engine.Persona, logger)
	discovery := NewDiscoveryService(profileStore, persona, logger)
	health := NewHealthService(profileStore, logger)

	return &Services{
		Profile:   profileStore,
		Learning:  learning,
		Ranking:   ranking,
		Diversity: diversity,
		Persona:   persona,
		Discovery: discovery,
		Health:    health,
		Metrics:   metrics,
	}, nil
}
