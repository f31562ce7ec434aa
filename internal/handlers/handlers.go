package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/services"
)

type Handlers struct {
	Rank        *RankHandler
	Interaction *InteractionHandler
	Profile     *ProfileHandler
	Discovery   *DiscoveryHandler
	Health      *HealthHandler
}

func New(logger *logrus.Logger, svc *services.Services) *Handlers {
	return &Handlers{
		Rank:        NewRankHandler(logger, svc.Ranking),
		Interaction: NewInteractionHandler(logger, svc.Learning),
		Profile:     NewProfileHandler(logger, svc.Profile, svc.Persona),
		Discovery:   NewDiscoveryHandler(logger, svc.Discovery, svc.Persona, svc.Profile),
		Health:      NewHealthHandler(logger, svc.Health),
	}
}
