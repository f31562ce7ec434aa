package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/services"
	"github.com/flowtv/flowfeed/pkg/models"
)

type DiscoveryHandler struct {
	logger    *logrus.Logger
	discovery *services.DiscoveryService
	persona   *services.PersonaClassifier
	store     *services.ProfileStore
}

func NewDiscoveryHandler(
	logger *logrus.Logger,
	discovery *services.DiscoveryService,
	persona *services.PersonaClassifier,
	store *services.ProfileStore,
) *DiscoveryHandler {
	return &DiscoveryHandler{
		logger:    logger,
		discovery: discovery,
		persona:   persona,
		store:     store,
	}
}

func (h *DiscoveryHandler) Queries(c *gin.Context) {
	queries := h.discovery.GenerateQueries()
	c.JSON(http.StatusOK, gin.H{
		"data": models.DiscoveryQueriesResponse{Queries: queries},
	})
}

func (h *DiscoveryHandler) Persona(c *gin.Context) {
	persona := h.persona.Classify(h.store.Snapshot())
	c.JSON(http.StatusOK, gin.H{
		"data": models.PersonaResponse{Persona: persona},
	})
}
