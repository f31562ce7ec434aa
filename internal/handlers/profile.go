package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/services"
	"github.com/flowtv/flowfeed/pkg/models"
)

type ProfileHandler struct {
	logger    *logrus.Logger
	store     *services.ProfileStore
	persona   *services.PersonaClassifier
	validator *validator.Validate
}

func NewProfileHandler(logger *logrus.Logger, store *services.ProfileStore, persona *services.PersonaClassifier) *ProfileHandler {
	return &ProfileHandler{
		logger:    logger,
		store:     store,
		persona:   persona,
		validator: validator.New(),
	}
}

// bindTopicList binds and validates the shared add/remove payload.
func (h *ProfileHandler) bindTopicList(c *gin.Context) ([]string, bool) {
	var req models.TopicListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid request format",
				"details": err.Error(),
			},
		})
		return nil, false
	}
	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Request validation failed",
				"details": err.Error(),
			},
		})
		return nil, false
	}
	return req.Values, true
}

func (h *ProfileHandler) GetBlockedTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.BlockedTopics()}})
}

func (h *ProfileHandler) AddBlockedTopics(c *gin.Context) {
	values, ok := h.bindTopicList(c)
	if !ok {
		return
	}
	h.store.BlockTopic(values...)
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.BlockedTopics()}})
}

func (h *ProfileHandler) RemoveBlockedTopics(c *gin.Context) {
	values, ok := h.bindTopicList(c)
	if !ok {
		return
	}
	h.store.UnblockTopic(values...)
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.BlockedTopics()}})
}

func (h *ProfileHandler) GetBlockedChannels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.BlockedChannels()}})
}

func (h *ProfileHandler) AddBlockedChannels(c *gin.Context) {
	values, ok := h.bindTopicList(c)
	if !ok {
		return
	}
	h.store.BlockChannel(values...)
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.BlockedChannels()}})
}

func (h *ProfileHandler) RemoveBlockedChannels(c *gin.Context) {
	values, ok := h.bindTopicList(c)
	if !ok {
		return
	}
	h.store.UnblockChannel(values...)
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.BlockedChannels()}})
}

func (h *ProfileHandler) GetPreferredTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.PreferredTopics()}})
}

func (h *ProfileHandler) SetPreferredTopics(c *gin.Context) {
	values, ok := h.bindTopicList(c)
	if !ok {
		return
	}
	h.store.SetPreferredTopics(values)
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.PreferredTopics()}})
}

func (h *ProfileHandler) ClearPreferredTopics(c *gin.Context) {
	h.store.SetPreferredTopics(nil)
	c.JSON(http.StatusOK, gin.H{"data": models.TopicListResponse{Values: h.store.PreferredTopics()}})
}

func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	var req models.OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid request format",
				"details": err.Error(),
			},
		})
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Request validation failed",
				"details": err.Error(),
			},
		})
		return
	}

	h.store.CompleteOnboarding(req.PreferredTopics)
	c.JSON(http.StatusOK, gin.H{"message": "Onboarding completed"})
}

func (h *ProfileHandler) Reset(c *gin.Context) {
	h.store.Reset()
	h.logger.Info("Profile reset via API")
	c.JSON(http.StatusOK, gin.H{"message": "Profile reset to defaults"})
}

func (h *ProfileHandler) Stats(c *gin.Context) {
	snap := h.store.Snapshot()
	stats := models.ProfileStats{
		TotalInteractions:   snap.TotalInteractions,
		ConsecutiveSkips:    snap.ConsecutiveSkips,
		TopicCount:          len(snap.Core.Topics),
		TrackedChannels:     len(snap.ChannelScores),
		OnboardingComplete:  snap.OnboardingComplete,
		Persona:             h.persona.Classify(snap),
		TopTopics:           snap.Core.TopTopics(5),
		BlockedTopicCount:   len(snap.BlockedTopics),
		BlockedChannelCount: len(snap.BlockedChannels),
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
