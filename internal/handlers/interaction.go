package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/services"
	"github.com/flowtv/flowfeed/pkg/models"
)

type InteractionHandler struct {
	logger    *logrus.Logger
	learning  *services.LearningEngine
	validator *validator.Validate
}

func NewInteractionHandler(logger *logrus.Logger, learning *services.LearningEngine) *InteractionHandler {
	return &InteractionHandler{
		logger:    logger,
		learning:  learning,
		validator: validator.New(),
	}
}

func (h *InteractionHandler) Record(c *gin.Context) {
	var req models.InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to bind interaction request")
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
		h.logger.WithError(err).Error("Validation failed for interaction request")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Request validation failed",
				"details": err.Error(),
			},
		})
		return
	}

	// Watched events need the fraction to carry any signal
	if req.Kind == models.InteractionWatched && req.PercentWatched <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "MISSING_WATCH_FRACTION",
				"message": "Watched interactions must include percent_watched greater than 0",
			},
		})
		return
	}

	h.learning.ApplyInteraction(req.Item, req.Kind, req.PercentWatched)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Interaction recorded successfully",
	})
}

func (h *InteractionHandler) NotInterested(c *gin.Context) {
	var req models.NotInterestedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to bind not-interested request")
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

	h.learning.MarkNotInterested(req.Item)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item marked not interested",
	})
}
