package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/services"
	"github.com/flowtv/flowfeed/pkg/models"
)

type RankHandler struct {
	logger    *logrus.Logger
	ranking   *services.RankingEngine
	validator *validator.Validate
}

func NewRankHandler(logger *logrus.Logger, ranking *services.RankingEngine) *RankHandler {
	return &RankHandler{
		logger:    logger,
		ranking:   ranking,
		validator: validator.New(),
	}
}

func (h *RankHandler) Rank(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to bind rank request")
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
		h.logger.WithError(err).Error("Validation failed for rank request")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "VALIDATION_FAILED",
				"message": "Request validation failed",
				"details": err.Error(),
			},
		})
		return
	}

	items := h.ranking.Rank(req.Candidates, req.SubscribedChannels, req.RecentTopics)

	c.JSON(http.StatusOK, gin.H{
		"data": models.RankResponse{
			RequestID: uuid.New().String(),
			Items:     items,
		},
	})
}
