package services

import (
	"time"

	"github.com/sirupsen/logrus"
)

type HealthStatus struct {
	Status            string  `json:"status"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	TotalInteractions int     `json:"total_interactions"`
	TopicCount        int     `json:"topic_count"`
}

// HealthService reports liveness plus a small profile summary.
type HealthService struct {
	store     *ProfileStore
	logger    *logrus.Logger
	startedAt time.Time
}

func NewHealthService(store *ProfileStore, logger *logrus.Logger) *HealthService {
	return &HealthService{
		store:     store,
		logger:    logger,
		startedAt: time.Now(),
	}
}

func (hs *HealthService) Check() HealthStatus {
	snap := hs.store.Snapshot()
	return HealthStatus{
		Status:            "healthy",
		UptimeSeconds:     time.Since(hs.startedAt).Seconds(),
		TotalInteractions: snap.TotalInteractions,
		TopicCount:        len(snap.Core.Topics),
	}
}
