package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector exposes engine activity to Prometheus: rank traffic and
// latency, interactions by kind, and profile persistence outcomes.
type MetricsCollector struct {
	rankRequests prometheus.Counter
	rankLatency  prometheus.Histogram
	rankedItems  prometheus.Histogram

	interactions *prometheus.CounterVec

	profileSaves        prometheus.Counter
	profileSaveFailures prometheus.Counter
}

// NewMetricsCollector registers the engine metrics with reg. Tests pass a
// fresh registry to avoid duplicate registration.
func NewMetricsCollector(reg prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(reg)
	return &MetricsCollector{
		rankRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowfeed_rank_requests_total",
			Help: "Total number of rank requests",
		}),
		rankLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowfeed_rank_duration_seconds",
			Help:    "Rank request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		rankedItems: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "flowfeed_ranked_items",
			Help:    "Number of items returned per rank request",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200},
		}),
		interactions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "flowfeed_interactions_total",
			Help: "Interactions applied to the profile, by kind",
		}, []string{"kind"}),
		profileSaves: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowfeed_profile_saves_total",
			Help: "Successful profile persistence writes",
		}),
		profileSaveFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "flowfeed_profile_save_failures_total",
			Help: "Failed profile persistence writes",
		}),
	}
}

// ObserveRank records one rank request.
func (mc *MetricsCollector) ObserveRank(duration time.Duration, rankedCount int) {
	mc.rankRequests.Inc()
	mc.rankLatency.Observe(duration.Seconds())
	mc.rankedItems.Observe(float64(rankedCount))
}

// RecordInteraction counts one applied interaction by kind.
func (mc *MetricsCollector) RecordInteraction(kind string) {
	mc.interactions.WithLabelValues(kind).Inc()
}

// RecordProfileSave counts one persistence attempt.
func (mc *MetricsCollector) RecordProfileSave(err error) {
	if err != nil {
		mc.profileSaveFailures.Inc()
		return
	}
	mc.profileSaves.Inc()
}
