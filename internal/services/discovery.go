package services

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/pkg/models"
)

const maxDiscoveryQueries = 8

// defaultQueries are used when the profile carries no signal at all.
var defaultQueries = []string{
	"trending this week",
	"new music releases",
	"mini documentary",
	"learn something new",
}

// personaSuffixes qualify the user's top interest with a persona-flavored
// angle on it.
var personaSuffixes = map[models.FlowPersona]string{
	models.PersonaNewcomer:   "popular",
	models.PersonaAudiophile: "live session",
	models.PersonaLivewire:   "live now",
	models.PersonaNightOwl:   "ambient",
	models.PersonaBinger:     "marathon",
	models.PersonaScholar:    "explained",
	models.PersonaDeepDiver:  "full documentary",
	models.PersonaSkimmer:    "in 60 seconds",
	models.PersonaSpecialist: "deep dive",
	models.PersonaExplorer:   "hidden gems",
}

// macroCategories are broad content areas checked for under-representation;
// the least-covered one feeds the exploration query.
var macroCategories = []string{
	"science", "history", "music", "gaming",
	"cooking", "travel", "technology", "sports",
}

// DiscoveryService turns the learned profile into search queries for the
// discovery surface.
type DiscoveryService struct {
	store   *ProfileStore
	persona *PersonaClassifier
	logger  *logrus.Logger

	now func() time.Time
}

func NewDiscoveryService(store *ProfileStore, persona *PersonaClassifier, logger *logrus.Logger) *DiscoveryService {
	return &DiscoveryService{
		store:   store,
		persona: persona,
		logger:  logger,
		now:     time.Now,
	}
}

// GenerateQueries combines top interests, pairwise bridge combinations,
// the current time bucket's dominant topic, a persona-specific angle and
// one exploration query. With no learned signal it falls back to preferred
// topics, then to fixed defaults.
func (ds *DiscoveryService) GenerateQueries() []string {
	snap := ds.store.Snapshot()

	if len(snap.Core.Topics) == 0 {
		if len(snap.PreferredTopics) > 0 {
			preferred := sortedKeys(snap.PreferredTopics)
			if len(preferred) > maxDiscoveryQueries {
				preferred = preferred[:maxDiscoveryQueries]
			}
			return preferred
		}
		return append([]string(nil), defaultQueries...)
	}

	top := snap.Core.TopTopics(3)
	queries := make([]string, 0, maxDiscoveryQueries)
	queries = append(queries, top...)

	// Bridge queries: the intersection of two interests often surfaces
	// content neither would alone.
	for i := 0; i < len(top); i++ {
		for j := i + 1; j < len(top); j++ {
			queries = append(queries, top[i]+" "+top[j])
		}
	}

	bucket := snap.Bucket(BucketForHour(ds.now().Hour()))
	if dominant := bucket.PrimaryTopic(); dominant != "" {
		queries = append(queries, dominant)
	}

	persona := ds.persona.Classify(snap)
	if suffix, ok := personaSuffixes[persona]; ok && len(top) > 0 {
		queries = append(queries, top[0]+" "+suffix)
	}

	queries = append(queries, explorationQuery(snap.Core.Topics))

	return dedupe(queries, maxDiscoveryQueries)
}

// explorationQuery picks the macro category least represented in the
// profile, nudging the feed away from an echo chamber.
func explorationQuery(topics map[string]float64) string {
	best := macroCategories[0]
	bestWeight := categoryWeight(topics, best)
	for _, cat := range macroCategories[1:] {
		if w := categoryWeight(topics, cat); w < bestWeight {
			best, bestWeight = cat, w
		}
	}
	return best + " essentials"
}

func categoryWeight(topics map[string]float64, category string) float64 {
	total := 0.0
	for topic, weight := range topics {
		if strings.Contains(topic, category) {
			total += weight
		}
	}
	return total
}

func dedupe(queries []string, limit int) []string {
	seen := make(map[string]bool, len(queries))
	out := make([]string, 0, limit)
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out
}
