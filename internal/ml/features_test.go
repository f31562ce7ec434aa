package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowtv/flowfeed/pkg/models"
)

func TestExtractFeatures_TopicsAndBigrams(t *testing.T) {
	item := models.VideoItem{
		ID:              "v1",
		Title:           "Python Machine Learning Tutorial",
		ChannelID:       "ch1",
		ChannelName:     "Sentdex",
		DurationSeconds: 600,
	}

	vec := ExtractFeatures(item)

	assert.Contains(t, vec.Topics, "python")
	assert.Contains(t, vec.Topics, "machine")
	assert.Contains(t, vec.Topics, "learning")
	assert.Contains(t, vec.Topics, "tutorial")
	assert.Contains(t, vec.Topics, "sentdex")
	assert.Contains(t, vec.Topics, "python machine")
	assert.Contains(t, vec.Topics, "machine learning")
	assert.Contains(t, vec.Topics, "learning tutorial")

	// Channel identity outweighs a single title token after normalization
	assert.Greater(t, vec.Topics["sentdex"], vec.Topics["python"])

	assert.InDelta(t, 1.0, vec.Magnitude(), 1e-9)
}

func TestExtractFeatures_Scalars(t *testing.T) {
	t.Run("ten minute video", func(t *testing.T) {
		vec := ExtractFeatures(models.VideoItem{
			ID:              "v1",
			Title:           "Python Machine Learning Tutorial",
			ChannelID:       "ch1",
			DurationSeconds: 600,
		})

		assert.InDelta(t, 0.5, vec.Duration, 1e-9)
		assert.InDelta(t, 0.5, vec.Pacing, 1e-9)
		assert.InDelta(t, 32.0/60.0, vec.Complexity, 1e-9)
		assert.Equal(t, 0.0, vec.IsLive)
	})

	t.Run("duration saturates at twenty minutes", func(t *testing.T) {
		vec := ExtractFeatures(models.VideoItem{
			ID:              "v2",
			Title:           "x",
			ChannelID:       "ch1",
			DurationSeconds: 7200,
		})

		assert.Equal(t, 1.0, vec.Duration)
		assert.Equal(t, 0.0, vec.Pacing)
	})

	t.Run("live stream with unknown duration", func(t *testing.T) {
		vec := ExtractFeatures(models.VideoItem{
			ID:        "v3",
			Title:     "24/7 lofi radio",
			ChannelID: "ch2",
			IsLive:    true,
		})

		assert.Equal(t, 1.0, vec.Duration)
		assert.Equal(t, 1.0, vec.IsLive)
	})

	t.Run("unknown duration defaults to five minutes", func(t *testing.T) {
		vec := ExtractFeatures(models.VideoItem{
			ID:        "v4",
			Title:     "quick tip",
			ChannelID: "ch3",
		})

		assert.InDelta(t, 0.25, vec.Duration, 1e-9)
	})

	t.Run("empty title yields no topics", func(t *testing.T) {
		vec := ExtractFeatures(models.VideoItem{
			ID:              "v5",
			ChannelID:       "ch4",
			DurationSeconds: 60,
		})

		assert.Empty(t, vec.Topics)
		assert.Equal(t, 0.0, vec.Complexity)
	})
}
