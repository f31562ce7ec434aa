package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileValidator(t *testing.T) {
	pv, err := NewProfileValidator()
	require.NoError(t, err)

	t.Run("accepts a minimal document", func(t *testing.T) {
		result := pv.ValidateProfile([]byte(`{
			"schema_version": 2,
			"core": {"topics": {"chess": 0.5}, "duration": 0.5, "pacing": 0.5, "complexity": 0.2, "is_live": 0}
		}`))
		assert.True(t, result.Valid, "errors: %v", result.Errors)
	})

	t.Run("rejects a topic weight above one", func(t *testing.T) {
		result := pv.ValidateProfile([]byte(`{
			"schema_version": 2,
			"core": {"topics": {"chess": 1.5}}
		}`))
		assert.False(t, result.Valid)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("rejects a missing version tag", func(t *testing.T) {
		result := pv.ValidateProfile([]byte(`{"core": {}}`))
		assert.False(t, result.Valid)
	})

	t.Run("rejects a skip counter beyond the cap", func(t *testing.T) {
		result := pv.ValidateProfile([]byte(`{
			"schema_version": 2,
			"core": {},
			"consecutive_skips": 99
		}`))
		assert.False(t, result.Valid)
	})
}
