package ml

import "math"

// durationFallbackScale bounds the duration-only proxy used when two topic
// maps share no keys.
const durationFallbackScale = 0.3

// CosineSimilarity computes the cosine of two content vectors over their
// shared topic keys. When no keys intersect it falls back to a weak
// duration-only proxy so degenerate comparisons still order sensibly.
// Symmetric, and bounded to [0,1] for normalized inputs.
func CosineSimilarity(a, b ContentVector) float64 {
	smaller, larger := a.Topics, b.Topics
	if len(larger) < len(smaller) {
		smaller, larger = larger, smaller
	}

	dot := 0.0
	shared := false
	for key, wa := range smaller {
		if wb, ok := larger[key]; ok {
			dot += wa * wb
			shared = true
		}
	}

	if !shared {
		return durationFallbackScale * (1 - math.Abs(a.Duration-b.Duration))
	}

	magA, magB := a.Magnitude(), b.Magnitude()
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (magA * magB)
}
