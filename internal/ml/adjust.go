package ml

// AdjustVector moves current toward (or away from, for negative rates)
// target using a saturating update: the closer a weight already is to 1.0
// the smaller the effective step, so a handful of strong interactions
// cannot dominate the whole profile.
//
// Topic keys present in current but absent from target decay by decayFactor
// when the rate is positive (positive learning competes away irrelevant
// topics) and are dropped once they fall below pruneBelow.
func AdjustVector(current *ContentVector, target ContentVector, rate, decayFactor, pruneBelow float64) {
	if current.Topics == nil {
		current.Topics = make(map[string]float64)
	}

	for key, targetWeight := range target.Topics {
		cur := current.Topics[key]
		saturationPenalty := (1 - cur) * (1 - cur)
		effectiveRate := rate * saturationPenalty
		current.Topics[key] = Clamp01(cur + (targetWeight-cur)*effectiveRate)
	}

	if rate > 0 {
		for key, weight := range current.Topics {
			if _, ok := target.Topics[key]; ok {
				continue
			}
			decayed := weight * decayFactor
			if decayed < pruneBelow {
				delete(current.Topics, key)
			} else {
				current.Topics[key] = decayed
			}
		}
	}

	current.Duration = adjustScalar(current.Duration, target.Duration, rate)
	current.Pacing = adjustScalar(current.Pacing, target.Pacing, rate)
	current.Complexity = adjustScalar(current.Complexity, target.Complexity, rate)
	current.IsLive = adjustScalar(current.IsLive, target.IsLive, rate)
}

func adjustScalar(current, target, rate float64) float64 {
	saturationPenalty := (1 - current) * (1 - current)
	return Clamp01(current + (target-current)*rate*saturationPenalty)
}
