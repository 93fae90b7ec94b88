package ranking

import "github.com/jonathan/candidate-ranker/internal/types"

// HardFilter removes candidates that fail any of the job's hard thresholds
// before scoring proceeds. It returns the surviving candidates and the
// excluded ones.
//
// A candidate missing a thresholded attribute is excluded. Numeric
// thresholds are fuzzily relaxed: the candidate passes with
// value >= threshold*(1-tolerance). The relaxation only ever lowers the bar.
// Non-numeric thresholds require the value to meet the threshold under the
// type's natural ordering: lexicographic for text, true over false for
// flags, exact equality for anything else. A value whose kind differs from
// the threshold's is excluded.
func HardFilter(candidates []types.Candidate, thresholds map[string]types.AttributeValue, tolerance float64) (passed, excluded []types.Candidate) {
	if tolerance < 0 {
		tolerance = 0
	}
	if tolerance >= 1 {
		tolerance = 0.99
	}

	passed = make([]types.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if meetsThresholds(candidate.Attributes, thresholds, tolerance) {
			passed = append(passed, candidate)
		} else {
			excluded = append(excluded, candidate)
		}
	}
	return passed, excluded
}

func meetsThresholds(attrs types.AttributeSet, thresholds map[string]types.AttributeValue, tolerance float64) bool {
	for name, threshold := range thresholds {
		value, ok := attrs.Get(name)
		if !ok {
			return false
		}
		if !meetsThreshold(value, threshold, tolerance) {
			return false
		}
	}
	return true
}

func meetsThreshold(value, threshold types.AttributeValue, tolerance float64) bool {
	if t, ok := threshold.AsNumber(); ok {
		v, ok := value.AsNumber()
		if !ok {
			return false
		}
		return v >= t*(1-tolerance)
	}

	if t, ok := threshold.AsText(); ok {
		v, ok := value.AsText()
		if !ok {
			return false
		}
		return v >= t
	}

	if t, ok := threshold.AsFlag(); ok {
		v, ok := value.AsFlag()
		if !ok {
			return false
		}
		// true >= false: only a false value against a true threshold fails.
		return v || !t
	}

	return value.Equal(threshold)
}
