// Package fuzzy implements the fuzzy scorer: it grades how well a candidate
// attribute matches a criterion target by dispatching on the value kinds to
// the configured membership function or similarity metric.
package fuzzy

import (
	"github.com/jonathan/candidate-ranker/internal/membership"
	"github.com/jonathan/candidate-ranker/internal/similarity"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// Score grades value against target in [0,1] under the given configuration.
//
// An absent value scores 0. Number pairs go through the configured
// membership kind with shape parameters derived symmetrically around the
// target and scaled by the fuzzy factor. Text pairs use edit-distance
// similarity, list pairs use greedy array matching, and flag pairs use exact
// match. Any other combination falls back to exact-equality 0/1 scoring;
// mismatched kinds are a leniency policy, never an error.
//
// The only error condition is degenerate membership shape parameters (for
// example a gaussian sigma of 0 derived from a zero target), which is fatal
// to this single call.
func Score(value, target types.AttributeValue, cfg types.ScoringConfig) (float64, error) {
	if value.IsAbsent() {
		return 0, nil
	}

	if x, ok := value.AsNumber(); ok {
		if t, ok := target.AsNumber(); ok {
			return scoreNumeric(x, t, cfg)
		}
	}

	if s, ok := value.AsText(); ok {
		if ts, ok := target.AsText(); ok {
			return similarity.StringSimilarity(s, ts), nil
		}
	}

	if list, ok := value.AsList(); ok {
		if targetList, ok := target.AsList(); ok {
			return similarity.ArraySimilarity(list, targetList, similarity.DefaultArrayOptions()), nil
		}
	}

	if b, ok := value.AsFlag(); ok {
		if tb, ok := target.AsFlag(); ok {
			if b == tb {
				return 1, nil
			}
			return 0, nil
		}
	}

	// Mismatched kinds: exact-equality fallback.
	if value.Equal(target) {
		return 1, nil
	}
	return 0, nil
}

// scoreNumeric derives the membership shape from (target, fuzzyFactor) and
// evaluates it at x. The shapes are symmetric around the target: triangular
// feet at ±factor, trapezoidal plateau at ±factor/2 with feet at ±factor,
// gaussian sigma of target*factor.
func scoreNumeric(x, target float64, cfg types.ScoringConfig) (float64, error) {
	f := cfg.FuzzyFactor

	switch cfg.MembershipKind {
	case types.MembershipTriangular:
		return membership.Triangular(x, target*(1-f), target, target*(1+f))
	case types.MembershipTrapezoidal:
		return membership.Trapezoidal(x,
			target*(1-f), target*(1-f/2), target*(1+f/2), target*(1+f))
	case types.MembershipGaussian:
		return membership.Gaussian(x, target, target*f)
	default:
		return membership.Simple(x, target, f), nil
	}
}
