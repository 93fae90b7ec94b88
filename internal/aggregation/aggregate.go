// Package aggregation combines per-criterion fuzzy scores into a single
// candidate score under one of two philosophies: confidence-weighted
// weighted-sum (WSM) or ordered weighted averaging (OWA), with optional
// alpha-cut filtering of low-confidence inputs beforehand.
package aggregation

import (
	"fmt"
	"sort"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Aggregate applies the configured alpha cut and dispatches to the
// configured aggregation method. Confidences absent from the map default
// to 1.0.
func Aggregate(scores map[string]float64, weights types.WeightSet, confidences map[string]float64, cfg types.ScoringConfig) (types.ScoreResult, error) {
	if cfg.AlphaCutThreshold > 0 {
		scores = AlphaCut(scores, confidences, cfg.AlphaCutThreshold)
	}

	switch cfg.AggregationMethod {
	case types.AggregationOWA:
		return OWA(scores, weights, confidences, cfg.StrategyProfile, cfg.OWAWeights)
	default:
		return WSM(scores, weights, confidences), nil
	}
}

// AlphaCut returns a copy of scores without the criteria whose confidence
// falls below threshold. Dropped criteria no longer participate in either
// the numerator or denominator of the downstream aggregation, which
// redistributes their weight among the survivors.
func AlphaCut(scores map[string]float64, confidences map[string]float64, threshold float64) map[string]float64 {
	kept := make(map[string]float64, len(scores))
	for name, score := range scores {
		if confidenceFor(confidences, name) >= threshold {
			kept[name] = score
		}
	}
	return kept
}

// WSM computes the confidence-weighted weighted sum
// Σ(score·weight·confidence) / Σ(weight·confidence) over the criteria
// present in both the score map and the declared weights. The output
// confidence is the mean confidence across all declared weight keys,
// including criteria that contributed no score. A zero effective weight
// yields score 0 rather than a division by zero.
func WSM(scores map[string]float64, weights types.WeightSet, confidences map[string]float64) types.ScoreResult {
	numerator := 0.0
	denominator := 0.0
	for name, weight := range weights {
		score, ok := scores[name]
		if !ok {
			continue
		}
		c := confidenceFor(confidences, name)
		numerator += score * weight * c
		denominator += weight * c
	}

	result := types.ScoreResult{Confidence: declaredConfidenceMean(weights, confidences)}
	if denominator > 0 {
		result.Score = numerator / denominator
	}
	return result
}

// OWA computes the ordered weighted average: scores are sorted descending
// and each position receives an ordering weight from the strategy profile,
// while every criterion keeps its own declared weight. Ordering weights
// attach to score positions, not criterion identities, so how much credit
// extreme values get is decoupled from how important each criterion is.
func OWA(scores map[string]float64, weights types.WeightSet, confidences map[string]float64, profile types.StrategyProfile, custom []float64) (types.ScoreResult, error) {
	type pair struct {
		name  string
		score float64
	}

	pairs := make([]pair, 0, len(scores))
	for name, score := range scores {
		if _, ok := weights[name]; !ok {
			continue
		}
		pairs = append(pairs, pair{name: name, score: score})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].name < pairs[j].name
	})

	result := types.ScoreResult{Confidence: declaredConfidenceMean(weights, confidences)}
	n := len(pairs)
	if n == 0 {
		return result, nil
	}

	ordering, err := orderingWeights(profile, custom, n)
	if err != nil {
		return types.ScoreResult{}, err
	}

	numerator := 0.0
	denominator := 0.0
	for i, p := range pairs {
		w := weights[p.name]
		numerator += p.score * w * ordering[i]
		denominator += w * ordering[i]
	}
	if denominator > 0 {
		result.Score = numerator / denominator
	}
	return result, nil
}

// orderingWeights builds the positional weight vector for n sorted scores.
// Optimistic front-loads weight on the highest scores, pessimistic mirrors
// it onto the lowest, balanced is uniform, and custom uses the caller's
// vector, which must have exactly n entries.
func orderingWeights(profile types.StrategyProfile, custom []float64, n int) ([]float64, error) {
	weights := make([]float64, n)
	total := float64(n*(n+1)) / 2

	switch profile {
	case types.ProfileOptimistic:
		for i := 0; i < n; i++ {
			weights[i] = float64(n-i) / total
		}
	case types.ProfilePessimistic:
		for i := 0; i < n; i++ {
			weights[i] = float64(i+1) / total
		}
	case types.ProfileCustom:
		if len(custom) != n {
			return nil, fmt.Errorf("custom OWA weights have %d entries, need %d", len(custom), n)
		}
		copy(weights, custom)
	default: // balanced
		for i := 0; i < n; i++ {
			weights[i] = 1.0 / float64(n)
		}
	}

	return weights, nil
}

// declaredConfidenceMean averages confidence over every declared weight key,
// not just the criteria that produced scores.
func declaredConfidenceMean(weights types.WeightSet, confidences map[string]float64) float64 {
	if len(weights) == 0 {
		return 0
	}
	total := 0.0
	for name := range weights {
		total += confidenceFor(confidences, name)
	}
	return total / float64(len(weights))
}

func confidenceFor(confidences map[string]float64, name string) float64 {
	if confidences == nil {
		return 1.0
	}
	if c, ok := confidences[name]; ok {
		return c
	}
	return 1.0
}
