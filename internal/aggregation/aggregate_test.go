package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func TestWSM_WeightedMean(t *testing.T) {
	scores := map[string]float64{"experience": 1.0, "skills": 0.5}
	weights := types.WeightSet{"experience": 0.6, "skills": 0.4}

	result := WSM(scores, weights, nil)

	assert.InDelta(t, 0.8, result.Score, 1e-9)
	assert.Equal(t, 1.0, result.Confidence)
}

func TestWSM_ScaleInvariantUnderWeightRescaling(t *testing.T) {
	scores := map[string]float64{"experience": 0.9, "skills": 0.4, "culture": 0.7}
	weights := types.WeightSet{"experience": 0.5, "skills": 0.3, "culture": 0.2}
	scaled := types.WeightSet{"experience": 5, "skills": 3, "culture": 2}

	base := WSM(scores, weights, nil)
	rescaled := WSM(scores, scaled, nil)

	assert.InDelta(t, base.Score, rescaled.Score, 1e-9)
}

func TestWSM_ConfidenceWeightsTheSum(t *testing.T) {
	scores := map[string]float64{"experience": 1.0, "skills": 0.0}
	weights := types.WeightSet{"experience": 0.5, "skills": 0.5}
	confidences := map[string]float64{"experience": 1.0, "skills": 0.5}

	result := WSM(scores, weights, confidences)

	// (1*0.5*1 + 0*0.5*0.5) / (0.5*1 + 0.5*0.5) = 0.5/0.75
	assert.InDelta(t, 2.0/3.0, result.Score, 1e-9)
	assert.InDelta(t, 0.75, result.Confidence, 1e-9)
}

func TestWSM_ConfidenceMeanCoversAllDeclaredKeys(t *testing.T) {
	// "culture" never produced a score but is a declared criterion; its
	// default confidence of 1.0 still enters the mean.
	scores := map[string]float64{"experience": 0.8}
	weights := types.WeightSet{"experience": 0.5, "culture": 0.5}
	confidences := map[string]float64{"experience": 0.4}

	result := WSM(scores, weights, confidences)

	assert.InDelta(t, 0.7, result.Confidence, 1e-9)
}

func TestWSM_DegenerateWeightSet(t *testing.T) {
	scores := map[string]float64{"experience": 0.9}
	weights := types.WeightSet{"experience": 0.0}

	result := WSM(scores, weights, nil)

	assert.Equal(t, 0.0, result.Score)
}

func TestWSM_NoMatchingCriteria(t *testing.T) {
	scores := map[string]float64{"other": 0.9}
	weights := types.WeightSet{"experience": 1.0}

	result := WSM(scores, weights, nil)

	assert.Equal(t, 0.0, result.Score)
}

func TestOWA_BalancedEqualsUnweightedMean(t *testing.T) {
	scores := map[string]float64{"a": 0.9, "b": 0.6, "c": 0.3}
	weights := types.WeightSet{"a": 1.0 / 3.0, "b": 1.0 / 3.0, "c": 1.0 / 3.0}

	result, err := OWA(scores, weights, nil, types.ProfileBalanced, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, result.Score, 1e-9)
}

func TestOWA_OptimisticFavorsHighScores(t *testing.T) {
	scores := map[string]float64{"a": 0.9, "b": 0.5, "c": 0.1}
	weights := types.WeightSet{"a": 1.0 / 3.0, "b": 1.0 / 3.0, "c": 1.0 / 3.0}

	optimistic, err := OWA(scores, weights, nil, types.ProfileOptimistic, nil)
	require.NoError(t, err)
	balanced, err := OWA(scores, weights, nil, types.ProfileBalanced, nil)
	require.NoError(t, err)
	pessimistic, err := OWA(scores, weights, nil, types.ProfilePessimistic, nil)
	require.NoError(t, err)

	assert.Greater(t, optimistic.Score, balanced.Score)
	assert.Less(t, pessimistic.Score, balanced.Score)
}

func TestOWA_OptimisticPositionalWeights(t *testing.T) {
	// n=3: positional weights 3/6, 2/6, 1/6 over the sorted scores.
	scores := map[string]float64{"a": 1.0, "b": 0.5, "c": 0.0}
	weights := types.WeightSet{"a": 1.0 / 3.0, "b": 1.0 / 3.0, "c": 1.0 / 3.0}

	result, err := OWA(scores, weights, nil, types.ProfileOptimistic, nil)
	require.NoError(t, err)

	// (1*3 + 0.5*2 + 0*1) / (3+2+1) with the uniform criterion weights
	// cancelling out.
	assert.InDelta(t, 4.0/6.0, result.Score, 1e-9)
}

func TestOWA_OrderingIsByValueNotIdentity(t *testing.T) {
	// The heavily weighted criterion scores low. Its declared weight stays
	// attached to it, but the optimistic ordering weight goes to the high
	// score regardless of which criterion produced it.
	scores := map[string]float64{"important": 0.2, "minor": 1.0}
	weights := types.WeightSet{"important": 0.9, "minor": 0.1}

	result, err := OWA(scores, weights, nil, types.ProfileOptimistic, nil)
	require.NoError(t, err)

	// Sorted: minor(1.0) gets ow 2/3, important(0.2) gets ow 1/3.
	// (1*0.1*2/3 + 0.2*0.9*1/3) / (0.1*2/3 + 0.9*1/3)
	want := (1.0*0.1*2.0/3.0 + 0.2*0.9*1.0/3.0) / (0.1*2.0/3.0 + 0.9*1.0/3.0)
	assert.InDelta(t, want, result.Score, 1e-9)
}

func TestOWA_CustomWeights(t *testing.T) {
	scores := map[string]float64{"a": 1.0, "b": 0.0}
	weights := types.WeightSet{"a": 0.5, "b": 0.5}

	result, err := OWA(scores, weights, nil, types.ProfileCustom, []float64{1.0, 0.0})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.Score, 1e-9)
}

func TestOWA_CustomWeightsWrongLength(t *testing.T) {
	scores := map[string]float64{"a": 1.0, "b": 0.0}
	weights := types.WeightSet{"a": 0.5, "b": 0.5}

	_, err := OWA(scores, weights, nil, types.ProfileCustom, []float64{1.0})
	assert.Error(t, err)
}

func TestOWA_EmptyScores(t *testing.T) {
	result, err := OWA(nil, types.WeightSet{"a": 1.0}, nil, types.ProfileBalanced, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
}

func TestAlphaCut_DropsLowConfidence(t *testing.T) {
	scores := map[string]float64{"a": 0.9, "b": 0.8}
	confidences := map[string]float64{"a": 0.9, "b": 0.2}

	kept := AlphaCut(scores, confidences, 0.5)

	assert.Len(t, kept, 1)
	assert.Contains(t, kept, "a")
}

func TestAlphaCut_DefaultConfidenceSurvives(t *testing.T) {
	scores := map[string]float64{"a": 0.9}

	kept := AlphaCut(scores, nil, 0.5)

	assert.Len(t, kept, 1)
}

func TestAggregate_AlphaCutRedistributesWeight(t *testing.T) {
	// With the low-confidence "skills" criterion cut, the full weight
	// shifts onto "experience" and the aggregate equals its score.
	cfg := types.DefaultScoringConfig()
	cfg.AlphaCutThreshold = 0.5

	scores := map[string]float64{"experience": 0.8, "skills": 0.1}
	weights := types.WeightSet{"experience": 0.5, "skills": 0.5}
	confidences := map[string]float64{"experience": 1.0, "skills": 0.2}

	result, err := Aggregate(scores, weights, confidences, cfg)
	require.NoError(t, err)

	assert.InDelta(t, 0.8, result.Score, 1e-9)
}

func TestAggregate_DispatchesOWA(t *testing.T) {
	cfg := types.DefaultScoringConfig()
	cfg.AggregationMethod = types.AggregationOWA
	cfg.StrategyProfile = types.ProfileBalanced

	scores := map[string]float64{"a": 1.0, "b": 0.0}
	weights := types.WeightSet{"a": 0.5, "b": 0.5}

	result, err := Aggregate(scores, weights, nil, cfg)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, result.Score, 1e-9)
}
