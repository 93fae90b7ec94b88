package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func proposal(evaluator string, weights map[string]float64) types.WeightProposal {
	return types.WeightProposal{Evaluator: evaluator, Weights: weights}
}

func TestConsensus_EmptyProposalSet(t *testing.T) {
	engine := NewEngine(2.0)

	weights := engine.Consensus(nil)

	require.NotNil(t, weights)
	assert.Empty(t, weights)
}

func TestConsensus_SingleProposalPassesThroughNormalized(t *testing.T) {
	engine := NewEngine(2.0)

	weights := engine.Consensus([]types.WeightProposal{
		proposal("alice", map[string]float64{"experience": 2, "skills": 2}),
	})

	assert.InDelta(t, 0.5, weights["experience"], 1e-9)
	assert.InDelta(t, 0.5, weights["skills"], 1e-9)
}

func TestConsensus_OutlierExcluded(t *testing.T) {
	// Three evaluators agree on 0.5, one says 0.9. The MAD is 0, so only
	// exact-median opinions survive and the consensus lands on 0.5 before
	// normalization across criteria.
	engine := NewEngine(2.0)

	weights := engine.Consensus([]types.WeightProposal{
		proposal("a", map[string]float64{"experience": 0.5, "skills": 0.5}),
		proposal("b", map[string]float64{"experience": 0.5, "skills": 0.5}),
		proposal("c", map[string]float64{"experience": 0.5, "skills": 0.5}),
		proposal("d", map[string]float64{"experience": 0.9, "skills": 0.5}),
	})

	// Raw consensus is 0.5 per criterion; normalization splits evenly.
	assert.InDelta(t, 0.5, weights["experience"], 1e-9)
	assert.InDelta(t, 0.5, weights["skills"], 1e-9)
	assert.InDelta(t, 1.0, weights.Sum(), 1e-9)
}

func TestConsensus_TwoProposalsSkipOutlierCheck(t *testing.T) {
	// With only two opinions there is no outlier to reject; both average.
	engine := NewEngine(2.0)

	weights := engine.Consensus([]types.WeightProposal{
		proposal("a", map[string]float64{"experience": 0.2}),
		proposal("b", map[string]float64{"experience": 0.8}),
	})

	// Single criterion normalizes to 1 regardless of the raw average.
	assert.InDelta(t, 1.0, weights["experience"], 1e-9)
}

func TestConsensus_UnionOfCriteria(t *testing.T) {
	// Evaluators who skip a criterion contribute no opinion on it.
	engine := NewEngine(2.0)

	weights := engine.Consensus([]types.WeightProposal{
		proposal("a", map[string]float64{"experience": 0.6}),
		proposal("b", map[string]float64{"skills": 0.4}),
	})

	require.Len(t, weights, 2)
	assert.InDelta(t, 0.6, weights["experience"], 1e-9)
	assert.InDelta(t, 0.4, weights["skills"], 1e-9)
	assert.InDelta(t, 1.0, weights.Sum(), 1e-9)
}

func TestConsensus_NormalizesAcrossCriteria(t *testing.T) {
	engine := NewEngine(2.0)

	weights := engine.Consensus([]types.WeightProposal{
		proposal("a", map[string]float64{"experience": 3, "skills": 1}),
	})

	assert.InDelta(t, 0.75, weights["experience"], 1e-9)
	assert.InDelta(t, 0.25, weights["skills"], 1e-9)
}

func TestConsensus_ZeroSumLeftUnnormalized(t *testing.T) {
	engine := NewEngine(2.0)

	weights := engine.Consensus([]types.WeightProposal{
		proposal("a", map[string]float64{"experience": 0, "skills": 0}),
	})

	assert.Equal(t, 0.0, weights["experience"])
	assert.Equal(t, 0.0, weights["skills"])
}

func TestRejectOutliers_SpreadSampleRejectsFarOutlier(t *testing.T) {
	// Nonzero MAD: [0.4, 0.5, 0.6, 2.0] has median 0.55 and MAD 0.1, so
	// the band is 2.0*0.1*1.4826 ≈ 0.297. The 2.0 opinion deviates by
	// 1.45 and is rejected outright.
	engine := NewEngine(2.0)

	survivors := engine.rejectOutliers([]float64{0.4, 0.5, 0.6, 2.0})

	assert.NotContains(t, survivors, 2.0)
	assert.Contains(t, survivors, 0.5)
	assert.Contains(t, survivors, 0.6)
}

func TestRejectOutliers_KeepsExactMedianWhenMADZero(t *testing.T) {
	engine := NewEngine(2.0)

	survivors := engine.rejectOutliers([]float64{0.5, 0.5, 0.5, 0.9})

	assert.Equal(t, []float64{0.5, 0.5, 0.5}, survivors)
}

func TestRejectOutliers_BandRejectingEveryoneKeepsFullSample(t *testing.T) {
	// A polarized even-length sample under a tight tolerance rejects every
	// opinion: [0, 1, 0, 1] has median 0.5, every deviation is 0.5, and the
	// band is 1.0*0.5*1.4826 ≈ 0.741, so each normality is ≈ 0.33 ≤ 0.5.
	// Rejecting everyone discriminates nothing; the full sample is kept.
	engine := NewEngine(1.0)

	survivors := engine.rejectOutliers([]float64{0, 1, 0, 1})

	assert.Equal(t, []float64{0, 1, 0, 1}, survivors)
}

func TestRejectOutliers_AllSurviveWhenTight(t *testing.T) {
	engine := NewEngine(2.0)

	survivors := engine.rejectOutliers([]float64{0.48, 0.5, 0.52})

	assert.Len(t, survivors, 3)
}

func TestMedian_EvenAndOdd(t *testing.T) {
	assert.Equal(t, 0.5, median([]float64{0.9, 0.5, 0.1}))
	assert.Equal(t, 0.45, median([]float64{0.4, 0.5, 0.3, 0.6}))
}
