package evaluation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func target(v types.AttributeValue) *types.AttributeValue {
	return &v
}

func backendJob() types.Job {
	return types.Job{
		ID:    uuid.New(),
		Title: "Backend Engineer",
		Criteria: types.CriteriaSet{Criteria: []types.Criterion{
			{Name: "yearsOfExperience", Weight: 0.5, Target: target(types.Number(5))},
			{Name: "skills", Weight: 0.5, Target: target(types.TextList("go", "postgres"))},
		}},
		Thresholds: map[string]types.AttributeValue{
			"yearsOfExperience": types.Number(3),
		},
	}
}

func strongCandidate() types.Candidate {
	return types.Candidate{
		ID:   uuid.New(),
		Name: "strong",
		Attributes: types.AttributeSet{
			"yearsOfExperience": types.Number(5),
			"skills":            types.TextList("go", "postgres"),
		},
	}
}

func weakCandidate() types.Candidate {
	return types.Candidate{
		ID:   uuid.New(),
		Name: "weak",
		Attributes: types.AttributeSet{
			"yearsOfExperience": types.Number(3.5),
			"skills":            types.TextList("php"),
		},
	}
}

func TestEvaluate_RanksStrongCandidateFirst(t *testing.T) {
	evaluator := New(nil)
	job := backendJob()
	strong := strongCandidate()
	weak := weakCandidate()

	outcome, err := evaluator.Evaluate(context.Background(), job,
		[]types.Candidate{weak, strong}, nil, types.DefaultScoringConfig())
	require.NoError(t, err)

	require.Len(t, outcome.Ranking, 2)
	assert.Equal(t, strong.ID, outcome.Ranking[0].ID)
	assert.Equal(t, 1, outcome.Ranking[0].Rank)
	assert.InDelta(t, 1.0, outcome.Ranking[0].Score, 1e-9)
	assert.Equal(t, 100.0, outcome.Ranking[0].Percentile)
}

func TestEvaluate_HardFilterExcludesBeforeScoring(t *testing.T) {
	evaluator := New(nil)
	job := backendJob()
	underqualified := types.Candidate{
		ID:   uuid.New(),
		Name: "junior",
		Attributes: types.AttributeSet{
			// Below 3*(1-0.1) = 2.7.
			"yearsOfExperience": types.Number(2),
			"skills":            types.TextList("go"),
		},
	}

	outcome, err := evaluator.Evaluate(context.Background(), job,
		[]types.Candidate{underqualified, strongCandidate()}, nil, types.DefaultScoringConfig())
	require.NoError(t, err)

	assert.Len(t, outcome.Ranking, 1)
	require.Len(t, outcome.FilteredOut, 1)
	assert.Equal(t, underqualified.ID, outcome.FilteredOut[0])
	assert.NotContains(t, outcome.Evaluations, underqualified.ID)
}

func TestEvaluate_ProposalsOverrideJobWeights(t *testing.T) {
	evaluator := New(nil)
	job := backendJob()
	proposals := []types.WeightProposal{
		{Evaluator: "a", Weights: map[string]float64{"yearsOfExperience": 0.9, "skills": 0.1}},
		{Evaluator: "b", Weights: map[string]float64{"yearsOfExperience": 0.9, "skills": 0.1}},
	}

	outcome, err := evaluator.Evaluate(context.Background(), job,
		[]types.Candidate{strongCandidate()}, proposals, types.DefaultScoringConfig())
	require.NoError(t, err)

	assert.InDelta(t, 0.9, outcome.Weights["yearsOfExperience"], 1e-9)
	assert.InDelta(t, 0.1, outcome.Weights["skills"], 1e-9)
}

func TestEvaluate_MissingAttributePenalizesAggregate(t *testing.T) {
	evaluator := New(nil)
	job := types.Job{
		ID:    uuid.New(),
		Title: "Backend Engineer",
		Criteria: types.CriteriaSet{Criteria: []types.Criterion{
			{Name: "yearsOfExperience", Weight: 0.5, Target: target(types.Number(5))},
			{Name: "skills", Weight: 0.5, Target: target(types.TextList("go"))},
		}},
	}
	noSkills := types.Candidate{
		ID:         uuid.New(),
		Name:       "no-skills",
		Attributes: types.AttributeSet{"yearsOfExperience": types.Number(5)},
	}

	outcome, err := evaluator.Evaluate(context.Background(), job,
		[]types.Candidate{noSkills}, nil, types.DefaultScoringConfig())
	require.NoError(t, err)

	evaluation := outcome.Evaluations[noSkills.ID]
	assert.Equal(t, types.Certain(0), evaluation.CriterionScores["skills"])
	// The zero stays in the weighted sum, so the miss halves the aggregate.
	assert.InDelta(t, 0.5, evaluation.Aggregate.Score, 1e-9)
	assert.InDelta(t, 1.0, evaluation.Aggregate.Confidence, 1e-9)
}

func TestEvaluate_MissingAttributeRanksNoHigherThanPoorValue(t *testing.T) {
	evaluator := New(nil)
	job := types.Job{
		ID:    uuid.New(),
		Title: "Backend Engineer",
		Criteria: types.CriteriaSet{Criteria: []types.Criterion{
			{Name: "yearsOfExperience", Weight: 0.5, Target: target(types.Number(5))},
			{Name: "skills", Weight: 0.5, Target: target(types.TextList("go", "postgres"))},
		}},
	}
	omitted := types.Candidate{
		ID:         uuid.New(),
		Name:       "omitted",
		Attributes: types.AttributeSet{"yearsOfExperience": types.Number(5)},
	}
	poorSkills := types.Candidate{
		ID:   uuid.New(),
		Name: "poor-skills",
		Attributes: types.AttributeSet{
			"yearsOfExperience": types.Number(5),
			"skills":            types.TextList("cobol"),
		},
	}

	outcome, err := evaluator.Evaluate(context.Background(), job,
		[]types.Candidate{omitted, poorSkills}, nil, types.DefaultScoringConfig())
	require.NoError(t, err)

	omittedScore := outcome.Evaluations[omitted.ID].Aggregate.Score
	poorScore := outcome.Evaluations[poorSkills.ID].Aggregate.Score
	assert.LessOrEqual(t, omittedScore, poorScore,
		"omitting an attribute must not beat supplying a poor value")
}

func TestEvaluate_DegenerateShapeSkipsCriterionNotBatch(t *testing.T) {
	evaluator := New(nil)
	cfg := types.DefaultScoringConfig()
	cfg.MembershipKind = types.MembershipGaussian

	job := types.Job{
		ID:    uuid.New(),
		Title: "Backend Engineer",
		Criteria: types.CriteriaSet{Criteria: []types.Criterion{
			// Zero target derives sigma 0, an invalid gaussian shape.
			{Name: "noticePeriod", Weight: 0.5, Target: target(types.Number(0))},
			{Name: "yearsOfExperience", Weight: 0.5, Target: target(types.Number(5))},
		}},
	}
	candidate := types.Candidate{
		ID:   uuid.New(),
		Name: "ready",
		Attributes: types.AttributeSet{
			"noticePeriod":      types.Number(1),
			"yearsOfExperience": types.Number(5),
		},
	}

	outcome, err := evaluator.Evaluate(context.Background(), job,
		[]types.Candidate{candidate}, nil, cfg)
	require.NoError(t, err)

	evaluation := outcome.Evaluations[candidate.ID]
	assert.Equal(t, []string{"noticePeriod"}, evaluation.SkippedCriteria)
	assert.InDelta(t, 1.0, evaluation.Aggregate.Score, 1e-9)
}

func TestEvaluate_NoWeightsAnywhereFails(t *testing.T) {
	evaluator := New(nil)
	job := types.Job{ID: uuid.New(), Title: "empty"}

	_, err := evaluator.Evaluate(context.Background(), job,
		[]types.Candidate{strongCandidate()}, nil, types.DefaultScoringConfig())
	assert.Error(t, err)
}

func TestEvaluate_InvalidConfigRejected(t *testing.T) {
	evaluator := New(nil)
	cfg := types.DefaultScoringConfig()
	cfg.FuzzyFactor = 2.0

	_, err := evaluator.Evaluate(context.Background(), backendJob(),
		[]types.Candidate{strongCandidate()}, nil, cfg)
	assert.Error(t, err)
}

func TestEvaluate_Deterministic(t *testing.T) {
	evaluator := New(nil)
	job := backendJob()
	candidates := []types.Candidate{weakCandidate(), strongCandidate()}

	first, err := evaluator.Evaluate(context.Background(), job, candidates, nil, types.DefaultScoringConfig())
	require.NoError(t, err)
	second, err := evaluator.Evaluate(context.Background(), job, candidates, nil, types.DefaultScoringConfig())
	require.NoError(t, err)

	assert.Equal(t, first.Ranking, second.Ranking)
	assert.Equal(t, first.Evaluations, second.Evaluations)
}

func TestEvaluate_CancelledContext(t *testing.T) {
	evaluator := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := evaluator.Evaluate(ctx, backendJob(),
		[]types.Candidate{strongCandidate()}, nil, types.DefaultScoringConfig())
	assert.Error(t, err)
}
