// Package evaluation orchestrates a full engine pass over a candidate set:
// weight consensus, hard filtering, per-candidate fuzzy scoring and
// aggregation, and final ranking.
package evaluation

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-ranker/internal/aggregation"
	"github.com/jonathan/candidate-ranker/internal/consensus"
	"github.com/jonathan/candidate-ranker/internal/fuzzy"
	"github.com/jonathan/candidate-ranker/internal/ranking"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// defaultConcurrency bounds how many candidates are scored at once.
// Candidate passes are independent, so the limit is purely about not
// oversubscribing the scheduler on large batches.
const defaultConcurrency = 8

// Evaluator runs the stateless evaluation pipeline. It holds no per-request
// state; identical inputs always produce identical outputs.
type Evaluator struct {
	logger      *zap.Logger
	concurrency int
}

// New creates an Evaluator logging through the given logger.
func New(logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{logger: logger, concurrency: defaultConcurrency}
}

// Evaluate scores every candidate against the job under cfg and returns the
// full outcome: consensus weights, per-candidate evaluations, and the ranked
// order. Hard-filtered candidates appear only in FilteredOut.
//
// Weights come from the evaluator proposals when any are given; otherwise
// the job's finalized criteria weights apply. Criteria whose scoring call
// fails (degenerate membership shapes) are logged with candidate and
// criterion context, recorded in SkippedCriteria, and the rest of the batch
// proceeds.
func (e *Evaluator) Evaluate(ctx context.Context, job types.Job, candidates []types.Candidate, proposals []types.WeightProposal, cfg types.ScoringConfig) (*types.EvaluationOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}

	weights := e.resolveWeights(job, proposals, cfg)
	if len(weights) == 0 {
		return nil, fmt.Errorf("job %s has no criteria weights and no proposals supplied them", job.ID)
	}

	passed, excluded := ranking.HardFilter(candidates, job.Thresholds, cfg.FilterTolerance)
	e.logger.Debug("hard filter applied",
		zap.String("job_id", job.ID.String()),
		zap.Int("passed", len(passed)),
		zap.Int("excluded", len(excluded)))

	targets := job.Criteria.Targets()

	// Candidates are scored concurrently; each goroutine writes only its
	// own slot, and the ranking pass below runs single-threaded over the
	// complete result set.
	evaluations := make([]types.CandidateEvaluation, len(passed))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.concurrency)
	for i, candidate := range passed {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			evaluation, err := e.scoreCandidate(candidate, targets, weights, cfg)
			if err != nil {
				return fmt.Errorf("candidate %s: %w", candidate.ID, err)
			}
			evaluations[i] = evaluation
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	scored := make([]ranking.Scored, len(evaluations))
	byID := make(map[uuid.UUID]types.CandidateEvaluation, len(evaluations))
	for i, evaluation := range evaluations {
		scored[i] = ranking.Scored{
			ID:         evaluation.CandidateID,
			Score:      evaluation.Aggregate.Score,
			Confidence: evaluation.Aggregate.Confidence,
		}
		byID[evaluation.CandidateID] = evaluation
	}

	outcome := &types.EvaluationOutcome{
		Evaluations: byID,
		Ranking:     ranking.Rank(scored, cfg.TieEpsilon),
		Weights:     weights,
	}
	for _, c := range excluded {
		outcome.FilteredOut = append(outcome.FilteredOut, c.ID)
	}
	return outcome, nil
}

// resolveWeights prefers consensus over proposals; an empty proposal set
// means "weights undefined" and falls through to the job's finalized
// criteria weights.
func (e *Evaluator) resolveWeights(job types.Job, proposals []types.WeightProposal, cfg types.ScoringConfig) types.WeightSet {
	if len(proposals) > 0 {
		engine := consensus.NewEngine(cfg.OutlierTolerance)
		if weights := engine.Consensus(proposals); len(weights) > 0 {
			return weights
		}
	}
	return job.Criteria.Weights()
}

// scoreCandidate runs the fuzzy scorer per criterion and aggregates. A
// missing attribute scores 0 at full confidence, so the miss drags the
// weighted aggregate down instead of redistributing the criterion's weight;
// a criterion without a target contributes no score.
func (e *Evaluator) scoreCandidate(candidate types.Candidate, targets map[string]types.AttributeValue, weights types.WeightSet, cfg types.ScoringConfig) (types.CandidateEvaluation, error) {
	scores := make(map[string]float64, len(weights))
	confidences := make(map[string]float64, len(weights))
	criterionScores := make(map[string]types.ScoreResult, len(weights))
	var skipped []string

	for _, name := range sortedNames(weights) {
		target, hasTarget := targets[name]
		if !hasTarget {
			continue
		}

		value, present := candidate.Attributes.Get(name)
		if !present {
			scores[name] = 0
			confidences[name] = 1.0
			criterionScores[name] = types.Certain(0)
			continue
		}

		score, err := fuzzy.Score(value, target, cfg)
		if err != nil {
			e.logger.Warn("criterion scoring failed, skipping",
				zap.String("candidate_id", candidate.ID.String()),
				zap.String("criterion", name),
				zap.Error(err))
			skipped = append(skipped, name)
			continue
		}
		scores[name] = score
		confidences[name] = 1.0
		criterionScores[name] = types.Certain(score)
	}

	aggregate, err := aggregation.Aggregate(scores, weights, confidences, cfg)
	if err != nil {
		return types.CandidateEvaluation{}, fmt.Errorf("aggregation failed: %w", err)
	}

	return types.CandidateEvaluation{
		CandidateID:     candidate.ID,
		CriterionScores: criterionScores,
		Aggregate:       aggregate,
		SkippedCriteria: skipped,
	}, nil
}

func sortedNames(weights types.WeightSet) []string {
	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
