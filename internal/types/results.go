// Package types provides type definitions for structured data used throughout the candidate-ranker system.
package types

import "github.com/google/uuid"

// ScoreResult is the universal scoring output: a graded degree of match and
// the trust placed in the inputs that produced it. Confidence is not a
// probability; it defaults to 1.0 when the caller supplies none.
type ScoreResult struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Certain wraps a score with full confidence.
func Certain(score float64) ScoreResult {
	return ScoreResult{Score: score, Confidence: 1.0}
}

// RankedEntry is one candidate's position in a ranked evaluation: the
// aggregate score and confidence it was ranked on, its 1-based rank, and its
// percentile standing (100 = top of the set).
type RankedEntry struct {
	ID         uuid.UUID `json:"id"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
	Rank       int       `json:"rank"`
	Percentile float64   `json:"percentile"`
}

// CandidateEvaluation is the full engine output for a single candidate:
// the per-criterion fuzzy scores, the aggregate, and any criteria that were
// skipped because their scoring call failed (degenerate shape parameters).
type CandidateEvaluation struct {
	CandidateID     uuid.UUID              `json:"candidate_id"`
	CriterionScores map[string]ScoreResult `json:"criterion_scores"`
	Aggregate       ScoreResult            `json:"aggregate"`
	SkippedCriteria []string               `json:"skipped_criteria,omitempty"`
}

// EvaluationOutcome is the engine output for a whole candidate set under one
// job: per-candidate evaluations (filtered candidates excluded), the ranked
// order, the consensus weights used, and the IDs removed by the hard filter.
type EvaluationOutcome struct {
	Evaluations map[uuid.UUID]CandidateEvaluation `json:"evaluations"`
	Ranking     []RankedEntry                     `json:"ranking"`
	Weights     WeightSet                         `json:"weights"`
	FilteredOut []uuid.UUID                       `json:"filtered_out,omitempty"`
}
