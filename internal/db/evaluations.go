package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// StoredEvaluation is one persisted candidate evaluation under a job.
type StoredEvaluation struct {
	ID              uuid.UUID                    `json:"id"`
	JobID           uuid.UUID                    `json:"job_id"`
	CandidateID     uuid.UUID                    `json:"candidate_id"`
	CriterionScores map[string]types.ScoreResult `json:"criterion_scores"`
	FinalScore      float64                      `json:"final_score"`
	ConfidenceScore float64                      `json:"confidence_score"`
	Rank            int                          `json:"rank"`
	Percentile      float64                      `json:"percentile"`
	EvaluatedAt     time.Time                    `json:"evaluated_at"`
}

// SaveEvaluations persists a full evaluation outcome for a job, replacing any
// previous evaluation of the same candidates.
func (db *DB) SaveEvaluations(ctx context.Context, jobID uuid.UUID, outcome *types.EvaluationOutcome) error {
	for _, entry := range outcome.Ranking {
		evaluation, ok := outcome.Evaluations[entry.ID]
		if !ok {
			return fmt.Errorf("ranking entry %s has no evaluation", entry.ID)
		}
		scoresJSON, err := json.Marshal(evaluation.CriterionScores)
		if err != nil {
			return fmt.Errorf("failed to marshal criterion scores: %w", err)
		}

		_, err = db.pool.Exec(ctx,
			`INSERT INTO evaluations (job_id, candidate_id, criterion_scores, final_score, confidence_score, rank, percentile)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (job_id, candidate_id) DO UPDATE SET
			   criterion_scores = $3, final_score = $4, confidence_score = $5,
			   rank = $6, percentile = $7, evaluated_at = NOW()`,
			jobID, entry.ID, scoresJSON, entry.Score, entry.Confidence, entry.Rank, entry.Percentile,
		)
		if err != nil {
			return fmt.Errorf("failed to save evaluation for candidate %s: %w", entry.ID, err)
		}
	}
	return nil
}

// ListEvaluations returns a job's stored evaluations ordered by rank.
func (db *DB) ListEvaluations(ctx context.Context, jobID uuid.UUID) ([]StoredEvaluation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, candidate_id, criterion_scores, final_score, confidence_score, rank, percentile, evaluated_at
		 FROM evaluations WHERE job_id = $1 ORDER BY rank ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	evaluations := make([]StoredEvaluation, 0)
	for rows.Next() {
		var e StoredEvaluation
		var scoresJSON []byte
		if err := rows.Scan(&e.ID, &e.JobID, &e.CandidateID, &scoresJSON,
			&e.FinalScore, &e.ConfidenceScore, &e.Rank, &e.Percentile, &e.EvaluatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		if err := json.Unmarshal(scoresJSON, &e.CriterionScores); err != nil {
			return nil, fmt.Errorf("failed to parse stored criterion scores: %w", err)
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

// DeleteEvaluations removes a job's stored evaluations. Returns the count.
func (db *DB) DeleteEvaluations(ctx context.Context, jobID uuid.UUID) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM evaluations WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete evaluations: %w", err)
	}
	return tag.RowsAffected(), nil
}
