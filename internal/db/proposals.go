package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// UpsertProposal stores one evaluator's weight proposal for a job,
// replacing the evaluator's previous proposal if any.
func (db *DB) UpsertProposal(ctx context.Context, jobID uuid.UUID, proposal types.WeightProposal) error {
	weightsJSON, err := json.Marshal(proposal.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal proposal weights: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO weight_proposals (job_id, evaluator, weights)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (job_id, evaluator) DO UPDATE SET weights = $3, created_at = NOW()`,
		jobID, proposal.Evaluator, weightsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert proposal: %w", err)
	}
	return nil
}

// ListProposals returns all weight proposals for a job, oldest first.
func (db *DB) ListProposals(ctx context.Context, jobID uuid.UUID) ([]types.WeightProposal, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT evaluator, weights FROM weight_proposals
		 WHERE job_id = $1 ORDER BY created_at ASC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	proposals := make([]types.WeightProposal, 0)
	for rows.Next() {
		var p types.WeightProposal
		var weightsJSON []byte
		if err := rows.Scan(&p.Evaluator, &weightsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		if err := json.Unmarshal(weightsJSON, &p.Weights); err != nil {
			return nil, fmt.Errorf("failed to parse stored weights: %w", err)
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

// DeleteProposals removes all proposals for a job. Returns the count removed.
func (db *DB) DeleteProposals(ctx context.Context, jobID uuid.UUID) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM weight_proposals WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete proposals: %w", err)
	}
	return tag.RowsAffected(), nil
}
