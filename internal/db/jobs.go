package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// CreateJob inserts a job with its criteria and optional thresholds.
func (db *DB) CreateJob(ctx context.Context, title string, criteria types.CriteriaSet, thresholds map[string]types.AttributeValue) (*types.Job, error) {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal criteria: %w", err)
	}
	var thresholdsJSON []byte
	if thresholds != nil {
		thresholdsJSON, err = json.Marshal(thresholds)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal thresholds: %w", err)
		}
	}

	var j types.Job
	var criteriaOut, thresholdsOut []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, criteria, thresholds)
		 VALUES ($1, $2, $3)
		 RETURNING id, title, criteria, thresholds, created_at, updated_at`,
		title, criteriaJSON, thresholdsJSON,
	).Scan(&j.ID, &j.Title, &criteriaOut, &thresholdsOut, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := unmarshalJob(&j, criteriaOut, thresholdsOut); err != nil {
		return nil, err
	}
	return &j, nil
}

// GetJob retrieves a job by ID. Returns nil when not found.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var j types.Job
	var criteriaJSON, thresholdsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, title, criteria, thresholds, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&j.ID, &j.Title, &criteriaJSON, &thresholdsJSON, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if err := unmarshalJob(&j, criteriaJSON, thresholdsJSON); err != nil {
		return nil, err
	}
	return &j, nil
}

// ListJobs returns jobs ordered by creation time, newest first.
func (db *DB) ListJobs(ctx context.Context, limit, offset int) ([]types.Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, criteria, thresholds, created_at, updated_at
		 FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]types.Job, 0)
	for rows.Next() {
		var j types.Job
		var criteriaJSON, thresholdsJSON []byte
		if err := rows.Scan(&j.ID, &j.Title, &criteriaJSON, &thresholdsJSON, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		if err := unmarshalJob(&j, criteriaJSON, thresholdsJSON); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// UpdateJob replaces a job's title, criteria, and thresholds.
// Returns nil when the job does not exist.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, title string, criteria types.CriteriaSet, thresholds map[string]types.AttributeValue) (*types.Job, error) {
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal criteria: %w", err)
	}
	var thresholdsJSON []byte
	if thresholds != nil {
		thresholdsJSON, err = json.Marshal(thresholds)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal thresholds: %w", err)
		}
	}

	var j types.Job
	var criteriaOut, thresholdsOut []byte
	err = db.pool.QueryRow(ctx,
		`UPDATE jobs SET title = $1, criteria = $2, thresholds = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING id, title, criteria, thresholds, created_at, updated_at`,
		title, criteriaJSON, thresholdsJSON, id,
	).Scan(&j.ID, &j.Title, &criteriaOut, &thresholdsOut, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	if err := unmarshalJob(&j, criteriaOut, thresholdsOut); err != nil {
		return nil, err
	}
	return &j, nil
}

// DeleteJob removes a job. Returns whether a row was deleted.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func unmarshalJob(j *types.Job, criteriaJSON, thresholdsJSON []byte) error {
	if err := json.Unmarshal(criteriaJSON, &j.Criteria); err != nil {
		return fmt.Errorf("failed to parse stored criteria: %w", err)
	}
	if thresholdsJSON != nil {
		if err := json.Unmarshal(thresholdsJSON, &j.Thresholds); err != nil {
			return fmt.Errorf("failed to parse stored thresholds: %w", err)
		}
	}
	return nil
}
