package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// CreateCandidate inserts a candidate and returns the stored record.
func (db *DB) CreateCandidate(ctx context.Context, name, email string, attributes types.AttributeSet) (*types.Candidate, error) {
	attrsJSON, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}

	var c types.Candidate
	var attrsOut []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO candidates (name, email, attributes)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, attributes, created_at, updated_at`,
		name, email, attrsJSON,
	).Scan(&c.ID, &c.Name, &c.Email, &attrsOut, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	if err := json.Unmarshal(attrsOut, &c.Attributes); err != nil {
		return nil, fmt.Errorf("failed to parse stored attributes: %w", err)
	}
	return &c, nil
}

// GetCandidate retrieves a candidate by ID. Returns nil when not found.
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	var c types.Candidate
	var attrsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, attributes, created_at, updated_at
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &attrsJSON, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if err := json.Unmarshal(attrsJSON, &c.Attributes); err != nil {
		return nil, fmt.Errorf("failed to parse stored attributes: %w", err)
	}
	return &c, nil
}

// ListCandidates returns candidates ordered by creation time, newest first.
func (db *DB) ListCandidates(ctx context.Context, limit, offset int) ([]types.Candidate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, email, attributes, created_at, updated_at
		 FROM candidates ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]types.Candidate, 0)
	for rows.Next() {
		var c types.Candidate
		var attrsJSON []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &attrsJSON, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if err := json.Unmarshal(attrsJSON, &c.Attributes); err != nil {
			return nil, fmt.Errorf("failed to parse stored attributes: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// ListAllCandidates pages through the whole candidates table in batches of
// batchSize and returns every row. Evaluation runs need the complete set, not
// one page.
func (db *DB) ListAllCandidates(ctx context.Context, batchSize int) ([]types.Candidate, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	all := make([]types.Candidate, 0, batchSize)
	for offset := 0; ; offset += batchSize {
		batch, err := db.ListCandidates(ctx, batchSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < batchSize {
			return all, nil
		}
	}
}

// UpdateCandidate replaces a candidate's name, email, and attributes.
// Returns nil when the candidate does not exist.
func (db *DB) UpdateCandidate(ctx context.Context, id uuid.UUID, name, email string, attributes types.AttributeSet) (*types.Candidate, error) {
	attrsJSON, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}

	var c types.Candidate
	var attrsOut []byte
	err = db.pool.QueryRow(ctx,
		`UPDATE candidates SET name = $1, email = $2, attributes = $3, updated_at = NOW()
		 WHERE id = $4
		 RETURNING id, name, email, attributes, created_at, updated_at`,
		name, email, attrsJSON, id,
	).Scan(&c.ID, &c.Name, &c.Email, &attrsOut, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}

	if err := json.Unmarshal(attrsOut, &c.Attributes); err != nil {
		return nil, fmt.Errorf("failed to parse stored attributes: %w", err)
	}
	return &c, nil
}

// DeleteCandidate removes a candidate. Returns whether a row was deleted.
func (db *DB) DeleteCandidate(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete candidate: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
