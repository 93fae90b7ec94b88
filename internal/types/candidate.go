// Package types provides type definitions for structured data used throughout the candidate-ranker system.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Candidate is a person under evaluation: an identity plus the heterogeneous
// attribute data (years of experience, skill lists, interview scores, role
// titles) the engine scores against a job's criteria.
type Candidate struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email,omitempty"`
	Attributes AttributeSet `json:"attributes"`
	CreatedAt  time.Time    `json:"created_at,omitempty"`
	UpdatedAt  time.Time    `json:"updated_at,omitempty"`
}

// Job is a position with a finalized criteria set and optional hard
// thresholds candidates must clear before scoring proceeds.
type Job struct {
	ID         uuid.UUID                 `json:"id"`
	Title      string                    `json:"title"`
	Criteria   CriteriaSet               `json:"criteria"`
	Thresholds map[string]AttributeValue `json:"thresholds,omitempty"`
	CreatedAt  time.Time                 `json:"created_at,omitempty"`
	UpdatedAt  time.Time                 `json:"updated_at,omitempty"`
}

// CreateCandidateRequest represents the request to register a candidate.
type CreateCandidateRequest struct {
	Name       string       `json:"name" validate:"required,min=1"`
	Email      string       `json:"email" validate:"omitempty,email"`
	Attributes AttributeSet `json:"attributes"`
}

// CreateJobRequest represents the request to create a job.
type CreateJobRequest struct {
	Title      string                    `json:"title" validate:"required,min=1"`
	Criteria   CriteriaSet               `json:"criteria"`
	Thresholds map[string]AttributeValue `json:"thresholds,omitempty"`
}

// SubmitProposalRequest represents one evaluator's weight proposal for a job.
type SubmitProposalRequest struct {
	Evaluator string             `json:"evaluator" validate:"required,min=1"`
	Weights   map[string]float64 `json:"weights" validate:"required,min=1"`
}

// Validate validates the CreateCandidateRequest using the validator.
func (r *CreateCandidateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateJobRequest using the validator, then the
// criteria set's own invariants after normalization.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	r.Criteria.Normalize()
	return r.Criteria.Validate()
}

// Validate validates the SubmitProposalRequest using the validator.
func (r *SubmitProposalRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
