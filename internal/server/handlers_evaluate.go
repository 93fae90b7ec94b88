package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// evaluateBatchSize is the page size used when loading the full candidate
// set for an evaluation run.
const evaluateBatchSize = 500

// EvaluateJobRequest optionally overrides the server's scoring defaults for
// one evaluation run.
type EvaluateJobRequest struct {
	Scoring *types.ScoringConfig `json:"scoring,omitempty"`
}

// EvaluateJobResponse represents the result of an evaluation run
type EvaluateJobResponse struct {
	JobID       uuid.UUID           `json:"job_id"`
	Ranking     []types.RankedEntry `json:"ranking"`
	Weights     types.WeightSet     `json:"weights"`
	FilteredOut []uuid.UUID         `json:"filtered_out,omitempty"`
	Evaluated   int                 `json:"evaluated"`
}

// handleEvaluateJob runs the full evaluation pipeline for a job: it loads the
// job, all candidates, and any weight proposals, scores and ranks the
// candidates, persists the outcome, and returns the ranking.
func (s *Server) handleEvaluateJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	cfg := s.scoring
	var req EvaluateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Scoring != nil {
		cfg = *req.Scoring
	}
	if err := cfg.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid scoring config: "+err.Error())
		return
	}

	ctx := r.Context()
	job, err := s.db.GetJob(ctx, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	candidates, err := s.db.ListAllCandidates(ctx, evaluateBatchSize)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if len(candidates) == 0 {
		s.errorResponse(w, http.StatusUnprocessableEntity, "No candidates to evaluate")
		return
	}

	proposals, err := s.db.ListProposals(ctx, jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	outcome, err := s.evaluator.Evaluate(ctx, *job, candidates, proposals, cfg)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Evaluation failed: "+err.Error())
		return
	}

	if err := s.db.SaveEvaluations(ctx, jobID, outcome); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, EvaluateJobResponse{
		JobID:       jobID,
		Ranking:     outcome.Ranking,
		Weights:     outcome.Weights,
		FilteredOut: outcome.FilteredOut,
		Evaluated:   len(outcome.Evaluations),
	})
}

// handleGetRankings returns a job's stored ranking from the last evaluation
func (s *Server) handleGetRankings(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	evaluations, err := s.db.ListEvaluations(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":   jobID,
		"rankings": evaluations,
		"count":    len(evaluations),
	})
}
