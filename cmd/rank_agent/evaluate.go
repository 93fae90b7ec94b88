package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/evaluation"
	"github.com/jonathan/candidate-ranker/internal/logger"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate candidates against a job offline",
	Long:  "Evaluates candidates from JSON files against a job's weighted criteria, without a database, producing a ranked outcome JSON.",
	RunE:  runEvaluate,
}

var (
	evaluateJob        string
	evaluateCandidates string
	evaluateProposals  string
	evaluateConfig     string
	evaluateOutput     string
	evaluateVerbose    bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateJob, "job", "j", "", "Path to input job JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateCandidates, "candidates", "a", "", "Path to input candidates JSON file (required)")
	evaluateCmd.Flags().StringVarP(&evaluateProposals, "proposals", "p", "", "Path to input weight proposals JSON file")
	evaluateCmd.Flags().StringVarP(&evaluateConfig, "config", "c", "", "Path to JSON config file with scoring defaults")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	evaluateCmd.Flags().BoolVarP(&evaluateVerbose, "verbose", "v", false, "Print formatted evaluation summaries")

	if err := evaluateCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := evaluateCmd.MarkFlagRequired("candidates"); err != nil {
		panic(fmt.Sprintf("failed to mark candidates flag as required: %v", err))
	}

	rootCmd.AddCommand(evaluateCmd)
}

// jobDocument is the offline job file layout.
type jobDocument struct {
	Title      string                          `json:"title"`
	Criteria   types.CriteriaSet               `json:"criteria"`
	Thresholds map[string]types.AttributeValue `json:"thresholds,omitempty"`
}

// candidateDocument is one entry of the offline candidates file. The ID is
// optional; entries without one are assigned a fresh UUID.
type candidateDocument struct {
	ID         string             `json:"id,omitempty"`
	Name       string             `json:"name"`
	Email      string             `json:"email,omitempty"`
	Attributes types.AttributeSet `json:"attributes"`
}

// evaluateOutcome is the offline output layout: the ranking annotated with
// candidate names, plus the consensus weights and exclusions.
type evaluateOutcome struct {
	Job         string              `json:"job"`
	Weights     types.WeightSet     `json:"weights"`
	Ranking     []rankedCandidate   `json:"ranking"`
	FilteredOut []filteredCandidate `json:"filtered_out,omitempty"`
	Skipped     map[string][]string `json:"skipped_criteria,omitempty"`
}

type rankedCandidate struct {
	types.RankedEntry
	Name string `json:"name"`
}

type filteredCandidate struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	// 1. Load and validate the job document
	jobContent, err := os.ReadFile(evaluateJob)
	if err != nil {
		return fmt.Errorf("failed to read job file %s: %w", evaluateJob, err)
	}
	if err := schemas.ValidateJobDocument(jobContent); err != nil {
		return fmt.Errorf("job file is invalid: %w", err)
	}

	var jobDoc jobDocument
	if err := json.Unmarshal(jobContent, &jobDoc); err != nil {
		return fmt.Errorf("failed to unmarshal job JSON: %w", err)
	}
	jobDoc.Criteria.Normalize()
	if err := jobDoc.Criteria.Validate(); err != nil {
		return fmt.Errorf("job criteria are invalid: %w", err)
	}
	job := types.Job{
		ID:         uuid.New(),
		Title:      jobDoc.Title,
		Criteria:   jobDoc.Criteria,
		Thresholds: jobDoc.Thresholds,
	}

	// 2. Load and validate the candidates document
	candidates, names, err := loadCandidates(evaluateCandidates)
	if err != nil {
		return err
	}

	// 3. Load proposals when given
	var proposals []types.WeightProposal
	if evaluateProposals != "" {
		proposals, err = loadProposals(evaluateProposals)
		if err != nil {
			return err
		}
	}

	// 4. Resolve scoring defaults
	cfg := types.DefaultScoringConfig()
	if evaluateConfig != "" {
		fileCfg, err := config.LoadConfig(evaluateConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Validate(); err != nil {
			return err
		}
		cfg = fileCfg.ScoringConfig()
	}

	log, err := logger.New(false, evaluateVerbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// 5. Run the evaluation pipeline
	outcome, err := evaluation.New(log).Evaluate(context.Background(), job, candidates, proposals, cfg)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if evaluateVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintJob(&job)
		printer.PrintConsensusWeights(outcome.Weights, len(proposals))
		printer.PrintFilteredOut(outcome.FilteredOut, names)
		printer.PrintRanking(outcome.Ranking, names)
	}

	// 6. Marshal the annotated outcome
	result := evaluateOutcome{
		Job:     job.Title,
		Weights: outcome.Weights,
		Ranking: make([]rankedCandidate, 0, len(outcome.Ranking)),
	}
	for _, entry := range outcome.Ranking {
		result.Ranking = append(result.Ranking, rankedCandidate{RankedEntry: entry, Name: names[entry.ID]})
	}
	for _, id := range outcome.FilteredOut {
		result.FilteredOut = append(result.FilteredOut, filteredCandidate{ID: id, Name: names[id]})
	}
	for id, candidateEval := range outcome.Evaluations {
		if len(candidateEval.SkippedCriteria) > 0 {
			if result.Skipped == nil {
				result.Skipped = make(map[string][]string)
			}
			result.Skipped[names[id]] = candidateEval.SkippedCriteria
		}
	}

	jsonOutput, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal outcome to JSON: %w", err)
	}

	// 7. Write the output
	if evaluateOutput == "" {
		fmt.Println(string(jsonOutput))
		return nil
	}
	outputDir := filepath.Dir(evaluateOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}
	if err := os.WriteFile(evaluateOutput, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write outcome to %s: %w", evaluateOutput, err)
	}

	fmt.Printf("Ranked %d candidates to %s\n", len(result.Ranking), evaluateOutput)
	return nil
}

// loadCandidates reads, validates, and parses the candidates file, assigning
// UUIDs to entries without one.
func loadCandidates(path string) ([]types.Candidate, map[uuid.UUID]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read candidates file %s: %w", path, err)
	}
	if err := schemas.ValidateCandidatesDocument(content); err != nil {
		return nil, nil, fmt.Errorf("candidates file is invalid: %w", err)
	}

	var docs []candidateDocument
	if err := json.Unmarshal(content, &docs); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal candidates JSON: %w", err)
	}

	candidates := make([]types.Candidate, 0, len(docs))
	names := make(map[uuid.UUID]string, len(docs))
	for _, doc := range docs {
		id := uuid.New()
		if doc.ID != "" {
			parsed, err := uuid.Parse(doc.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("candidate %q has invalid id %q: %w", doc.Name, doc.ID, err)
			}
			id = parsed
		}
		candidates = append(candidates, types.Candidate{
			ID:         id,
			Name:       doc.Name,
			Email:      doc.Email,
			Attributes: doc.Attributes,
		})
		names[id] = doc.Name
	}
	return candidates, names, nil
}

// loadProposals reads, validates, and parses the weight proposals file.
func loadProposals(path string) ([]types.WeightProposal, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read proposals file %s: %w", path, err)
	}
	if err := schemas.ValidateProposalsDocument(content); err != nil {
		return nil, fmt.Errorf("proposals file is invalid: %w", err)
	}

	var proposals []types.WeightProposal
	if err := json.Unmarshal(content, &proposals); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proposals JSON: %w", err)
	}
	return proposals, nil
}
