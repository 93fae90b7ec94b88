// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJob outputs a human-readable summary of the job under evaluation.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Criteria: %d\n", len(job.Criteria.Criteria)))
	sb.WriteString("\n")

	count := min(len(job.Criteria.Criteria), maxItemsToShow)
	for i := 0; i < count; i++ {
		c := job.Criteria.Criteria[i]
		sb.WriteString(fmt.Sprintf("  • %s (%.2f)", c.Name, c.Weight))
		if c.Target != nil && !c.Target.IsAbsent() {
			sb.WriteString(fmt.Sprintf("  → %s", c.Target.String()))
		}
		sb.WriteString("\n")
	}
	if len(job.Criteria.Criteria) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Criteria.Criteria)-maxItemsToShow))
	}

	if len(job.Thresholds) > 0 {
		sb.WriteString(fmt.Sprintf("\nHard thresholds: %d\n", len(job.Thresholds)))
	}

	p.printBox("JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintConsensusWeights outputs the weight set that survived consensus,
// heaviest criteria first.
func (p *Printer) PrintConsensusWeights(weights types.WeightSet, proposalCount int) {
	if len(weights) == 0 {
		return
	}

	names := make([]string, 0, len(weights))
	for name := range weights {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if weights[names[i]] != weights[names[j]] {
			return weights[names[i]] > weights[names[j]]
		}
		return names[i] < names[j]
	})

	var sb strings.Builder
	if proposalCount > 0 {
		sb.WriteString(fmt.Sprintf("Built from %d proposals\n\n", proposalCount))
	}
	for _, name := range names {
		bar := strings.Repeat("█", int(weights[name]*20+0.5))
		sb.WriteString(fmt.Sprintf("%-24s %.3f %s\n", name, weights[name], bar))
	}

	p.printBox("CONSENSUS WEIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the ranked candidates with scores and percentiles.
// The names map is optional; entries without a name fall back to the ID.
func (p *Printer) PrintRanking(ranking []types.RankedEntry, names map[uuid.UUID]string) {
	if len(ranking) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates ranked: %d\n\n", len(ranking)))

	count := min(len(ranking), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := ranking[i]
		label := names[entry.ID]
		if label == "" {
			label = entry.ID.String()
		}
		if len(label) > 30 {
			label = label[:27] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", entry.Rank, label))
		sb.WriteString(fmt.Sprintf("    Score: %.3f  Confidence: %.2f  P%.0f\n",
			entry.Score, entry.Confidence, entry.Percentile))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranking) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(ranking)-maxItemsToShow))
	}

	p.printBox("RANKING", sb.String())
}

// PrintFilteredOut outputs the candidates excluded by hard thresholds.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFilteredOut(filtered []uuid.UUID, names map[uuid.UUID]string) {
	if len(filtered) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO CANDIDATES FILTERED OUT")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Excluded by hard thresholds: %d\n\n", len(filtered)))

	count := min(len(filtered), maxItemsToShow)
	for i := 0; i < count; i++ {
		label := names[filtered[i]]
		if label == "" {
			label = filtered[i].String()
		}
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", label))
	}
	if len(filtered) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(filtered)-maxItemsToShow))
	}

	p.printBox("HARD FILTER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs one candidate's per-criterion breakdown.
func (p *Printer) PrintEvaluation(evaluation *types.CandidateEvaluation, name string) {
	if evaluation == nil {
		return
	}
	if name == "" {
		name = evaluation.CandidateID.String()
	}

	criteria := make([]string, 0, len(evaluation.CriterionScores))
	for criterion := range evaluation.CriterionScores {
		criteria = append(criteria, criterion)
	}
	sort.Strings(criteria)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Aggregate: %.3f  Confidence: %.2f\n\n",
		evaluation.Aggregate.Score, evaluation.Aggregate.Confidence))
	for _, criterion := range criteria {
		result := evaluation.CriterionScores[criterion]
		sb.WriteString(fmt.Sprintf("  %-22s %.3f\n", criterion, result.Score))
	}
	if len(evaluation.SkippedCriteria) > 0 {
		sb.WriteString(fmt.Sprintf("\nSkipped: %s\n", strings.Join(evaluation.SkippedCriteria, ", ")))
	}

	p.printBox("EVALUATION: "+name, strings.TrimSuffix(sb.String(), "\n"))
}
