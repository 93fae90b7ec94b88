// Package consensus reduces multiple independent criterion weight proposals
// to a single weighting, Delphi-style: per-criterion outlier rejection via
// median absolute deviation, averaging of the survivors, and renormalization.
package consensus

import (
	"math"
	"sort"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// madConsistency scales MAD into a consistent estimator of the standard
// deviation under normality.
const madConsistency = 1.4826

// minProposalsForOutlierCheck is the smallest per-criterion sample where
// outlier rejection is meaningful; below it every value survives.
const minProposalsForOutlierCheck = 3

// Engine computes consensus weights from evaluator proposals.
type Engine struct {
	// OutlierTolerance widens the band of deviations still considered
	// normal. Larger values reject fewer proposals.
	OutlierTolerance float64
}

// NewEngine creates a consensus engine with the given outlier tolerance.
func NewEngine(outlierTolerance float64) *Engine {
	return &Engine{OutlierTolerance: outlierTolerance}
}

// Consensus reconciles the proposals into one normalized weight set.
//
// For every criterion named by any proposal it gathers the proposed values
// (absent criteria are "no opinion" and are skipped), rejects outliers when
// three or more opinions exist, and averages the survivors. The final map is
// renormalized to sum to 1; if the raw sum is 0 the map is returned
// unnormalized. Zero proposals yield an empty map, which callers must treat
// as "weights undefined", not as a zero-weighted job.
func (e *Engine) Consensus(proposals []types.WeightProposal) types.WeightSet {
	if len(proposals) == 0 {
		return types.WeightSet{}
	}

	names := criterionNames(proposals)
	raw := make(types.WeightSet, len(names))
	for _, name := range names {
		values := gatherValues(proposals, name)
		if len(values) == 0 {
			continue
		}
		survivors := values
		if len(values) >= minProposalsForOutlierCheck {
			survivors = e.rejectOutliers(values)
		}
		raw[name] = mean(survivors)
	}

	return raw.Normalized()
}

// rejectOutliers keeps the values whose deviation from the median is
// "normal" under a linear-decay membership over the MAD band: a value
// survives if max(0, 1 - dev/(tolerance*MAD*1.4826)) exceeds 0.5. With a
// zero MAD only values exactly at the median survive.
func (e *Engine) rejectOutliers(values []float64) []float64 {
	med := median(values)

	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - med)
	}
	mad := median(deviations)

	if mad == 0 {
		survivors := make([]float64, 0, len(values))
		for _, v := range values {
			if v == med {
				survivors = append(survivors, v)
			}
		}
		return survivors
	}

	band := e.OutlierTolerance * mad * madConsistency
	survivors := make([]float64, 0, len(values))
	for i, v := range values {
		normality := 1 - deviations[i]/band
		if normality > 0.5 {
			survivors = append(survivors, v)
		}
	}
	if len(survivors) == 0 {
		// A band that rejects every opinion discriminates nothing; keep
		// the full sample.
		return values
	}
	return survivors
}

// criterionNames returns the sorted union of criterion names across all
// proposals. Sorting keeps the map construction order deterministic.
func criterionNames(proposals []types.WeightProposal) []string {
	seen := make(map[string]bool)
	for _, p := range proposals {
		for name := range p.Weights {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func gatherValues(proposals []types.WeightProposal, name string) []float64 {
	values := make([]float64, 0, len(proposals))
	for _, p := range proposals {
		if v, ok := p.Weights[name]; ok {
			values = append(values, v)
		}
	}
	return values
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
