package similarity

import (
	"math"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Weighting of the two components of an array similarity score. Coverage
// (how much of the smaller array found a partner) dominates match quality
// (how good the matched pairs were).
const (
	matchQualityWeight = 0.4
	coverageWeight     = 0.6
)

// thresholdEpsilon absorbs float rounding when comparing a cell score
// against the match threshold.
const thresholdEpsilon = 1e-9

// ArrayOptions tunes ArraySimilarity.
type ArrayOptions struct {
	// CaseSensitive disables case folding when comparing text elements.
	CaseSensitive bool
	// Partial grades text pairs by edit distance instead of exact equality.
	Partial bool
	// Threshold is the minimum cell score for a pair to count as a match.
	Threshold float64
}

// DefaultArrayOptions returns the standard matching options: case-folded,
// partial text matching with a 0.7 match threshold.
func DefaultArrayOptions() ArrayOptions {
	return ArrayOptions{CaseSensitive: false, Partial: true, Threshold: 0.7}
}

// ArraySimilarity returns a graded similarity in [0,1] between two value
// lists. It builds the pairwise score matrix, walks the longer list as
// primary to maximize coverage, and greedily pairs each element with its
// best still-unmatched partner above the threshold. The result blends mean
// matched-pair quality (0.4) with coverage of the smaller list (0.6).
//
// The greedy pass is deliberately not an optimal assignment; its exact
// outputs are part of the scoring contract.
func ArraySimilarity(source, target []types.AttributeValue, opts ArrayOptions) float64 {
	if len(source) == 0 && len(target) == 0 {
		return 1.0
	}
	if len(source) == 0 || len(target) == 0 {
		return 0.0
	}

	primary, secondary := source, target
	if len(target) > len(source) {
		primary, secondary = target, source
	}

	matched := make([]bool, len(secondary))
	matches := 0
	qualitySum := 0.0

	for _, p := range primary {
		bestIdx := -1
		bestScore := 0.0
		for j, s := range secondary {
			if matched[j] {
				continue
			}
			score := cellScore(p, s, opts)
			if score > bestScore {
				bestScore = score
				bestIdx = j
			}
		}
		if bestIdx >= 0 && bestScore >= opts.Threshold-thresholdEpsilon {
			matched[bestIdx] = true
			matches++
			qualitySum += bestScore
		}
	}

	if matches == 0 {
		return 0.0
	}

	matchQuality := qualitySum / float64(matches)
	smaller := len(source)
	if len(target) < smaller {
		smaller = len(target)
	}
	coverage := float64(matches) / float64(smaller)
	if coverage > 1.0 {
		coverage = 1.0
	}

	return matchQualityWeight*matchQuality + coverageWeight*coverage
}

// cellScore grades a single element pair: text pairs by exact or partial
// string similarity, numeric pairs by relative distance, everything else by
// exact equality.
func cellScore(a, b types.AttributeValue, opts ArrayOptions) float64 {
	if aText, ok := a.AsText(); ok {
		if bText, ok := b.AsText(); ok {
			return textCellScore(aText, bText, opts)
		}
	}

	if aNum, ok := a.AsNumber(); ok {
		if bNum, ok := b.AsNumber(); ok {
			return numericCellScore(aNum, bNum)
		}
	}

	if a.Equal(b) {
		return 1.0
	}
	return 0.0
}

func textCellScore(a, b string, opts ArrayOptions) float64 {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if !opts.CaseSensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	if !opts.Partial {
		if a == b {
			return 1.0
		}
		return 0.0
	}
	return levenshteinRatio(a, b)
}

func numericCellScore(a, b float64) float64 {
	if a == b {
		return 1.0
	}
	larger := math.Max(math.Abs(a), math.Abs(b))
	if larger == 0 {
		return 1.0
	}
	score := 1.0 - math.Abs(a-b)/larger
	if score < 0 {
		return 0.0
	}
	return score
}
