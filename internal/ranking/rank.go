// Package ranking total-orders scored candidates and gates candidate sets
// through fuzzily tolerant hard filters.
package ranking

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// Scored is a candidate identity with its aggregate score and confidence,
// ready to be ranked.
type Scored struct {
	ID         uuid.UUID
	Score      float64
	Confidence float64
}

// Rank sorts the candidates into a total order and annotates rank and
// percentile. The primary order is descending score; when two scores sit
// within tieEpsilon of each other the higher confidence wins. Equal
// score/confidence pairs keep their input order (the sort is stable), so a
// given input order always produces the same output order.
//
// Percentile is relative standing in the sorted set: the top entry gets 100,
// the bottom entry 0, and a lone candidate 100.
func Rank(candidates []Scored, tieEpsilon float64) []types.RankedEntry {
	sorted := append([]Scored(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Score-sorted[j].Score) < tieEpsilon {
			if sorted[i].Confidence != sorted[j].Confidence {
				return sorted[i].Confidence > sorted[j].Confidence
			}
			return false
		}
		return sorted[i].Score > sorted[j].Score
	})

	entries := make([]types.RankedEntry, len(sorted))
	n := len(sorted)
	for i, c := range sorted {
		percentile := 100.0
		if n > 1 {
			percentile = 100.0 * (1.0 - float64(i)/float64(n-1))
		}
		entries[i] = types.RankedEntry{
			ID:         c.ID,
			Score:      c.Score,
			Confidence: c.Confidence,
			Rank:       i + 1,
			Percentile: percentile,
		}
	}
	return entries
}
