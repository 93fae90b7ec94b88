package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func textList(items ...string) []types.AttributeValue {
	list, _ := types.TextList(items...).AsList()
	return list
}

func numberList(items ...float64) []types.AttributeValue {
	elems := make([]types.AttributeValue, 0, len(items))
	for _, n := range items {
		elems = append(elems, types.Number(n))
	}
	return elems
}

func TestArraySimilarity_IdenticalArrays(t *testing.T) {
	skills := textList("go", "postgres", "kubernetes")
	assert.InDelta(t, 1.0, ArraySimilarity(skills, skills, DefaultArrayOptions()), 1e-9)
}

func TestArraySimilarity_BothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, ArraySimilarity(nil, nil, DefaultArrayOptions()))
}

func TestArraySimilarity_OneEmpty(t *testing.T) {
	skills := textList("go")
	assert.Equal(t, 0.0, ArraySimilarity(skills, nil, DefaultArrayOptions()))
	assert.Equal(t, 0.0, ArraySimilarity(nil, skills, DefaultArrayOptions()))
}

func TestArraySimilarity_ExtraSourceElementsDoNotPenalize(t *testing.T) {
	// Coverage is measured against the smaller array, so a candidate with
	// more skills than required still scores a full match.
	source := textList("go", "python", "java")
	target := textList("go")
	assert.InDelta(t, 1.0, ArraySimilarity(source, target, DefaultArrayOptions()), 1e-9)
}

func TestArraySimilarity_PartialTextMatch(t *testing.T) {
	source := textList("javascrip")
	target := textList("javascript")

	// Pair quality 0.9 (one edit over ten runes), full coverage.
	want := 0.4*0.9 + 0.6*1.0
	assert.InDelta(t, want, ArraySimilarity(source, target, DefaultArrayOptions()), 1e-9)
}

func TestArraySimilarity_ThresholdRejectsWeakPairs(t *testing.T) {
	source := textList("go")
	target := textList("rust")
	assert.Equal(t, 0.0, ArraySimilarity(source, target, DefaultArrayOptions()))
}

func TestArraySimilarity_MatchedColumnNotReused(t *testing.T) {
	// Both source elements want the single close target; only one may
	// claim it, and "golang" vs "go" falls below the threshold.
	source := textList("go", "golang")
	target := textList("go", "go")

	want := 0.4*1.0 + 0.6*0.5
	assert.InDelta(t, want, ArraySimilarity(source, target, DefaultArrayOptions()), 1e-9)
}

func TestArraySimilarity_NumericPairs(t *testing.T) {
	source := numberList(10)
	target := numberList(8)

	// Cell score 1-2/10 = 0.8, full coverage.
	want := 0.4*0.8 + 0.6*1.0
	assert.InDelta(t, want, ArraySimilarity(source, target, DefaultArrayOptions()), 1e-9)
}

func TestArraySimilarity_ExactModeIsBinary(t *testing.T) {
	opts := DefaultArrayOptions()
	opts.Partial = false

	assert.InDelta(t, 1.0, ArraySimilarity(textList("Go"), textList("go"), opts), 1e-9)

	opts.CaseSensitive = true
	assert.Equal(t, 0.0, ArraySimilarity(textList("Go"), textList("go"), opts))
}

func TestArraySimilarity_MixedKindsUseEquality(t *testing.T) {
	source := []types.AttributeValue{types.Flag(true)}
	target := []types.AttributeValue{types.Flag(true)}
	assert.InDelta(t, 1.0, ArraySimilarity(source, target, DefaultArrayOptions()), 1e-9)

	target = []types.AttributeValue{types.Flag(false)}
	assert.Equal(t, 0.0, ArraySimilarity(source, target, DefaultArrayOptions()))
}
