// Package types provides type definitions for structured data used throughout the candidate-ranker system.
package types

import (
	"fmt"
	"math"
)

// weightSumTolerance is the floating-point slack allowed when checking that
// a finalized criteria set's weights sum to 1.
const weightSumTolerance = 0.001

// Criterion is a single named evaluation axis with its relative importance
// and an optional ideal target the candidate's attribute is scored against.
type Criterion struct {
	Name   string          `json:"name"`
	Weight float64         `json:"weight"`
	Target *AttributeValue `json:"target,omitempty"`
}

// CriteriaSet is a job's ordered list of criteria. A finalized set keeps its
// weights normalized so they sum to 1; call Normalize after any mutation.
type CriteriaSet struct {
	Criteria []Criterion `json:"criteria"`
}

// Normalize rescales all weights so they sum to 1. A set whose raw weights
// sum to 0 is left untouched.
func (cs *CriteriaSet) Normalize() {
	total := 0.0
	for _, c := range cs.Criteria {
		total += c.Weight
	}
	if total == 0 {
		return
	}
	for i := range cs.Criteria {
		cs.Criteria[i].Weight /= total
	}
}

// Validate checks that names are unique and non-empty, weights are
// non-negative, and the weights of a non-empty set sum to 1 within tolerance.
func (cs *CriteriaSet) Validate() error {
	seen := make(map[string]bool, len(cs.Criteria))
	total := 0.0
	for _, c := range cs.Criteria {
		if c.Name == "" {
			return fmt.Errorf("criterion name must not be empty")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate criterion name: %s", c.Name)
		}
		seen[c.Name] = true
		if c.Weight < 0 {
			return fmt.Errorf("criterion %s has negative weight %f", c.Name, c.Weight)
		}
		total += c.Weight
	}
	if len(cs.Criteria) > 0 && math.Abs(total-1.0) > weightSumTolerance {
		return fmt.Errorf("criteria weights sum to %.4f, must sum to 1.0", total)
	}
	return nil
}

// Weights returns the criterion name to weight mapping of the set.
func (cs *CriteriaSet) Weights() WeightSet {
	ws := make(WeightSet, len(cs.Criteria))
	for _, c := range cs.Criteria {
		ws[c.Name] = c.Weight
	}
	return ws
}

// Targets returns the criterion name to target mapping, skipping criteria
// without a target.
func (cs *CriteriaSet) Targets() map[string]AttributeValue {
	targets := make(map[string]AttributeValue, len(cs.Criteria))
	for _, c := range cs.Criteria {
		if c.Target != nil && !c.Target.IsAbsent() {
			targets[c.Name] = *c.Target
		}
	}
	return targets
}

// WeightSet maps criterion names to relative weights.
type WeightSet map[string]float64

// Sum returns the total of all weights in the set.
func (w WeightSet) Sum() float64 {
	total := 0.0
	for _, v := range w {
		total += v
	}
	return total
}

// Normalized returns a copy of the set rescaled to sum to 1. A set whose raw
// weights sum to 0 is returned as an unnormalized copy.
func (w WeightSet) Normalized() WeightSet {
	out := make(WeightSet, len(w))
	total := w.Sum()
	for name, v := range w {
		if total == 0 {
			out[name] = v
		} else {
			out[name] = v / total
		}
	}
	return out
}

// WeightProposal is one evaluator's opinion on how criteria should be
// weighted. Absent criteria mean "no opinion", not weight zero.
type WeightProposal struct {
	Evaluator string             `json:"evaluator"`
	Weights   map[string]float64 `json:"weights"`
}
