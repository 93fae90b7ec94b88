// Package types provides type definitions for structured data used throughout the candidate-ranker system.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MembershipKind selects which membership function grades numeric matches.
type MembershipKind string

// Supported membership function kinds.
const (
	MembershipSimple      MembershipKind = "simple"
	MembershipTriangular  MembershipKind = "triangular"
	MembershipTrapezoidal MembershipKind = "trapezoidal"
	MembershipGaussian    MembershipKind = "gaussian"
)

// AggregationMethod selects how per-criterion scores combine into one.
type AggregationMethod string

// Supported aggregation methods.
const (
	AggregationWSM AggregationMethod = "wsm"
	AggregationOWA AggregationMethod = "owa"
)

// StrategyProfile selects how OWA distributes positional weight across the
// sorted scores.
type StrategyProfile string

// Supported OWA strategy profiles.
const (
	ProfileOptimistic  StrategyProfile = "optimistic"
	ProfileBalanced    StrategyProfile = "balanced"
	ProfilePessimistic StrategyProfile = "pessimistic"
	ProfileCustom      StrategyProfile = "custom"
)

// ScoringConfig carries every tunable the engine consults. It is passed
// explicitly through all call boundaries; there is no ambient default state.
type ScoringConfig struct {
	FuzzyFactor       float64           `json:"fuzzy_factor" validate:"gte=0,lte=1"`
	MembershipKind    MembershipKind    `json:"membership_kind" validate:"oneof=simple triangular trapezoidal gaussian"`
	AggregationMethod AggregationMethod `json:"aggregation_method" validate:"oneof=wsm owa"`
	StrategyProfile   StrategyProfile   `json:"strategy_profile" validate:"oneof=optimistic balanced pessimistic custom"`
	OWAWeights        []float64         `json:"owa_weights,omitempty"`
	AlphaCutThreshold float64           `json:"alpha_cut_threshold" validate:"gte=0,lte=1"`
	TieEpsilon        float64           `json:"tie_epsilon" validate:"gte=0"`
	FilterTolerance   float64           `json:"filter_tolerance" validate:"gte=0,lt=1"`
	OutlierTolerance  float64           `json:"outlier_tolerance" validate:"gt=0"`
}

// DefaultScoringConfig returns the engine defaults: simple membership with a
// 0.2 fuzzy factor, confidence-weighted WSM, no alpha cut, a 0.05 ranking
// tie window, 10% hard-filter leniency, and a 2.0 consensus outlier
// tolerance.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		FuzzyFactor:       0.2,
		MembershipKind:    MembershipSimple,
		AggregationMethod: AggregationWSM,
		StrategyProfile:   ProfileBalanced,
		AlphaCutThreshold: 0.0,
		TieEpsilon:        0.05,
		FilterTolerance:   0.1,
		OutlierTolerance:  2.0,
	}
}

// Validate validates the ScoringConfig using the validator, plus the
// cross-field rule that a custom profile must carry explicit OWA weights.
func (c *ScoringConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.StrategyProfile == ProfileCustom && len(c.OWAWeights) == 0 {
		return fmt.Errorf("strategy profile %q requires owa_weights", ProfileCustom)
	}
	return nil
}
