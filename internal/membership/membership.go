// Package membership implements the fuzzy membership functions that grade
// how well a numeric value matches a target: triangular, trapezoidal,
// gaussian, and simple linear decay. All functions map into [0,1].
package membership

import (
	"fmt"
	"math"
)

// InvalidShapeError reports membership parameters that violate the shape's
// ordering invariants. It is fatal to the single scoring call that produced
// it; parameters are never silently clamped.
type InvalidShapeError struct {
	Kind   string
	Detail string
}

func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("invalid %s membership parameters: %s", e.Kind, e.Detail)
}

// Triangular computes the triangular membership of x for a function rising
// from 0 at a to 1 at b and falling back to 0 at c. Outside (a,c] the degree
// is 0. Requires a <= b <= c with a < c.
func Triangular(x, a, b, c float64) (float64, error) {
	if a > b || b > c {
		return 0, &InvalidShapeError{Kind: "triangular", Detail: fmt.Sprintf("need a <= b <= c, got a=%g b=%g c=%g", a, b, c)}
	}
	if a == c {
		// Degenerate spike: the membership is undefined.
		return 0, &InvalidShapeError{Kind: "triangular", Detail: fmt.Sprintf("degenerate shape a=b=c=%g", a)}
	}

	switch {
	case x <= a || x > c:
		return 0, nil
	case x <= b:
		if a == b {
			return 1, nil
		}
		return (x - a) / (b - a), nil
	default:
		if b == c {
			return 1, nil
		}
		return (c - x) / (c - b), nil
	}
}

// Trapezoidal computes the trapezoidal membership of x: rise from a to b,
// plateau at 1 over (b,c], fall from c to d. Outside (a,d] the degree is 0.
// Requires a <= b <= c <= d with a < d.
func Trapezoidal(x, a, b, c, d float64) (float64, error) {
	if a > b || b > c || c > d {
		return 0, &InvalidShapeError{Kind: "trapezoidal", Detail: fmt.Sprintf("need a <= b <= c <= d, got a=%g b=%g c=%g d=%g", a, b, c, d)}
	}
	if a == d {
		return 0, &InvalidShapeError{Kind: "trapezoidal", Detail: fmt.Sprintf("degenerate shape a=b=c=d=%g", a)}
	}

	switch {
	case x <= a || x > d:
		return 0, nil
	case x <= b:
		if a == b {
			return 1, nil
		}
		return (x - a) / (b - a), nil
	case x <= c:
		return 1, nil
	default:
		if c == d {
			return 1, nil
		}
		return (d - x) / (d - c), nil
	}
}

// Gaussian computes exp(-0.5*((x-mean)/sigma)^2). Sigma must be positive;
// a zero sigma is a degenerate peak and is rejected.
func Gaussian(x, mean, sigma float64) (float64, error) {
	if sigma <= 0 {
		return 0, &InvalidShapeError{Kind: "gaussian", Detail: fmt.Sprintf("sigma must be > 0, got %g", sigma)}
	}
	z := (x - mean) / sigma
	return math.Exp(-0.5 * z * z), nil
}

// Simple computes the linear-decay membership
// max(0, 1 - |x-target| / max(target*fuzzyFactor, 1)). The floor of 1 on the
// denominator keeps the decay finite when the target is near zero.
func Simple(x, target, fuzzyFactor float64) float64 {
	denom := target * fuzzyFactor
	if denom < 1 {
		denom = 1
	}
	degree := 1 - math.Abs(x-target)/denom
	if degree < 0 {
		return 0
	}
	return degree
}
