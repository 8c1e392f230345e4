// Package scoring implements weight renormalization and weighted aggregation
// for the two-level maturity framework.
package scoring

import (
	"math"

	"github.com/okian/maturity/internal/domain/model"
)

// Scale constants.
const (
	// WeightTotal is the sum every sibling weight set is rescaled to.
	WeightTotal = 100.0
	// MaxScore is the upper bound of an element score.
	MaxScore = 100.0
	// MinScore is the lower bound of an element score.
	MinScore = 0.0
	// DefaultTolerance is used when checking that weights sum to WeightTotal.
	DefaultTolerance = 1e-9
)

// Normalize rescales weights so they sum to WeightTotal, proportionally to
// their previous values. When the previous total is not positive every item
// gets an equal share. An empty input is returned unchanged.
func Normalize(weights []float64) []float64 {
	n := len(weights)
	if n == 0 {
		return weights
	}
	out := make([]float64, n)
	total := sum(weights)
	if total <= 0 {
		share := WeightTotal / float64(n)
		for i := range out {
			out[i] = share
		}
		return out
	}
	for i, w := range weights {
		out[i] = WeightTotal * w / total
	}
	return out
}

// NormalizeDimensions renormalizes dimension weights in place.
func NormalizeDimensions(dims []model.Dimension) {
	if len(dims) == 0 {
		return
	}
	ws := make([]float64, len(dims))
	for i := range dims {
		ws[i] = dims[i].Weight
	}
	for i, w := range Normalize(ws) {
		dims[i].Weight = w
	}
}

// NormalizeElements renormalizes element weights in place.
func NormalizeElements(els []model.Element) {
	if len(els) == 0 {
		return
	}
	ws := make([]float64, len(els))
	for i := range els {
		ws[i] = els[i].Weight
	}
	for i, w := range Normalize(ws) {
		els[i].Weight = w
	}
}

// WeightsSumTo100 reports whether weights sum to WeightTotal within tol.
// An empty set trivially holds.
func WeightsSumTo100(weights []float64, tol float64) bool {
	if len(weights) == 0 {
		return true
	}
	return math.Abs(sum(weights)-WeightTotal) <= tol
}

// ClampScore bounds a score to [MinScore, MaxScore]. NaN becomes MinScore.
func ClampScore(s float64) float64 {
	if math.IsNaN(s) {
		return MinScore
	}
	return math.Max(MinScore, math.Min(MaxScore, s))
}

// ClampWeight floors negative and NaN weights at zero.
func ClampWeight(w float64) float64 {
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	return w
}

func sum(xs []float64) float64 {
	var t float64
	for _, x := range xs {
		t += x
	}
	return t
}
