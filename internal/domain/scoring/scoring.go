package scoring

import (
	"math"

	"github.com/okian/maturity/internal/domain/model"
)

// DimensionScore is the weight-averaged element score of d, or 0 when the
// element weights do not sum to a positive value.
func DimensionScore(d model.Dimension) float64 {
	var total float64
	for _, el := range d.Elements {
		total += el.Weight
	}
	if total <= 0 {
		return 0
	}
	var score float64
	for _, el := range d.Elements {
		score += el.Score * (el.Weight / total)
	}
	return score
}

// OverallScore aggregates dimension scores by dimension weight, or returns 0
// when the dimension weights do not sum to a positive value.
func OverallScore(dims []model.Dimension) float64 {
	var total float64
	for _, d := range dims {
		total += d.Weight
	}
	if total <= 0 {
		return 0
	}
	var score float64
	for _, d := range dims {
		score += DimensionScore(d) * (d.Weight / total)
	}
	return score
}

// Round2 rounds x to two decimal places, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
