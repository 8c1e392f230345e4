// Package model contains domain models passed between layers.
package model

// Element is a leaf criterion scored within a Dimension.
type Element struct {
	ID     string  `json:"id" yaml:"id"`
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"` // percentage share within the parent dimension
	Score  float64 `json:"score" yaml:"score"`   // 0..100
}

// Dimension is a top-level weighted category holding ordered elements.
type Dimension struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Weight   float64   `json:"weight" yaml:"weight"` // percentage share of the overall score
	Elements []Element `json:"elements" yaml:"elements"`
}

// Assessment is one timestamped, scored snapshot of the framework.
type Assessment struct {
	ID           string      `json:"id"`
	Date         string      `json:"date"` // RFC 3339, UTC
	Dimensions   []Dimension `json:"dimensions"`
	OverallScore float64     `json:"overallScore"`
}

// HistoryPoint is the (date, score) projection of an Assessment.
type HistoryPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// Suggestion is a candidate element proposed by the suggestion service.
type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Clone returns a deep copy of d.
func (d Dimension) Clone() Dimension {
	out := d
	out.Elements = make([]Element, len(d.Elements))
	copy(out.Elements, d.Elements)
	return out
}

// Clone returns a deep copy of a.
func (a Assessment) Clone() Assessment {
	out := a
	out.Dimensions = CloneDimensions(a.Dimensions)
	return out
}

// CloneDimensions deep-copies a dimension slice. A nil input yields an empty,
// non-nil slice so that it serializes as [] rather than null.
func CloneDimensions(in []Dimension) []Dimension {
	out := make([]Dimension, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}

// CloneAssessments deep-copies an assessment slice.
func CloneAssessments(in []Assessment) []Assessment {
	out := make([]Assessment, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}
