package assessment

import (
	"slices"

	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/internal/domain/scoring"
)

// Draft is an editable scoring copy of a framework. It is owned
// independently of its source until handed to Recorder.Record.
type Draft struct {
	dims []model.Dimension
}

// NewDraft clones dims into a new draft.
func NewDraft(dims []model.Dimension) *Draft {
	return &Draft{dims: model.CloneDimensions(dims)}
}

// SetScore assigns a clamped score to an element. It reports whether the
// element was found.
func (d *Draft) SetScore(dimID, elID string, score float64) bool {
	for i := range d.dims {
		if d.dims[i].ID != dimID {
			continue
		}
		for j := range d.dims[i].Elements {
			if d.dims[i].Elements[j].ID == elID {
				d.dims[i].Elements[j].Score = scoring.ClampScore(score)
				return true
			}
		}
	}
	return false
}

// ApplyScores sets scores keyed by element id and returns the ids that did
// not match any element.
func (d *Draft) ApplyScores(scores map[string]float64) []string {
	seen := make(map[string]bool, len(scores))
	for i := range d.dims {
		for j := range d.dims[i].Elements {
			el := &d.dims[i].Elements[j]
			if s, ok := scores[el.ID]; ok {
				el.Score = scoring.ClampScore(s)
				seen[el.ID] = true
			}
		}
	}
	var unknown []string
	for id := range scores {
		if !seen[id] {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// Dimensions returns a copy of the draft contents.
func (d *Draft) Dimensions() []model.Dimension {
	return model.CloneDimensions(d.dims)
}

// Preview returns the overall score the draft would record.
func (d *Draft) Preview() float64 {
	return scoring.OverallScore(d.dims)
}
