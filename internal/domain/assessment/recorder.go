// Package assessment records scored framework snapshots as an append-only
// history and derives dashboard read models from it.
package assessment

import (
	"time"

	"github.com/google/uuid"

	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/internal/domain/scoring"
)

const idPrefix = "asm-"

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithClock sets the time source used to stamp assessments.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides how assessment ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(r *Recorder) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// WithHistory seeds the recorder with previously persisted assessments.
func WithHistory(list []model.Assessment) Option {
	return func(r *Recorder) {
		r.history = model.CloneAssessments(list)
	}
}

// Recorder computes overall scores and keeps the assessment history. Stored
// records are never handed out by reference. It is not safe for concurrent
// use.
type Recorder struct {
	history []model.Assessment
	now     func() time.Time
	newID   func() string
}

// NewRecorder creates a Recorder with an empty history.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		history: []model.Assessment{},
		now:     time.Now,
		newID:   func() string { return idPrefix + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record scores a snapshot of dimensions and appends it to history. Element
// scores are clamped to [0,100]. The input is not retained.
func (r *Recorder) Record(dims []model.Dimension) model.Assessment {
	snap := model.CloneDimensions(dims)
	for i := range snap {
		for j := range snap[i].Elements {
			snap[i].Elements[j].Score = scoring.ClampScore(snap[i].Elements[j].Score)
		}
	}
	a := model.Assessment{
		ID:           r.newID(),
		Date:         r.now().UTC().Format(time.RFC3339Nano),
		Dimensions:   snap,
		OverallScore: scoring.OverallScore(snap),
	}
	r.history = append(r.history, a)
	return a.Clone()
}

// Replace swaps the whole history, e.g. after loading persisted state.
func (r *Recorder) Replace(list []model.Assessment) {
	r.history = model.CloneAssessments(list)
}

// Len returns the number of recorded assessments.
func (r *Recorder) Len() int { return len(r.history) }

// All returns a copy of every assessment in insertion order.
func (r *Recorder) All() []model.Assessment {
	return model.CloneAssessments(r.history)
}

// Get returns the assessment with the given id.
func (r *Recorder) Get(id string) (model.Assessment, bool) {
	for _, a := range r.history {
		if a.ID == id {
			return a.Clone(), true
		}
	}
	return model.Assessment{}, false
}

// Latest returns the most recently recorded assessment.
func (r *Recorder) Latest() (model.Assessment, bool) {
	if len(r.history) == 0 {
		return model.Assessment{}, false
	}
	return r.history[len(r.history)-1].Clone(), true
}

// History projects the assessments to (date, score) points, oldest first.
func (r *Recorder) History() []model.HistoryPoint {
	out := make([]model.HistoryPoint, len(r.history))
	for i, a := range r.history {
		out[i] = model.HistoryPoint{Date: a.Date, Score: a.OverallScore}
	}
	return out
}
