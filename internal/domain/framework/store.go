// Package framework holds the editable framework definition and keeps sibling
// weights normalized after every structural change.
package framework

import (
	"github.com/google/uuid"

	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/internal/domain/scoring"
)

// Weight given to a newly created dimension or element before renormalization.
const newItemWeight = 10

// ID prefixes for generated identifiers.
const (
	dimensionPrefix = "dim-"
	elementPrefix   = "el-"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithIDGenerator overrides how new ids are minted. The prefix is "dim-" or
// "el-".
func WithIDGenerator(gen func(prefix string) string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithDimensions seeds the store. Weights are taken as-is.
func WithDimensions(dims []model.Dimension) Option {
	return func(s *Store) {
		s.dims = model.CloneDimensions(dims)
	}
}

// Store owns the list of dimensions. It is not safe for concurrent use; the
// owning service serializes access.
type Store struct {
	dims  []model.Dimension
	newID func(prefix string) string
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		dims:  []model.Dimension{},
		newID: func(prefix string) string { return prefix + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy that the caller owns.
func (s *Store) Snapshot() []model.Dimension {
	return model.CloneDimensions(s.dims)
}

// Replace swaps the whole framework, e.g. after loading persisted state.
func (s *Store) Replace(dims []model.Dimension) {
	s.dims = model.CloneDimensions(dims)
}

// Len returns the number of dimensions.
func (s *Store) Len() int { return len(s.dims) }

// ElementCount returns the number of elements across all dimensions.
func (s *Store) ElementCount() int {
	n := 0
	for _, d := range s.dims {
		n += len(d.Elements)
	}
	return n
}

// Dimension returns a copy of the dimension with the given id.
func (s *Store) Dimension(id string) (model.Dimension, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Dimension{}, false
	}
	return s.dims[i].Clone(), true
}

// AddDimension appends a dimension and renormalizes dimension weights.
func (s *Store) AddDimension(name string) model.Dimension {
	d := model.Dimension{
		ID:       s.newID(dimensionPrefix),
		Name:     name,
		Weight:   newItemWeight,
		Elements: []model.Element{},
	}
	s.dims = append(s.dims, d)
	scoring.NormalizeDimensions(s.dims)
	return s.dims[len(s.dims)-1].Clone()
}

// UpdateDimension sets name and weight on the matching dimension and
// renormalizes. An unknown id leaves the set untouched apart from the
// renormalization pass. It reports whether the id matched.
func (s *Store) UpdateDimension(id, name string, weight float64) bool {
	i := s.indexOf(id)
	if i >= 0 {
		s.dims[i].Name = name
		s.dims[i].Weight = scoring.ClampWeight(weight)
	}
	scoring.NormalizeDimensions(s.dims)
	return i >= 0
}

// DeleteDimension removes the matching dimension and renormalizes the rest.
func (s *Store) DeleteDimension(id string) bool {
	i := s.indexOf(id)
	if i >= 0 {
		s.dims = append(s.dims[:i], s.dims[i+1:]...)
	}
	scoring.NormalizeDimensions(s.dims)
	return i >= 0
}

// AddElement appends an element to the dimension and renormalizes its
// elements. Returns false when the dimension does not exist.
func (s *Store) AddElement(dimID, name string) (model.Element, bool) {
	i := s.indexOf(dimID)
	if i < 0 {
		return model.Element{}, false
	}
	el := model.Element{
		ID:     s.newID(elementPrefix),
		Name:   name,
		Weight: newItemWeight,
	}
	d := &s.dims[i]
	d.Elements = append(d.Elements, el)
	scoring.NormalizeElements(d.Elements)
	return d.Elements[len(d.Elements)-1], true
}

// UpdateElement sets name and weight on the matching element and
// renormalizes its siblings. It reports whether the element matched.
func (s *Store) UpdateElement(dimID, elID, name string, weight float64) bool {
	i := s.indexOf(dimID)
	if i < 0 {
		return false
	}
	d := &s.dims[i]
	j := elementIndex(d.Elements, elID)
	if j >= 0 {
		d.Elements[j].Name = name
		d.Elements[j].Weight = scoring.ClampWeight(weight)
	}
	scoring.NormalizeElements(d.Elements)
	return j >= 0
}

// DeleteElement removes the matching element and renormalizes the rest.
func (s *Store) DeleteElement(dimID, elID string) bool {
	i := s.indexOf(dimID)
	if i < 0 {
		return false
	}
	d := &s.dims[i]
	j := elementIndex(d.Elements, elID)
	if j >= 0 {
		d.Elements = append(d.Elements[:j], d.Elements[j+1:]...)
	}
	scoring.NormalizeElements(d.Elements)
	return j >= 0
}

func (s *Store) indexOf(id string) int {
	for i := range s.dims {
		if s.dims[i].ID == id {
			return i
		}
	}
	return -1
}

func elementIndex(els []model.Element, id string) int {
	for i := range els {
		if els[i].ID == id {
			return i
		}
	}
	return -1
}
