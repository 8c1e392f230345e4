package service

import (
	"context"

	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
)

// Framework returns a snapshot of the current dimensions.
func (s *Service) Framework() ([]model.Dimension, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkStarted(); err != nil {
		return nil, err
	}
	return s.framework.Snapshot(), nil
}

// AddDimension appends an empty dimension and renormalizes dimension weights.
func (s *Service) AddDimension(ctx context.Context, name string) (model.Dimension, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return model.Dimension{}, err
	}
	d := s.framework.AddDimension(name)
	s.logger.Debug(ctx, "dimension added", logger.String("id", d.ID), logger.String("name", name))
	return d, s.frameworkChanged(ctx, "add_dimension")
}

// UpdateDimension sets a dimension's name and weight, then renormalizes.
func (s *Service) UpdateDimension(ctx context.Context, id, name string, weight float64) (model.Dimension, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return model.Dimension{}, err
	}
	if err := s.lookup(id, ""); err != nil {
		return model.Dimension{}, err
	}
	s.framework.UpdateDimension(id, name, weight)
	d, _ := s.framework.Dimension(id)
	return d, s.frameworkChanged(ctx, "update_dimension")
}

// DeleteDimension removes a dimension and renormalizes the rest.
func (s *Service) DeleteDimension(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return err
	}
	if err := s.lookup(id, ""); err != nil {
		return err
	}
	s.framework.DeleteDimension(id)
	s.logger.Debug(ctx, "dimension deleted", logger.String("id", id))
	return s.frameworkChanged(ctx, "delete_dimension")
}

// AddElement appends an element to a dimension and renormalizes its elements.
func (s *Service) AddElement(ctx context.Context, dimID, name string) (model.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return model.Element{}, err
	}
	if err := s.lookup(dimID, ""); err != nil {
		return model.Element{}, err
	}
	el, _ := s.framework.AddElement(dimID, name)
	return el, s.frameworkChanged(ctx, "add_element")
}

// UpdateElement sets an element's name and weight, then renormalizes its siblings.
func (s *Service) UpdateElement(ctx context.Context, dimID, elID, name string, weight float64) (model.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return model.Element{}, err
	}
	if err := s.lookup(dimID, elID); err != nil {
		return model.Element{}, err
	}
	s.framework.UpdateElement(dimID, elID, name, weight)
	d, _ := s.framework.Dimension(dimID)
	var out model.Element
	for _, e := range d.Elements {
		if e.ID == elID {
			out = e
		}
	}
	return out, s.frameworkChanged(ctx, "update_element")
}

// DeleteElement removes an element and renormalizes its siblings.
func (s *Service) DeleteElement(ctx context.Context, dimID, elID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return err
	}
	if err := s.lookup(dimID, elID); err != nil {
		return err
	}
	s.framework.DeleteElement(dimID, elID)
	return s.frameworkChanged(ctx, "delete_element")
}

// ReplaceFramework swaps in a whole framework, e.g. one imported from YAML.
func (s *Service) ReplaceFramework(ctx context.Context, dims []model.Dimension) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return err
	}
	s.framework.Replace(dims)
	return s.frameworkChanged(ctx, "replace")
}

// lookup reports whether the dimension, and the element when elID is set,
// exist. Store mutators renormalize even on a miss, so a miss must be caught
// before calling them or memory drifts from what was persisted.
func (s *Service) lookup(dimID, elID string) error {
	d, ok := s.framework.Dimension(dimID)
	if !ok {
		return ErrDimensionNotFound
	}
	if elID == "" {
		return nil
	}
	for _, e := range d.Elements {
		if e.ID == elID {
			return nil
		}
	}
	return ErrElementNotFound
}
