package service

import (
	"context"
	"time"

	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
	"github.com/okian/maturity/pkg/metrics"
)

// Suggest asks the suggestion provider for new elements for a dimension.
// The lock is not held during the provider call.
func (s *Service) Suggest(ctx context.Context, dimID string) ([]model.Suggestion, error) {
	s.mu.RLock()
	if err := s.checkStarted(); err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	d, ok := s.framework.Dimension(dimID)
	sg := s.suggester
	s.mu.RUnlock()
	if !ok {
		return nil, ErrDimensionNotFound
	}

	existing := make([]string, len(d.Elements))
	for i, e := range d.Elements {
		existing[i] = e.Name
	}

	metrics.RecordSuggestionRequest(sg.Provider())
	start := time.Now()
	out, err := sg.Suggest(ctx, d.Name, existing)
	elapsed := float64(time.Since(start).Milliseconds())
	metrics.RecordSuggestionLatency(elapsed)
	if err != nil {
		metrics.RecordSuggestionFailure()
		metrics.RecordErrorLatency("suggest", "provider", elapsed)
		s.logger.Error(ctx, "fetching suggestions failed",
			logger.String("dimension", d.Name),
			logger.String("provider", sg.Provider()),
			logger.Error(err),
		)
		return nil, err
	}
	s.logger.Debug(ctx, "suggestions received",
		logger.String("dimension", d.Name), logger.Int("count", len(out)))
	return out, nil
}

// AcceptSuggestion adds the suggested element to the dimension.
func (s *Service) AcceptSuggestion(ctx context.Context, dimID string, sug model.Suggestion) (model.Element, error) {
	return s.AddElement(ctx, dimID, sug.Name)
}
