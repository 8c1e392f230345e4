package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/maturity/internal/adapters/repository"
	"github.com/okian/maturity/internal/domain/assessment"
	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
	"github.com/okian/maturity/pkg/metrics"
)

// SaveAssessment records a scored snapshot of dims and persists the history.
// The returned assessment is valid even when persisting fails.
func (s *Service) SaveAssessment(ctx context.Context, dims []model.Dimension) (model.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return model.Assessment{}, err
	}
	return s.record(ctx, dims)
}

// ScoreAssessment scores a draft of the current framework with scores keyed
// by element id and records it. Unknown ids reject the whole request.
func (s *Service) ScoreAssessment(ctx context.Context, scores map[string]float64) (model.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkStarted(); err != nil {
		return model.Assessment{}, err
	}
	draft := assessment.NewDraft(s.framework.Snapshot())
	if unknown := draft.ApplyScores(scores); len(unknown) > 0 {
		return model.Assessment{}, fmt.Errorf("%w: %v", ErrUnknownElements, unknown)
	}
	return s.record(ctx, draft.Dimensions())
}

// record appends an assessment. Callers hold s.mu.
func (s *Service) record(ctx context.Context, dims []model.Dimension) (model.Assessment, error) {
	start := time.Now()
	a := s.recorder.Record(dims)
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordAssessment(a.OverallScore)
	metrics.UpdateAssessmentsTotal(s.recorder.Len())

	s.logger.Info(ctx, "assessment recorded",
		logger.String("id", a.ID),
		logger.Float64("overallScore", a.OverallScore),
		logger.Int("dimensions", len(a.Dimensions)),
	)
	return a, s.persist(ctx, repository.KeyAssessments, s.recorder.All())
}

// Preview computes the overall score scores would produce without recording.
func (s *Service) Preview(scores map[string]float64) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkStarted(); err != nil {
		return 0, err
	}
	draft := assessment.NewDraft(s.framework.Snapshot())
	if unknown := draft.ApplyScores(scores); len(unknown) > 0 {
		return 0, fmt.Errorf("%w: %v", ErrUnknownElements, unknown)
	}
	return draft.Preview(), nil
}

// Assessments returns every stored assessment, oldest first.
func (s *Service) Assessments() ([]model.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkStarted(); err != nil {
		return nil, err
	}
	return s.recorder.All(), nil
}

// Assessment returns one assessment by id.
func (s *Service) Assessment(id string) (model.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkStarted(); err != nil {
		return model.Assessment{}, err
	}
	a, ok := s.recorder.Get(id)
	if !ok {
		return model.Assessment{}, ErrAssessmentNotFound
	}
	return a, nil
}

// Latest returns the most recent assessment or ErrAssessmentNotFound.
func (s *Service) Latest() (model.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkStarted(); err != nil {
		return model.Assessment{}, err
	}
	a, ok := s.recorder.Latest()
	if !ok {
		return model.Assessment{}, ErrAssessmentNotFound
	}
	return a, nil
}

// History returns the most recent limit (date, score) points, oldest first.
// A non-positive limit returns every point.
func (s *Service) History(limit int) ([]model.HistoryPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkStarted(); err != nil {
		return nil, err
	}
	h := s.recorder.History()
	if limit > 0 && len(h) > limit {
		h = h[len(h)-limit:]
	}
	return h, nil
}

// Dashboard returns the dashboard read model.
func (s *Service) Dashboard() (assessment.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkStarted(); err != nil {
		return assessment.Dashboard{}, err
	}
	return s.recorder.Dashboard(), nil
}
