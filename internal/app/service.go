// Package service composes the framework store, the assessment recorder,
// persistence and suggestions behind the operations the HTTP API and CLI use.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/maturity/internal/adapters/repository"
	"github.com/okian/maturity/internal/adapters/suggest"
	"github.com/okian/maturity/internal/domain/assessment"
	"github.com/okian/maturity/internal/domain/framework"
	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
	"github.com/okian/maturity/pkg/metrics"
)

// Service implements the API dependencies for the maturity framework.
type Service struct {
	mu sync.RWMutex

	framework *framework.Store
	recorder  *assessment.Recorder
	store     repository.Store
	suggester suggest.Suggester

	defaults  []model.Dimension
	now       func() time.Time
	frameIDs  func(prefix string) string
	recordIDs func() string

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the persistence backend. Defaults to an in-memory store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithSuggester sets the element suggestion provider.
func WithSuggester(sg suggest.Suggester) Option {
	return func(s *Service) {
		if sg != nil {
			s.suggester = sg
		}
	}
}

// WithClock sets the clock used to date assessments.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDefaultFramework sets the framework used when nothing is persisted.
func WithDefaultFramework(dims []model.Dimension) Option {
	return func(s *Service) {
		if len(dims) > 0 {
			s.defaults = model.CloneDimensions(dims)
		}
	}
}

// WithIDGenerators overrides id generation for dimensions/elements and assessments.
func WithIDGenerators(frame func(prefix string) string, record func() string) Option {
	return func(s *Service) {
		s.frameIDs = frame
		s.recordIDs = record
	}
}

// New constructs a Service. Call Start before use.
func New(opts ...Option) *Service {
	s := &Service{
		suggester: suggest.Placeholder{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaults == nil {
		s.defaults = framework.Default()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	return s
}

// Start loads persisted state. Missing or unreadable data falls back to the
// default framework and an empty history.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting maturity service...")

	var fwOpts []framework.Option
	if s.frameIDs != nil {
		fwOpts = append(fwOpts, framework.WithIDGenerator(s.frameIDs))
	}
	fwOpts = append(fwOpts, framework.WithDimensions(s.loadFramework(ctx)))
	s.framework = framework.New(fwOpts...)

	recOpts := []assessment.Option{
		assessment.WithClock(s.now),
		assessment.WithHistory(s.loadAssessments(ctx)),
	}
	if s.recordIDs != nil {
		recOpts = append(recOpts, assessment.WithIDGenerator(s.recordIDs))
	}
	s.recorder = assessment.NewRecorder(recOpts...)

	s.started = true
	s.refreshGauges()
	s.logger.Info(ctx, "maturity service started",
		logger.String("store", repository.BackendName(s.store)),
		logger.String("suggester", s.suggester.Provider()),
		logger.Int("dimensions", s.framework.Len()),
		logger.Int("assessments", s.recorder.Len()),
	)
	return nil
}

// Stop closes the persistence backend.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping maturity service...")
	if err := s.store.Close(); err != nil {
		s.logger.Warn(context.Background(), "closing store failed", logger.Error(err))
	}
	s.started = false
	s.logger.Info(context.Background(), "maturity service stopped")
}

func (s *Service) loadFramework(ctx context.Context) []model.Dimension {
	var dims []model.Dimension
	if !s.load(ctx, repository.KeyFramework, &dims) {
		return model.CloneDimensions(s.defaults)
	}
	return dims
}

func (s *Service) loadAssessments(ctx context.Context) []model.Assessment {
	var list []model.Assessment
	if !s.load(ctx, repository.KeyAssessments, &list) {
		return nil
	}
	return list
}

// load decodes key into v. It reports false when the caller should use defaults.
func (s *Service) load(ctx context.Context, key string, v any) bool {
	b, err := s.store.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug(ctx, "nothing persisted; using defaults", logger.String("key", key))
		return false
	}
	if err != nil {
		s.logger.Warn(ctx, "reading persisted state failed; using defaults",
			logger.String("key", key), logger.Error(err))
		metrics.RecordErrorByComponent("app", "load")
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		s.logger.Warn(ctx, "persisted state is corrupt; using defaults",
			logger.String("key", key), logger.Error(err))
		metrics.RecordErrorByComponent("app", "decode")
		return false
	}
	return true
}

// persist writes v under key. Callers hold s.mu.
func (s *Service) persist(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %w", ErrPersist, key, err)
	}
	if err := s.store.Put(ctx, key, b); err != nil {
		s.logger.Error(ctx, "saving state failed", logger.String("key", key), logger.Error(err))
		metrics.RecordErrorByComponent("app", "persist")
		return fmt.Errorf("%w: %s: %w", ErrPersist, key, err)
	}
	return nil
}

// frameworkChanged records metrics and saves the framework. Callers hold s.mu.
func (s *Service) frameworkChanged(ctx context.Context, op string) error {
	metrics.RecordFrameworkMutation(op)
	s.refreshGauges()
	return s.persist(ctx, repository.KeyFramework, s.framework.Snapshot())
}

func (s *Service) refreshGauges() {
	metrics.UpdateFrameworkSize(s.framework.Len(), s.framework.ElementCount())
	metrics.UpdateAssessmentsTotal(s.recorder.Len())
	if latest, ok := s.recorder.Latest(); ok {
		metrics.UpdateLastOverallScore(latest.OverallScore)
	}
}

func (s *Service) checkStarted() error {
	if !s.started {
		return ErrNotStarted
	}
	return nil
}
