// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/maturity/internal/adapters/suggest"
	service "github.com/okian/maturity/internal/app"
	"github.com/okian/maturity/internal/domain/assessment"
	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
)

const (
	defaultMaxHistoryLimit = 100
	maxBodyBytes           = 1 << 20
)

// FrameworkDependencies are the framework operations the handlers need.
type FrameworkDependencies interface {
	Framework() ([]model.Dimension, error)
	AddDimension(ctx context.Context, name string) (model.Dimension, error)
	UpdateDimension(ctx context.Context, id, name string, weight float64) (model.Dimension, error)
	DeleteDimension(ctx context.Context, id string) error
	AddElement(ctx context.Context, dimID, name string) (model.Element, error)
	UpdateElement(ctx context.Context, dimID, elID, name string, weight float64) (model.Element, error)
	DeleteElement(ctx context.Context, dimID, elID string) error
	Suggest(ctx context.Context, dimID string) ([]model.Suggestion, error)
	AcceptSuggestion(ctx context.Context, dimID string, s model.Suggestion) (model.Element, error)
}

// AssessmentDependencies are the assessment operations the handlers need.
type AssessmentDependencies interface {
	SaveAssessment(ctx context.Context, dims []model.Dimension) (model.Assessment, error)
	ScoreAssessment(ctx context.Context, scores map[string]float64) (model.Assessment, error)
	Preview(scores map[string]float64) (float64, error)
	Assessments() ([]model.Assessment, error)
	Assessment(id string) (model.Assessment, error)
	Latest() (model.Assessment, error)
	History(limit int) ([]model.HistoryPoint, error)
	Dashboard() (assessment.Dashboard, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	FrameworkDependencies
	AssessmentDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	frameworkHandler  *FrameworkHandler
	assessmentHandler *AssessmentHandler
	dashboardHandler  *DashboardHandler
}

// ServerOption configures NewServer.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxHistoryLimit int
	logger          logger.Logger
}

// WithMaxHistoryLimit caps GET /assessments/history?limit.
func WithMaxHistoryLimit(n int) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxHistoryLimit = n
		}
	}
}

// WithLogger sets the logger used for server-side failures.
func WithLogger(l logger.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	cfg := serverConfig{maxHistoryLimit: defaultMaxHistoryLimit, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		frameworkHandler:  NewFrameworkHandler(deps, cfg.logger),
		assessmentHandler: NewAssessmentHandler(deps, cfg.maxHistoryLimit, cfg.logger),
		dashboardHandler:  NewDashboardHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(h, endpoint))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)
	route("GET /dashboard", "dashboard", s.dashboardHandler.HandleDashboard)

	fh := s.frameworkHandler
	route("GET /framework", "framework", fh.HandleGetFramework)
	route("POST /framework/dimensions", "dimensions", fh.HandleAddDimension)
	route("PUT /framework/dimensions/{id}", "dimension", fh.HandleUpdateDimension)
	route("DELETE /framework/dimensions/{id}", "dimension", fh.HandleDeleteDimension)
	route("POST /framework/dimensions/{id}/elements", "elements", fh.HandleAddElement)
	route("PUT /framework/dimensions/{id}/elements/{eid}", "element", fh.HandleUpdateElement)
	route("DELETE /framework/dimensions/{id}/elements/{eid}", "element", fh.HandleDeleteElement)
	route("POST /framework/dimensions/{id}/suggestions", "suggestions", fh.HandleSuggest)
	route("POST /framework/dimensions/{id}/suggestions/accept", "suggestions_accept", fh.HandleAcceptSuggestion)

	ah := s.assessmentHandler
	route("GET /assessments", "assessments", ah.HandleList)
	route("POST /assessments", "assessments", ah.HandleCreate)
	route("POST /assessments/preview", "assessments_preview", ah.HandlePreview)
	route("GET /assessments/latest", "assessments_latest", ah.HandleLatest)
	route("GET /assessments/history", "assessments_history", ah.HandleHistory)
	route("GET /assessments/{id}", "assessment", ah.HandleGet)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// writeServiceError maps service and provider errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, l logger.Logger, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, service.ErrDimensionNotFound),
		errors.Is(err, service.ErrElementNotFound),
		errors.Is(err, service.ErrAssessmentNotFound):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case errors.Is(err, service.ErrUnknownElements):
		writeError(w, http.StatusBadRequest, "unknown_elements", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, suggest.ErrSuggestionFailed):
		// The provider's cause stays in the log; clients get the fixed message.
		l.Warn(r.Context(), "suggestion request failed", logger.String("op", op),
			logger.Error(WrapKind(op, ErrUpstream, err)))
		writeError(w, http.StatusBadGateway, "suggestion_failed", suggest.ErrSuggestionFailed)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, service.ErrPersist):
		l.Error(r.Context(), "request failed to persist", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "persist_failed", WrapKind(op, ErrInternal, err))
	default:
		l.Error(r.Context(), "request failed", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
