package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
)

// AssessmentHandler handles assessment recording and history requests.
type AssessmentHandler struct {
	deps     AssessmentDependencies
	maxLimit int
	logger   logger.Logger
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(deps AssessmentDependencies, maxLimit int, l logger.Logger) *AssessmentHandler {
	if maxLimit <= 0 {
		maxLimit = defaultMaxHistoryLimit
	}
	return &AssessmentHandler{deps: deps, maxLimit: maxLimit, logger: l}
}

// createRequest carries either a full scored framework or scores keyed by
// element id against the current framework.
type createRequest struct {
	Dimensions []model.Dimension   `json:"dimensions"`
	Scores     map[string]float64 `json:"scores"`
}

type previewRequest struct {
	Scores map[string]float64 `json:"scores"`
}

type previewResponse struct {
	OverallScore float64 `json:"overallScore"`
}

func (c createRequest) validate() error {
	switch {
	case c.Dimensions != nil && c.Scores != nil:
		return errors.New("send either dimensions or scores, not both")
	case c.Dimensions == nil && c.Scores == nil:
		return errors.New("missing dimensions or scores")
	}
	return nil
}

// HandleList handles GET /assessments requests.
func (h *AssessmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_assessments"
	list, err := h.deps.Assessments()
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleCreate handles POST /assessments requests.
func (h *AssessmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_assessment"
	var req createRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	var (
		a   model.Assessment
		err error
	)
	if req.Scores != nil {
		a, err = h.deps.ScoreAssessment(r.Context(), req.Scores)
	} else {
		a, err = h.deps.SaveAssessment(r.Context(), req.Dimensions)
	}
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// HandlePreview handles POST /assessments/preview requests.
func (h *AssessmentHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	const op = "api.preview_assessment"
	var req previewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	score, err := h.deps.Preview(req.Scores)
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{OverallScore: score})
}

// HandleLatest handles GET /assessments/latest requests.
func (h *AssessmentHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	const op = "api.latest_assessment"
	a, err := h.deps.Latest()
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleHistory handles GET /assessments/history?limit=N requests. Without
// a limit the full history is returned; limits above the configured maximum
// are capped.
func (h *AssessmentHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.assessment_history"
	n := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		n = min(v, h.maxLimit)
	}
	points, err := h.deps.History(n)
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// HandleGet handles GET /assessments/{id} requests.
func (h *AssessmentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_assessment"
	a, err := h.deps.Assessment(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
