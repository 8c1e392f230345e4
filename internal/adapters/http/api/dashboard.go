package api

import (
	"net/http"

	"github.com/okian/maturity/internal/domain/assessment"
)

// DashboardProvider builds the dashboard read model.
type DashboardProvider interface {
	Dashboard() (assessment.Dashboard, error)
}

// DashboardHandler handles dashboard requests.
type DashboardHandler struct {
	deps DashboardProvider
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardProvider) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleDashboard handles GET /dashboard requests.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"
	db, err := h.deps.Dashboard()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	writeJSON(w, http.StatusOK, db)
}
