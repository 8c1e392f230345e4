package api

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/okian/maturity/internal/domain/model"
	"github.com/okian/maturity/pkg/logger"
)

// FrameworkHandler handles framework configuration requests.
type FrameworkHandler struct {
	deps   FrameworkDependencies
	logger logger.Logger
}

// NewFrameworkHandler creates a new framework handler.
func NewFrameworkHandler(deps FrameworkDependencies, l logger.Logger) *FrameworkHandler {
	return &FrameworkHandler{deps: deps, logger: l}
}

type nameRequest struct {
	Name string `json:"name"`
}

// updateRequest carries optional fields; missing ones keep their current value.
type updateRequest struct {
	Name   *string  `json:"name"`
	Weight *float64 `json:"weight"`
}

type suggestionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("name must not be blank")
	}
	return name, nil
}

// resolve applies the request on top of the current name and weight.
func (u updateRequest) resolve(name string, weight float64) (string, float64, error) {
	if u.Name != nil {
		n, err := cleanName(*u.Name)
		if err != nil {
			return "", 0, err
		}
		name = n
	}
	if u.Weight != nil {
		if *u.Weight < 0 || math.IsNaN(*u.Weight) || math.IsInf(*u.Weight, 0) {
			return "", 0, errors.New("weight must be a non-negative number")
		}
		weight = *u.Weight
	}
	return name, weight, nil
}

func findDimension(dims []model.Dimension, id string) (model.Dimension, bool) {
	for _, d := range dims {
		if d.ID == id {
			return d, true
		}
	}
	return model.Dimension{}, false
}

// HandleGetFramework handles GET /framework requests.
func (h *FrameworkHandler) HandleGetFramework(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_framework"
	dims, err := h.deps.Framework()
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, dims)
}

// HandleAddDimension handles POST /framework/dimensions requests.
func (h *FrameworkHandler) HandleAddDimension(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_dimension"
	var req nameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	name, err := cleanName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	d, err := h.deps.AddDimension(r.Context(), name)
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// HandleUpdateDimension handles PUT /framework/dimensions/{id} requests.
func (h *FrameworkHandler) HandleUpdateDimension(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_dimension"
	id := r.PathValue("id")
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	dims, err := h.deps.Framework()
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	cur, ok := findDimension(dims, id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	name, weight, err := req.resolve(cur.Name, cur.Weight)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	d, err := h.deps.UpdateDimension(r.Context(), id, name, weight)
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleDeleteDimension handles DELETE /framework/dimensions/{id} requests.
func (h *FrameworkHandler) HandleDeleteDimension(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_dimension"
	if err := h.deps.DeleteDimension(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddElement handles POST /framework/dimensions/{id}/elements requests.
func (h *FrameworkHandler) HandleAddElement(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_element"
	var req nameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	name, err := cleanName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	el, err := h.deps.AddElement(r.Context(), r.PathValue("id"), name)
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, el)
}

// HandleUpdateElement handles PUT /framework/dimensions/{id}/elements/{eid} requests.
func (h *FrameworkHandler) HandleUpdateElement(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_element"
	dimID, elID := r.PathValue("id"), r.PathValue("eid")
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	dims, err := h.deps.Framework()
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	d, ok := findDimension(dims, dimID)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	var cur *model.Element
	for i := range d.Elements {
		if d.Elements[i].ID == elID {
			cur = &d.Elements[i]
		}
	}
	if cur == nil {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	name, weight, err := req.resolve(cur.Name, cur.Weight)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	el, err := h.deps.UpdateElement(r.Context(), dimID, elID, name, weight)
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, el)
}

// HandleDeleteElement handles DELETE /framework/dimensions/{id}/elements/{eid} requests.
func (h *FrameworkHandler) HandleDeleteElement(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_element"
	if err := h.deps.DeleteElement(r.Context(), r.PathValue("id"), r.PathValue("eid")); err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSuggest handles POST /framework/dimensions/{id}/suggestions requests.
func (h *FrameworkHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	const op = "api.suggest"
	out, err := h.deps.Suggest(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	if out == nil {
		out = []model.Suggestion{}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleAcceptSuggestion handles POST /framework/dimensions/{id}/suggestions/accept requests.
func (h *FrameworkHandler) HandleAcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	const op = "api.accept_suggestion"
	var req suggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	name, err := cleanName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	el, err := h.deps.AcceptSuggestion(r.Context(), r.PathValue("id"),
		model.Suggestion{Name: name, Description: req.Description})
	if err != nil {
		writeServiceError(w, h.logger, r, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, el)
}
