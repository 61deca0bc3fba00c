package api

import (
	"fmt"
	"net/http"

	"github.com/okian/pitchside/internal/domain/model"
)

// DashboardHandler serves the squad-wide analytics.
type DashboardHandler struct {
	deps Dependencies
	r    *responder
}

// HandleProfiles handles GET /profiles.
func (h *DashboardHandler) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Profiles(r.Context())
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleMeans handles GET /means.
func (h *DashboardHandler) HandleMeans(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.MatchMeans(r.Context())
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleProgress handles GET /dashboard/progress?today=YYYY-MM-DD. Without
// today the service clock decides.
func (h *DashboardHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	var today model.Date
	if raw := r.URL.Query().Get("today"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			h.r.fail(w, r, fmt.Errorf("%w: %w", ErrBadRequest, err))
			return
		}
		today = d
	}
	p, err := h.deps.Progress(r.Context(), today)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleWorkload handles GET /dashboard/workload?sort=minutes|name.
func (h *DashboardHandler) HandleWorkload(w http.ResponseWriter, r *http.Request) {
	rows, err := h.deps.Workload(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleExport handles GET /export with the raw document.
func (h *DashboardHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	b, err := h.deps.Export(r.Context())
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="squad.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
