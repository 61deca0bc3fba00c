package api

import (
	"net/http"

	"github.com/okian/pitchside/internal/domain/model"
)

// MatchesHandler serves fixtures and match sheets.
type MatchesHandler struct {
	deps Dependencies
	r    *responder
}

type matchRequest struct {
	Date        model.Date `json:"date"`
	Opponent    string     `json:"opponent"`
	Competition string     `json:"competition"`
}

// HandleList handles GET /matches.
func (h *MatchesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	matches, err := h.deps.Matches(r.Context())
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// HandleCreate handles POST /matches.
func (h *MatchesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decode(r, &req); err != nil {
		h.r.fail(w, r, err)
		return
	}
	m, err := h.deps.AddMatch(r.Context(), model.Match{
		Date:        req.Date,
		Opponent:    req.Opponent,
		Competition: req.Competition,
	})
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// HandleAddPerformance handles POST /matches/{id}/performances.
func (h *MatchesHandler) HandleAddPerformance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	var perf model.Performance
	if err := decode(r, &perf); err != nil {
		h.r.fail(w, r, err)
		return
	}
	m, err := h.deps.AddPerformance(r.Context(), id, perf)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// HandleSheet handles GET /matches/{id}/sheet.
func (h *MatchesHandler) HandleSheet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	sheet, err := h.deps.MatchSheet(r.Context(), id)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

// HandleTop handles GET /matches/{id}/top.
func (h *MatchesHandler) HandleTop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	top, err := h.deps.MatchTop(r.Context(), id)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}
