package api

import (
	"net/http"

	"github.com/okian/pitchside/internal/adapters/report"
	"github.com/okian/pitchside/internal/domain/model"
)

// PlayersHandler serves the roster and report cards.
type PlayersHandler struct {
	deps Dependencies
	r    *responder
}

type playerRequest struct {
	Name              string         `json:"name"`
	BirthYear         int            `json:"birth_year"`
	PreferredPosition string         `json:"preferred_position"`
	Foot              string         `json:"foot"`
	BaseRatings       map[string]int `json:"base_ratings"`
}

type ratingsRequest struct {
	BaseRatings map[string]int `json:"base_ratings"`
}

// HandleList handles GET /players.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	players, err := h.deps.Players(r.Context())
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleCreate handles POST /players.
func (h *PlayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decode(r, &req); err != nil {
		h.r.fail(w, r, err)
		return
	}
	p, err := h.deps.AddPlayer(r.Context(), model.Player{
		Name:              req.Name,
		BirthYear:         req.BirthYear,
		PreferredPosition: model.OptionalString(req.PreferredPosition),
		Foot:              model.OptionalString(req.Foot),
		BaseRatings:       req.BaseRatings,
	})
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleGet handles GET /players/{id}.
func (h *PlayersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	p, err := h.deps.Player(r.Context(), id)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleSearch handles GET /players/search?name=.
func (h *PlayersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	hits, err := h.deps.SearchPlayers(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hits)
}

// HandleRatings handles PUT /players/{id}/ratings.
func (h *PlayersHandler) HandleRatings(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	var req ratingsRequest
	if err := decode(r, &req); err != nil {
		h.r.fail(w, r, err)
		return
	}
	p, err := h.deps.UpdateRatings(r.Context(), id, req.BaseRatings)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleReport handles GET /players/{id}/report.
func (h *PlayersHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	rep, err := h.deps.Report(r.Context(), id)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleReportHTML handles GET /players/{id}/report.html.
func (h *PlayersHandler) HandleReportHTML(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	rep, err := h.deps.Report(r.Context(), id)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	page, err := report.HTML(rep)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
