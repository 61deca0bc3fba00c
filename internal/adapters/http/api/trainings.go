package api

import (
	"net/http"

	"github.com/okian/pitchside/internal/domain/model"
)

// TrainingsHandler serves sessions and attendance sheets.
type TrainingsHandler struct {
	deps Dependencies
	r    *responder
}

type trainingRequest struct {
	Date  model.Date `json:"date"`
	Theme string     `json:"theme"`
	Type  string     `json:"type"`
	Notes string     `json:"notes"`
}

type attendanceRequest struct {
	Attendances []model.Attendance `json:"attendances"`
}

// HandleList handles GET /trainings.
func (h *TrainingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	trainings, err := h.deps.Trainings(r.Context())
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trainings)
}

// HandleCreate handles POST /trainings.
func (h *TrainingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req trainingRequest
	if err := decode(r, &req); err != nil {
		h.r.fail(w, r, err)
		return
	}
	t, err := h.deps.AddTraining(r.Context(), model.Training{
		Date:  req.Date,
		Theme: req.Theme,
		Type:  req.Type,
		Notes: req.Notes,
	})
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// HandleAttendance handles PUT /trainings/{id}/attendance. The body replaces
// the whole sheet.
func (h *TrainingsHandler) HandleAttendance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	var req attendanceRequest
	if err := decode(r, &req); err != nil {
		h.r.fail(w, r, err)
		return
	}
	t, err := h.deps.RecordAttendance(r.Context(), id, req.Attendances)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// HandleSheet handles GET /trainings/{id}/sheet.
func (h *TrainingsHandler) HandleSheet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	sheet, err := h.deps.TrainingSheet(r.Context(), id)
	if err != nil {
		h.r.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}
