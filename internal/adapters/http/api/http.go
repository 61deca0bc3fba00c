// Package api serves the squad service over JSON HTTP.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/okian/pitchside/internal/domain/analytics"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var (
	// out encodes responses. Names keep their accents and angle brackets.
	out = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze() //nolint:gochecknoglobals // frozen config
	// in decodes request bodies and rejects unknown fields.
	in = jsoniter.Config{DisallowUnknownFields: true}.Froze() //nolint:gochecknoglobals // frozen config
)

// Dependencies required by HTTP handlers. *service.Service implements it.
type Dependencies interface {
	StatsProvider

	Players(ctx context.Context) ([]model.Player, error)
	Player(ctx context.Context, id int) (model.Player, error)
	AddPlayer(ctx context.Context, p model.Player) (model.Player, error)
	UpdateRatings(ctx context.Context, playerID int, ratings map[string]int) (model.Player, error)
	SearchPlayers(ctx context.Context, query string) ([]analytics.PlayerHit, error)
	Report(ctx context.Context, playerID int) (analytics.Report, error)

	Matches(ctx context.Context) ([]model.Match, error)
	AddMatch(ctx context.Context, m model.Match) (model.Match, error)
	AddPerformance(ctx context.Context, matchID int, p model.Performance) (model.Match, error)
	MatchSheet(ctx context.Context, matchID int) (analytics.MatchSheet, error)
	MatchTop(ctx context.Context, matchID int) ([]analytics.MatchRanking, error)

	Trainings(ctx context.Context) ([]model.Training, error)
	AddTraining(ctx context.Context, t model.Training) (model.Training, error)
	RecordAttendance(ctx context.Context, trainingID int, sheet []model.Attendance) (model.Training, error)
	TrainingSheet(ctx context.Context, trainingID int) (analytics.TrainingSheet, error)

	Profiles(ctx context.Context) ([]analytics.ProfileRow, error)
	MatchMeans(ctx context.Context) ([]analytics.MatchMeans, error)
	Progress(ctx context.Context, today model.Date) (analytics.Progress, error)
	Workload(ctx context.Context, sortBy string) (analytics.Workloads, error)
	Export(ctx context.Context) ([]byte, error)
}

// Server wires HTTP routes for the squad API.
type Server struct {
	deps Dependencies
	log  logger.Logger

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	playersHandler   *PlayersHandler
	matchesHandler   *MatchesHandler
	trainingsHandler *TrainingsHandler
	dashboardHandler *DashboardHandler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for internal errors.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{deps: deps, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	r := &responder{log: s.log}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.playersHandler = &PlayersHandler{deps: deps, r: r}
	s.matchesHandler = &MatchesHandler{deps: deps, r: r}
	s.trainingsHandler = &TrainingsHandler{deps: deps, r: r}
	s.dashboardHandler = &DashboardHandler{deps: deps, r: r}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, MetricsMiddleware(h, endpoint))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	p := s.playersHandler
	route("GET /players", "players", p.HandleList)
	route("POST /players", "players", p.HandleCreate)
	route("GET /players/search", "players_search", p.HandleSearch)
	route("GET /players/{id}", "player", p.HandleGet)
	route("PUT /players/{id}/ratings", "player_ratings", p.HandleRatings)
	route("GET /players/{id}/report", "player_report", p.HandleReport)
	route("GET /players/{id}/report.html", "player_report_html", p.HandleReportHTML)

	m := s.matchesHandler
	route("GET /matches", "matches", m.HandleList)
	route("POST /matches", "matches", m.HandleCreate)
	route("POST /matches/{id}/performances", "match_performances", m.HandleAddPerformance)
	route("GET /matches/{id}/sheet", "match_sheet", m.HandleSheet)
	route("GET /matches/{id}/top", "match_top", m.HandleTop)

	t := s.trainingsHandler
	route("GET /trainings", "trainings", t.HandleList)
	route("POST /trainings", "trainings", t.HandleCreate)
	route("PUT /trainings/{id}/attendance", "training_attendance", t.HandleAttendance)
	route("GET /trainings/{id}/sheet", "training_sheet", t.HandleSheet)

	d := s.dashboardHandler
	route("GET /profiles", "profiles", d.HandleProfiles)
	route("GET /means", "means", d.HandleMeans)
	route("GET /dashboard/progress", "progress", d.HandleProgress)
	route("GET /dashboard/workload", "workload", d.HandleWorkload)
	route("GET /export", "export", d.HandleExport)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// responder writes JSON bodies and maps errors to statuses.
type responder struct {
	log logger.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = out.NewEncoder(w).Encode(v)
}

// fail writes err as {code, message}. Internal errors are logged and their
// details are not sent to the client.
func (rs *responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		rs.log.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decode reads a JSON body into v.
func decode(r *http.Request, v any) error {
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if len(b) > maxBodyBytes {
		return fmt.Errorf("%w: body larger than %d bytes", ErrBadRequest, maxBodyBytes)
	}
	if err := in.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

// pathID parses the {id} wildcard.
func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrBadRequest, raw)
	}
	return id, nil
}
