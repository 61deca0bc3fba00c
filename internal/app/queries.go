package service

import (
	"context"
	"strings"
	"time"

	"github.com/okian/pitchside/internal/domain/analytics"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/metrics"
)

// Workload orderings accepted by Service.Workload.
const (
	SortByName    = "name"
	SortByMinutes = "minutes"
)

// Players returns the roster in roster order.
func (s *Service) Players(ctx context.Context) ([]model.Player, error) {
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Player, len(d.Players))
	for i, p := range d.Players {
		out[i] = p.Clone()
	}
	return out, nil
}

// Player returns one roster entry.
func (s *Service) Player(ctx context.Context, id int) (model.Player, error) {
	d, err := s.current(ctx)
	if err != nil {
		return model.Player{}, err
	}
	p, ok := d.FindPlayer(id)
	if !ok {
		return model.Player{}, notFound("player", id)
	}
	return p.Clone(), nil
}

// Matches returns the fixtures in entry order.
func (s *Service) Matches(ctx context.Context) ([]model.Match, error) {
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Match, len(d.Matches))
	for i, m := range d.Matches {
		out[i] = m.Clone()
	}
	return out, nil
}

// Trainings returns the sessions in entry order.
func (s *Service) Trainings(ctx context.Context) ([]model.Training, error) {
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Training, len(d.Trainings))
	for i, t := range d.Trainings {
		out[i] = t.Clone()
	}
	return out, nil
}

// Profiles returns the position profile of every roster player.
func (s *Service) Profiles(ctx context.Context) ([]analytics.ProfileRow, error) {
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer observe("profiles", time.Now())
	return analytics.BuildProfileRows(d, s.scorer), nil
}

// MatchMeans returns per-player match averages.
func (s *Service) MatchMeans(ctx context.Context) ([]analytics.MatchMeans, error) {
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer observe("match_means", time.Now())
	return analytics.AggregateMatchMeans(d), nil
}

// Progress compares the recent and prior windows ending on today. A zero
// today means the current date.
func (s *Service) Progress(ctx context.Context, today model.Date) (analytics.Progress, error) {
	d, err := s.current(ctx)
	if err != nil {
		return analytics.Progress{}, err
	}
	if today.IsZero() {
		today = s.Today()
	}
	defer observe("progress", time.Now())
	return analytics.ComputeProgressDeltas(analytics.FlattenPerformances(d), today,
		analytics.WithWindowDays(s.windowDays),
		analytics.WithTopN(s.topMovers),
	), nil
}

// Workload returns minutes played per player, ordered by name or by total
// minutes.
func (s *Service) Workload(ctx context.Context, sortBy string) (analytics.Workloads, error) {
	sortBy = strings.ToLower(strings.TrimSpace(sortBy))
	if sortBy != "" && sortBy != SortByName && sortBy != SortByMinutes {
		return nil, invalidf("unknown workload ordering %q", sortBy)
	}
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer observe("workload", time.Now())
	w := analytics.AggregateMinutes(analytics.FlattenPerformances(d))
	if sortBy == SortByMinutes {
		return w.ByTotalMinutes(), nil
	}
	return w, nil
}

// MatchTop returns the best rated players of a match. An unknown match
// ranks nobody.
func (s *Service) MatchTop(ctx context.Context, matchID int) ([]analytics.MatchRanking, error) {
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer observe("match_top", time.Now())
	return analytics.TopForMatch(analytics.FlattenPerformances(d), matchID, s.topPerMatch), nil
}

// MatchSheet returns the display sheet of a match.
func (s *Service) MatchSheet(ctx context.Context, matchID int) (analytics.MatchSheet, error) {
	d, err := s.current(ctx)
	if err != nil {
		return analytics.MatchSheet{}, err
	}
	sheet, ok := analytics.MatchSheetFor(d, matchID)
	if !ok {
		return analytics.MatchSheet{}, notFound("match", matchID)
	}
	return sheet, nil
}

// TrainingSheet returns the display sheet of a session.
func (s *Service) TrainingSheet(ctx context.Context, trainingID int) (analytics.TrainingSheet, error) {
	d, err := s.current(ctx)
	if err != nil {
		return analytics.TrainingSheet{}, err
	}
	sheet, ok := analytics.TrainingSheetFor(d, trainingID)
	if !ok {
		return analytics.TrainingSheet{}, notFound("training", trainingID)
	}
	return sheet, nil
}

// Report returns the report card of a player.
func (s *Service) Report(ctx context.Context, playerID int) (analytics.Report, error) {
	d, err := s.current(ctx)
	if err != nil {
		return analytics.Report{}, err
	}
	defer observe("report", time.Now())
	r, ok := analytics.BuildReport(d, s.scorer, s.skills, playerID)
	if !ok {
		return analytics.Report{}, notFound("player", playerID)
	}
	return r, nil
}

// SearchPlayers finds roster players by approximate name.
func (s *Service) SearchPlayers(ctx context.Context, query string) ([]analytics.PlayerHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, invalidf("search query must not be empty")
	}
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	defer observe("search", time.Now())
	return analytics.SearchPlayers(d, query, s.searchThreshold), nil
}

func observe(op string, start time.Time) {
	metrics.RecordAnalytics(op, time.Since(start))
}
