package service

import (
	"context"
	"slices"
	"strings"

	"github.com/okian/pitchside/internal/domain/model"
)

// AddPlayer appends p to the roster under the next free id.
func (s *Service) AddPlayer(ctx context.Context, p model.Player) (model.Player, error) {
	var out model.Player
	err := s.mutate(ctx, "add_player", func(d *model.Data) error {
		p = p.Clone()
		p.ID = model.NextID(d.Players)
		p.Name = strings.TrimSpace(p.Name)
		if p.BaseRatings == nil {
			p.BaseRatings = map[string]int{}
		}
		if err := s.checkPosition(p.Preferred()); err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return invalid(err)
		}
		d.Players = append(d.Players, p)
		out = p.Clone()
		return nil
	})
	return out, err
}

// UpdateRatings replaces the base ratings of a player. Skills left out are
// treated as not assessed.
func (s *Service) UpdateRatings(ctx context.Context, playerID int, ratings map[string]int) (model.Player, error) {
	var out model.Player
	err := s.mutate(ctx, "update_ratings", func(d *model.Data) error {
		i := d.PlayerIndex(playerID)
		if i < 0 {
			return notFound("player", playerID)
		}
		p := d.Players[i]
		p.BaseRatings = make(map[string]int, len(ratings))
		for k, v := range ratings {
			p.BaseRatings[k] = v
		}
		if err := p.Validate(); err != nil {
			return invalid(err)
		}
		d.Players[i] = p
		out = p.Clone()
		return nil
	})
	return out, err
}

// AddMatch records a fixture under the next free id.
func (s *Service) AddMatch(ctx context.Context, m model.Match) (model.Match, error) {
	var out model.Match
	err := s.mutate(ctx, "add_match", func(d *model.Data) error {
		m = m.Clone()
		m.ID = model.NextID(d.Matches)
		m.Opponent = strings.TrimSpace(m.Opponent)
		m.Competition = strings.TrimSpace(m.Competition)
		if m.Performances == nil {
			m.Performances = []model.Performance{}
		}
		for _, p := range m.Performances {
			if err := s.checkPerformance(d, p); err != nil {
				return err
			}
		}
		if err := m.Validate(); err != nil {
			return invalid(err)
		}
		d.Matches = append(d.Matches, m)
		out = m.Clone()
		return nil
	})
	return out, err
}

// AddPerformance appends a player's sheet to a match. A player may appear
// more than once per match; every sheet counts.
func (s *Service) AddPerformance(ctx context.Context, matchID int, p model.Performance) (model.Match, error) {
	var out model.Match
	err := s.mutate(ctx, "add_performance", func(d *model.Data) error {
		i := d.MatchIndex(matchID)
		if i < 0 {
			return notFound("match", matchID)
		}
		if err := s.checkPerformance(d, p); err != nil {
			return err
		}
		d.Matches[i].Performances = append(d.Matches[i].Performances, p)
		out = d.Matches[i].Clone()
		return nil
	})
	return out, err
}

// AddTraining records a session under the next free id.
func (s *Service) AddTraining(ctx context.Context, t model.Training) (model.Training, error) {
	var out model.Training
	err := s.mutate(ctx, "add_training", func(d *model.Data) error {
		t = t.Clone()
		t.ID = model.NextID(d.Trainings)
		t.Theme = strings.TrimSpace(t.Theme)
		if t.Attendances == nil {
			t.Attendances = []model.Attendance{}
		}
		if err := checkSheet(d, t.Attendances); err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return invalid(err)
		}
		d.Trainings = append(d.Trainings, t)
		out = t.Clone()
		return nil
	})
	return out, err
}

// RecordAttendance replaces the attendance sheet of a session.
func (s *Service) RecordAttendance(ctx context.Context, trainingID int, sheet []model.Attendance) (model.Training, error) {
	var out model.Training
	err := s.mutate(ctx, "record_attendance", func(d *model.Data) error {
		i := d.TrainingIndex(trainingID)
		if i < 0 {
			return notFound("training", trainingID)
		}
		if err := checkSheet(d, sheet); err != nil {
			return err
		}
		d.Trainings[i].Attendances = append([]model.Attendance{}, sheet...)
		out = d.Trainings[i].Clone()
		return nil
	})
	return out, err
}

func (s *Service) checkPosition(pos string) error {
	if pos == "" || slices.Contains(s.scorer.Weights().Positions(), pos) {
		return nil
	}
	return invalidf("unknown position %q", pos)
}

func (s *Service) checkPerformance(d *model.Data, p model.Performance) error {
	if _, ok := d.FindPlayer(p.PlayerID); !ok {
		return invalidf("player %d is not on the roster", p.PlayerID)
	}
	if p.Position == "" {
		return invalidf("performance position must be set")
	}
	if err := s.checkPosition(p.Position); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return invalid(err)
	}
	return nil
}

// checkSheet allows at most one line per player, each for a rostered player.
func checkSheet(d *model.Data, sheet []model.Attendance) error {
	seen := make(map[int]struct{}, len(sheet))
	for _, a := range sheet {
		if _, ok := d.FindPlayer(a.PlayerID); !ok {
			return invalidf("player %d is not on the roster", a.PlayerID)
		}
		if _, dup := seen[a.PlayerID]; dup {
			return invalidf("player %d appears twice on the sheet", a.PlayerID)
		}
		seen[a.PlayerID] = struct{}{}
		if err := a.Validate(); err != nil {
			return invalid(err)
		}
	}
	return nil
}
