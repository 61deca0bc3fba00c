// Package seed generates a synthetic squad document for demos and local runs.
package seed

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/scoring"
	"github.com/okian/pitchside/pkg/logger"
)

// Defaults for a typical U9 squad over a short season.
const (
	DefaultPlayers   = 12
	DefaultMatches   = 8
	DefaultTrainings = 12

	ratedSkillPercent = 70
	playedPercent     = 80
	presentPercent    = 85
	noPositionPercent = 20
	absentRating      = 3
	minuteStep        = 5
	maxMatchMinutes   = 40
	trainingOffset    = -3 // midweek session before the weekend match
	ageAtSeasonStart  = 8
)

// ErrInvalidSize is returned when a requested count is negative.
var ErrInvalidSize = errors.New("invalid seed size")

//nolint:gochecknoglobals // read-only name tables
var (
	firstNames = []string{
		"Léa", "Hugo", "Inès", "Lucas", "Jade", "Nathan", "Chloé", "Louis", "Manon", "Gabriel",
		"Zoé", "Raphaël", "Camille", "Arthur", "Lina", "Jules", "Emma", "Noé", "Alice", "Sacha",
	}
	opponents    = []string{"Vannes", "Lorient", "Auray", "Ploërmel", "Pontivy", "Quimperlé", "Hennebont", "Séné"}
	competitions = []string{"Plateau", "Amical", "Tournoi"}
	themes       = []string{"Conduite de balle", "Passes courtes", "Jeu à 5", "Frappes", "Vitesse", "Placement"}
	feet         = []string{"Droit", "Droit", "Droit", "Gauche", "Ambidextre"}
)

// Config sizes the generated document.
type Config struct {
	Players   int
	Matches   int
	Trainings int
	// Start is the date of the first match; trainings fall three days
	// before each weekly match.
	Start     model.Date
	Skills    []string
	Positions []string
}

// Generator builds documents from a random source.
type Generator struct {
	rnd io.Reader
	log logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandom replaces crypto/rand as the entropy source.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		if r != nil {
			g.rnd = r
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a generator.
func New(opts ...Option) *Generator {
	g := &Generator{rnd: rand.Reader, log: logger.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a valid document. Empty Skills and Positions fall back
// to the default scoring table.
func (g *Generator) Generate(ctx context.Context, cfg Config) (*model.Data, error) {
	if cfg.Players < 0 || cfg.Matches < 0 || cfg.Trainings < 0 {
		return nil, fmt.Errorf("%w: players=%d matches=%d trainings=%d",
			ErrInvalidSize, cfg.Players, cfg.Matches, cfg.Trainings)
	}
	if len(cfg.Skills) == 0 {
		cfg.Skills = scoring.DefaultSkills()
	}
	if len(cfg.Positions) == 0 {
		cfg.Positions = scoring.DefaultWeights().Positions()
	}
	if cfg.Start.IsZero() {
		return nil, fmt.Errorf("%w: start date must be set", ErrInvalidSize)
	}

	d := model.NewData()
	for i := range cfg.Players {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.Players = append(d.Players, g.player(i, cfg))
	}
	for i := range cfg.Matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.Matches = append(d.Matches, g.match(i, cfg, d.Players))
	}
	for i := range cfg.Trainings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.Trainings = append(d.Trainings, g.training(i, cfg, d.Players))
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("generated document is invalid: %w", err)
	}
	g.log.Info(ctx, "squad generated",
		logger.Int("players", len(d.Players)),
		logger.Int("matches", len(d.Matches)),
		logger.Int("trainings", len(d.Trainings)),
	)
	return d, nil
}

func (g *Generator) player(i int, cfg Config) model.Player {
	name := firstNames[i%len(firstNames)]
	if round := i / len(firstNames); round > 0 {
		name += " " + strconv.Itoa(round+1)
	}
	p := model.Player{
		ID:          i + 1,
		Name:        name,
		BirthYear:   cfg.Start.Time().Year() - ageAtSeasonStart - g.intn(2),
		Foot:        model.OptionalString(pick(g, feet)),
		BaseRatings: make(map[string]int, len(cfg.Skills)),
	}
	if !g.chance(noPositionPercent) {
		p.PreferredPosition = model.OptionalString(pick(g, cfg.Positions))
	}
	for _, skill := range cfg.Skills {
		if g.chance(ratedSkillPercent) {
			p.BaseRatings[skill] = g.rating()
		}
	}
	return p
}

func (g *Generator) match(i int, cfg Config, roster []model.Player) model.Match {
	m := model.Match{
		ID:           i + 1,
		Date:         cfg.Start.AddDays(7 * i),
		Opponent:     pick(g, opponents),
		Competition:  pick(g, competitions),
		Performances: []model.Performance{},
	}
	for _, p := range roster {
		if !g.chance(playedPercent) {
			continue
		}
		pos := p.Preferred()
		if pos == "" || g.chance(noPositionPercent) {
			pos = pick(g, cfg.Positions)
		}
		m.Performances = append(m.Performances, model.Performance{
			PlayerID: p.ID,
			Position: pos,
			Minutes:  minuteStep * (1 + g.intn(maxMatchMinutes/minuteStep)),
			Tech:     g.rating(),
			Phys:     g.rating(),
			Tact:     g.rating(),
			Mental:   g.rating(),
			Goals:    g.goals(pos),
			Assists:  g.intn(2),
		})
	}
	return m
}

func (g *Generator) training(i int, cfg Config, roster []model.Player) model.Training {
	t := model.Training{
		ID:          i + 1,
		Date:        cfg.Start.AddDays(7*i + trainingOffset),
		Theme:       pick(g, themes),
		Type:        model.TrainingTypes[i%len(model.TrainingTypes)],
		Attendances: make([]model.Attendance, 0, len(roster)),
	}
	for _, p := range roster {
		a := model.Attendance{PlayerID: p.ID, Effort: absentRating, Focus: absentRating}
		if g.chance(presentPercent) {
			a.Present = true
			a.Effort = g.rating()
			a.Focus = g.rating()
		}
		t.Attendances = append(t.Attendances, a)
	}
	return t
}

func (g *Generator) goals(pos string) int {
	switch pos {
	case model.PositionForward:
		return g.intn(3)
	case model.PositionGoalkeeper:
		return 0
	default:
		return g.intn(2)
	}
}

func (g *Generator) rating() int { return model.MinRating + g.intn(model.MaxRating) }

func (g *Generator) chance(percent int) bool { return g.intn(100) < percent }

// intn returns a value in [0, n). A failing source yields 0.
func (g *Generator) intn(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(g.rnd, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

func pick[T any](g *Generator, items []T) T {
	return items[g.intn(len(items))]
}
