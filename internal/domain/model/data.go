package model

import "fmt"

// Data is the whole squad document: {players, matches, trainings}.
type Data struct {
	Players   []Player   `json:"players"`
	Matches   []Match    `json:"matches"`
	Trainings []Training `json:"trainings"`
}

// NewData returns an empty document with all collections present.
func NewData() *Data {
	return (&Data{}).EnsureStructure()
}

// EnsureStructure replaces missing collections with empty ones.
func (d *Data) EnsureStructure() *Data {
	if d.Players == nil {
		d.Players = []Player{}
	}
	if d.Matches == nil {
		d.Matches = []Match{}
	}
	if d.Trainings == nil {
		d.Trainings = []Training{}
	}
	return d
}

// Roster returns the players in roster order.
func (d *Data) Roster() []Player { return d.Players }

// MatchHistory returns the matches in entry order.
func (d *Data) MatchHistory() []Match { return d.Matches }

// Sessions returns the trainings in entry order.
func (d *Data) Sessions() []Training { return d.Trainings }

// FindPlayer looks a player up by id.
func (d *Data) FindPlayer(id int) (Player, bool) {
	if i := d.PlayerIndex(id); i >= 0 {
		return d.Players[i], true
	}
	return Player{}, false
}

// PlayerIndex returns the slice index of player id, or -1.
func (d *Data) PlayerIndex(id int) int {
	return indexOf(d.Players, id)
}

// FindMatch looks a match up by id.
func (d *Data) FindMatch(id int) (Match, bool) {
	if i := d.MatchIndex(id); i >= 0 {
		return d.Matches[i], true
	}
	return Match{}, false
}

// MatchIndex returns the slice index of match id, or -1.
func (d *Data) MatchIndex(id int) int {
	return indexOf(d.Matches, id)
}

// FindTraining looks a training up by id.
func (d *Data) FindTraining(id int) (Training, bool) {
	if i := d.TrainingIndex(id); i >= 0 {
		return d.Trainings[i], true
	}
	return Training{}, false
}

// TrainingIndex returns the slice index of training id, or -1.
func (d *Data) TrainingIndex(id int) int {
	return indexOf(d.Trainings, id)
}

// Clone returns a deep copy so readers never share slices with writers.
func (d *Data) Clone() *Data {
	out := &Data{
		Players:   make([]Player, len(d.Players)),
		Matches:   make([]Match, len(d.Matches)),
		Trainings: make([]Training, len(d.Trainings)),
	}
	for i, p := range d.Players {
		out.Players[i] = p.Clone()
	}
	for i, m := range d.Matches {
		out.Matches[i] = m.Clone()
	}
	for i, t := range d.Trainings {
		out.Trainings[i] = t.Clone()
	}
	return out
}

// Validate checks every record and the uniqueness of ids per collection.
func (d *Data) Validate() error {
	if err := checkIDs("player", d.Players); err != nil {
		return err
	}
	if err := checkIDs("match", d.Matches); err != nil {
		return err
	}
	if err := checkIDs("training", d.Trainings); err != nil {
		return err
	}
	for _, p := range d.Players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("player %d: %w", p.ID, err)
		}
	}
	for _, m := range d.Matches {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("match %d: %w", m.ID, err)
		}
	}
	for _, t := range d.Trainings {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("training %d: %w", t.ID, err)
		}
	}
	return nil
}

// Identified is implemented by every record carrying an integer id.
type Identified interface {
	Identifier() int
}

// NextID allocates max(existing id)+1, or 1 for an empty collection.
func NextID[T Identified](items []T) int {
	next := 1
	for _, it := range items {
		if id := it.Identifier(); id >= next {
			next = id + 1
		}
	}
	return next
}

func indexOf[T Identified](items []T, id int) int {
	for i, it := range items {
		if it.Identifier() == id {
			return i
		}
	}
	return -1
}

func checkIDs[T Identified](kind string, items []T) error {
	seen := make(map[int]struct{}, len(items))
	for _, it := range items {
		id := it.Identifier()
		if _, dup := seen[id]; dup {
			return wrapInvalid(fmt.Sprintf("duplicate %s id %d", kind, id))
		}
		seen[id] = struct{}{}
	}
	return nil
}
