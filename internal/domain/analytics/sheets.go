package analytics

// SheetLine is one performance as shown on a match sheet.
type SheetLine struct {
	PlayerID int     `json:"player_id"`
	Player   string  `json:"player"`
	Position string  `json:"position"`
	Minutes  int     `json:"minutes"`
	Tech     int     `json:"tech"`
	Phys     int     `json:"phys"`
	Tact     int     `json:"tact"`
	Mental   int     `json:"mental"`
	Overall  float64 `json:"overall"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
	Comment  string  `json:"comment"`
}

// MatchSheet is the display form of a match.
type MatchSheet struct {
	MatchID int         `json:"match_id"`
	Label   string      `json:"label"`
	Lines   []SheetLine `json:"lines"`
}

// MatchSheetFor renders match id. Unlike FlattenPerformances, performances
// of unknown players are kept and named UnknownPlayer.
func MatchSheetFor(src Source, id int) (MatchSheet, bool) {
	players := roster(src)
	for _, m := range src.MatchHistory() {
		if m.ID != id {
			continue
		}
		sheet := MatchSheet{MatchID: m.ID, Label: m.Label(), Lines: make([]SheetLine, 0, len(m.Performances))}
		for _, p := range m.Performances {
			sheet.Lines = append(sheet.Lines, SheetLine{
				PlayerID: p.PlayerID,
				Player:   nameOf(players, p.PlayerID),
				Position: p.Position,
				Minutes:  p.Minutes,
				Tech:     p.Tech,
				Phys:     p.Phys,
				Tact:     p.Tact,
				Mental:   p.Mental,
				Overall:  round2(p.Overall()),
				Goals:    p.Goals,
				Assists:  p.Assists,
				Comment:  p.Comment,
			})
		}
		return sheet, true
	}
	return MatchSheet{}, false
}

// AttendanceLine is one attendance as shown on a training sheet.
type AttendanceLine struct {
	PlayerID int    `json:"player_id"`
	Player   string `json:"player"`
	Present  bool   `json:"present"`
	Effort   int    `json:"effort"`
	Focus    int    `json:"focus"`
	Comment  string `json:"comment"`
}

// TrainingSheet is the display form of a training session.
type TrainingSheet struct {
	TrainingID int              `json:"training_id"`
	Label      string           `json:"label"`
	Type       string           `json:"type"`
	Notes      string           `json:"notes"`
	Present    int              `json:"present"`
	Lines      []AttendanceLine `json:"lines"`
}

// TrainingSheetFor renders training id; unknown players are kept and named
// UnknownPlayer.
func TrainingSheetFor(src Source, id int) (TrainingSheet, bool) {
	players := roster(src)
	for _, t := range src.Sessions() {
		if t.ID != id {
			continue
		}
		sheet := TrainingSheet{
			TrainingID: t.ID,
			Label:      t.Label(),
			Type:       t.Type,
			Notes:      t.Notes,
			Lines:      make([]AttendanceLine, 0, len(t.Attendances)),
		}
		for _, a := range t.Attendances {
			if a.Present {
				sheet.Present++
			}
			sheet.Lines = append(sheet.Lines, AttendanceLine{
				PlayerID: a.PlayerID,
				Player:   nameOf(players, a.PlayerID),
				Present:  a.Present,
				Effort:   a.Effort,
				Focus:    a.Focus,
				Comment:  a.Comment,
			})
		}
		return sheet, true
	}
	return TrainingSheet{}, false
}
