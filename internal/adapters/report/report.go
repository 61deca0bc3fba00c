// Package report renders player report cards as Markdown and HTML.
package report

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/okian/pitchside/internal/domain/analytics"
)

// md converts report Markdown. Raw HTML in the input is escaped because
// WithUnsafe is not set.
var md = goldmark.New( //nolint:gochecknoglobals // goldmark instances are safe for concurrent use
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
)

var mdEscaper = strings.NewReplacer( //nolint:gochecknoglobals // read-only
	`\`, `\\`, "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "#", `\#`, "`", "\\`", "|", `\|`, "<", "&lt;",
)

const blankLine = "________________________________________"

// Markdown renders r as a printable report card.
func Markdown(r analytics.Report) string {
	var b strings.Builder
	w := func(format string, args ...any) { fmt.Fprintf(&b, format, args...) }

	w("# Fiche joueur – U9\n\n")
	w("**Nom :** %s\n", esc(r.Player))
	w("Année de naissance : %s\n", year(r.BirthYear))
	w("Poste préférentiel (déclaré) : %s\n", esc(r.Preferred))
	w("Pied fort : %s\n\n", esc(r.Foot))

	w("## Profil technique / physique / tactique / mental\n\n")
	if len(r.Ratings) == 0 {
		w("Aucune note de base saisie pour l’instant.\n\n")
	} else {
		w("| Compétence | Note |\n|---|---|\n")
		for _, s := range r.Ratings {
			w("| %s | %d/5 |\n", esc(s.Skill), s.Rating)
		}
		w("\n")
	}

	w("## Profil par poste (pondéré)\n\n")
	if r.Scores.Scored() {
		w("| Poste | Score |\n|---|---|\n")
		for _, s := range r.Scores {
			if s.Score != nil {
				w("| %s | %s/5 |\n", esc(s.Position), num(*s.Score))
			}
		}
		w("\n")
	} else {
		w("Pas assez de notes pour calculer un profil.\n\n")
	}
	if r.Recommended != "" {
		w("**➡ Poste recommandé : %s**\n\n", esc(r.Recommended))
	}

	w("## Entraînements\n\n")
	if a := r.Attendance; a.Sessions > 0 {
		w("Séances suivies : %d / %d\n", a.Present, a.Sessions)
		w("Effort moyen : %s/5\n", num(a.Effort))
		w("Concentration moyenne : %s/5\n\n", num(a.Focus))
	} else {
		w("Aucune séance renseignée pour ce joueur.\n\n")
	}

	w("## Matchs\n\n")
	if m := r.Matches; m.Matches > 0 {
		w("Nombre de feuilles de match : %d\n", m.Matches)
		w("Tech / Phys / Tact / Mental (moyennes) : %s / %s / %s / %s\n",
			num(m.Tech), num(m.Phys), num(m.Tact), num(m.Mental))
		w("Buts : %d | Passes décisives : %d\n\n", m.Goals, m.Assists)
	} else {
		w("Aucune performance de match saisie pour ce joueur.\n\n")
	}

	w("## Zone coach – Points forts\n\n%s\n%s\n%s\n\n", blankLine, blankLine, blankLine)
	w("## Zone coach – Axes de progression\n\n%s\n%s\n%s\n", blankLine, blankLine, blankLine)
	return b.String()
}

// HTML renders r as a standalone HTML page.
func HTML(r analytics.Report) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(r)), &body); err != nil {
		return nil, fmt.Errorf("render report of player %d: %w", r.PlayerID, err)
	}
	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html lang=\"fr\">\n<head>\n<meta charset=\"utf-8\">\n<title>")
	page.WriteString(html.EscapeString(r.Player))
	page.WriteString("</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

func esc(s string) string { return mdEscaper.Replace(s) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func year(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}
