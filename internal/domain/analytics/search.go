package analytics

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultSearchThreshold is the minimum name similarity of a search hit.
const DefaultSearchThreshold = 0.7

// PlayerHit is a roster player matching a name query.
type PlayerHit struct {
	PlayerID   int     `json:"player_id"`
	Player     string  `json:"player"`
	Similarity float64 `json:"similarity"`
}

// SearchPlayers looks players up by approximate name. Similarity is
// 1 - levenshtein/maxLen on lower-cased names; a name that contains the
// query, ignoring case and accents, scores 1. Hits below threshold are
// dropped and the rest are ordered best first.
func SearchPlayers(src Source, query string, threshold float64) []PlayerHit {
	query = strings.TrimSpace(query)
	out := make([]PlayerHit, 0)
	if query == "" {
		return out
	}
	q := strings.ToLower(query)
	for _, p := range src.Roster() {
		name := strings.ToLower(p.Name)
		sim := similarity(q, name)
		if strings.Contains(normalize(name), normalize(q)) {
			sim = 1
		}
		if sim < threshold {
			continue
		}
		out = append(out, PlayerHit{PlayerID: p.ID, Player: p.Name, Similarity: round2(sim)})
	}
	slices.SortStableFunc(out, func(a, b PlayerHit) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return byName(a.Player, a.PlayerID, b.Player, b.PlayerID)
	})
	return out
}

func similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(maxLen)
}

// normalize lower-cases s and strips combining marks.
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
