package notifier

import (
	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

// MatchResult is a finished match with its players resolved for display.
type MatchResult struct {
	Match   table.Match
	Winners []stats.PlayerRef
	Losers  []stats.PlayerRef
}

// NewMatchResult resolves the sides of m against the roster in s.
func NewMatchResult(s table.State, m table.Match) MatchResult {
	resolve := func(ids []string) []stats.PlayerRef {
		refs := make([]stats.PlayerRef, len(ids))
		for i, id := range ids {
			refs[i] = stats.Ref(s, id)
		}
		return refs
	}
	return MatchResult{
		Match:   m,
		Winners: resolve(m.Players(m.Winner)),
		Losers:  resolve(m.Players(m.Winner.Opposite())),
	}
}

// WinnerScore is the winning side's score.
func (r MatchResult) WinnerScore() int {
	return r.Match.Score(r.Match.Winner)
}

// LoserScore is the losing side's score.
func (r MatchResult) LoserScore() int {
	return r.Match.Score(r.Match.Winner.Opposite())
}
