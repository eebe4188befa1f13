// Package stats derives read-only views (leaderboards, rivalries,
// partnerships, weekly leaders) from a table state.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/mauv0809/rei-da-mesa/internal/table"
)

// Week is the window used by WeeklyLeaders.
const Week = 7 * 24 * time.Hour

// Ref resolves id against the roster. Unknown ids come back as retired.
func Ref(s table.State, id string) PlayerRef {
	p, ok := s.Players[id]
	if !ok {
		return PlayerRef{ID: id, Name: RetiredName, Retired: true}
	}
	return PlayerRef{ID: p.ID, Name: p.Name, Emoji: p.Emoji}
}

// Rankings orders the roster by wins, then points scored, then name.
func Rankings(s table.State) []Ranking {
	players := make([]table.Player, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.Stats.Wins != b.Stats.Wins {
			return a.Stats.Wins > b.Stats.Wins
		}
		if a.Stats.PointsScored != b.Stats.PointsScored {
			return a.Stats.PointsScored > b.Stats.PointsScored
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	out := make([]Ranking, len(players))
	for i, p := range players {
		out[i] = Ranking{
			Rank:    i + 1,
			Player:  PlayerRef{ID: p.ID, Name: p.Name, Emoji: p.Emoji},
			Level:   p.Level,
			Stats:   p.Stats,
			WinRate: p.Stats.WinRate(),
		}
	}
	return out
}

// maxBy returns the key with the highest strictly positive value. Keys are
// visited in sorted order so ties resolve to the smallest id.
func maxBy[V any](m map[string]V, value func(V) int) (string, int) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestValue := "", 0
	for _, k := range keys {
		if v := value(m[k]); v > bestValue {
			best, bestValue = k, v
		}
	}
	return best, bestValue
}

// RivalsOf finds the player's nemesis (most losses to) and client (most
// wins against).
func RivalsOf(s table.State, p table.Player) Rivals {
	var out Rivals
	if id, n := maxBy(p.Rivalries, func(r table.Rivalry) int { return r.LossesTo }); id != "" {
		ref := Ref(s, id)
		out.Nemesis, out.NemesisLosses = &ref, n
	}
	if id, n := maxBy(p.Rivalries, func(r table.Rivalry) int { return r.WinsAgainst }); id != "" {
		ref := Ref(s, id)
		out.Client, out.ClientWins = &ref, n
	}
	return out
}

// PartnersOf finds the teammate the player wins with the most and the one
// they lose with the most.
func PartnersOf(s table.State, p table.Player) Partners {
	var out Partners
	if id, n := maxBy(p.Partnerships, func(r table.Partnership) int { return r.Wins }); id != "" {
		ref := Ref(s, id)
		out.Best, out.BestWins = &ref, n
	}
	if id, n := maxBy(p.Partnerships, func(r table.Partnership) int { return r.Losses }); id != "" {
		ref := Ref(s, id)
		out.BadVibe, out.BadVibeLosses = &ref, n
	}
	return out
}

// Summarize builds the player card. ok is false for an unknown id.
func Summarize(s table.State, id string) (Summary, bool) {
	p, ok := s.Players[id]
	if !ok {
		return Summary{}, false
	}
	sum := Summary{
		Player:   Ref(s, id),
		Level:    p.Level,
		Active:   p.Active,
		Stats:    p.Stats,
		WinRate:  p.Stats.WinRate(),
		Rivals:   RivalsOf(s, p),
		Partners: PartnersOf(s, p),
	}
	for _, m := range s.History {
		if m.IsComeback && containsID(m.Players(m.Winner), id) {
			sum.Comebacks++
		}
	}
	return sum, true
}

// WeeklyLeaders counts wins and pneus applied per player over the decided
// matches in history that started within a week of now, best first.
func WeeklyLeaders(s table.State, now time.Time) []Leader {
	since := now.Add(-Week).UnixMilli()
	tally := make(map[string]*Leader)
	for _, m := range s.History {
		if m.Timestamp < since || !m.Decided() {
			continue
		}
		for _, id := range m.Players(m.Winner) {
			l, ok := tally[id]
			if !ok {
				l = &Leader{Player: Ref(s, id)}
				tally[id] = l
			}
			l.Wins++
			if m.IsPneu() {
				l.Pneus++
			}
		}
	}

	out := make([]Leader, 0, len(tally))
	for _, l := range tally {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].Pneus != out[j].Pneus {
			return out[i].Pneus > out[j].Pneus
		}
		return out[i].Player.ID < out[j].Player.ID
	})
	return out
}

// FindByName looks a player up by name, ignoring case and surrounding
// spaces. An exact match wins over a unique prefix match; players sharing a
// name resolve to the smallest id.
func FindByName(s table.State, query string) (table.Player, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return table.Player{}, false
	}
	ids := make([]string, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var prefix []table.Player
	for _, id := range ids {
		p := s.Players[id]
		name := strings.ToLower(p.Name)
		if name == q {
			return p, true
		}
		if strings.HasPrefix(name, q) {
			prefix = append(prefix, p)
		}
	}
	if len(prefix) == 1 {
		return prefix[0], true
	}
	return table.Player{}, false
}

func containsID(ids []string, id string) bool {
	for _, pid := range ids {
		if pid == id {
			return true
		}
	}
	return false
}
