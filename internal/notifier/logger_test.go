package notifier

import (
	"testing"

	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatchResult(t *testing.T) {
	s := table.NewState()
	s.Players["p1"] = table.NewPlayer("p1", "Caique", "🏓", table.LevelIntermediate)
	s.Players["p2"] = table.NewPlayer("p2", "Lucas", "🔥", table.LevelBeginner)
	m := table.Match{
		ID: "m1", Mode: table.ModeDuplas,
		SideA: []string{"p1", "p3"}, SideB: []string{"p2", "p4"},
		ScoreA: 4, ScoreB: 10, Winner: table.SideB,
	}

	r := NewMatchResult(s, m)
	require.Len(t, r.Winners, 2)
	assert.Equal(t, "Lucas", r.Winners[0].Name)
	assert.True(t, r.Winners[1].Retired, "deleted players still show up")
	assert.Equal(t, "Caique & "+stats.RetiredName, Names(r.Losers))
	assert.Equal(t, 10, r.WinnerScore())
	assert.Equal(t, 4, r.LoserScore())
}

func TestLogger_Formats(t *testing.T) {
	l := NewLogger()

	resp, err := l.FormatLeaderboardResponse([]stats.Ranking{
		{Rank: 1, Player: stats.PlayerRef{Name: "Rian", Emoji: "🦖"}, Stats: table.Stats{Wins: 3, Matches: 4}, WinRate: 75},
	})
	require.NoError(t, err)
	assert.Equal(t, "1. 🦖 Rian 3/4 (75%)", resp)

	resp, err = l.FormatPlayerNotFoundResponse("Zé")
	require.NoError(t, err)
	assert.Equal(t, `No player matching "Zé".`, resp)

	assert.NoError(t, l.SendResultNotification(MatchResult{Match: table.Match{Winner: table.SideA}}, true))
}
