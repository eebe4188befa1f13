package stats_test

import (
	"testing"
	"time"

	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.UnixMilli(1_700_000_000_000)

func newState() table.State {
	s := table.NewState()
	add := func(id, name string, wins, points int) {
		p := table.NewPlayer(id, name, "🏓", table.LevelIntermediate)
		p.Stats.Wins = wins
		p.Stats.Matches = wins + 1
		p.Stats.Losses = 1
		p.Stats.PointsScored = points
		s.Players[id] = p
		s.Queue = append(s.Queue, id)
	}
	add("p1", "Caique", 3, 20)
	add("p2", "Lucas", 5, 10)
	add("p3", "Emanuel", 3, 25)
	add("p4", "Rian", 3, 20)
	return s
}

func TestRankings(t *testing.T) {
	rows := stats.Rankings(newState())
	require.Len(t, rows, 4)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.Player.ID)
	}
	assert.Equal(t, []string{"p2", "p3", "p1", "p4"}, ids, "wins, then points, then name")
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 83, rows[0].WinRate)

	assert.Empty(t, stats.Rankings(table.NewState()))
}

func TestRivalsOf(t *testing.T) {
	s := newState()
	p := s.Players["p1"]
	p.Rivalries.Upsert("p2", func(r *table.Rivalry) { r.LossesTo = 3; r.WinsAgainst = 1 })
	p.Rivalries.Upsert("p3", func(r *table.Rivalry) { r.LossesTo = 3 })
	p.Rivalries.Upsert("gone", func(r *table.Rivalry) { r.WinsAgainst = 4 })
	s.Players["p1"] = p

	got := stats.RivalsOf(s, p)
	require.NotNil(t, got.Nemesis)
	assert.Equal(t, "p2", got.Nemesis.ID, "ties keep the smallest id")
	assert.Equal(t, 3, got.NemesisLosses)
	require.NotNil(t, got.Client)
	assert.True(t, got.Client.Retired)
	assert.Equal(t, stats.RetiredName, got.Client.Name)
	assert.Equal(t, 4, got.ClientWins)

	t.Run("zero counts are ignored", func(t *testing.T) {
		q := s.Players["p4"]
		q.Rivalries.Upsert("p1", func(r *table.Rivalry) {})
		got := stats.RivalsOf(s, q)
		assert.Nil(t, got.Nemesis)
		assert.Nil(t, got.Client)
	})
}

func TestPartnersOf(t *testing.T) {
	s := newState()
	p := s.Players["p1"]
	p.Partnerships.Upsert("p2", func(r *table.Partnership) { r.Wins = 2 })
	p.Partnerships.Upsert("p3", func(r *table.Partnership) { r.Wins = 1; r.Losses = 2 })

	got := stats.PartnersOf(s, p)
	require.NotNil(t, got.Best)
	assert.Equal(t, "p2", got.Best.ID)
	assert.Equal(t, 2, got.BestWins)
	require.NotNil(t, got.BadVibe)
	assert.Equal(t, "p3", got.BadVibe.ID)
	assert.Equal(t, 2, got.BadVibeLosses)
}

func TestSummarize(t *testing.T) {
	s := newState()
	s.History = []table.Match{
		{ID: "m1", Mode: table.ModeSolo, SideA: []string{"p1"}, SideB: []string{"p2"}, ScoreA: 7, ScoreB: 5, Winner: table.SideA, IsComeback: true},
		{ID: "m2", Mode: table.ModeSolo, SideA: []string{"p2"}, SideB: []string{"p1"}, ScoreA: 7, ScoreB: 4, Winner: table.SideA, IsComeback: true},
	}

	sum, ok := stats.Summarize(s, "p1")
	require.True(t, ok)
	assert.Equal(t, "Caique", sum.Player.Name)
	assert.Equal(t, 1, sum.Comebacks)
	assert.True(t, sum.Active)

	_, ok = stats.Summarize(s, "ghost")
	assert.False(t, ok)
}

func TestWeeklyLeaders(t *testing.T) {
	s := newState()
	recent := now.Add(-time.Hour).UnixMilli()
	old := now.Add(-8 * 24 * time.Hour).UnixMilli()
	s.History = []table.Match{
		{ID: "m1", Mode: table.ModeSolo, SideA: []string{"p1"}, SideB: []string{"p2"}, ScoreA: 5, Winner: table.SideA, Timestamp: recent},
		{ID: "m2", Mode: table.ModeDuplas, SideA: []string{"p1", "p3"}, SideB: []string{"p2", "gone"}, ScoreA: 3, ScoreB: 10, Winner: table.SideB, Timestamp: recent},
		{ID: "m3", Mode: table.ModeSolo, SideA: []string{"p1"}, SideB: []string{"p4"}, ScoreA: 7, ScoreB: 2, Winner: table.SideA, Timestamp: recent},
		{ID: "m4", Mode: table.ModeSolo, SideA: []string{"p4"}, SideB: []string{"p3"}, ScoreA: 7, Winner: table.SideA, Timestamp: old},
	}

	got := stats.WeeklyLeaders(s, now)
	require.Len(t, got, 3)
	assert.Equal(t, stats.Leader{Player: stats.Ref(s, "p1"), Wins: 2, Pneus: 1}, got[0])
	assert.Equal(t, "gone", got[1].Player.ID)
	assert.True(t, got[1].Player.Retired)
	assert.Equal(t, "p2", got[2].Player.ID)

	assert.Empty(t, stats.WeeklyLeaders(s, now.Add(30*24*time.Hour)))
}

func TestFindByName(t *testing.T) {
	s := newState()

	p, ok := stats.FindByName(s, "  caique ")
	require.True(t, ok)
	assert.Equal(t, "p1", p.ID)

	p, ok = stats.FindByName(s, "Ri")
	require.True(t, ok, "unique prefix")
	assert.Equal(t, "p4", p.ID)

	s.Players["p5"] = table.NewPlayer("p5", "Ricardo", "🦊", table.LevelPro)
	_, ok = stats.FindByName(s, "Ri")
	assert.False(t, ok, "ambiguous prefix")

	_, ok = stats.FindByName(s, "")
	assert.False(t, ok)

	t.Run("shared names resolve to the smallest id", func(t *testing.T) {
		s := newState()
		for _, id := range []string{"p9", "p7", "p8"} {
			s.Players[id] = table.NewPlayer(id, "Caique", "🏓", table.LevelBeginner)
		}
		for i := 0; i < 20; i++ {
			p, ok := stats.FindByName(s, "caique")
			require.True(t, ok)
			assert.Equal(t, "p1", p.ID)
		}
	})
}
