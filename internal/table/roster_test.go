package table_test

import (
	"testing"

	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer(t *testing.T) {
	e := newTestEngine()
	s := newRoster(1)

	res := e.AddPlayer(s, "  Caique ", "🏓", table.LevelIntermediate)
	require.True(t, res.Changed)
	id := res.State.Queue[len(res.State.Queue)-1]
	p, ok := res.State.Player(id)
	require.True(t, ok)
	assert.Equal(t, "Caique", p.Name)
	assert.True(t, p.Active)
	assert.Equal(t, table.Stats{}, p.Stats)
	assert.NotNil(t, p.Rivalries)

	assert.False(t, e.AddPlayer(s, "   ", "🏓", table.LevelPro).Changed)
	assert.False(t, e.AddPlayer(s, "Rian", "🦖", table.Level("Legend")).Changed)
}

func TestUpdatePlayer(t *testing.T) {
	e := newTestEngine()
	s := e.StartMatch(newRoster(2), table.ModeSolo).State
	s = score(t, e, s, "AAAAA")
	s = e.FinishMatch(s, false).State

	res := e.UpdatePlayer(s, "p1", "Ricardo", "🦊", table.LevelPro)
	require.True(t, res.Changed)
	p := res.State.Players["p1"]
	assert.Equal(t, "Ricardo", p.Name)
	assert.Equal(t, table.LevelPro, p.Level)
	assert.Equal(t, 1, p.Stats.Wins, "counters survive edits")

	assert.False(t, e.UpdatePlayer(res.State, "p1", "Ricardo", "🦊", table.LevelPro).Changed)
	assert.False(t, e.UpdatePlayer(s, "ghost", "X", "🦊", table.LevelPro).Changed)
	assert.False(t, e.UpdatePlayer(s, "p1", "Ricardo", "🦊", "Lenda").Changed, "unknown level")

	t.Run("blank fields keep their value", func(t *testing.T) {
		res := e.UpdatePlayer(s, "p2", "  ", "", table.LevelAdvanced)
		require.True(t, res.Changed)
		p := res.State.Players["p2"]
		assert.Equal(t, "Player p2", p.Name)
		assert.Equal(t, "🏓", p.Emoji)
		assert.Equal(t, table.LevelAdvanced, p.Level)

		res = e.UpdatePlayer(res.State, "p2", "Lucas", "", "")
		require.True(t, res.Changed)
		assert.Equal(t, table.LevelAdvanced, res.State.Players["p2"].Level)
		assert.False(t, e.UpdatePlayer(res.State, "p2", "", "", "").Changed)
	})
}

func TestRemovePlayer(t *testing.T) {
	e := newTestEngine()
	s := e.StartMatch(newRoster(3), table.ModeSolo).State
	s = score(t, e, s, "AAAAA")
	s = e.FinishMatch(s, false).State

	res := e.RemovePlayer(s, "p2")
	require.True(t, res.Changed)
	_, ok := res.State.Player("p2")
	assert.False(t, ok)
	assert.NotContains(t, res.State.Queue, "p2")
	assert.Contains(t, res.State.Players["p1"].Rivalries, "p2", "back references are kept")

	playing := e.StartMatch(res.State, table.ModeSolo).State
	assert.False(t, e.RemovePlayer(playing, "p1").Changed)
	assert.False(t, e.RemovePlayer(s, "ghost").Changed)
}

func TestResets(t *testing.T) {
	e := newTestEngine()
	s := e.StartMatch(newRoster(3), table.ModeSolo).State
	s = score(t, e, s, "AAAAA")
	s = e.FinishMatch(s, true).State

	stats := e.ResetStats(s)
	require.True(t, stats.Changed)
	assert.Len(t, stats.State.Players, 3)
	assert.Equal(t, s.Queue, stats.State.Queue)
	assert.Empty(t, stats.State.History)
	assert.Nil(t, stats.State.ActiveMatch)
	assert.Equal(t, table.Stats{}, stats.State.Players["p1"].Stats)
	assert.Empty(t, stats.State.Players["p1"].Rivalries)

	all := e.ResetAll(s)
	require.True(t, all.Changed)
	assert.Empty(t, all.State.Players)
	assert.Empty(t, all.State.Queue)
	assert.False(t, e.ResetAll(all.State).Changed)
}

func TestApply(t *testing.T) {
	e := newTestEngine()
	s := newRoster(2)

	s = e.Apply(s, table.Command{Kind: table.CmdStartMatch, Mode: table.ModeSolo}).State
	for i := 0; i < 5; i++ {
		s = e.Apply(s, table.Command{Kind: table.CmdUpdateScore, Side: table.SideB, Amount: 1}).State
	}
	res := e.Apply(s, table.Command{Kind: table.CmdFinishMatch, AutoStart: true})
	require.True(t, res.Changed)
	assert.Equal(t, []string{"p2", "p1"}, res.State.Queue)
	assert.Equal(t, []string{"p2"}, res.State.ActiveMatch.SideA)

	assert.False(t, e.Apply(s, table.Command{Kind: "dance"}).Changed)
}

func TestRivalriesUpsert(t *testing.T) {
	var r table.Rivalries
	r.Upsert("p9", func(rec *table.Rivalry) { rec.LossesTo++ })
	r.Upsert("p9", func(rec *table.Rivalry) { rec.LossesTo++ })
	assert.Equal(t, table.Rivalry{LossesTo: 2}, r.Get("p9"))
	assert.Equal(t, table.Rivalry{}, r.Get("p1"))

	var p table.Partnerships
	p.Upsert("p2", func(rec *table.Partnership) { rec.Wins++ })
	assert.Equal(t, 1, p.Get("p2").Wins)
}
