package table_test

import (
	"testing"

	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveInQueue(t *testing.T) {
	e := newTestEngine()
	s := newRoster(3)

	t.Run("swaps neighbours", func(t *testing.T) {
		res := e.MoveInQueue(s, 2, table.DirectionUp)
		require.True(t, res.Changed)
		assert.Equal(t, []string{"p1", "p3", "p2"}, res.State.Queue)
		assert.Equal(t, []string{"p1", "p2", "p3"}, s.Queue, "input state is not mutated")
	})

	t.Run("boundaries are no-ops", func(t *testing.T) {
		assert.False(t, e.MoveInQueue(s, 0, table.DirectionUp).Changed)
		assert.False(t, e.MoveInQueue(s, 2, table.DirectionDown).Changed)
		assert.False(t, e.MoveInQueue(s, 3, table.DirectionUp).Changed)
		assert.False(t, e.MoveInQueue(s, -1, table.DirectionDown).Changed)
		assert.False(t, e.MoveInQueue(s, 1, table.Direction("left")).Changed)
	})
}

func TestShuffleQueue(t *testing.T) {
	e := newTestEngine()
	s := e.StartMatch(newRoster(8), table.ModeSolo).State

	res := e.ShuffleQueue(s)
	require.True(t, res.Changed)
	q := res.State.Queue
	assert.Equal(t, "p1", q[0], "active participants keep their slots")
	assert.Equal(t, "p2", q[1])
	assert.ElementsMatch(t, s.Queue, q)

	t.Run("nothing to shuffle", func(t *testing.T) {
		small := e.StartMatch(newRoster(3), table.ModeSolo).State
		assert.False(t, e.ShuffleQueue(small).Changed)
	})

	t.Run("without a match every slot moves freely", func(t *testing.T) {
		res := e.ShuffleQueue(newRoster(6))
		require.True(t, res.Changed)
		assert.ElementsMatch(t, newRoster(6).Queue, res.State.Queue)
	})
}

func TestToggleActive(t *testing.T) {
	e := newTestEngine()
	s := newRoster(3)

	res := e.ToggleActive(s, "p2")
	require.True(t, res.Changed)
	assert.False(t, res.State.Players["p2"].Active)
	assert.Equal(t, []string{"p1", "p3"}, res.State.Queue)

	res = e.ToggleActive(res.State, "p2")
	require.True(t, res.Changed)
	assert.True(t, res.State.Players["p2"].Active)
	assert.Equal(t, []string{"p1", "p3", "p2"}, res.State.Queue, "reactivated players join the tail")

	assert.False(t, e.ToggleActive(s, "ghost").Changed)

	playing := e.StartMatch(s, table.ModeSolo).State
	assert.False(t, e.ToggleActive(playing, "p1").Changed, "cannot bench a player mid-match")
}

func TestRemoveFromQueue(t *testing.T) {
	e := newTestEngine()
	s := newRoster(3)

	res := e.RemoveFromQueue(s, "p3")
	require.True(t, res.Changed)
	assert.Equal(t, []string{"p1", "p2"}, res.State.Queue)
	p3, ok := res.State.Player("p3")
	require.True(t, ok, "player stays in the roster")
	assert.False(t, p3.Active)

	assert.False(t, e.RemoveFromQueue(res.State, "p3").Changed)

	playing := e.StartMatch(s, table.ModeSolo).State
	assert.False(t, e.RemoveFromQueue(playing, "p2").Changed)
}
