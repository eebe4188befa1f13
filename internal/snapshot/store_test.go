package snapshot

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/mauv0809/rei-da-mesa/internal/database"
	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (Store, func()) {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	return New(db), teardown
}

// playedState builds a state with a finished match, a match in progress and
// a benched player.
func playedState(t *testing.T) table.State {
	t.Helper()
	n := 0
	e := table.NewEngine(
		table.WithIDs(func() string { n++; return fmt.Sprintf("id-%d", n) }),
		table.WithClock(func() time.Time { return time.UnixMilli(1_700_000_000_000) }),
		table.WithRand(rand.New(rand.NewSource(1))),
	)
	s := table.NewState()
	for _, name := range []string{"Caique", "Lucas", "Emanuel", "Rian", "Gustavo"} {
		s = e.AddPlayer(s, name, "🏓", table.LevelIntermediate).State
	}
	s = e.StartMatch(s, table.ModeDuplas).State
	for i := 0; i < 10; i++ {
		s = e.UpdateScore(s, table.SideA, 1).State
	}
	s = e.FinishMatch(s, true).State
	s = e.UpdateScore(s, table.SideB, 1).State
	s = e.ToggleActive(s, s.Queue[len(s.Queue)-1]).State
	require.NotNil(t, s.ActiveMatch)
	require.Len(t, s.History, 1)
	return s
}

func TestLoad_Empty(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	state, version, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state)
	assert.Zero(t, version)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	ctx := context.Background()

	want := playedState(t)
	version, err := store.Save(ctx, want, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	got, gotVersion, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, version, gotVersion)
	assert.Equal(t, want, *got)

	t.Run("empty state survives", func(t *testing.T) {
		version, err = store.Save(ctx, table.NewState(), version)
		require.NoError(t, err)
		got, _, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, table.NewState(), *got)
	})
}

func TestSave_RejectsStaleVersion(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()
	ctx := context.Background()

	v1, err := store.Save(ctx, table.NewState(), 0)
	require.NoError(t, err)

	_, err = store.Save(ctx, playedState(t), 0)
	assert.ErrorIs(t, err, ErrVersionConflict, "a second first write loses")

	v2, err := store.Save(ctx, playedState(t), v1)
	require.NoError(t, err)

	_, err = store.Save(ctx, table.NewState(), v1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, version, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, v2, version)
	assert.Len(t, got.History, 1, "the rejected write left no trace")
}

func TestMock_VersionCheck(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	v, err := m.Save(ctx, table.NewState(), 0)
	require.NoError(t, err)
	_, err = m.Save(ctx, table.NewState(), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, 2, m.Saves())

	state, version, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, v, version)
	assert.Equal(t, table.NewState(), *state)
}
