package metrics

import (
	"testing"

	"github.com/mauv0809/rei-da-mesa/internal/database"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (Tallies, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return NewTallies(db), teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no tallies
	tallies, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, tallies)

	// 2. Increment a new key
	store.Increment(TallyMatchesFinished)
	tallies, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{TallyMatchesFinished: 1}, tallies)

	// 3. Increment the same key again and a different one
	store.Increment(TallyMatchesFinished)
	store.Increment(TallyPneus)
	tallies, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		TallyMatchesFinished: 2,
		TallyPneus:           1,
	}, tallies)
}

func TestService_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncPointsScored()
	svc.IncPointsScored()
	svc.SetQueueLength(6)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.PointsScored))
	assert.Equal(t, 6.0, testutil.ToFloat64(svc.QueueLength))

	count, err := testutil.GatherAndCount(reg, "rei_points_scored_total", "rei_queue_length")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
