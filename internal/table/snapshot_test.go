package table_test

import (
	"testing"

	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImport_RoundTrip(t *testing.T) {
	e := newTestEngine()
	s := e.StartMatch(newRoster(6), table.ModeDuplas).State
	s = score(t, e, s, "BBBAAAAAAAAAA")
	s = e.FinishMatch(s, true).State
	s = score(t, e, s, "AB")
	s = e.ToggleActive(s, "p4").State

	data, err := table.Export(s)
	require.NoError(t, err)

	got, err := table.Import(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestImport_AcceptsOriginalBackupShape(t *testing.T) {
	data := []byte(`{
		"players": {
			"p1": {"id": "p1", "name": "Caique", "emoji": "🏓", "level": "Intermediário", "active": true,
			       "stats": {"matches": 1, "wins": 1}, "rivalries": {"p2": {"winsAgainst": 1, "lossesTo": 0}}},
			"p2": {"id": "p2", "name": "Lucas", "emoji": "🔥", "level": "Iniciante", "active": true, "stats": {}}
		},
		"queue": ["p1", "p2"],
		"activeMatch": null,
		"history": [{"id": "m1", "mode": "SOLO", "sideA": ["p1"], "sideB": ["p2"], "scoreA": 5, "scoreB": 0,
		             "winner": "A", "timestamp": 1700000000000, "isDeuce": false}]
	}`)

	s, err := table.Import(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, s.Queue)
	assert.Equal(t, 1, s.Players["p1"].Rivalries.Get("p2").WinsAgainst)
	assert.NotNil(t, s.Players["p2"].Partnerships, "missing maps are created")
	require.Len(t, s.History, 1)
	assert.True(t, s.History[0].IsPneu())
	assert.False(t, s.History[0].IsComeback)

	t.Run("missing active flag reads as active", func(t *testing.T) {
		data := []byte(`{
			"players": {
				"p1": {"id": "p1", "name": "Caique", "level": "Intermediário", "active": true, "stats": {}},
				"1700000000000": {"id": "1700000000000", "name": "Novo", "level": "Pro", "stats": {}, "rivalries": {}},
				"p3": {"id": "p3", "name": "Emanuel", "level": "Iniciante", "active": false, "stats": {}}
			},
			"queue": ["p1", "1700000000000"],
			"activeMatch": null,
			"history": []
		}`)

		s, err := table.Import(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "1700000000000"}, s.Queue)
		assert.True(t, s.Players["1700000000000"].Active)
		assert.False(t, s.Players["p3"].Active, "an explicit false is kept")
	})
}

func TestImport_Rejects(t *testing.T) {
	cases := map[string]string{
		"not json":          `{`,
		"missing players":   `{"queue": []}`,
		"missing queue":     `{"players": {}}`,
		"null queue":        `{"players": {}, "queue": null}`,
		"unknown queued id": `{"players": {}, "queue": ["p1"]}`,
		"duplicate queue": `{"players": {"p1": {"id": "p1", "name": "A", "level": "Pro", "active": true}},
			"queue": ["p1", "p1"]}`,
		"inactive queued": `{"players": {"p1": {"id": "p1", "name": "A", "level": "Pro", "active": false}},
			"queue": ["p1"]}`,
		"bad level": `{"players": {"p1": {"id": "p1", "name": "A", "level": "Legend", "active": true}},
			"queue": []}`,
		"mismatched key": `{"players": {"p1": {"id": "p2", "name": "A", "level": "Pro", "active": true}},
			"queue": []}`,
		"bad history mode": `{"players": {}, "queue": [],
			"history": [{"id": "m1", "mode": "TRIO", "sideA": ["a"], "sideB": ["b"]}]}`,
		"active match not queued": `{"players": {"p1": {"id": "p1", "name": "A", "level": "Pro", "active": true}},
			"queue": ["p1"],
			"activeMatch": {"id": "m1", "mode": "SOLO", "sideA": ["p1"], "sideB": ["p2"]}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := table.Import([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, table.ErrInvalidSnapshot)
		})
	}
}

func TestImport_CapsHistory(t *testing.T) {
	e := newTestEngine()
	s := newRoster(2)
	for i := 0; i < 3; i++ {
		s = e.StartMatch(s, table.ModeSolo).State
		s = score(t, e, s, "AAAAA")
		s = e.FinishMatch(s, false).State
	}
	for len(s.History) < table.HistoryLimit+10 {
		s.History = append(s.History, s.History[0])
	}
	data, err := table.Export(s)
	require.NoError(t, err)

	got, err := table.Import(data)
	require.NoError(t, err)
	assert.Len(t, got.History, table.HistoryLimit)
}
