package main

import (
	"math/rand"
	"testing"

	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultState(t *testing.T) {
	s := defaultState()
	require.Len(t, s.Players, 7)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}, s.Queue)
	assert.Equal(t, "Ricardo", s.Players["p7"].Name)
	assert.Equal(t, table.LevelPro, s.Players["p7"].Level)
	for _, p := range s.Players {
		assert.True(t, p.Active, p.ID)
	}
}

func TestPlayRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := playRandom(table.NewEngine(table.WithRand(rng)), defaultState(), 12, rng)

	assert.Len(t, s.History, 12)
	assert.Nil(t, s.ActiveMatch)
	assert.Len(t, s.Queue, 7, "rotation keeps every player queued")

	var wins, losses int
	for _, p := range s.Players {
		wins += p.Stats.Wins
		losses += p.Stats.Losses
	}
	assert.Equal(t, wins, losses, "every match has as many winners as losers")
}
