package inngest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAnnouncer struct {
	leaderboardCalls []bool
	weeklyCalls      []bool
	err              error
}

func (m *mockAnnouncer) PostLeaderboard(dryRun bool) error {
	m.leaderboardCalls = append(m.leaderboardCalls, dryRun)
	return m.err
}

func (m *mockAnnouncer) PostWeeklyLeaders(dryRun bool) error {
	m.weeklyCalls = append(m.weeklyCalls, dryRun)
	return m.err
}

func TestScheduledPosts(t *testing.T) {
	announcer := &mockAnnouncer{}
	c := &client{announcer: announcer}

	out, err := c.postWeeklyLeaders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "OK", out)
	assert.Equal(t, []bool{false}, announcer.weeklyCalls)

	_, err = c.postLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, announcer.leaderboardCalls, 1)

	announcer.err = errors.New("slack down")
	_, err = c.postWeeklyLeaders(context.Background())
	assert.ErrorContains(t, err, "slack down")
}
