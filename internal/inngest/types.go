package inngest

import (
	"github.com/inngest/inngestgo"
)

type client struct {
	inngestClient inngestgo.Client
	announcer     Announcer
}

// Schedule holds the cron expressions of the announcement functions.
type Schedule struct {
	WeeklyLeaders string
	Leaderboard   string
}
