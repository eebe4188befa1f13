package inngest

import "net/http"

type InngestClient interface {
	Serve() http.Handler
}

// Announcer posts the scheduled summaries.
type Announcer interface {
	PostLeaderboard(dryRun bool) error
	PostWeeklyLeaders(dryRun bool) error
}
