package notifier

import (
	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

// Notifier defines a high-level interface for announcing table activity.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Scoring cues. Must not block the caller for long and never fails.
	table.Notifier

	// For finished matches
	SendResultNotification(result MatchResult, dryRun bool) error
	// For scheduled announcements
	SendLeaderboard(rows []stats.Ranking, dryRun bool) error
	SendWeeklyLeaders(leaders []stats.Leader, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(rows []stats.Ranking) (any, error)
	FormatPlayerStatsResponse(summary stats.Summary) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
