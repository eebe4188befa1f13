package notifier

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

var _ Notifier = (*Logger)(nil)

// Logger announces through the application log. It is used when no chat
// integration is configured.
type Logger struct{}

// NewLogger creates a Logger notifier.
func NewLogger() *Logger {
	return &Logger{}
}

func (l *Logger) Notify(event table.Event) {
	log.Debug("Table cue", "event", event)
}

func (l *Logger) SendResultNotification(result MatchResult, dryRun bool) error {
	log.Info("Match finished",
		"matchID", result.Match.ID,
		"winners", Names(result.Winners),
		"losers", Names(result.Losers),
		"score", fmt.Sprintf("%d-%d", result.WinnerScore(), result.LoserScore()),
		"pneu", result.Match.IsPneu(),
		"comeback", result.Match.IsComeback,
		"dry_run", dryRun,
	)
	return nil
}

func (l *Logger) SendLeaderboard(rows []stats.Ranking, dryRun bool) error {
	for _, r := range rows {
		log.Info("Leaderboard", "rank", r.Rank, "player", r.Player.Name, "wins", r.Stats.Wins, "win_rate", r.WinRate, "dry_run", dryRun)
	}
	return nil
}

func (l *Logger) SendWeeklyLeaders(leaders []stats.Leader, dryRun bool) error {
	for _, w := range leaders {
		log.Info("Weekly leader", "player", w.Player.Name, "wins", w.Wins, "pneus", w.Pneus, "dry_run", dryRun)
	}
	return nil
}

func (l *Logger) FormatLeaderboardResponse(rows []stats.Ranking) (any, error) {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("%d. %s %s %d/%d (%d%%)", r.Rank, r.Player.Emoji, r.Player.Name, r.Stats.Wins, r.Stats.Matches, r.WinRate)
	}
	return strings.Join(lines, "\n"), nil
}

func (l *Logger) FormatPlayerStatsResponse(summary stats.Summary) (any, error) {
	s := summary.Stats
	return fmt.Sprintf("%s %s: %d/%d wins (%d%%), %d points, best streak %d, pneus %d/%d",
		summary.Player.Emoji, summary.Player.Name, s.Wins, s.Matches, summary.WinRate,
		s.PointsScored, s.MaxConsecutiveWins, s.PneusApplied, s.PneusReceived), nil
}

func (l *Logger) FormatPlayerNotFoundResponse(query string) (any, error) {
	return fmt.Sprintf("No player matching %q.", query), nil
}

// Names joins the display names of refs with " & ".
func Names(refs []stats.PlayerRef) string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return strings.Join(names, " & ")
}
