package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rei-da-mesa/internal/metrics"
	"github.com/mauv0809/rei-da-mesa/internal/notifier"
	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Notify posts a short cue for deuces. Point cues are too frequent for a
// channel and are dropped. The post runs in the background.
func (s *Notifier) Notify(event table.Event) {
	msg, ok := formatCue(event)
	if !ok {
		log.Debug("Skipping Slack cue", "event", event)
		return
	}
	go func() {
		if _, _, err := s.sendMessage(msg, false); err != nil {
			log.Warn("Dropped Slack cue", "event", event, "error", err)
		}
	}()
}

func (s *Notifier) SendResultNotification(result notifier.MatchResult, dryRun bool) error {
	msg := formatResultNotification(result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(rows []stats.Ranking, dryRun bool) error {
	msg := formatLeaderboard(rows)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendWeeklyLeaders(leaders []stats.Leader, dryRun bool) error {
	msg := formatWeeklyLeaders(leaders)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(rows []stats.Ranking) (any, error) {
	return formatLeaderboard(rows), nil
}

// FormatPlayerStatsResponse formats a player card for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(summary stats.Summary) (any, error) {
	return formatPlayerStats(summary), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return formatPlayerNotFound(query), nil
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

func formatCue(event table.Event) (slack.Message, bool) {
	if event != table.EventDeuceEntered {
		return slack.Message{}, false
	}
	return slack.NewBlockMessage(plainSection("🔥 Deuce! First to two clear points takes the table.")), true
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return ""
}

func label(p stats.PlayerRef) string {
	if p.Emoji == "" {
		return p.Name
	}
	return p.Emoji + " " + p.Name
}

func labels(refs []stats.PlayerRef) string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = label(r)
	}
	return strings.Join(out, " & ")
}

// formatResultNotification creates the Slack message for a finished match using Block Kit.
func formatResultNotification(result notifier.MatchResult) slack.Message {
	m := result.Match
	blocks := make([]slack.Block, 0, 4)

	header := "🏓 Match finished! 🏓"
	if m.IsPneu() {
		header = "🛞 PNEU! 🛞"
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))

	resultText := fmt.Sprintf("%s beat %s %d-%d",
		labels(result.Winners), labels(result.Losers), result.WinnerScore(), result.LoserScore())
	blocks = append(blocks, plainSection(resultText))

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Mode*\n%s", m.Mode), false, false),
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*Finished*\n%s", time.UnixMilli(m.Timestamp).Format("Monday 02 Jan, 15:04")), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	var notes []slack.MixedElement
	if m.IsDeuce {
		notes = append(notes, slack.NewTextBlockObject("plain_text", "🔥 Decided in deuce", true, false))
	}
	if m.IsComeback {
		notes = append(notes, slack.NewTextBlockObject("plain_text", "🚀 Comeback win", true, false))
	}
	if len(notes) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", notes...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the player leaderboard.
func formatLeaderboard(rows []stats.Ranking) slack.Message {
	blocks := make([]slack.Block, 0, len(rows)+1)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "👑 Rei da Mesa Leaderboard 👑", true, false)))

	if len(rows) == 0 {
		blocks = append(blocks, plainSection("No players yet. Add someone to the table!"))
		return slack.NewBlockMessage(blocks...)
	}

	for _, r := range rows {
		playerText := fmt.Sprintf("%d. %s %s\n> Win %%: %d%% (%d/%d) | Points: %d | Best streak: %d",
			r.Rank,
			medal(r.Rank),
			label(r.Player),
			r.WinRate,
			r.Stats.Wins,
			r.Stats.Matches,
			r.Stats.PointsScored,
			r.Stats.MaxConsecutiveWins,
		)
		blocks = append(blocks, plainSection(playerText))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatWeeklyLeaders creates a Slack message with the last seven days' winners.
func formatWeeklyLeaders(leaders []stats.Leader) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "📅 Kings of the week", true, false)),
	}
	if len(leaders) == 0 {
		blocks = append(blocks, plainSection("No matches this week."))
		return slack.NewBlockMessage(blocks...)
	}
	lines := make([]string, len(leaders))
	for i, l := range leaders {
		lines[i] = fmt.Sprintf("%d. %s %s: %d wins, %d pneus", i+1, medal(i+1), label(l.Player), l.Wins, l.Pneus)
	}
	blocks = append(blocks, plainSection(strings.Join(lines, "\n")))
	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's card.
func formatPlayerStats(sum stats.Summary) slack.Message {
	blocks := make([]slack.Block, 0, 3)
	headerText := fmt.Sprintf("🏓 Stats for %s (%s)", label(sum.Player), sum.Level)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	st := sum.Stats
	statsText := fmt.Sprintf("> *Win %%*: %d%% (%d/%d)\n> *Points*: %d\n> *Streak*: %d (best %d)\n> *Pneus*: %d applied, %d received\n> *Solo/Duplas*: %d/%d\n> *Comebacks*: %d",
		sum.WinRate, st.Wins, st.Matches,
		st.PointsScored,
		st.ConsecutiveWins, st.MaxConsecutiveWins,
		st.PneusApplied, st.PneusReceived,
		st.SoloMatches, st.DuplasMatches,
		sum.Comebacks,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", statsText, false, false), nil, nil))

	var rel []string
	if r := sum.Rivals; r.Nemesis != nil {
		rel = append(rel, fmt.Sprintf("😈 Nemesis: %s (%d losses)", label(*r.Nemesis), r.NemesisLosses))
	}
	if r := sum.Rivals; r.Client != nil {
		rel = append(rel, fmt.Sprintf("🍽️ Client: %s (%d wins)", label(*r.Client), r.ClientWins))
	}
	if p := sum.Partners; p.Best != nil {
		rel = append(rel, fmt.Sprintf("🤝 Best friend: %s (%d wins)", label(*p.Best), p.BestWins))
	}
	if p := sum.Partners; p.BadVibe != nil {
		rel = append(rel, fmt.Sprintf("💀 Bad vibe: %s (%d losses)", label(*p.BadVibe), p.BadVibeLosses))
	}
	if len(rel) > 0 {
		blocks = append(blocks, plainSection(strings.Join(rel, "\n")))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
