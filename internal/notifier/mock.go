package notifier

import (
	"sync"

	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	NotifyCalls                 []table.Event
	SendResultNotificationCalls []MatchResult
	SendLeaderboardCalls        [][]stats.Ranking
	SendWeeklyLeadersCalls      [][]stats.Leader

	// Spies
	SendResultNotificationFunc       func(result MatchResult, dryRun bool) error
	SendLeaderboardFunc              func(rows []stats.Ranking, dryRun bool) error
	SendWeeklyLeadersFunc            func(leaders []stats.Leader, dryRun bool) error
	FormatLeaderboardResponseFunc    func(rows []stats.Ranking) (any, error)
	FormatPlayerStatsResponseFunc    func(summary stats.Summary) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records for format functions
	LastLeaderboardResponse    any
	LastPlayerStatsResponse    any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyCalls = nil
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendWeeklyLeadersCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

// Events returns a copy of the cues received so far.
func (m *Mock) Events() []table.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]table.Event(nil), m.NotifyCalls...)
}

// Results returns a copy of the result notifications sent so far.
func (m *Mock) Results() []MatchResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MatchResult(nil), m.SendResultNotificationCalls...)
}

func (m *Mock) Notify(event table.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyCalls = append(m.NotifyCalls, event)
}

func (m *Mock) SendResultNotification(result MatchResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, result)
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(result, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(rows []stats.Ranking, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, rows)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(rows, dryRun)
	}
	return nil
}

func (m *Mock) SendWeeklyLeaders(leaders []stats.Leader, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendWeeklyLeadersCalls = append(m.SendWeeklyLeadersCalls, leaders)
	if m.SendWeeklyLeadersFunc != nil {
		return m.SendWeeklyLeadersFunc(leaders, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(rows []stats.Ranking) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(rows)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(summary stats.Summary) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		resp, err := m.FormatPlayerStatsResponseFunc(summary)
		m.LastPlayerStatsResponse = resp
		return resp, err
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err := m.FormatPlayerNotFoundResponseFunc(query)
		m.LastPlayerNotFoundResponse = resp
		return resp, err
	}
	return "formatted_player_not_found", nil
}
