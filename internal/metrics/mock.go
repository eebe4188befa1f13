package metrics

import "sync"

var (
	_ Metrics = (*Mock)(nil)
	_ Tallies = (*TallyMock)(nil)
)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	counters          map[string]int
	commandDurations  []float64
	snapshotDurations []float64
	queueLength       int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		counters: make(map[string]int),
	}
}

func (m *Mock) inc(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// Count returns how many times the named Inc method was called, e.g.
// Count("PointsScored").
func (m *Mock) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

func (m *Mock) IncCommandsApplied()   { m.inc("CommandsApplied") }
func (m *Mock) IncCommandsRejected()  { m.inc("CommandsRejected") }
func (m *Mock) IncPointsScored()      { m.inc("PointsScored") }
func (m *Mock) IncMatchesStarted()    { m.inc("MatchesStarted") }
func (m *Mock) IncMatchesFinished()   { m.inc("MatchesFinished") }
func (m *Mock) IncDeuces()            { m.inc("Deuces") }
func (m *Mock) IncPneus()             { m.inc("Pneus") }
func (m *Mock) IncComebacks()         { m.inc("Comebacks") }
func (m *Mock) IncSnapshotConflicts() { m.inc("SnapshotConflicts") }
func (m *Mock) IncSlackNotifSent()    { m.inc("SlackNotifSent") }
func (m *Mock) IncSlackNotifFailed()  { m.inc("SlackNotifFailed") }
func (m *Mock) IncEventsPublished()   { m.inc("EventsPublished") }
func (m *Mock) IncEventsFailed()      { m.inc("EventsFailed") }

func (m *Mock) ObserveCommandDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandDurations = append(m.commandDurations, duration)
}

func (m *Mock) ObserveSnapshotSaveDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotDurations = append(m.snapshotDurations, duration)
}

func (m *Mock) SetQueueLength(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueLength = n
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// QueueLength returns the last value passed to SetQueueLength.
func (m *Mock) QueueLength() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queueLength
}

// SnapshotSaves returns the number of observed snapshot saves.
func (m *Mock) SnapshotSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.snapshotDurations)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int { return m.Count("SlackNotifSent") }

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int { return m.Count("SlackNotifFailed") }

// TallyMock is an in-memory Tallies for testing.
type TallyMock struct {
	mu     sync.Mutex
	values map[string]int

	GetAllFunc func() (map[string]int, error)
}

// NewTallyMock creates an empty TallyMock.
func NewTallyMock() *TallyMock {
	return &TallyMock{values: make(map[string]int)}
}

func (m *TallyMock) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key]++
}

func (m *TallyMock) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllFunc != nil {
		return m.GetAllFunc()
	}
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

// Get returns a single tally.
func (m *TallyMock) Get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}
