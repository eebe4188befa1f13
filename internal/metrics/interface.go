package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncCommandsApplied()
	IncCommandsRejected()
	ObserveCommandDuration(duration float64)
	IncPointsScored()
	IncMatchesStarted()
	IncMatchesFinished()
	IncDeuces()
	IncPneus()
	IncComebacks()
	SetQueueLength(n int)
	ObserveSnapshotSaveDuration(duration float64)
	IncSnapshotConflicts()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	IncEventsFailed()
	SetStartupTime(duration float64)
}

// Tallies keeps lifetime counters in the database. Unlike the table stats
// they survive a stats reset.
type Tallies interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}

// Tally keys.
const (
	TallyMatchesFinished = "matches_finished"
	TallyPointsScored    = "points_scored"
	TallyDeuces          = "deuces"
	TallyPneus           = "pneus"
	TallyComebacks       = "comebacks"
)
