package metrics

import (
	"database/sql"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Service holds all the Prometheus metrics for the application.
type Service struct {
	CommandsApplied    prometheus.Counter
	CommandsRejected   prometheus.Counter
	CommandDuration    prometheus.Histogram
	PointsScored       prometheus.Counter
	MatchesStarted     prometheus.Counter
	MatchesFinished    prometheus.Counter
	Deuces             prometheus.Counter
	Pneus              prometheus.Counter
	Comebacks          prometheus.Counter
	QueueLength        prometheus.Gauge
	SnapshotSave       prometheus.Histogram
	SnapshotConflicts  prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	EventsPublished    prometheus.Counter
	EventsFailed       prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}

// store handles tally database operations.
type store struct {
	db *sql.DB
	mu sync.Mutex
}
