package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

var durationBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

func counter(name, help string) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		CommandsApplied:  counter("rei_commands_applied_total", "Commands that changed the table state."),
		CommandsRejected: counter("rei_commands_rejected_total", "Commands rejected as no-ops."),
		CommandDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rei_command_duration_seconds",
			Help:    "Time to apply, persist and announce a command.",
			Buckets: durationBuckets,
		}),
		PointsScored:    counter("rei_points_scored_total", "Points added to a running match."),
		MatchesStarted:  counter("rei_matches_started_total", "Matches started."),
		MatchesFinished: counter("rei_matches_finished_total", "Matches moved into history."),
		Deuces:          counter("rei_deuces_total", "Matches that entered deuce."),
		Pneus:           counter("rei_pneus_total", "Matches that ended 5-0."),
		Comebacks:       counter("rei_comebacks_total", "Matches won after trailing by two or more."),
		QueueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rei_queue_length",
			Help: "Players currently in the queue.",
		}),
		SnapshotSave: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "rei_snapshot_save_duration_seconds",
			Help:    "Time to persist a snapshot.",
			Buckets: durationBuckets,
		}),
		SnapshotConflicts: counter("rei_snapshot_conflicts_total", "Snapshot writes rejected for a stale version."),
		SlackNotifSent:    counter("rei_slack_notifications_sent_total", "The total number of Slack notifications successfully sent."),
		SlackNotifFailed:  counter("rei_slack_notifications_failed_total", "The total number of Slack notifications that failed to send."),
		EventsPublished:   counter("rei_events_published_total", "Domain events published to Pub/Sub."),
		EventsFailed:      counter("rei_events_failed_total", "Domain events that failed to publish."),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rei_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.CommandsApplied,
		s.CommandsRejected,
		s.CommandDuration,
		s.PointsScored,
		s.MatchesStarted,
		s.MatchesFinished,
		s.Deuces,
		s.Pneus,
		s.Comebacks,
		s.QueueLength,
		s.SnapshotSave,
		s.SnapshotConflicts,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.EventsFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncCommandsApplied()  { s.CommandsApplied.Inc() }
func (s *Service) IncCommandsRejected() { s.CommandsRejected.Inc() }

func (s *Service) ObserveCommandDuration(duration float64) {
	s.CommandDuration.Observe(duration)
}

func (s *Service) IncPointsScored()    { s.PointsScored.Inc() }
func (s *Service) IncMatchesStarted()  { s.MatchesStarted.Inc() }
func (s *Service) IncMatchesFinished() { s.MatchesFinished.Inc() }
func (s *Service) IncDeuces()          { s.Deuces.Inc() }
func (s *Service) IncPneus()           { s.Pneus.Inc() }
func (s *Service) IncComebacks()       { s.Comebacks.Inc() }

func (s *Service) SetQueueLength(n int) {
	s.QueueLength.Set(float64(n))
}

func (s *Service) ObserveSnapshotSaveDuration(duration float64) {
	s.SnapshotSave.Observe(duration)
}

func (s *Service) IncSnapshotConflicts() { s.SnapshotConflicts.Inc() }
func (s *Service) IncSlackNotifSent()    { s.SlackNotifSent.Inc() }
func (s *Service) IncSlackNotifFailed()  { s.SlackNotifFailed.Inc() }
func (s *Service) IncEventsPublished()   { s.EventsPublished.Inc() }
func (s *Service) IncEventsFailed()      { s.EventsFailed.Inc() }

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
