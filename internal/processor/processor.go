package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rei-da-mesa/internal/metrics"
	"github.com/mauv0809/rei-da-mesa/internal/notifier"
	"github.com/mauv0809/rei-da-mesa/internal/pubsub"
	"github.com/mauv0809/rei-da-mesa/internal/snapshot"
	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

// New creates a Processor with an empty state. Call Load before serving.
// pubsub may be nil, in which case results are announced directly.
func New(engine *table.Engine, store Store, notifier Notifier, metrics metrics.Metrics, tallies metrics.Tallies, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		state:    table.NewState(),
		engine:   engine,
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
		tallies:  tallies,
		now:      time.Now,
	}
}

// Load replaces the in-memory state with the stored snapshot, or an empty
// state when nothing was saved yet.
func (p *Processor) Load(ctx context.Context) error {
	state, version, err := p.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if state == nil {
		log.Info("No stored state, starting with an empty table")
		p.state, p.version = table.NewState(), 0
	} else {
		log.Info("Loaded table state", "version", version, "players", len(state.Players), "queue", len(state.Queue))
		p.state, p.version = *state, version
	}
	p.metrics.SetQueueLength(len(p.state.Queue))
	return nil
}

// State returns a copy of the current state.
func (p *Processor) State() table.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

// Version returns the version of the last persisted snapshot.
func (p *Processor) Version() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Apply runs cmd against the current state. A no-op returns ErrNotApplied
// with the unchanged state. With dryRun the transition is computed and
// returned but not committed, persisted or announced.
func (p *Processor) Apply(ctx context.Context, cmd table.Command, dryRun bool) (table.Result, error) {
	startTime := time.Now()
	defer func() {
		p.metrics.ObserveCommandDuration(time.Since(startTime).Seconds())
	}()

	res, err := p.commit(ctx, cmd, dryRun)
	if err != nil || dryRun {
		return res, err
	}
	if res.Finished != nil {
		p.announce(res.State, *res.Finished)
	}
	return res, nil
}

func (p *Processor) commit(ctx context.Context, cmd table.Command, dryRun bool) (table.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	prev := p.state
	res := p.engine.Apply(prev, cmd)
	if !res.Changed {
		p.metrics.IncCommandsRejected()
		log.Debug("Command not applied", "kind", cmd.Kind)
		return res, ErrNotApplied
	}
	if dryRun {
		log.Info("[Dry Run] Command computed but not committed", "kind", cmd.Kind, "events", res.Events)
		return res, nil
	}

	if err := p.save(ctx, res.State); err != nil {
		return table.Result{State: prev}, err
	}
	p.metrics.IncCommandsApplied()
	log.Info("Command applied", "kind", cmd.Kind, "version", p.version, "events", res.Events)

	p.record(prev, res)
	table.Deliver(p.notifier, res.Events)
	return res, nil
}

// save persists state and makes it current. Callers hold p.mu.
func (p *Processor) save(ctx context.Context, state table.State) error {
	saveStart := time.Now()
	version, err := p.store.Save(ctx, state, p.version)
	p.metrics.ObserveSnapshotSaveDuration(time.Since(saveStart).Seconds())
	if err != nil {
		if errors.Is(err, snapshot.ErrVersionConflict) {
			p.metrics.IncSnapshotConflicts()
		}
		log.Error("Failed to persist state", "error", err, "version", p.version)
		return fmt.Errorf("failed to persist state: %w", err)
	}
	p.state, p.version = state, version
	p.metrics.SetQueueLength(len(state.Queue))
	return nil
}

// record updates metrics and lifetime tallies for a committed transition.
func (p *Processor) record(prev table.State, res table.Result) {
	for _, e := range res.Events {
		switch e {
		case table.EventPointScored:
			p.metrics.IncPointsScored()
			p.tallies.Increment(metrics.TallyPointsScored)
		case table.EventDeuceEntered:
			p.metrics.IncDeuces()
			p.tallies.Increment(metrics.TallyDeuces)
		}
	}

	if next := res.State.ActiveMatch; next != nil && (prev.ActiveMatch == nil || prev.ActiveMatch.ID != next.ID) {
		p.metrics.IncMatchesStarted()
	}

	if m := res.Finished; m != nil {
		p.metrics.IncMatchesFinished()
		p.tallies.Increment(metrics.TallyMatchesFinished)
		if m.IsPneu() {
			p.metrics.IncPneus()
			p.tallies.Increment(metrics.TallyPneus)
		}
		if m.IsComeback {
			p.metrics.IncComebacks()
			p.tallies.Increment(metrics.TallyComebacks)
		}
	}
}

// announce publishes a match-finished event. The push subscription posts the
// result; without Pub/Sub, or when publishing fails, the result is posted
// directly.
func (p *Processor) announce(state table.State, m table.Match) {
	result := notifier.NewMatchResult(state, m)
	if p.pubsub != nil {
		event := pubsub.MatchFinished{
			Match:   m,
			Queue:   state.Queue,
			Winners: result.Winners,
			Losers:  result.Losers,
		}
		err := p.pubsub.SendMessage(pubsub.EventMatchFinished, event)
		if err == nil {
			p.metrics.IncEventsPublished()
			return
		}
		p.metrics.IncEventsFailed()
		log.Warn("Failed to publish match result, notifying directly", "matchID", m.ID, "error", err)
	}
	if err := p.notifier.SendResultNotification(result, false); err != nil {
		log.Error("Failed to send result notification", "matchID", m.ID, "error", err)
	}
}

// HandleMatchFinished posts the result carried by a pushed match-finished
// event.
func (p *Processor) HandleMatchFinished(event pubsub.MatchFinished, dryRun bool) error {
	if !event.Match.Decided() {
		return fmt.Errorf("match %s has no winner", event.Match.ID)
	}
	log.Info("Posting match result", "matchID", event.Match.ID, "dry_run", dryRun)
	result := notifier.MatchResult{Match: event.Match, Winners: event.Winners, Losers: event.Losers}
	return p.notifier.SendResultNotification(result, dryRun)
}

// Import validates a JSON backup and, unless dryRun, replaces the current
// state with it. An invalid backup leaves the state untouched.
func (p *Processor) Import(ctx context.Context, data []byte, dryRun bool) (table.State, error) {
	state, err := table.Import(data)
	if err != nil {
		log.Warn("Rejected backup", "error", err)
		return table.State{}, err
	}
	if dryRun {
		log.Info("[Dry Run] Backup is valid", "players", len(state.Players), "queue", len(state.Queue), "history", len(state.History))
		return state, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.save(ctx, state); err != nil {
		return table.State{}, err
	}
	log.Info("Imported backup", "version", p.version, "players", len(state.Players))
	return state.Clone(), nil
}

// Export encodes the current state as a JSON backup.
func (p *Processor) Export() ([]byte, error) {
	return table.Export(p.State())
}

// Tallies returns the lifetime counters.
func (p *Processor) Tallies() (map[string]int, error) {
	return p.tallies.GetAll()
}

// PostLeaderboard sends the current rankings to the notifier.
func (p *Processor) PostLeaderboard(dryRun bool) error {
	return p.notifier.SendLeaderboard(stats.Rankings(p.State()), dryRun)
}

// PostWeeklyLeaders sends the last seven days' leaders to the notifier.
func (p *Processor) PostWeeklyLeaders(dryRun bool) error {
	return p.notifier.SendWeeklyLeaders(stats.WeeklyLeaders(p.State(), p.now()), dryRun)
}
