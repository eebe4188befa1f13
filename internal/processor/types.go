package processor

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/rei-da-mesa/internal/metrics"
	"github.com/mauv0809/rei-da-mesa/internal/pubsub"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

// ErrNotApplied is returned when a command is a no-op for the current state
// (a precondition failed). Nothing is persisted or announced.
var ErrNotApplied = errors.New("command not applied")

// Processor is the single writer of the table state. It applies commands,
// persists the resulting snapshot and only then makes it current.
type Processor struct {
	mu      sync.Mutex
	state   table.State
	version int64

	engine   *table.Engine
	store    Store
	pubsub   pubsub.PubSubClient
	notifier Notifier
	metrics  metrics.Metrics
	tallies  metrics.Tallies
	now      func() time.Time
}
