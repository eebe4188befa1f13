package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/rei-da-mesa/internal/config"
	"github.com/mauv0809/rei-da-mesa/internal/metrics"
	"github.com/mauv0809/rei-da-mesa/internal/notifier"
	"github.com/mauv0809/rei-da-mesa/internal/processor"
	"github.com/mauv0809/rei-da-mesa/internal/pubsub"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

type Server struct {
	Processor      *processor.Processor
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
	now            func() time.Time
}

// stateResponse is the body returned by /state and every table command.
type stateResponse struct {
	State   table.State   `json:"state"`
	Version int64         `json:"version"`
	Phase   string        `json:"phase,omitempty"`
	Events  []table.Event `json:"events,omitempty"`
	DryRun  bool          `json:"dry_run,omitempty"`
}

// pushRequest is the envelope of a Pub/Sub push delivery.
type pushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}
