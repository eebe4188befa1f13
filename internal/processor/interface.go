package processor

import (
	"github.com/mauv0809/rei-da-mesa/internal/notifier"
	"github.com/mauv0809/rei-da-mesa/internal/snapshot"
)

// Store defines the persistence operations required by the processor.
type Store interface {
	snapshot.Store
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
