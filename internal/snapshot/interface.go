package snapshot

import (
	"context"

	"github.com/mauv0809/rei-da-mesa/internal/table"
)

// Store persists the whole table state as a single versioned snapshot.
type Store interface {
	// Load returns the stored state and its version. The state is nil and the
	// version 0 when nothing was saved yet.
	Load(ctx context.Context) (*table.State, int64, error)
	// Save writes state if the stored version still equals version and
	// returns the new version. A mismatch returns ErrVersionConflict.
	Save(ctx context.Context, state table.State, version int64) (int64, error)
}
