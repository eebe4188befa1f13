package snapshot

import (
	"context"
	"sync"

	"github.com/mauv0809/rei-da-mesa/internal/table"
)

// Mock is an in-memory Store for testing. It is safe for concurrent use.
type Mock struct {
	mu      sync.Mutex
	state   *table.State
	version int64

	// Spies
	LoadFunc func(ctx context.Context) (*table.State, int64, error)
	SaveFunc func(ctx context.Context, state table.State, version int64) (int64, error)

	// Call records
	SaveCalls []SaveCall
}

// SaveCall holds the arguments for a call to Save.
type SaveCall struct {
	State   table.State
	Version int64
}

var _ Store = (*Mock)(nil)

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{}
}

// Seed stores state as if it had been saved once.
func (m *Mock) Seed(state table.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := state.Clone()
	m.state = &s
	m.version++
}

func (m *Mock) Load(ctx context.Context) (*table.State, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	if m.state == nil {
		return nil, 0, nil
	}
	s := m.state.Clone()
	return &s, m.version, nil
}

func (m *Mock) Save(ctx context.Context, state table.State, version int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, SaveCall{State: state.Clone(), Version: version})
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, state, version)
	}
	if version != m.version {
		return 0, ErrVersionConflict
	}
	s := state.Clone()
	m.state = &s
	m.version++
	return m.version, nil
}

// Saves returns the number of Save calls.
func (m *Mock) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveCalls)
}
