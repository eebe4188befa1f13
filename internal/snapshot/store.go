package snapshot

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rei-da-mesa/internal/table"
	"github.com/vmihailenco/msgpack/v5"
)

var _ Store = (*store)(nil)

// New creates a Store backed by the snapshots table.
func New(db *sql.DB) Store {
	return &store{db: db, now: time.Now}
}

func (s *store) Load(ctx context.Context) (*table.State, int64, error) {
	var (
		version int64
		blob    []byte
	)
	err := s.db.QueryRowContext(ctx, "SELECT version, state FROM snapshots WHERE id = ?", snapshotID).Scan(&version, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("No snapshot stored yet")
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load snapshot: %w", err)
	}

	state, err := decode(blob)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode snapshot version %d: %w", version, err)
	}
	log.Debug("Loaded snapshot", "version", version, "players", len(state.Players), "history", len(state.History))
	return &state, version, nil
}

func (s *store) Save(ctx context.Context, state table.State, version int64) (int64, error) {
	blob, err := encode(state)
	if err != nil {
		return 0, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	next := version + 1
	updatedAt := s.now().UnixMilli()

	var res sql.Result
	if version == 0 {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO snapshots (id, version, state, updated_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING`,
			snapshotID, next, blob, updatedAt)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE snapshots SET version = ?, state = ?, updated_at = ?
			WHERE id = ? AND version = ?`,
			next, blob, updatedAt, snapshotID, version)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to save snapshot: %w", err)
	}
	if n == 0 {
		log.Warn("Rejected stale snapshot write", "version", version)
		return 0, ErrVersionConflict
	}
	log.Debug("Saved snapshot", "version", next, "bytes", len(blob))
	return next, nil
}

// encode uses the json tags so the blob and the JSON backup share field names.
func encode(state table.State) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(blob []byte) (table.State, error) {
	var state table.State
	dec := msgpack.NewDecoder(bytes.NewReader(blob))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&state); err != nil {
		return table.State{}, err
	}
	return state.Clone(), nil
}
