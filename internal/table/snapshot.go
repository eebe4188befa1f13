package table

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// ErrInvalidSnapshot is wrapped by every Import validation failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// backup mirrors State with pointer fields so missing keys can be told apart
// from empty ones.
type backup struct {
	Players     *map[string]backupPlayer `json:"players"`
	Queue       *[]string                `json:"queue"`
	ActiveMatch *Match                   `json:"activeMatch"`
	History     []Match                  `json:"history"`
}

// backupPlayer overrides the active flag so a missing key reads as active.
// Players created by older versions of the app carry no flag.
type backupPlayer struct {
	Player
	Active *bool `json:"active"`
}

// Export encodes s as an indented JSON backup.
func Export(s State) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Import decodes and validates a JSON backup. Nothing is returned unless the
// whole document is valid, so the caller's current state is never touched by
// a bad file.
func Import(data []byte) (State, error) {
	var b backup
	if err := json.Unmarshal(data, &b); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if b.Players == nil {
		return State{}, fmt.Errorf("%w: missing players", ErrInvalidSnapshot)
	}
	if b.Queue == nil {
		return State{}, fmt.Errorf("%w: missing queue", ErrInvalidSnapshot)
	}

	s := NewState()
	for key, bp := range *b.Players {
		p := bp.Player
		p.Active = bp.Active == nil || *bp.Active
		if p.ID == "" {
			p.ID = key
		}
		if p.ID != key {
			return State{}, fmt.Errorf("%w: player key %q holds id %q", ErrInvalidSnapshot, key, p.ID)
		}
		if !p.Level.Valid() {
			return State{}, fmt.Errorf("%w: player %q has unknown level %q", ErrInvalidSnapshot, key, p.Level)
		}
		if p.Rivalries == nil {
			p.Rivalries = make(Rivalries)
		}
		if p.Partnerships == nil {
			p.Partnerships = make(Partnerships)
		}
		s.Players[key] = p
	}

	seen := make(map[string]bool, len(*b.Queue))
	for _, id := range *b.Queue {
		p, ok := s.Players[id]
		switch {
		case !ok:
			return State{}, fmt.Errorf("%w: queue references unknown player %q", ErrInvalidSnapshot, id)
		case !p.Active:
			return State{}, fmt.Errorf("%w: queue references inactive player %q", ErrInvalidSnapshot, id)
		case seen[id]:
			return State{}, fmt.Errorf("%w: player %q queued twice", ErrInvalidSnapshot, id)
		}
		seen[id] = true
		s.Queue = append(s.Queue, id)
	}

	if b.ActiveMatch != nil {
		if err := validateMatch(*b.ActiveMatch); err != nil {
			return State{}, fmt.Errorf("%w: active match: %v", ErrInvalidSnapshot, err)
		}
		for _, id := range append(b.ActiveMatch.SideA, b.ActiveMatch.SideB...) {
			if !seen[id] {
				return State{}, fmt.Errorf("%w: active match player %q is not queued", ErrInvalidSnapshot, id)
			}
		}
		m := b.ActiveMatch.clone()
		s.ActiveMatch = &m
	}

	for i, m := range b.History {
		if i == HistoryLimit {
			break
		}
		if err := validateMatch(m); err != nil {
			return State{}, fmt.Errorf("%w: history entry %d: %v", ErrInvalidSnapshot, i, err)
		}
		s.History = append(s.History, m.clone())
	}
	return s, nil
}

func validateMatch(m Match) error {
	if !m.Mode.Valid() {
		return fmt.Errorf("unknown mode %q", m.Mode)
	}
	if len(m.SideA) != m.Mode.SideSize() || len(m.SideB) != m.Mode.SideSize() {
		return fmt.Errorf("%s match needs %d players per side", m.Mode, m.Mode.SideSize())
	}
	if m.ScoreA < 0 || m.ScoreB < 0 {
		return errors.New("negative score")
	}
	if m.Winner != "" && !m.Winner.Valid() {
		return fmt.Errorf("unknown winner %q", m.Winner)
	}
	return nil
}
