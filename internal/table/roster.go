package table

import "strings"

// NewPlayer builds an active player with empty counters.
func NewPlayer(id, name, emoji string, level Level) Player {
	return Player{
		ID:           id,
		Name:         name,
		Emoji:        emoji,
		Level:        level,
		Active:       true,
		Rivalries:    make(Rivalries),
		Partnerships: make(Partnerships),
	}
}

// AddPlayer enters a new player into the roster and at the end of the
// queue. A blank name or unknown level is a no-op.
func (e *Engine) AddPlayer(s State, name, emoji string, level Level) Result {
	name = strings.TrimSpace(name)
	if name == "" || !level.Valid() {
		return unchanged(s)
	}
	next := s.Clone()
	p := NewPlayer(e.newID(), name, emoji, level)
	next.Players[p.ID] = p
	next.Queue = append(next.Queue, p.ID)
	return Result{State: next, Changed: true}
}

// UpdatePlayer edits the display fields of a player. Blank fields keep their
// current value. Counters are kept.
func (e *Engine) UpdatePlayer(s State, id, name, emoji string, level Level) Result {
	p, ok := s.Players[id]
	if !ok {
		return unchanged(s)
	}
	if name = strings.TrimSpace(name); name == "" {
		name = p.Name
	}
	if emoji == "" {
		emoji = p.Emoji
	}
	if level == "" {
		level = p.Level
	}
	if !level.Valid() {
		return unchanged(s)
	}
	if p.Name == name && p.Emoji == emoji && p.Level == level {
		return unchanged(s)
	}
	next := s.Clone()
	p = next.Players[id]
	p.Name, p.Emoji, p.Level = name, emoji, level
	next.Players[id] = p
	return Result{State: next, Changed: true}
}

// RemovePlayer deletes a player from the roster and the queue. Other
// players' rivalry and partnership entries for the id are kept; lookups
// treat the id as retired. Players in the active match cannot be removed.
func (e *Engine) RemovePlayer(s State, id string) Result {
	if _, ok := s.Players[id]; !ok || s.InActiveMatch(id) {
		return unchanged(s)
	}
	next := s.Clone()
	delete(next.Players, id)
	next.Queue = without(next.Queue, id)
	return Result{State: next, Changed: true}
}

// ResetAll wipes players, queue, active match and history.
func (e *Engine) ResetAll(s State) Result {
	if len(s.Players) == 0 && len(s.Queue) == 0 && s.ActiveMatch == nil && len(s.History) == 0 {
		return unchanged(s)
	}
	return Result{State: NewState(), Changed: true}
}

// ResetStats zeroes every player's counters and clears the history and the
// active match. The roster and queue are kept.
func (e *Engine) ResetStats(s State) Result {
	next := s.Clone()
	for id, p := range next.Players {
		p.Stats = Stats{}
		p.Rivalries = make(Rivalries)
		p.Partnerships = make(Partnerships)
		next.Players[id] = p
	}
	next.History = []Match{}
	next.ActiveMatch = nil
	return Result{State: next, Changed: true}
}
