package table

// StartMatch pairs the front of the queue: side A takes the first one or two
// entries, side B the next ones. The players stay queued until the match is
// finished. It is a no-op when a match is running or the queue is too short.
func (e *Engine) StartMatch(s State, mode Mode) Result {
	if !mode.Valid() || s.ActiveMatch != nil {
		return unchanged(s)
	}
	m, ok := e.pair(s.Queue, mode)
	if !ok {
		return unchanged(s)
	}
	next := s.Clone()
	next.ActiveMatch = &m
	return Result{State: next, Changed: true}
}

func (e *Engine) pair(queue []string, mode Mode) (Match, bool) {
	if len(queue) < mode.MinQueue() {
		return Match{}, false
	}
	size := mode.SideSize()
	return Match{
		ID:        e.newID(),
		Mode:      mode,
		SideA:     append([]string{}, queue[:size]...),
		SideB:     append([]string{}, queue[size:2*size]...),
		Timestamp: e.now().UnixMilli(),
	}, true
}

// UpdateScore awards (+1) or retracts (-1) a point for side and runs the
// scoring rules. Scores never drop below zero and a decided match ignores
// further points.
func (e *Engine) UpdateScore(s State, side Side, amount int) Result {
	if s.ActiveMatch == nil || s.ActiveMatch.Decided() || !side.Valid() {
		return unchanged(s)
	}
	if amount != 1 && amount != -1 {
		return unchanged(s)
	}

	m := s.ActiveMatch.clone()
	if side == SideA {
		m.ScoreA = max(0, m.ScoreA+amount)
	} else {
		m.ScoreB = max(0, m.ScoreB+amount)
	}
	if m.ScoreA == s.ActiveMatch.ScoreA && m.ScoreB == s.ActiveMatch.ScoreB {
		return unchanged(s)
	}

	events := []Event{EventPointScored}
	if amount < 0 {
		events = []Event{EventPointRetracted}
	}

	m.MaxTrailingA = max(m.MaxTrailingA, m.ScoreB-m.ScoreA)
	m.MaxTrailingB = max(m.MaxTrailingB, m.ScoreA-m.ScoreB)

	if !m.IsDeuce {
		events = append(events, scoreNormal(&m)...)
	} else {
		events = append(events, scoreDeuce(&m)...)
	}

	if m.Decided() {
		trailing := m.MaxTrailingA
		if m.Winner == SideB {
			trailing = m.MaxTrailingB
		}
		m.IsComeback = trailing >= ComebackDeficit
		events = append(events, EventVictoryDecided)
	}

	next := s.Clone()
	next.ActiveMatch = &m
	return Result{State: next, Changed: true, Events: events}
}

// scoreNormal applies the mercy rule, the win target and the deuce trigger,
// in that order.
func scoreNormal(m *Match) []Event {
	target, trigger := m.Mode.WinTarget(), m.Mode.DeuceTrigger()
	switch {
	case m.ScoreA == MercyScore && m.ScoreB == 0:
		m.Winner = SideA
	case m.ScoreB == MercyScore && m.ScoreA == 0:
		m.Winner = SideB
	case m.ScoreA >= target:
		m.Winner = SideA
	case m.ScoreB >= target:
		m.Winner = SideB
	case m.ScoreA == trigger && m.ScoreB == trigger:
		m.IsDeuce = true
		m.ScoreA, m.ScoreB = 0, 0
		return []Event{EventDeuceEntered}
	}
	return nil
}

// scoreDeuce cancels a 1-1 back to 0-0; otherwise the first side to reach
// two points since the last cancellation wins. The loser is always at 0 then.
func scoreDeuce(m *Match) []Event {
	switch {
	case m.ScoreA == 1 && m.ScoreB == 1:
		m.ScoreA, m.ScoreB = 0, 0
		return []Event{EventPointRetracted}
	case m.ScoreA >= DeuceWinScore:
		m.Winner = SideA
	case m.ScoreB >= DeuceWinScore:
		m.Winner = SideB
	}
	return nil
}

// ResetActiveMatch discards the running match whatever its phase. Stats are
// not touched.
func (e *Engine) ResetActiveMatch(s State) Result {
	if s.ActiveMatch == nil {
		return unchanged(s)
	}
	next := s.Clone()
	next.ActiveMatch = nil
	return Result{State: next, Changed: true}
}
