package table

// Direction moves a queue entry one slot.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// MoveInQueue swaps the entry at index with its neighbour. It is a no-op at
// the boundaries or for an out-of-range index.
func (e *Engine) MoveInQueue(s State, index int, dir Direction) Result {
	if index < 0 || index >= len(s.Queue) {
		return unchanged(s)
	}
	target := index
	switch dir {
	case DirectionUp:
		target = index - 1
	case DirectionDown:
		target = index + 1
	}
	if target == index || target < 0 || target >= len(s.Queue) {
		return unchanged(s)
	}
	next := s.Clone()
	next.Queue[index], next.Queue[target] = next.Queue[target], next.Queue[index]
	return Result{State: next, Changed: true}
}

// ShuffleQueue randomly permutes the queue entries that are not playing the
// active match. Players in the match keep their positions.
func (e *Engine) ShuffleQueue(s State) Result {
	var slots []int
	for i, id := range s.Queue {
		if !s.InActiveMatch(id) {
			slots = append(slots, i)
		}
	}
	if len(slots) < 2 {
		return unchanged(s)
	}

	next := s.Clone()
	waiting := make([]string, len(slots))
	for i, slot := range slots {
		waiting[i] = next.Queue[slot]
	}
	e.shuffle(len(waiting), func(i, j int) {
		waiting[i], waiting[j] = waiting[j], waiting[i]
	})
	for i, slot := range slots {
		next.Queue[slot] = waiting[i]
	}
	return Result{State: next, Changed: true}
}

// ToggleActive flips a player between the queue and the bench. Activating
// appends to the queue tail; deactivating removes from the queue. Players in
// the active match cannot be benched.
func (e *Engine) ToggleActive(s State, id string) Result {
	p, ok := s.Players[id]
	if !ok || (p.Active && s.InActiveMatch(id)) {
		return unchanged(s)
	}
	next := s.Clone()
	p = next.Players[id]
	p.Active = !p.Active
	next.Players[id] = p
	if p.Active {
		if next.QueueIndex(id) < 0 {
			next.Queue = append(next.Queue, id)
		}
	} else {
		next.Queue = without(next.Queue, id)
	}
	return Result{State: next, Changed: true}
}

// RemoveFromQueue benches a queued player. The player stays in the roster
// but is marked inactive so the queue only ever holds active players.
func (e *Engine) RemoveFromQueue(s State, id string) Result {
	if s.QueueIndex(id) < 0 || s.InActiveMatch(id) {
		return unchanged(s)
	}
	next := s.Clone()
	next.Queue = without(next.Queue, id)
	if p, ok := next.Players[id]; ok {
		p.Active = false
		next.Players[id] = p
	}
	return Result{State: next, Changed: true}
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, pid := range ids {
		if pid != id {
			out = append(out, pid)
		}
	}
	return out
}
