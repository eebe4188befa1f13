package table

// FinishMatch commits a decided match: it updates every participant's
// counters, rivalries and partnerships, rotates the queue (winners to the
// front, losers to the back), pushes the match into history and, when
// autoStartNext is set, pairs the next match from the rotated queue.
//
// Participants missing from the roster are skipped.
func (e *Engine) FinishMatch(s State, autoStartNext bool) Result {
	if s.ActiveMatch == nil || !s.ActiveMatch.Decided() {
		return unchanged(s)
	}
	next := s.Clone()
	finished := next.ActiveMatch.clone()

	winSide := finished.Winner
	loseSide := winSide.Opposite()
	winners := finished.Players(winSide)
	losers := finished.Players(loseSide)
	pneu := finished.IsPneu()

	for _, id := range winners {
		recordResult(next.Players, id, finished, true, finished.Score(winSide), pneu, winners, losers)
	}
	for _, id := range losers {
		recordResult(next.Players, id, finished, false, finished.Score(loseSide), pneu, losers, winners)
	}

	next.Queue = rotate(next, finished, winners, losers)

	next.History = append([]Match{finished}, next.History...)
	if len(next.History) > HistoryLimit {
		next.History = next.History[:HistoryLimit]
	}

	next.ActiveMatch = nil
	if autoStartNext {
		if m, ok := e.pair(next.Queue, finished.Mode); ok {
			next.ActiveMatch = &m
		}
	}

	return Result{State: next, Changed: true, Finished: &finished}
}

func recordResult(players map[string]Player, id string, m Match, won bool, score int, pneu bool, team, opponents []string) {
	p, ok := players[id]
	if !ok {
		return
	}

	p.Stats.Matches++
	p.Stats.PointsScored += score
	if m.Mode == ModeDuplas {
		p.Stats.DuplasMatches++
	} else {
		p.Stats.SoloMatches++
	}

	if won {
		p.Stats.Wins++
		p.Stats.ConsecutiveWins++
		p.Stats.MaxConsecutiveWins = max(p.Stats.MaxConsecutiveWins, p.Stats.ConsecutiveWins)
		if pneu {
			p.Stats.PneusApplied++
		}
	} else {
		p.Stats.Losses++
		p.Stats.ConsecutiveWins = 0
		if pneu {
			p.Stats.PneusReceived++
		}
	}

	for _, opp := range opponents {
		p.Rivalries.Upsert(opp, func(r *Rivalry) {
			if won {
				r.WinsAgainst++
			} else {
				r.LossesTo++
			}
		})
	}

	if m.Mode == ModeDuplas {
		for _, mate := range team {
			if mate == id {
				continue
			}
			p.Partnerships.Upsert(mate, func(r *Partnership) {
				if won {
					r.Wins++
				} else {
					r.Losses++
				}
			})
		}
	}

	players[id] = p
}

// rotate rebuilds the queue as winners, then the untouched waiters in their
// original order, then losers. Participants no longer in the roster or no
// longer active are dropped.
func rotate(s State, m Match, winners, losers []string) []string {
	queue := make([]string, 0, len(s.Queue))
	keep := func(id string) bool {
		p, ok := s.Players[id]
		return ok && p.Active
	}
	for _, id := range winners {
		if keep(id) {
			queue = append(queue, id)
		}
	}
	for _, id := range s.Queue {
		if !m.Includes(id) {
			queue = append(queue, id)
		}
	}
	for _, id := range losers {
		if keep(id) {
			queue = append(queue, id)
		}
	}
	return queue
}
