package table

import "fmt"

// Mode is the format of a match.
type Mode string

const (
	ModeSolo   Mode = "SOLO"
	ModeDuplas Mode = "DUPLAS"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeSolo || m == ModeDuplas
}

// SideSize is the number of players on each side.
func (m Mode) SideSize() int {
	if m == ModeDuplas {
		return 2
	}
	return 1
}

// WinTarget is the score that decides a match outside of deuce.
func (m Mode) WinTarget() int {
	if m == ModeDuplas {
		return 10
	}
	return 7
}

// DeuceTrigger is the tied score at which a match enters deuce.
func (m Mode) DeuceTrigger() int {
	if m == ModeDuplas {
		return 9
	}
	return 6
}

// MinQueue is the number of queued players needed to start a match.
func (m Mode) MinQueue() int {
	return 2 * m.SideSize()
}

const (
	// MercyScore wins the match immediately when the opponent has not scored.
	MercyScore = 5
	// DeuceWinScore decides a match in deuce.
	DeuceWinScore = 2
	// ComebackDeficit is the deficit a winner must have recovered from to flag a comeback.
	ComebackDeficit = 2
	// HistoryLimit bounds the number of finished matches kept.
	HistoryLimit = 50
)

// Side identifies one half of the table.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Valid reports whether s is A or B.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// Level is a player's skill tier.
type Level string

const (
	LevelBeginner     Level = "Iniciante"
	LevelIntermediate Level = "Intermediário"
	LevelAdvanced     Level = "Avançado"
	LevelPro          Level = "Pro"
)

// Levels lists the tiers from lowest to highest.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelPro}

// Valid reports whether l is one of Levels.
func (l Level) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

// Stats are a player's cumulative counters.
type Stats struct {
	Matches            int `json:"matches"`
	Wins               int `json:"wins"`
	Losses             int `json:"losses"`
	PointsScored       int `json:"pointsScored"`
	ConsecutiveWins    int `json:"consecutiveWins"`
	MaxConsecutiveWins int `json:"maxConsecutiveWins"`
	PneusApplied       int `json:"pneusApplied"`
	PneusReceived      int `json:"pneusReceived"`
	SoloMatches        int `json:"soloMatches"`
	DuplasMatches      int `json:"duplasMatches"`
}

// WinRate is the rounded win percentage, 0 when no match was played.
func (s Stats) WinRate() int {
	if s.Matches == 0 {
		return 0
	}
	return (s.Wins*100 + s.Matches/2) / s.Matches
}

// Rivalry counts results against one opponent.
type Rivalry struct {
	WinsAgainst int `json:"winsAgainst"`
	LossesTo    int `json:"lossesTo"`
}

// Rivalries maps opponent id to the head-to-head record.
type Rivalries map[string]Rivalry

// Get returns the record against id, zero when none exists.
func (r Rivalries) Get(id string) Rivalry {
	return r[id]
}

// Upsert applies fn to the record for id, creating a zero record first.
func (r *Rivalries) Upsert(id string, fn func(*Rivalry)) {
	if *r == nil {
		*r = make(Rivalries)
	}
	rec := (*r)[id]
	fn(&rec)
	(*r)[id] = rec
}

// Partnership counts results alongside one teammate.
type Partnership struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Partnerships maps teammate id to the shared record.
type Partnerships map[string]Partnership

// Get returns the record with id, zero when none exists.
func (p Partnerships) Get(id string) Partnership {
	return p[id]
}

// Upsert applies fn to the record for id, creating a zero record first.
func (p *Partnerships) Upsert(id string, fn func(*Partnership)) {
	if *p == nil {
		*p = make(Partnerships)
	}
	rec := (*p)[id]
	fn(&rec)
	(*p)[id] = rec
}

// Player is a roster entry.
type Player struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Emoji        string       `json:"emoji"`
	Level        Level        `json:"level"`
	Active       bool         `json:"active"`
	Stats        Stats        `json:"stats"`
	Rivalries    Rivalries    `json:"rivalries"`
	Partnerships Partnerships `json:"partnerships"`
}

func (p Player) clone() Player {
	out := p
	out.Rivalries = make(Rivalries, len(p.Rivalries))
	for id, r := range p.Rivalries {
		out.Rivalries[id] = r
	}
	out.Partnerships = make(Partnerships, len(p.Partnerships))
	for id, r := range p.Partnerships {
		out.Partnerships[id] = r
	}
	return out
}

// Phase is the scoring state of a match.
type Phase int

const (
	PhaseNormal Phase = iota
	PhaseDeuce
	PhaseDecided
)

func (p Phase) String() string {
	switch p {
	case PhaseNormal:
		return "NORMAL"
	case PhaseDeuce:
		return "DEUCE"
	case PhaseDecided:
		return "DECIDED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(p))
	}
}

// Match is a live or finished game between two sides.
type Match struct {
	ID           string   `json:"id"`
	Mode         Mode     `json:"mode"`
	SideA        []string `json:"sideA"`
	SideB        []string `json:"sideB"`
	ScoreA       int      `json:"scoreA"`
	ScoreB       int      `json:"scoreB"`
	Winner       Side     `json:"winner,omitempty"`
	Timestamp    int64    `json:"timestamp"`
	IsDeuce      bool     `json:"isDeuce"`
	IsComeback   bool     `json:"isComeback"`
	MaxTrailingA int      `json:"maxTrailingA"`
	MaxTrailingB int      `json:"maxTrailingB"`
}

// Phase derives the scoring state from the winner and deuce flags.
func (m Match) Phase() Phase {
	switch {
	case m.Winner != "":
		return PhaseDecided
	case m.IsDeuce:
		return PhaseDeuce
	default:
		return PhaseNormal
	}
}

// Decided reports whether a winner is set.
func (m Match) Decided() bool {
	return m.Winner != ""
}

// Players returns the ids on side s.
func (m Match) Players(s Side) []string {
	if s == SideA {
		return m.SideA
	}
	return m.SideB
}

// Score returns the score of side s.
func (m Match) Score(s Side) int {
	if s == SideA {
		return m.ScoreA
	}
	return m.ScoreB
}

// Includes reports whether id plays in the match.
func (m Match) Includes(id string) bool {
	for _, pid := range m.SideA {
		if pid == id {
			return true
		}
	}
	for _, pid := range m.SideB {
		if pid == id {
			return true
		}
	}
	return false
}

// IsPneu reports whether a decided match ended 5-0.
func (m Match) IsPneu() bool {
	if !m.Decided() {
		return false
	}
	return m.Score(m.Winner) == MercyScore && m.Score(m.Winner.Opposite()) == 0
}

func (m Match) clone() Match {
	out := m
	out.SideA = append([]string(nil), m.SideA...)
	out.SideB = append([]string(nil), m.SideB...)
	return out
}

// State is the whole application state.
type State struct {
	Players     map[string]Player `json:"players"`
	Queue       []string          `json:"queue"`
	ActiveMatch *Match            `json:"activeMatch"`
	History     []Match           `json:"history"`
}

// NewState returns an empty state.
func NewState() State {
	return State{
		Players: make(map[string]Player),
		Queue:   []string{},
		History: []Match{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Players: make(map[string]Player, len(s.Players)),
		Queue:   append([]string{}, s.Queue...),
		History: make([]Match, 0, len(s.History)),
	}
	for id, p := range s.Players {
		out.Players[id] = p.clone()
	}
	if s.ActiveMatch != nil {
		m := s.ActiveMatch.clone()
		out.ActiveMatch = &m
	}
	for _, m := range s.History {
		out.History = append(out.History, m.clone())
	}
	return out
}

// Player looks up a roster entry.
func (s State) Player(id string) (Player, bool) {
	p, ok := s.Players[id]
	return p, ok
}

// QueueIndex returns the position of id in the queue or -1.
func (s State) QueueIndex(id string) int {
	for i, pid := range s.Queue {
		if pid == id {
			return i
		}
	}
	return -1
}

// InActiveMatch reports whether id plays in the running match.
func (s State) InActiveMatch(id string) bool {
	return s.ActiveMatch != nil && s.ActiveMatch.Includes(id)
}
