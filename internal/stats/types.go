package stats

import "github.com/mauv0809/rei-da-mesa/internal/table"

// RetiredName is shown for ids that are no longer in the roster.
const RetiredName = "Aposentado"

// PlayerRef is a display handle for a player id.
type PlayerRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
	Retired bool   `json:"retired"`
}

// Ranking is one row of the leaderboard.
type Ranking struct {
	Rank    int         `json:"rank"`
	Player  PlayerRef   `json:"player"`
	Level   table.Level `json:"level"`
	Stats   table.Stats `json:"stats"`
	WinRate int         `json:"win_rate"`
}

// Rivals holds the opponents a player loses to and beats the most.
type Rivals struct {
	Nemesis       *PlayerRef `json:"nemesis,omitempty"`
	NemesisLosses int        `json:"nemesis_losses"`
	Client        *PlayerRef `json:"client,omitempty"`
	ClientWins    int        `json:"client_wins"`
}

// Partners holds the teammates a player wins and loses with the most.
type Partners struct {
	Best          *PlayerRef `json:"best,omitempty"`
	BestWins      int        `json:"best_wins"`
	BadVibe       *PlayerRef `json:"bad_vibe,omitempty"`
	BadVibeLosses int        `json:"bad_vibe_losses"`
}

// Leader is a weekly leaderboard entry.
type Leader struct {
	Player PlayerRef `json:"player"`
	Wins   int       `json:"wins"`
	Pneus  int       `json:"pneus"`
}

// Summary is the full card for one player.
type Summary struct {
	Player   PlayerRef   `json:"player"`
	Level    table.Level `json:"level"`
	Active   bool        `json:"active"`
	Stats    table.Stats `json:"stats"`
	WinRate  int         `json:"win_rate"`
	Rivals   Rivals      `json:"rivals"`
	Partners Partners    `json:"partners"`
	// Comebacks counts comeback wins found in the retained history.
	Comebacks int `json:"comebacks"`
}
