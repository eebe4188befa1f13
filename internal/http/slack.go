package http

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rei-da-mesa/internal/stats"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	writeJSON(w, http.StatusOK, msg)
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := s.Notifier.FormatLeaderboardResponse(stats.Rankings(s.Processor.State()))
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// PlayerStatsCommandHandler returns a handler for the /player-stats Slack command.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := strings.TrimSpace(r.FormValue("text"))
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		state := s.Processor.State()
		var msg any
		var err error
		player, found := stats.FindByName(state, playerName)
		if found {
			summary, _ := stats.Summarize(state, player.ID)
			msg, err = s.Notifier.FormatPlayerStatsResponse(summary)
		} else {
			log.Info("Player not found for stats command", "query", playerName)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(playerName)
		}
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
