package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/mauv0809/rei-da-mesa/internal/processor"
	"github.com/mauv0809/rei-da-mesa/internal/stats"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func newStateResponse(state table.State, version int64) stateResponse {
	resp := stateResponse{State: state, Version: version}
	if state.ActiveMatch != nil {
		resp.Phase = state.ActiveMatch.Phase().String()
	}
	return resp
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newStateResponse(s.Processor.State(), s.Processor.Version()))
	}
}

// commandHandler runs the command built from the request through the
// processor. parse returns an error for malformed parameters.
func (s *Server) commandHandler(parse func(r *http.Request) (table.Command, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := parse(r)
		if err != nil {
			log.Warn("Invalid command request", "url", r.URL.String(), "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		res, err := s.Processor.Apply(r.Context(), cmd, isDryRun)
		switch {
		case errors.Is(err, processor.ErrNotApplied):
			writeJSON(w, http.StatusConflict, newStateResponse(res.State, s.Processor.Version()))
			return
		case err != nil:
			log.Error("Failed to apply command", "kind", cmd.Kind, "error", err)
			http.Error(w, "Failed to apply command", http.StatusInternalServerError)
			return
		}

		resp := newStateResponse(res.State, s.Processor.Version())
		resp.Events = res.Events
		resp.DryRun = isDryRun
		writeJSON(w, http.StatusOK, resp)
	}
}

// intParam reads an integer query or form value, falling back to def when
// the value is absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func boolParam(r *http.Request, name string, def bool) (bool, error) {
	raw := r.FormValue(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func requiredParam(r *http.Request, name string) (string, error) {
	v := r.FormValue(name)
	if v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return v, nil
}

func (s *Server) StartMatchHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		mode := table.Mode(r.FormValue("mode"))
		if mode == "" {
			mode = table.ModeSolo
		}
		if !mode.Valid() {
			return table.Command{}, fmt.Errorf("invalid mode %q", mode)
		}
		return table.Command{Kind: table.CmdStartMatch, Mode: mode}, nil
	})
}

func (s *Server) UpdateScoreHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		side := table.Side(r.FormValue("side"))
		if !side.Valid() {
			return table.Command{}, fmt.Errorf("invalid side %q", side)
		}
		amount, err := intParam(r, "amount", 1)
		if err != nil {
			return table.Command{}, err
		}
		return table.Command{Kind: table.CmdUpdateScore, Side: side, Amount: amount}, nil
	})
}

func (s *Server) ResetMatchHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		return table.Command{Kind: table.CmdResetMatch}, nil
	})
}

func (s *Server) FinishMatchHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		autoStart, err := boolParam(r, "auto_start", s.Cfg.Table.AutoStartNext)
		if err != nil {
			return table.Command{}, err
		}
		return table.Command{Kind: table.CmdFinishMatch, AutoStart: autoStart}, nil
	})
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		name, err := requiredParam(r, "name")
		if err != nil {
			return table.Command{}, err
		}
		return table.Command{
			Kind:  table.CmdAddPlayer,
			Name:  name,
			Emoji: r.FormValue("emoji"),
			Level: table.Level(r.FormValue("level")),
		}, nil
	})
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		id, err := requiredParam(r, "id")
		if err != nil {
			return table.Command{}, err
		}
		return table.Command{
			Kind:     table.CmdUpdatePlayer,
			PlayerID: id,
			Name:     r.FormValue("name"),
			Emoji:    r.FormValue("emoji"),
			Level:    table.Level(r.FormValue("level")),
		}, nil
	})
}

// playerCommand builds a command that only targets a player id.
func (s *Server) playerCommand(kind table.CommandKind) http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		id, err := requiredParam(r, "id")
		if err != nil {
			return table.Command{}, err
		}
		return table.Command{Kind: kind, PlayerID: id}, nil
	})
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return s.playerCommand(table.CmdRemovePlayer)
}

func (s *Server) ToggleActiveHandler() http.HandlerFunc {
	return s.playerCommand(table.CmdToggleActive)
}

func (s *Server) RemoveFromQueueHandler() http.HandlerFunc {
	return s.playerCommand(table.CmdRemoveFromQueue)
}

func (s *Server) MoveInQueueHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		raw, err := requiredParam(r, "index")
		if err != nil {
			return table.Command{}, err
		}
		index, err := strconv.Atoi(raw)
		if err != nil {
			return table.Command{}, fmt.Errorf("invalid index %q", raw)
		}
		dir := table.Direction(r.FormValue("direction"))
		if dir != table.DirectionUp && dir != table.DirectionDown {
			return table.Command{}, fmt.Errorf("invalid direction %q", dir)
		}
		return table.Command{Kind: table.CmdMoveInQueue, Index: index, Direction: dir}, nil
	})
}

func (s *Server) ShuffleQueueHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		return table.Command{Kind: table.CmdShuffleQueue}, nil
	})
}

func (s *Server) ResetHandler() http.HandlerFunc {
	return s.commandHandler(func(r *http.Request) (table.Command, error) {
		switch scope := r.FormValue("scope"); scope {
		case "all":
			return table.Command{Kind: table.CmdResetAll}, nil
		case "stats":
			return table.Command{Kind: table.CmdResetStats}, nil
		default:
			return table.Command{}, fmt.Errorf("invalid scope %q, expected all or stats", scope)
		}
	})
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := s.Processor.Export()
		if err != nil {
			log.Error("Failed to export state", "error", err)
			http.Error(w, "Failed to export state", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="rei-da-mesa-backup.json"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// maxImportBytes bounds an uploaded backup. A full table with fifty history
// entries is a few hundred kilobytes.
const maxImportBytes = 4 << 20

func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "Backup too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)

		state, err := s.Processor.Import(r.Context(), data, isDryRun)
		switch {
		case errors.Is(err, table.ErrInvalidSnapshot):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			log.Error("Failed to import backup", "error", err)
			http.Error(w, "Failed to import backup", http.StatusInternalServerError)
			return
		}
		resp := newStateResponse(state, s.Processor.Version())
		resp.DryRun = isDryRun
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stats.Rankings(s.Processor.State()))
	}
}

func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		summary, ok := stats.Summarize(s.Processor.State(), id)
		if !ok {
			http.Error(w, fmt.Sprintf("player %s not found", id), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) WeeklyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stats.WeeklyLeaders(s.Processor.State(), s.now()))
	}
}

func (s *Server) TalliesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tallies, err := s.Processor.Tallies()
		if err != nil {
			log.Error("Failed to read tallies", "error", err)
			http.Error(w, "Failed to read tallies", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, tallies)
	}
}

// announceHandler wraps a processor announcement as a handler.
func announceHandler(name string, post func(dryRun bool) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := post(isDryRunFromContext(r)); err != nil {
			log.Error("Failed to post announcement", "announcement", name, "error", err)
			http.Error(w, "Failed to post "+name, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Posted %s", name)
	}
}

func (s *Server) AnnounceLeaderboardHandler() http.HandlerFunc {
	return announceHandler("leaderboard", s.Processor.PostLeaderboard)
}

func (s *Server) AnnounceWeeklyHandler() http.HandlerFunc {
	return announceHandler("weekly leaders", s.Processor.PostWeeklyLeaders)
}

