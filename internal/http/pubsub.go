package http

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"github.com/mauv0809/rei-da-mesa/internal/pubsub"
)

// decodePush unwraps a Pub/Sub push delivery into rv.
func (s *Server) decodePush(r *http.Request, rv any) (int, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		return http.StatusBadRequest, err
	}
	var pubsubMsg pushRequest
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		log.Error("Failed to unmarshal pubsub message", "error", err)
		return http.StatusBadRequest, err
	}

	// Decode base64 to raw MessagePack bytes
	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		return http.StatusBadRequest, err
	}
	if err := s.pubsub.ProcessMessage(rawData, rv); err != nil {
		log.Error("Failed to decode pubsub payload", "subscription", pubsubMsg.Subscription, "error", err)
		return http.StatusBadRequest, err
	}
	return http.StatusOK, nil
}

// MatchFinishedPushHandler posts the result carried by a match-finished push.
// Non-2xx responses make Pub/Sub redeliver, so only transient failures
// answer with a server error.
func (s *Server) MatchFinishedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.pubsub == nil {
			http.Error(w, "Pub/Sub is not configured", http.StatusServiceUnavailable)
			return
		}
		var event pubsub.MatchFinished
		if status, err := s.decodePush(r, &event); err != nil {
			http.Error(w, "Invalid push message", status)
			return
		}
		if !event.Match.Decided() {
			log.Warn("Dropping match-finished event without a winner", "matchID", event.Match.ID)
			http.Error(w, "Match has no winner", http.StatusBadRequest)
			return
		}
		if err := s.Processor.HandleMatchFinished(event, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to post match result", "matchID", event.Match.ID, "error", err)
			http.Error(w, "Failed to post match result", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
