package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/rei-da-mesa/internal/config"
	"github.com/mauv0809/rei-da-mesa/internal/metrics"
	"github.com/mauv0809/rei-da-mesa/internal/notifier"
	"github.com/mauv0809/rei-da-mesa/internal/processor"
	"github.com/mauv0809/rei-da-mesa/internal/pubsub"
)

func NewServer(processor *processor.Processor, notifier notifier.Notifier, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Processor:      processor,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
		now:            time.Now,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	get := methodMiddleware(http.MethodGet)
	post := methodMiddleware(http.MethodPost)
	slackAuth := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/state", Chain(s.StateHandler(), paramsMiddleware, get))
	s.Router.Handle("/tallies", Chain(s.TalliesHandler(), paramsMiddleware, get))

	s.Router.Handle("/match/start", Chain(s.StartMatchHandler(), paramsMiddleware, post))
	s.Router.Handle("/match/score", Chain(s.UpdateScoreHandler(), paramsMiddleware, post))
	s.Router.Handle("/match/reset", Chain(s.ResetMatchHandler(), paramsMiddleware, post))
	s.Router.Handle("/match/finish", Chain(s.FinishMatchHandler(), paramsMiddleware, post))

	s.Router.Handle("/players", Chain(s.AddPlayerHandler(), paramsMiddleware, post))
	s.Router.Handle("/players/update", Chain(s.UpdatePlayerHandler(), paramsMiddleware, post))
	s.Router.Handle("/players/remove", Chain(s.RemovePlayerHandler(), paramsMiddleware, post))
	s.Router.Handle("/players/toggle", Chain(s.ToggleActiveHandler(), paramsMiddleware, post))
	s.Router.Handle("/players/stats", Chain(s.PlayerStatsHandler(), paramsMiddleware, get))

	s.Router.Handle("/queue/move", Chain(s.MoveInQueueHandler(), paramsMiddleware, post))
	s.Router.Handle("/queue/shuffle", Chain(s.ShuffleQueueHandler(), paramsMiddleware, post))
	s.Router.Handle("/queue/remove", Chain(s.RemoveFromQueueHandler(), paramsMiddleware, post))

	s.Router.Handle("/reset", Chain(s.ResetHandler(), paramsMiddleware, post))
	s.Router.Handle("/export", Chain(s.ExportHandler(), paramsMiddleware, get))
	s.Router.Handle("/import", Chain(s.ImportHandler(), paramsMiddleware, post))

	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware, get))
	s.Router.Handle("/weekly", Chain(s.WeeklyHandler(), paramsMiddleware, get))
	s.Router.Handle("/announce/leaderboard", Chain(s.AnnounceLeaderboardHandler(), paramsMiddleware, post))
	s.Router.Handle("/announce/weekly", Chain(s.AnnounceWeeklyHandler(), paramsMiddleware, post))

	s.Router.Handle("/pubsub/match-finished", Chain(s.MatchFinishedPushHandler(), paramsMiddleware, post))
	s.Router.Handle("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, slackAuth))
	s.Router.Handle("/slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
