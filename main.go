package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/rei-da-mesa/internal/config"
	"github.com/mauv0809/rei-da-mesa/internal/database"
	server "github.com/mauv0809/rei-da-mesa/internal/http"
	"github.com/mauv0809/rei-da-mesa/internal/inngest"
	"github.com/mauv0809/rei-da-mesa/internal/metrics"
	"github.com/mauv0809/rei-da-mesa/internal/notifier"
	"github.com/mauv0809/rei-da-mesa/internal/notifier/slack"
	"github.com/mauv0809/rei-da-mesa/internal/processor"
	"github.com/mauv0809/rei-da-mesa/internal/pubsub"
	"github.com/mauv0809/rei-da-mesa/internal/snapshot"
	"github.com/mauv0809/rei-da-mesa/internal/table"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	store := snapshot.New(db)
	tallies := metrics.NewTallies(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var notif notifier.Notifier
	if cfg.Slack.Enabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("SLACK_BOT_TOKEN not set, announcements go to the log")
		notif = notifier.NewLogger()
	}

	var ps pubsub.PubSubClient
	if cfg.ProjectID != "" {
		client, pubsubTeardown, err := pubsub.New(cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubTeardown()
		ps = client
	} else {
		log.Warn("GCP_PROJECT not set, match results are posted directly")
	}

	proc := processor.New(table.NewEngine(), store, notif, metricsSvc, tallies, ps)
	if err := proc.Load(context.Background()); err != nil {
		log.Fatalf("Failed to load table state: %s", err)
	}

	s := server.NewServer(proc, notif, metricsSvc, metricsHandler, cfg, ps)

	if cfg.Inngest.Enabled() {
		options := inngestgo.ClientOpts{
			AppID:      cfg.Inngest.AppID,
			SigningKey: &cfg.Inngest.SigningKey,
			EventKey:   &cfg.Inngest.EventKey,
			Dev:        &cfg.Inngest.Dev,
		}
		inngestProvider, err := inngestgo.NewClient(options)
		if err != nil {
			log.Fatalf("Failed to initialize inngest: %s", err)
		}
		schedule := inngest.Schedule{WeeklyLeaders: cfg.Inngest.WeeklyCron, Leaderboard: cfg.Inngest.LeaderboardCron}
		inngestClient, err := inngest.New(inngestProvider, proc, schedule)
		if err != nil {
			log.Fatalf("Failed to register scheduled functions: %s", err)
		}
		s.Router.Handle("/api/inngest", inngestClient.Serve())
	}

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
