package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnvOrDefault("PORT", "8080"),
		Slack: SlackConfig{
			Token:         os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID:     os.Getenv("SLACK_CHANNEL_ID"),
			SigningSecret: os.Getenv("SLACK_SIGNING_SECRET"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		ProjectID: os.Getenv("GCP_PROJECT"),
		Inngest: InngestConfig{
			AppID:           os.Getenv("INNGEST_APP_ID"),
			SigningKey:      os.Getenv("INNGEST_SIGNING_KEY"),
			EventKey:        os.Getenv("INNGEST_EVENT_KEY"),
			Dev:             getBool("INNGEST_DEV", false),
			WeeklyCron:      getEnvOrDefault("WEEKLY_CRON", "0 18 * * 5"),
			LeaderboardCron: getEnvOrDefault("LEADERBOARD_CRON", "0 9 * * 1"),
		},
		Table: TableConfig{
			AutoStartNext: getBool("AUTO_START_NEXT", true),
		},
	}
	return cfg
}

func getEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("Invalid boolean, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return b
}
