package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Slack     SlackConfig
	Turso     TursoConfig
	ProjectID string
	Inngest   InngestConfig
	Table     TableConfig
}

// SlackConfig is optional. Without a token announcements go to the log.
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

// Enabled reports whether a bot token is configured.
func (c SlackConfig) Enabled() bool {
	return c.Token != ""
}

// TursoConfig is optional. Without a primary URL DBName is a local file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// InngestConfig is optional. Without an app id no scheduled announcements run.
type InngestConfig struct {
	AppID           string
	SigningKey      string
	EventKey        string
	Dev             bool
	WeeklyCron      string
	LeaderboardCron string
}

// Enabled reports whether scheduled announcements are configured.
func (c InngestConfig) Enabled() bool {
	return c.AppID != ""
}

// TableConfig holds defaults for table commands.
type TableConfig struct {
	// AutoStartNext starts the next match after a finish unless the request
	// says otherwise.
	AutoStartNext bool
}
