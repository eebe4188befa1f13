package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "test.db")
	t.Setenv("PORT", "")
	t.Setenv("AUTO_START_NEXT", "false")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("TURSO_PRIMARY_URL", "")
	t.Setenv("INNGEST_APP_ID", "")
	t.Setenv("WEEKLY_CRON", "")

	cfg := Load()
	assert.Equal(t, "test.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port, "empty values fall back")
	assert.False(t, cfg.Table.AutoStartNext)
	assert.True(t, cfg.Slack.Enabled())
	assert.Empty(t, cfg.Turso.PrimaryURL)
	assert.False(t, cfg.Inngest.Enabled())
	assert.Equal(t, "0 18 * * 5", cfg.Inngest.WeeklyCron)
}

func TestGetBool(t *testing.T) {
	t.Setenv("FLAG", "maybe")
	assert.True(t, getBool("FLAG", true), "invalid values fall back")
	t.Setenv("FLAG", "1")
	assert.True(t, getBool("FLAG", false))
	assert.False(t, getBool("UNSET_FLAG_FOR_TEST", false))
}
