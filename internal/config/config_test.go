package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("DATABASE_URL", "postgres://localhost/bot")
	t.Setenv("ADMIN_TG_IDS", "[123, 456]")
	t.Setenv("ACCEPTING_SUBMISSIONS", "false")
	t.Setenv("BROADCAST_CHAT_ID", "-100200300")
	t.Setenv("ENV", "production")
	t.Setenv("DIGEST_AT", "")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "tok", c.TelegramToken)
	assert.True(t, c.AdminTGIDs[123])
	assert.True(t, c.AdminTGIDs[456])
	assert.False(t, c.AdminTGIDs[789])
	assert.False(t, c.AcceptingSubmissions)
	assert.Equal(t, int64(-100200300), c.BroadcastChatID)
	assert.Equal(t, "production", c.Env)
	assert.Equal(t, "21:00", c.DigestAt)
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("DATABASE_URL", "postgres://localhost/bot")
	t.Setenv("ADMIN_TG_IDS", "")
	t.Setenv("ACCEPTING_SUBMISSIONS", "")
	t.Setenv("ENV", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DIGEST_AT", "")
	t.Setenv("BROADCAST_CHAT_ID", "")

	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "development", c.Env)
	assert.True(t, c.AcceptingSubmissions)
	assert.Empty(t, c.AdminTGIDs)
	assert.Equal(t, ":8080", c.HTTPAddr)
}

func TestFromEnvRequired(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/bot")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("DATABASE_URL", "")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestFromEnvBadAdminList(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("DATABASE_URL", "postgres://localhost/bot")
	t.Setenv("ADMIN_TG_IDS", "123,456")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("21:05")
	require.NoError(t, err)
	assert.Equal(t, 21, h)
	assert.Equal(t, 5, m)

	for _, bad := range []string{"25:00", "12:60", "noon", "12"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}
