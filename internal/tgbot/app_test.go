package tgbot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guildsports-bot/internal/logbook"
	"guildsports-bot/internal/models"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Teppo Testaaja", displayName(&tgbotapi.User{FirstName: "Teppo", LastName: "Testaaja"}))
	assert.Equal(t, "Teppo", displayName(&tgbotapi.User{FirstName: "Teppo"}))
	assert.Equal(t, "teppo82", displayName(&tgbotapi.User{UserName: "teppo82"}))
	assert.Equal(t, "12345", displayName(&tgbotapi.User{ID: 12345}))
}

func TestConfirmation(t *testing.T) {
	text := confirmation(logbook.Decision{
		Action: logbook.ActionRecord, Sport: models.SportRunning, Value: 5.5, Stored: 5.5,
	})
	assert.Contains(t, text, "Running/Walking")
	assert.Contains(t, text, "5.5 km")

	text = confirmation(logbook.Decision{
		Action: logbook.ActionRecord, Sport: models.SportSteps, Value: 10000, Stored: 7,
	})
	assert.Contains(t, text, "10000 steps")
	assert.Contains(t, text, "7.0 km")
}

func TestDisambiguationKeyboardData(t *testing.T) {
	kb := disambiguationKeyboard(models.SportRunning, 1200.5)
	require.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "d:keep:running:1200.5", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "d:steps:1200.5", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestGuildAndSportKeyboardData(t *testing.T) {
	kb := guildKeyboard("join")
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, "g:join:KIK", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "g:join:SIK", *kb.InlineKeyboard[0][1].CallbackData)

	kb = sportKeyboard()
	require.Len(t, kb.InlineKeyboard, 3)
	assert.Equal(t, "s:running", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "s:biking", *kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "s:steps", *kb.InlineKeyboard[2][0].CallbackData)
}
