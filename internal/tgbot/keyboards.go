package tgbot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"guildsports-bot/internal/models"
	"guildsports-bot/internal/report"
)

// guildKeyboard offers the two guilds; action is "join" or "reset".
func guildKeyboard(action string) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	for _, g := range models.AllGuilds() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(string(g), "g:"+action+":"+string(g)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(row...))
}

func sportKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, s := range models.AllSports() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(report.SportLabel(s), "s:"+string(s)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// disambiguationKeyboard carries the disputed value in the callback
// data, so the choice survives a process restart.
func disambiguationKeyboard(sport models.Sport, value float64) tgbotapi.InlineKeyboardMarkup {
	v := strconv.FormatFloat(value, 'f', -1, 64)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Record as "+report.SportLabel(sport), "d:keep:"+string(sport)+":"+v),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Those were 👣 steps", "d:steps:"+v),
		),
	)
}
