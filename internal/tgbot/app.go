// Package tgbot wires Telegram updates to the logging state machine,
// the store and the report builder. All conversation state lives in the
// database (pending log events), so a restart mid-conversation is safe.
package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"guildsports-bot/internal/config"
	"guildsports-bot/internal/logbook"
	"guildsports-bot/internal/models"
	"guildsports-bot/internal/report"
	"guildsports-bot/internal/store"
)

type App struct {
	cfg config.Config
	bot *tgbotapi.BotAPI
	st  *store.Store
	rep *report.Builder
	log *zap.Logger
}

func New(cfg config.Config, st *store.Store, rep *report.Builder, log *zap.Logger) (*App, error) {
	b, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	return &App{
		cfg: cfg,
		bot: b,
		st:  st,
		rep: rep,
		log: log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				if err := a.handleMessage(upd.Message); err != nil {
					a.log.Error("handle message", zap.Int64("user", upd.Message.From.ID), zap.Error(err))
				}
			} else if upd.CallbackQuery != nil {
				if err := a.handleCallback(upd.CallbackQuery); err != nil {
					a.log.Error("handle callback", zap.Int64("user", upd.CallbackQuery.From.ID), zap.Error(err))
				}
			}
		}
	}
}

func (a *App) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) sendKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, err := a.bot.Send(msg)
	return err
}

func (a *App) isAdmin(tgID int64) bool {
	return a.cfg.AdminTGIDs[tgID]
}

// fail logs a store failure and tells the user to contact an operator.
// Pending-event state may be left inconsistent; it is not auto-repaired.
func (a *App) fail(chatID int64, what string, err error) error {
	a.log.Error(what, zap.Int64("chat", chatID), zap.Error(err))
	return a.SendText(chatID, msgStoreError)
}

func displayName(from *tgbotapi.User) string {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = from.UserName
	}
	if name == "" {
		name = strconv.FormatInt(from.ID, 10)
	}
	return name
}

// ensureUser creates the user on first interaction, with no guild.
func (a *App) ensureUser(from *tgbotapi.User) (*models.User, error) {
	u, err := a.st.GetUser(from.ID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}
	u = &models.User{TelegramID: from.ID, Name: displayName(from)}
	if err := a.st.CreateUser(u); err != nil {
		return nil, err
	}
	return u, nil
}

// ---------- Message handling ----------

func (a *App) handleMessage(m *tgbotapi.Message) error {
	// The whole command surface is private one-to-one only.
	if !m.Chat.IsPrivate() {
		return nil
	}

	if len(m.Photo) > 0 {
		return a.handleEvidence(m)
	}

	if m.IsCommand() {
		return a.handleCommand(m)
	}

	return a.handleFreeText(m)
}

func (a *App) handleCommand(m *tgbotapi.Message) error {
	u, err := a.ensureUser(m.From)
	if err != nil {
		return a.fail(m.Chat.ID, "ensure user", err)
	}

	switch m.Command() {
	case "start":
		if u.Guild == nil {
			return a.sendKeyboard(m.Chat.ID, msgWelcome, guildKeyboard("join"))
		}
		return a.SendText(m.Chat.ID, fmt.Sprintf(msgHelp, *u.Guild))

	case "status":
		text, err := a.rep.StatusComparison()
		if err != nil {
			return a.fail(m.Chat.ID, "status report", err)
		}
		return a.SendText(m.Chat.ID, text)

	case "personal":
		text, err := a.rep.PersonalSummary(u.TelegramID)
		if err != nil {
			return a.fail(m.Chat.ID, "personal report", err)
		}
		return a.SendText(m.Chat.ID, text)

	case "mydaily":
		text, err := a.rep.PersonalDaily(u.TelegramID, time.Now())
		if err != nil {
			return a.fail(m.Chat.ID, "personal daily report", err)
		}
		return a.SendText(m.Chat.ID, text)

	case "cancel":
		if err := a.st.DeletePending(u.TelegramID); err != nil {
			return a.fail(m.Chat.ID, "cancel pending", err)
		}
		return a.SendText(m.Chat.ID, msgCancelled)

	case "update_name":
		name := displayName(m.From)
		if err := a.st.UpdateUserName(u.TelegramID, name); err != nil {
			return a.fail(m.Chat.ID, "update name", err)
		}
		return a.SendText(m.Chat.ID, fmt.Sprintf(msgNameUpdated, name))

	case "reset_guild":
		return a.sendKeyboard(m.Chat.ID, msgResetGuild, guildKeyboard("reset"))

	case "daily":
		if !a.isAdmin(u.TelegramID) {
			return a.SendText(m.Chat.ID, msgAdminOnly)
		}
		text, err := a.rep.DailyDigest(time.Now())
		if err != nil {
			return a.fail(m.Chat.ID, "daily digest", err)
		}
		return a.SendText(m.Chat.ID, text)

	case "all":
		if !a.isAdmin(u.TelegramID) {
			return a.SendText(m.Chat.ID, msgAdminOnly)
		}
		text, err := a.rep.AllTimeSummary()
		if err != nil {
			return a.fail(m.Chat.ID, "all-time summary", err)
		}
		return a.SendText(m.Chat.ID, text)

	default:
		return a.SendText(m.Chat.ID, msgUnknownCommand)
	}
}

// handleEvidence reacts to a photo submission, with or without a
// one-shot "<sport>, <number>" caption.
func (a *App) handleEvidence(m *tgbotapi.Message) error {
	u, err := a.ensureUser(m.From)
	if err != nil {
		return a.fail(m.Chat.ID, "ensure user", err)
	}
	dec := logbook.HandleEvidence(a.cfg.AcceptingSubmissions, u.Guild != nil, m.Caption)
	return a.apply(dec, u, m.Chat.ID)
}

// handleFreeText is only meaningful while a pending event awaits a
// distance; with nothing pending plain text is intentionally ignored.
func (a *App) handleFreeText(m *tgbotapi.Message) error {
	u, err := a.ensureUser(m.From)
	if err != nil {
		return a.fail(m.Chat.ID, "ensure user", err)
	}
	p, err := a.st.GetPending(u.TelegramID)
	if err != nil {
		return a.fail(m.Chat.ID, "load pending", err)
	}
	dec := logbook.HandleDistanceText(p, m.Text)
	return a.apply(dec, u, m.Chat.ID)
}

// ---------- Callback handling ----------

func (a *App) handleCallback(q *tgbotapi.CallbackQuery) error {
	// ack
	cb := tgbotapi.NewCallback(q.ID, "")
	_, _ = a.bot.Request(cb)

	chatID := q.From.ID
	if q.Message != nil {
		chatID = q.Message.Chat.ID
	}

	u, err := a.ensureUser(q.From)
	if err != nil {
		return a.fail(chatID, "ensure user", err)
	}

	data := q.Data
	switch {
	case strings.HasPrefix(data, "g:join:"):
		return a.handleGuildJoin(u, chatID, strings.TrimPrefix(data, "g:join:"))
	case strings.HasPrefix(data, "g:reset:"):
		return a.handleGuildReset(u, chatID, strings.TrimPrefix(data, "g:reset:"))
	case strings.HasPrefix(data, "s:"):
		return a.handleSportChoice(u, chatID, strings.TrimPrefix(data, "s:"))
	case strings.HasPrefix(data, "d:"):
		return a.handleDisambiguation(u, chatID, strings.TrimPrefix(data, "d:"))
	}
	return nil
}

func (a *App) handleGuildJoin(u *models.User, chatID int64, raw string) error {
	guild, ok := models.ParseGuild(raw)
	if !ok {
		return nil
	}
	// Guild is set once; changing it afterwards needs /reset_guild.
	if u.Guild != nil {
		return a.SendText(chatID, fmt.Sprintf(msgAlreadyInGuild, *u.Guild))
	}
	if err := a.st.SetUserGuild(u.TelegramID, guild); err != nil {
		return a.fail(chatID, "set guild", err)
	}
	return a.SendText(chatID, fmt.Sprintf(msgGuildJoined, guild))
}

// handleGuildReset is the explicit reset path: it rewrites the guild
// snapshot on the user's historical log rows as well.
func (a *App) handleGuildReset(u *models.User, chatID int64, raw string) error {
	guild, ok := models.ParseGuild(raw)
	if !ok {
		return nil
	}
	if err := a.st.ResetUserGuild(u.TelegramID, guild); err != nil {
		return a.fail(chatID, "reset guild", err)
	}
	return a.SendText(chatID, fmt.Sprintf(msgGuildReset, guild))
}

func (a *App) handleSportChoice(u *models.User, chatID int64, raw string) error {
	sport, ok := models.ParseSport(raw)
	if !ok {
		return nil
	}
	p, err := a.st.GetPending(u.TelegramID)
	if err != nil {
		return a.fail(chatID, "load pending", err)
	}
	dec := logbook.HandleSportChoice(p, sport)
	if dec.Action == logbook.ActionNone {
		return a.SendText(chatID, msgNothingPending)
	}
	return a.apply(dec, u, chatID)
}

// handleDisambiguation resolves "d:keep:<sport>:<value>" and
// "d:steps:<value>". The value rides in the callback data so no extra
// conversation state is needed.
func (a *App) handleDisambiguation(u *models.User, chatID int64, raw string) error {
	parts := strings.Split(raw, ":")

	p, err := a.st.GetPending(u.TelegramID)
	if err != nil {
		return a.fail(chatID, "load pending", err)
	}
	if p == nil {
		return a.SendText(chatID, msgNothingPending)
	}

	switch {
	case len(parts) == 3 && parts[0] == "keep":
		sport, ok := models.ParseSport(parts[1])
		if !ok {
			return nil
		}
		value, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return nil
		}
		return a.apply(logbook.HandleDisambiguation(sport, value, false), u, chatID)

	case len(parts) == 2 && parts[0] == "steps":
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil
		}
		return a.apply(logbook.HandleDisambiguation("", value, true), u, chatID)
	}
	return nil
}

// ---------- Decision execution ----------

func (a *App) apply(dec logbook.Decision, u *models.User, chatID int64) error {
	switch dec.Action {
	case logbook.ActionNone:
		return nil

	case logbook.ActionRejectClosed:
		return a.SendText(chatID, msgClosed)

	case logbook.ActionRejectNoGuild:
		return a.SendText(chatID, msgNoGuild)

	case logbook.ActionAskSport:
		if err := a.st.UpsertPending(u.TelegramID); err != nil {
			return a.fail(chatID, "upsert pending", err)
		}
		return a.sendKeyboard(chatID, msgAskSport, sportKeyboard())

	case logbook.ActionWarnAndAskSport:
		if err := a.st.UpsertPending(u.TelegramID); err != nil {
			return a.fail(chatID, "upsert pending", err)
		}
		warn := fmt.Sprintf(msgCaptionTooLarge, dec.Value)
		return a.sendKeyboard(chatID, warn, sportKeyboard())

	case logbook.ActionAskDistance:
		if err := a.st.SetPendingSport(u.TelegramID, dec.Sport); err != nil {
			return a.fail(chatID, "set pending sport", err)
		}
		if dec.Sport == models.SportSteps {
			return a.SendText(chatID, msgAskSteps)
		}
		return a.SendText(chatID, msgAskDistance)

	case logbook.ActionRetryDistance:
		if dec.Sport == models.SportSteps {
			return a.SendText(chatID, msgBadSteps)
		}
		return a.SendText(chatID, msgBadDistance)

	case logbook.ActionDisambiguate:
		return a.sendKeyboard(chatID,
			fmt.Sprintf(msgDisambiguate, dec.Value, report.SportLabel(dec.Sport)),
			disambiguationKeyboard(dec.Sport, dec.Value))

	case logbook.ActionRecord:
		return a.record(dec, u, chatID)
	}
	return nil
}

// record writes the log row and clears the pending event as two
// separate statements; a crash in between leaves a stale pending event,
// which is an accepted inconsistency window.
func (a *App) record(dec logbook.Decision, u *models.User, chatID int64) error {
	if u.Guild == nil {
		return a.SendText(chatID, msgNoGuild)
	}
	rec := &models.LogRecord{
		UserID:   u.TelegramID,
		Guild:    *u.Guild,
		Sport:    dec.Sport,
		Distance: dec.Stored,
	}
	if err := a.st.InsertLog(rec); err != nil {
		return a.fail(chatID, "insert log", err)
	}
	if err := a.st.DeletePending(u.TelegramID); err != nil {
		return a.fail(chatID, "delete pending", err)
	}
	return a.SendText(chatID, confirmation(dec))
}

func confirmation(dec logbook.Decision) string {
	if dec.Sport == models.SportSteps {
		return fmt.Sprintf(msgRecordedSteps, dec.Value, dec.Stored)
	}
	return fmt.Sprintf(msgRecorded, report.SportLabel(dec.Sport), dec.Stored)
}
