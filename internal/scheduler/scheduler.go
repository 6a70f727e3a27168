// Package scheduler runs the daily digest broadcast: once a day at the
// configured time in production, every minute in development. The job
// only reads aggregates, so it cannot race with per-user logging.
package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"guildsports-bot/internal/config"
	"guildsports-bot/internal/report"
)

// SendFunc delivers one text message to a chat.
type SendFunc func(chatID int64, text string) error

// Start schedules the digest job and starts the scheduler. The caller
// owns shutdown via the returned scheduler.
func Start(cfg config.Config, rep *report.Builder, send SendFunc, log *zap.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(report.ReportingZone))
	if err != nil {
		return nil, err
	}

	task := gocron.NewTask(func() {
		if cfg.BroadcastChatID == 0 {
			log.Warn("digest due but BROADCAST_CHAT_ID is not set")
			return
		}
		text, err := rep.DailyDigest(time.Now())
		if err != nil {
			log.Error("build daily digest", zap.Error(err))
			return
		}
		if err := send(cfg.BroadcastChatID, text); err != nil {
			log.Error("send daily digest", zap.Int64("chat", cfg.BroadcastChatID), zap.Error(err))
			return
		}
		log.Info("daily digest sent", zap.Int64("chat", cfg.BroadcastChatID))
	})

	def := DigestJob(cfg)
	if _, err := s.NewJob(def, task); err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

// DigestJob picks the cadence: daily at cfg.DigestAt in production,
// every minute otherwise.
func DigestJob(cfg config.Config) gocron.JobDefinition {
	if cfg.Env == "production" {
		hour, minute, err := config.ParseClock(cfg.DigestAt)
		if err != nil {
			hour, minute = 21, 0
		}
		return gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(hour), uint(minute), 0)))
	}
	return gocron.DurationJob(time.Minute)
}
