// Package store is the relational persistence layer: users, log rows
// and pending log events over GORM. Every write is a single atomic
// statement; multi-step flows are deliberately not wrapped in one
// transaction (see the crash window note on InsertLog callers).
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"guildsports-bot/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates/updates the three tables.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&models.User{}, &models.LogRecord{}, &models.PendingLogEvent{})
}

// Ping checks database connectivity, for health probes.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// ---------- Users ----------

// GetUser returns nil, nil when the user is unknown.
func (s *Store) GetUser(telegramID int64) (*models.User, error) {
	var u models.User
	err := s.db.First(&u, "telegram_id = ?", telegramID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) CreateUser(u *models.User) error {
	return s.db.Create(u).Error
}

func (s *Store) UpdateUserName(telegramID int64, name string) error {
	return s.db.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("name", name).Error
}

// SetUserGuild sets the guild without touching historical log rows.
func (s *Store) SetUserGuild(telegramID int64, guild models.Guild) error {
	return s.db.Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("guild", guild).Error
}

// ResetUserGuild is the explicit reset path: it moves the user to the
// new guild and rewrites the guild snapshot on all of their past logs.
// Two separate statements, matching the per-statement atomicity model.
func (s *Store) ResetUserGuild(telegramID int64, guild models.Guild) error {
	if err := s.SetUserGuild(telegramID, guild); err != nil {
		return err
	}
	return s.db.Model(&models.LogRecord{}).
		Where("user_id = ?", telegramID).
		Update("guild", guild).Error
}

// DeleteUser removes the user with their logs and pending event.
func (s *Store) DeleteUser(telegramID int64) error {
	if err := s.db.Delete(&models.LogRecord{}, "user_id = ?", telegramID).Error; err != nil {
		return err
	}
	if err := s.DeletePending(telegramID); err != nil {
		return err
	}
	return s.db.Delete(&models.User{}, "telegram_id = ?", telegramID).Error
}

// ---------- Pending log events ----------

// UpsertPending creates or refreshes the user's pending event with the
// sport cleared. Last write wins on the primary key.
func (s *Store) UpsertPending(telegramID int64) error {
	p := models.PendingLogEvent{UserID: telegramID, CreatedAt: time.Now(), Sport: nil}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"sport": nil, "created_at": p.CreatedAt}),
	}).Create(&p).Error
}

// GetPending returns nil, nil when the user has no pending event.
func (s *Store) GetPending(telegramID int64) (*models.PendingLogEvent, error) {
	var p models.PendingLogEvent
	err := s.db.First(&p, "user_id = ?", telegramID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SetPendingSport(telegramID int64, sport models.Sport) error {
	return s.db.Model(&models.PendingLogEvent{}).
		Where("user_id = ?", telegramID).
		Update("sport", sport).Error
}

// DeletePending is idempotent: deleting a missing event is not an error.
func (s *Store) DeletePending(telegramID int64) error {
	return s.db.Delete(&models.PendingLogEvent{}, "user_id = ?", telegramID).Error
}

// ---------- Log records ----------

// InsertLog appends one immutable log row. Distance is already in
// kilometers (steps converted by the caller).
func (s *Store) InsertLog(rec *models.LogRecord) error {
	return s.db.Create(rec).Error
}
