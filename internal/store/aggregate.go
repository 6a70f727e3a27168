package store

import (
	"time"

	"gorm.io/gorm"

	"guildsports-bot/internal/models"
)

// Window is an optional half-open time range [Start, Limit). A zero
// bound means unbounded on that side.
type Window struct {
	Start time.Time
	Limit time.Time
}

// All is the unbounded window.
var All = Window{}

func (w Window) apply(q *gorm.DB) *gorm.DB {
	if !w.Start.IsZero() {
		q = q.Where("timestamp >= ?", w.Start)
	}
	if !w.Limit.IsZero() {
		q = q.Where("timestamp < ?", w.Limit)
	}
	return q
}

// GuildSportTotal is one row of the guild/sport grid: summed distance
// and log row count per guild for a single sport.
type GuildSportTotal struct {
	Sport    models.Sport
	Distance map[models.Guild]float64
	Entries  map[models.Guild]int64
}

// GuildSportTotals always returns exactly one row per sport from the
// fixed enumeration, zero-filled for combinations without logs.
func (s *Store) GuildSportTotals(w Window) ([]GuildSportTotal, error) {
	var rows []struct {
		Sport   models.Sport
		Guild   models.Guild
		Total   float64
		Entries int64
	}
	q := s.db.Model(&models.LogRecord{}).
		Select("sport, guild, SUM(distance) AS total, COUNT(*) AS entries").
		Group("sport, guild")
	if err := w.apply(q).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]GuildSportTotal, 0, len(models.AllSports()))
	for _, sport := range models.AllSports() {
		t := GuildSportTotal{
			Sport:    sport,
			Distance: map[models.Guild]float64{},
			Entries:  map[models.Guild]int64{},
		}
		for _, g := range models.AllGuilds() {
			t.Distance[g] = 0
			t.Entries[g] = 0
		}
		for _, r := range rows {
			if r.Sport == sport {
				t.Distance[r.Guild] = r.Total
				t.Entries[r.Guild] = r.Entries
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// UserTotals sums a single user's distance per sport, zero-filled.
func (s *Store) UserTotals(telegramID int64, w Window) (map[models.Sport]float64, error) {
	var rows []struct {
		Sport models.Sport
		Total float64
	}
	q := s.db.Model(&models.LogRecord{}).
		Select("sport, SUM(distance) AS total").
		Where("user_id = ?", telegramID).
		Group("sport")
	if err := w.apply(q).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[models.Sport]float64{}
	for _, sport := range models.AllSports() {
		out[sport] = 0
	}
	for _, r := range rows {
		out[r.Sport] = r.Total
	}
	return out, nil
}

// LeaderboardEntry is one ranked row of a guild leaderboard.
type LeaderboardEntry struct {
	UserID int64
	Name   string
	Total  float64
}

// Leaderboard lists a guild's users descending by summed distance,
// capped at limit. Tie order is unspecified but deterministic for a
// given database state.
func (s *Store) Leaderboard(guild models.Guild, w Window, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	q := s.db.Model(&models.LogRecord{}).
		Select("log_records.user_id AS user_id, users.name AS name, SUM(log_records.distance) AS total").
		Joins("JOIN users ON users.telegram_id = log_records.user_id").
		Where("log_records.guild = ?", guild).
		Group("log_records.user_id, users.name").
		Order("total DESC").
		Limit(limit)
	if err := w.apply(q).Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// RosterSizes counts registered users per guild, zero-filled.
func (s *Store) RosterSizes() (map[models.Guild]int64, error) {
	var rows []struct {
		Guild models.Guild
		N     int64
	}
	err := s.db.Model(&models.User{}).
		Select("guild, COUNT(*) AS n").
		Where("guild IS NOT NULL").
		Group("guild").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[models.Guild]int64{}
	for _, g := range models.AllGuilds() {
		out[g] = 0
	}
	for _, r := range rows {
		out[r.Guild] = r.N
	}
	return out, nil
}
