package report

import (
	"fmt"
	"time"

	"guildsports-bot/internal/models"
	"guildsports-bot/internal/store"
)

// Leaderboard sizes per report.
const (
	DailyTopN   = 5
	AllTimeTopN = 3
	SummaryTopN = 5
)

// Builder runs the aggregation queries behind each report and hands
// the results to the pure formatters.
type Builder struct {
	st *store.Store
}

func NewBuilder(st *store.Store) *Builder {
	return &Builder{st: st}
}

func (b *Builder) guildTops(w store.Window, limit int) (map[models.Guild][]store.LeaderboardEntry, error) {
	out := map[models.Guild][]store.LeaderboardEntry{}
	for _, g := range models.AllGuilds() {
		entries, err := b.st.Leaderboard(g, w, limit)
		if err != nil {
			return nil, fmt.Errorf("leaderboard %s: %w", g, err)
		}
		out[g] = entries
	}
	return out, nil
}

// DailyDigest builds the digest for the calendar day containing now
// (in the reporting timezone).
func (b *Builder) DailyDigest(now time.Time) (string, error) {
	w := Today(now)
	day, err := b.st.GuildSportTotals(w)
	if err != nil {
		return "", fmt.Errorf("day totals: %w", err)
	}
	dayTop, err := b.guildTops(w, DailyTopN)
	if err != nil {
		return "", err
	}
	allTop, err := b.guildTops(store.All, AllTimeTopN)
	if err != nil {
		return "", err
	}
	return DailyDigest(now, day, dayTop, allTop), nil
}

// AllTimeSummary builds the unwindowed report.
func (b *Builder) AllTimeSummary() (string, error) {
	roster, err := b.st.RosterSizes()
	if err != nil {
		return "", fmt.Errorf("roster sizes: %w", err)
	}
	totals, err := b.st.GuildSportTotals(store.All)
	if err != nil {
		return "", fmt.Errorf("all-time totals: %w", err)
	}
	top, err := b.guildTops(store.All, SummaryTopN)
	if err != nil {
		return "", err
	}
	return AllTimeSummary(roster, totals, top), nil
}

// StatusComparison builds the head-to-head verdict over all time.
func (b *Builder) StatusComparison() (string, error) {
	totals, err := b.st.GuildSportTotals(store.All)
	if err != nil {
		return "", fmt.Errorf("all-time totals: %w", err)
	}
	return StatusComparison(totals), nil
}

// PersonalSummary builds one user's all-time totals.
func (b *Builder) PersonalSummary(userID int64) (string, error) {
	totals, err := b.st.UserTotals(userID, store.All)
	if err != nil {
		return "", fmt.Errorf("user totals: %w", err)
	}
	return PersonalSummary("📊 Your all-time totals:", totals), nil
}

// PersonalDaily builds one user's totals for today.
func (b *Builder) PersonalDaily(userID int64, now time.Time) (string, error) {
	totals, err := b.st.UserTotals(userID, Today(now))
	if err != nil {
		return "", fmt.Errorf("user totals: %w", err)
	}
	return PersonalSummary("📊 Your totals for today:", totals), nil
}
