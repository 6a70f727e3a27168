// Package report turns aggregation results into the plain-text reports
// the bot sends: daily digest, all-time summary, status comparison and
// personal totals. All sums are rounded to one decimal here and only
// here; storage keeps full float precision.
package report

import (
	"fmt"
	"strings"
	"time"

	"guildsports-bot/internal/models"
	"guildsports-bot/internal/store"
)

const (
	verdictKIK = "🔥 KIK marches ahead — SIK, time to lace up!"
	verdictSIK = "🔥 SIK marches ahead — KIK, time to lace up!"
	verdictTie = "⚖️ Dead even. The war rages on!"
)

// SportLabel is the display name of a sport, with its emoji.
func SportLabel(s models.Sport) string {
	switch s {
	case models.SportRunning:
		return "🏃 Running/Walking"
	case models.SportBiking:
		return "🚴 Biking"
	case models.SportSteps:
		return "👣 Steps"
	}
	return string(s)
}

func km(v float64) string {
	return fmt.Sprintf("%.1f km", v)
}

// StatusComparison renders the per-sport head-to-head with a 🏆 mark
// for the leading guild, a categories-won tally and a verdict line.
// A tied sport is credited to neither guild.
func StatusComparison(totals []store.GuildSportTotal) string {
	var b strings.Builder
	b.WriteString("⚔️ KIK vs SIK — state of the war\n\n")

	wins := map[models.Guild]int{}
	for _, row := range totals {
		kik, sik := row.Distance[models.GuildKIK], row.Distance[models.GuildSIK]
		line := fmt.Sprintf("%s: KIK %s | SIK %s", SportLabel(row.Sport), km(kik), km(sik))
		switch {
		case kik > sik:
			wins[models.GuildKIK]++
			line += " 🏆 KIK"
		case sik > kik:
			wins[models.GuildSIK]++
			line += " 🏆 SIK"
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(fmt.Sprintf("\nCategories won: KIK %d — SIK %d\n", wins[models.GuildKIK], wins[models.GuildSIK]))
	switch {
	case wins[models.GuildKIK] > wins[models.GuildSIK]:
		b.WriteString(verdictKIK)
	case wins[models.GuildSIK] > wins[models.GuildKIK]:
		b.WriteString(verdictSIK)
	default:
		b.WriteString(verdictTie)
	}
	return b.String()
}

// DailyDigest renders one calendar day: per-guild per-sport sums, the
// day's top list per guild and the all-time top three appended.
func DailyDigest(date time.Time, day []store.GuildSportTotal, dayTop, allTop map[models.Guild][]store.LeaderboardEntry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 Daily digest — %s\n\n", date.In(ReportingZone).Format("02.01.2006")))

	for _, row := range day {
		b.WriteString(fmt.Sprintf("%s: KIK %s | SIK %s\n",
			SportLabel(row.Sport), km(row.Distance[models.GuildKIK]), km(row.Distance[models.GuildSIK])))
	}

	for _, g := range models.AllGuilds() {
		b.WriteString(fmt.Sprintf("\nTop of the day — %s:\n", g))
		b.WriteString(leaderboard(dayTop[g]))
	}
	for _, g := range models.AllGuilds() {
		b.WriteString(fmt.Sprintf("\nAll-time top %d — %s:\n", AllTimeTopN, g))
		b.WriteString(leaderboard(allTop[g]))
	}
	return b.String()
}

// AllTimeSummary renders participant counts, per-guild per-sport
// distance with entry counts, and the top five per guild.
func AllTimeSummary(roster map[models.Guild]int64, totals []store.GuildSportTotal, top map[models.Guild][]store.LeaderboardEntry) string {
	var b strings.Builder
	b.WriteString("🏆 All-time summary\n\n")
	for _, g := range models.AllGuilds() {
		b.WriteString(fmt.Sprintf("%s: %d participants\n", g, roster[g]))
	}
	b.WriteString("\n")
	for _, row := range totals {
		b.WriteString(fmt.Sprintf("%s: KIK %s (%d entries) | SIK %s (%d entries)\n",
			SportLabel(row.Sport),
			km(row.Distance[models.GuildKIK]), row.Entries[models.GuildKIK],
			km(row.Distance[models.GuildSIK]), row.Entries[models.GuildSIK]))
	}
	for _, g := range models.AllGuilds() {
		b.WriteString(fmt.Sprintf("\nAll-time top %d — %s:\n", SummaryTopN, g))
		b.WriteString(leaderboard(top[g]))
	}
	return b.String()
}

// PersonalSummary renders one user's per-sport totals under a header.
func PersonalSummary(header string, totals map[models.Sport]float64) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	for _, sport := range models.AllSports() {
		b.WriteString(fmt.Sprintf("%s: %s\n", SportLabel(sport), km(totals[sport])))
	}
	return b.String()
}

func leaderboard(entries []store.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "— nobody yet\n"
	}
	var b strings.Builder
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("%d. %s — %s\n", i+1, e.Name, km(e.Total)))
	}
	return b.String()
}
