package models

import "time"

// Sport is a closed set of activity categories a log belongs to.
type Sport string

const (
	SportRunning Sport = "running" // covers both running and walking
	SportBiking  Sport = "biking"
	SportSteps   Sport = "steps"
)

// AllSports returns the fixed sport enumeration in report order.
func AllSports() []Sport {
	return []Sport{SportRunning, SportBiking, SportSteps}
}

// Guild is one of the two competing teams.
type Guild string

const (
	GuildKIK Guild = "KIK"
	GuildSIK Guild = "SIK"
)

// AllGuilds returns the fixed guild enumeration in report order.
func AllGuilds() []Guild {
	return []Guild{GuildKIK, GuildSIK}
}

// ParseGuild validates a raw guild token against the closed set.
func ParseGuild(s string) (Guild, bool) {
	switch Guild(s) {
	case GuildKIK:
		return GuildKIK, true
	case GuildSIK:
		return GuildSIK, true
	}
	return "", false
}

// ParseSport validates a raw sport token against the closed set.
func ParseSport(s string) (Sport, bool) {
	switch Sport(s) {
	case SportRunning:
		return SportRunning, true
	case SportBiking:
		return SportBiking, true
	case SportSteps:
		return SportSteps, true
	}
	return "", false
}

// StepsToKm converts a raw step count to kilometers before storage.
const StepsToKm = 0.0007

// DistanceSanityLimit is the largest value (km) accepted without
// further confirmation for non-steps sports.
const DistanceSanityLimit = 1000.0

// User is a Telegram user known to the bot. Guild stays nil until the
// user picks one; it changes afterwards only through an explicit reset.
type User struct {
	TelegramID int64  `gorm:"primaryKey"`
	Name       string `gorm:"not null"`
	Guild      *Guild `gorm:"type:varchar(8)"`
	CreatedAt  time.Time

	Logs    []LogRecord      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Pending *PendingLogEvent `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// LogRecord is an immutable, append-only exercise fact. Guild is a
// snapshot of the user's guild at insertion time; a later guild change
// does not touch it (a guild reset rewrites it explicitly).
type LogRecord struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"index;not null"`
	Timestamp time.Time `gorm:"index;autoCreateTime"`
	Guild     Guild     `gorm:"type:varchar(8);index;not null"`
	Sport     Sport     `gorm:"type:varchar(16);not null"`
	Distance  float64   `gorm:"not null"` // kilometers, steps pre-converted
}

// PendingLogEvent tracks an in-progress logging conversation: evidence
// has been submitted and the bot is waiting for sport and/or distance.
// At most one per user; Sport nil means the sport is not chosen yet.
type PendingLogEvent struct {
	UserID    int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	Sport     *Sport `gorm:"type:varchar(16)"`
}
