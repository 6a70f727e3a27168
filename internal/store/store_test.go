package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"guildsports-bot/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	s := New(db)
	require.NoError(t, s.AutoMigrate())
	return s
}

func mustUser(t *testing.T, s *Store, id int64, name string, guild *models.Guild) {
	t.Helper()
	require.NoError(t, s.CreateUser(&models.User{TelegramID: id, Name: name, Guild: guild}))
}

func guildPtr(g models.Guild) *models.Guild { return &g }

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)

	u, err := s.GetUser(42)
	require.NoError(t, err)
	assert.Nil(t, u)

	mustUser(t, s, 42, "Teppo", nil)

	u, err = s.GetUser(42)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Teppo", u.Name)
	assert.Nil(t, u.Guild)

	require.NoError(t, s.UpdateUserName(42, "Teppo T."))
	require.NoError(t, s.SetUserGuild(42, models.GuildKIK))

	u, err = s.GetUser(42)
	require.NoError(t, err)
	assert.Equal(t, "Teppo T.", u.Name)
	require.NotNil(t, u.Guild)
	assert.Equal(t, models.GuildKIK, *u.Guild)
}

func TestPendingLifecycle(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, 1, "A", guildPtr(models.GuildKIK))

	p, err := s.GetPending(1)
	require.NoError(t, err)
	assert.Nil(t, p)

	// Fresh upsert: sport is nil.
	require.NoError(t, s.UpsertPending(1))
	p, err = s.GetPending(1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.Sport)

	require.NoError(t, s.SetPendingSport(1, models.SportBiking))
	p, err = s.GetPending(1)
	require.NoError(t, err)
	require.NotNil(t, p.Sport)
	assert.Equal(t, models.SportBiking, *p.Sport)

	// A new submission clears the chosen sport again.
	require.NoError(t, s.UpsertPending(1))
	p, err = s.GetPending(1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Nil(t, p.Sport)

	// Delete is idempotent.
	require.NoError(t, s.DeletePending(1))
	require.NoError(t, s.DeletePending(1))
	p, err = s.GetPending(1)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestResetUserGuildRewritesHistory(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, 1, "A", guildPtr(models.GuildKIK))
	require.NoError(t, s.InsertLog(&models.LogRecord{
		UserID: 1, Guild: models.GuildKIK, Sport: models.SportRunning, Distance: 10,
	}))

	// Plain guild change leaves history alone.
	require.NoError(t, s.SetUserGuild(1, models.GuildSIK))
	totals, err := s.GuildSportTotals(All)
	require.NoError(t, err)
	assert.Equal(t, 10.0, totals[0].Distance[models.GuildKIK])
	assert.Equal(t, 0.0, totals[0].Distance[models.GuildSIK])

	// Explicit reset rewrites past rows.
	require.NoError(t, s.ResetUserGuild(1, models.GuildSIK))
	totals, err = s.GuildSportTotals(All)
	require.NoError(t, err)
	assert.Equal(t, 0.0, totals[0].Distance[models.GuildKIK])
	assert.Equal(t, 10.0, totals[0].Distance[models.GuildSIK])
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, 1, "A", guildPtr(models.GuildKIK))
	require.NoError(t, s.UpsertPending(1))
	require.NoError(t, s.InsertLog(&models.LogRecord{
		UserID: 1, Guild: models.GuildKIK, Sport: models.SportBiking, Distance: 3,
	}))

	require.NoError(t, s.DeleteUser(1))

	u, err := s.GetUser(1)
	require.NoError(t, err)
	assert.Nil(t, u)
	p, err := s.GetPending(1)
	require.NoError(t, err)
	assert.Nil(t, p)
	totals, err := s.GuildSportTotals(All)
	require.NoError(t, err)
	for _, row := range totals {
		assert.Equal(t, int64(0), row.Entries[models.GuildKIK])
	}
}

func TestGuildSportTotalsZeroFilled(t *testing.T) {
	s := newTestStore(t)

	totals, err := s.GuildSportTotals(All)
	require.NoError(t, err)
	require.Len(t, totals, 3)
	for i, sport := range models.AllSports() {
		assert.Equal(t, sport, totals[i].Sport)
		for _, g := range models.AllGuilds() {
			assert.Equal(t, 0.0, totals[i].Distance[g])
			assert.Equal(t, int64(0), totals[i].Entries[g])
		}
	}
}

func TestGuildSportTotalsWindow(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, 1, "A", guildPtr(models.GuildKIK))

	day := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.InsertLog(&models.LogRecord{
		UserID: 1, Timestamp: day, Guild: models.GuildKIK, Sport: models.SportRunning, Distance: 5,
	}))
	require.NoError(t, s.InsertLog(&models.LogRecord{
		UserID: 1, Timestamp: day.Add(-48 * time.Hour), Guild: models.GuildKIK, Sport: models.SportRunning, Distance: 7,
	}))

	w := Window{Start: day.Add(-2 * time.Hour), Limit: day.Add(2 * time.Hour)}
	totals, err := s.GuildSportTotals(w)
	require.NoError(t, err)
	assert.Equal(t, 5.0, totals[0].Distance[models.GuildKIK])
	assert.Equal(t, int64(1), totals[0].Entries[models.GuildKIK])

	totals, err = s.GuildSportTotals(All)
	require.NoError(t, err)
	assert.Equal(t, 12.0, totals[0].Distance[models.GuildKIK])
	assert.Equal(t, int64(2), totals[0].Entries[models.GuildKIK])
}

func TestUserTotals(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, 1, "A", guildPtr(models.GuildSIK))
	require.NoError(t, s.InsertLog(&models.LogRecord{
		UserID: 1, Guild: models.GuildSIK, Sport: models.SportRunning, Distance: 2.5,
	}))
	require.NoError(t, s.InsertLog(&models.LogRecord{
		UserID: 1, Guild: models.GuildSIK, Sport: models.SportRunning, Distance: 3,
	}))

	totals, err := s.UserTotals(1, All)
	require.NoError(t, err)
	assert.InDelta(t, 5.5, totals[models.SportRunning], 1e-9)
	assert.Equal(t, 0.0, totals[models.SportBiking])
	assert.Equal(t, 0.0, totals[models.SportSteps])
}

func TestLeaderboard(t *testing.T) {
	s := newTestStore(t)
	for i, name := range []string{"A", "B", "C", "D"} {
		id := int64(i + 1)
		mustUser(t, s, id, name, guildPtr(models.GuildKIK))
		require.NoError(t, s.InsertLog(&models.LogRecord{
			UserID: id, Guild: models.GuildKIK, Sport: models.SportRunning, Distance: float64(id * 10),
		}))
	}
	mustUser(t, s, 99, "S", guildPtr(models.GuildSIK))
	require.NoError(t, s.InsertLog(&models.LogRecord{
		UserID: 99, Guild: models.GuildSIK, Sport: models.SportBiking, Distance: 1000,
	}))

	top, err := s.Leaderboard(models.GuildKIK, All, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "D", top[0].Name)
	assert.Equal(t, 40.0, top[0].Total)
	assert.Equal(t, "C", top[1].Name)
	assert.Equal(t, "B", top[2].Name)

	// Guild with fewer users than the limit returns all of them.
	top, err = s.Leaderboard(models.GuildSIK, All, 3)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "S", top[0].Name)
}

func TestRosterSizes(t *testing.T) {
	s := newTestStore(t)
	mustUser(t, s, 1, "A", guildPtr(models.GuildKIK))
	mustUser(t, s, 2, "B", guildPtr(models.GuildKIK))
	mustUser(t, s, 3, "C", guildPtr(models.GuildSIK))
	mustUser(t, s, 4, "D", nil) // not registered to a guild yet

	sizes, err := s.RosterSizes()
	require.NoError(t, err)
	assert.Equal(t, int64(2), sizes[models.GuildKIK])
	assert.Equal(t, int64(1), sizes[models.GuildSIK])
}
