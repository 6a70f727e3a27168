package report

import (
	"time"

	"guildsports-bot/internal/store"
)

// ReportingZone is the fixed UTC+3 offset used for all day boundaries,
// independent of the server's locale.
var ReportingZone = time.FixedZone("UTC+3", 3*60*60)

// Today returns the half-open window [midnight, midnight+24h) around
// now in the reporting timezone.
func Today(now time.Time) store.Window {
	t := now.In(ReportingZone)
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ReportingZone)
	return store.Window{Start: midnight, Limit: midnight.Add(24 * time.Hour)}
}

// Yesterday shifts both bounds of Today back by one day.
func Yesterday(now time.Time) store.Window {
	w := Today(now)
	return store.Window{
		Start: w.Start.Add(-24 * time.Hour),
		Limit: w.Limit.Add(-24 * time.Hour),
	}
}
