// Package logbook holds the per-user logging conversation state
// machine as pure decision functions. The Telegram layer feeds in the
// current pending event and the inbound event; the returned Decision
// says what to persist and what kind of reply to send. No I/O here.
package logbook

import (
	"fmt"
	"strconv"
	"strings"

	"guildsports-bot/internal/models"
)

// Action tells the caller what a decision requires.
type Action int

const (
	// ActionNone means nothing to do (e.g. free text with no pending event).
	ActionNone Action = iota
	// ActionAskSport upserts the pending event with sport cleared and
	// offers the sport keyboard.
	ActionAskSport
	// ActionWarnAndAskSport is ActionAskSport after an implausibly large
	// caption distance; the reply should mention the rejected value.
	ActionWarnAndAskSport
	// ActionAskDistance persists the chosen sport and asks for a number.
	ActionAskDistance
	// ActionRecord writes one LogRecord and deletes the pending event.
	ActionRecord
	// ActionDisambiguate keeps the pending event and asks whether the
	// oversized value was really the chosen sport or a step count.
	ActionDisambiguate
	// ActionRetryDistance re-prompts after unparsable or non-positive input.
	ActionRetryDistance
	// ActionRejectClosed refuses a submission while intake is off.
	ActionRejectClosed
	// ActionRejectNoGuild refuses a submission from a guildless user.
	ActionRejectNoGuild
)

// Decision is the outcome of one state machine step.
type Decision struct {
	Action Action
	Sport  models.Sport
	Value  float64 // as entered by the user (steps count, km, ...)
	Stored float64 // kilometers to persist (steps already converted)
}

// StoredDistance applies the steps conversion; every other sport keeps
// the entered value unchanged.
func StoredDistance(sport models.Sport, value float64) float64 {
	if sport == models.SportSteps {
		return value * models.StepsToKm
	}
	return value
}

func record(sport models.Sport, value float64) Decision {
	return Decision{
		Action: ActionRecord,
		Sport:  sport,
		Value:  value,
		Stored: StoredDistance(sport, value),
	}
}

// HandleEvidence decides the reaction to a new photo submission. A
// caption of the form "<sport>, <number>" short-circuits the whole
// conversation; anything else lands in sport selection. Guild and
// intake gates apply before any state is touched.
func HandleEvidence(accepting, hasGuild bool, caption string) Decision {
	if !accepting {
		return Decision{Action: ActionRejectClosed}
	}
	if !hasGuild {
		return Decision{Action: ActionRejectNoGuild}
	}
	sport, value, ok := ParseCaption(caption)
	if !ok {
		return Decision{Action: ActionAskSport}
	}
	if sport != models.SportSteps && value > models.DistanceSanityLimit {
		return Decision{Action: ActionWarnAndAskSport, Sport: sport, Value: value}
	}
	return record(sport, value)
}

// HandleSportChoice decides the reaction to a sport button press while
// a pending event exists.
func HandleSportChoice(pending *models.PendingLogEvent, sport models.Sport) Decision {
	if pending == nil {
		return Decision{Action: ActionNone}
	}
	return Decision{Action: ActionAskDistance, Sport: sport}
}

// HandleDistanceText decides the reaction to free text. It only means
// something while a pending event with a chosen sport exists; anything
// else is intentionally inert.
func HandleDistanceText(pending *models.PendingLogEvent, text string) Decision {
	if pending == nil || pending.Sport == nil {
		return Decision{Action: ActionNone}
	}
	sport := *pending.Sport
	value, err := ParseDistance(text)
	if err != nil {
		return Decision{Action: ActionRetryDistance, Sport: sport}
	}
	if sport != models.SportSteps && value > models.DistanceSanityLimit {
		return Decision{Action: ActionDisambiguate, Sport: sport, Value: value}
	}
	return record(sport, value)
}

// HandleDisambiguation resolves the oversized-distance choice: keep the
// originally chosen sport, or reclassify the value as a step count.
func HandleDisambiguation(sport models.Sport, value float64, asSteps bool) Decision {
	if asSteps {
		return record(models.SportSteps, value)
	}
	return record(sport, value)
}

// ParseDistance parses a strictly positive number, accepting both comma
// and dot decimal separators.
func ParseDistance(text string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if v <= 0 {
		return 0, fmt.Errorf("distance must be positive, got %v", v)
	}
	return v, nil
}

// ParseCaption matches the one-shot caption form "<sport>, <number>".
// The sport token goes through the alias table; the number part may use
// a comma decimal separator. Returns ok=false on any mismatch, which
// callers treat as "fall back to interactive selection", not an error.
func ParseCaption(caption string) (models.Sport, float64, bool) {
	token, rest, found := strings.Cut(caption, ",")
	if !found {
		return "", 0, false
	}
	sport, ok := LookupSportAlias(token)
	if !ok {
		return "", 0, false
	}
	value, err := ParseDistance(rest)
	if err != nil {
		return "", 0, false
	}
	return sport, value, true
}
