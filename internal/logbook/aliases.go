package logbook

import (
	"strings"

	"guildsports-bot/internal/models"
)

// sportAliases maps normalized caption tokens to canonical sports.
// Data-driven on purpose: extending the vocabulary means adding rows,
// not touching the state machine.
var sportAliases = map[string]models.Sport{
	"running":  models.SportRunning,
	"run":      models.SportRunning,
	"ran":      models.SportRunning,
	"r":        models.SportRunning,
	"jog":      models.SportRunning,
	"jogging":  models.SportRunning,
	"walking":  models.SportRunning,
	"walk":     models.SportRunning,
	"walked":   models.SportRunning,
	"w":        models.SportRunning,
	"hike":     models.SportRunning,
	"hiking":   models.SportRunning,
	"biking":   models.SportBiking,
	"bike":     models.SportBiking,
	"biked":    models.SportBiking,
	"b":        models.SportBiking,
	"cycling":  models.SportBiking,
	"cycle":    models.SportBiking,
	"cycled":   models.SportBiking,
	"spinning": models.SportBiking,
	"steps":    models.SportSteps,
	"step":     models.SportSteps,
	"s":        models.SportSteps,
	"stairs":   models.SportSteps,
}

// LookupSportAlias resolves a caption sport token case-insensitively.
func LookupSportAlias(token string) (models.Sport, bool) {
	s, ok := sportAliases[strings.ToLower(strings.TrimSpace(token))]
	return s, ok
}
