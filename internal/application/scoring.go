package application

import (
	"strconv"

	"pronosbot/internal/models"
)

const (
	configKeyExactPoints   = "exact_points"
	configKeyPartialPoints = "partial_points"

	defaultExactPoints   = 5
	defaultPartialPoints = 3
)

// ScoringValues is the point table for one scoring pass, parsed once from
// the game config so every prediction in the pass is scored identically.
type ScoringValues struct {
	Exact   int
	Partial int
}

func ScoringValuesFrom(cfg map[string]string) ScoringValues {
	return ScoringValues{
		Exact:   intFromConfig(cfg, configKeyExactPoints, defaultExactPoints),
		Partial: intFromConfig(cfg, configKeyPartialPoints, defaultPartialPoints),
	}
}

func intFromConfig(cfg map[string]string, key string, fallback int) int {
	raw, ok := cfg[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

type direction int

const (
	homeWin direction = iota
	awayWin
	draw
)

func resultDirection(home, away int) direction {
	switch {
	case home > away:
		return homeWin
	case away > home:
		return awayWin
	default:
		return draw
	}
}

// Evaluate scores one prediction against the final result. An exact score
// takes priority; otherwise a matching win/draw direction earns the partial
// value; anything else is a miss. Pure: callers validate goal counts.
func Evaluate(predHome, predAway, goalsHome, goalsAway int, v ScoringValues) (int, models.Outcome) {
	if predHome == goalsHome && predAway == goalsAway {
		return v.Exact, models.OutcomeExact
	}
	if resultDirection(predHome, predAway) == resultDirection(goalsHome, goalsAway) {
		return v.Partial, models.OutcomePartial
	}
	return 0, models.OutcomeMiss
}
