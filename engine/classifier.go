package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tracker/models"
)

// bankerCommission is taken from winning banker bets
var bankerCommission = decimal.NewFromFloat(0.05)

type gameRules struct {
	sides          [2]models.Outcome
	neutral        models.Outcome
	labels         map[models.Outcome]string
	commissionSide models.Outcome
}

var rulesByGame = map[models.GameType]gameRules{
	models.GameTypeRoulette: {
		sides:   [2]models.Outcome{models.OutcomeRed, models.OutcomeBlack},
		neutral: models.OutcomeGreen,
		labels: map[models.Outcome]string{
			models.OutcomeRed:   "RED",
			models.OutcomeBlack: "BLACK",
			models.OutcomeGreen: "GREEN",
		},
	},
	models.GameTypeBaccarat: {
		sides:   [2]models.Outcome{models.OutcomePlayer, models.OutcomeBanker},
		neutral: models.OutcomeTie,
		labels: map[models.Outcome]string{
			models.OutcomePlayer: "PLAYER",
			models.OutcomeBanker: "BANKER",
			models.OutcomeTie:    "TIE",
		},
		commissionSide: models.OutcomeBanker,
	},
}

// NoPick is the display value for an empty pick or outcome
const NoPick = "—"

// ValidGameType reports whether the game type has a rule table
func ValidGameType(gameType models.GameType) bool {
	_, ok := rulesByGame[gameType]
	return ok
}

// Outcomes lists the symbols a game type accepts: both sides, then the neutral one
func Outcomes(gameType models.GameType) []models.Outcome {
	rules, ok := rulesByGame[gameType]
	if !ok {
		return nil
	}
	return []models.Outcome{rules.sides[0], rules.sides[1], rules.neutral}
}

// ValidateOutcome returns ErrInvalidOutcome for symbols the game type does not know
func ValidateOutcome(outcome models.Outcome, gameType models.GameType) error {
	if IsTrue(outcome, gameType) || IsNeutral(outcome, gameType) {
		return nil
	}
	return fmt.Errorf("%w: %q for %s", ErrInvalidOutcome, outcome, gameType)
}

// IsNeutral reports whether the outcome is the game's house result (green, tie)
func IsNeutral(outcome models.Outcome, gameType models.GameType) bool {
	rules, ok := rulesByGame[gameType]
	return ok && outcome != "" && outcome == rules.neutral
}

// IsTrue reports whether the outcome is one of the two bettable sides
func IsTrue(outcome models.Outcome, gameType models.GameType) bool {
	rules, ok := rulesByGame[gameType]
	if !ok || outcome == "" {
		return false
	}
	return outcome == rules.sides[0] || outcome == rules.sides[1]
}

// Opposite returns the other bettable side, or "" for anything that is not a side
func Opposite(outcome models.Outcome, gameType models.GameType) models.Outcome {
	rules, ok := rulesByGame[gameType]
	if !ok {
		return ""
	}
	switch outcome {
	case rules.sides[0]:
		return rules.sides[1]
	case rules.sides[1]:
		return rules.sides[0]
	}
	return ""
}

// Settle returns the profit of an even-money bet on pick
func Settle(bet float64, won bool, pick models.Outcome, gameType models.GameType) float64 {
	stake := decimal.NewFromFloat(bet)
	if !won {
		return stake.Neg().InexactFloat64()
	}
	rules := rulesByGame[gameType]
	if rules.commissionSide != "" && pick == rules.commissionSide {
		return stake.Mul(decimal.NewFromInt(1).Sub(bankerCommission)).InexactFloat64()
	}
	return stake.InexactFloat64()
}

// Label returns the display name of an outcome
func Label(outcome models.Outcome, gameType models.GameType) string {
	if outcome == "" {
		return NoPick
	}
	if label, ok := rulesByGame[gameType].labels[outcome]; ok {
		return label
	}
	return string(outcome)
}
