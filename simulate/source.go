package simulate

import (
	"math/rand"

	"tracker/models"
)

// Source yields table outcomes one round at a time
type Source interface {
	Next() models.Outcome
}

type weightedOutcome struct {
	outcome models.Outcome
	weight  float64
}

// House odds per game type: single-zero roulette and eight-deck baccarat
var tableOdds = map[models.GameType][]weightedOutcome{
	models.GameTypeRoulette: {
		{models.OutcomeRed, 18.0 / 37},
		{models.OutcomeBlack, 18.0 / 37},
		{models.OutcomeGreen, 1.0 / 37},
	},
	models.GameTypeBaccarat: {
		{models.OutcomePlayer, 0.4462},
		{models.OutcomeBanker, 0.4586},
		{models.OutcomeTie, 0.0952},
	},
}

// TableSource draws outcomes at the house odds of a game type
type TableSource struct {
	rng  *rand.Rand
	odds []weightedOutcome
}

// NewTableSource creates a seeded source for the game type. Unknown game types
// draw roulette outcomes.
func NewTableSource(gameType models.GameType, seed int64) *TableSource {
	odds, ok := tableOdds[gameType]
	if !ok {
		odds = tableOdds[models.GameTypeRoulette]
	}
	return &TableSource{
		rng:  rand.New(rand.NewSource(seed)),
		odds: odds,
	}
}

// Next draws one outcome
func (t *TableSource) Next() models.Outcome {
	roll := t.rng.Float64()
	for _, o := range t.odds {
		if roll < o.weight {
			return o.outcome
		}
		roll -= o.weight
	}
	return t.odds[len(t.odds)-1].outcome
}
