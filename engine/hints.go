package engine

import (
	"fmt"

	"tracker/models"
)

// Hints returns short guidance lines for the current state of the session
func Hints(s *models.Session) []string {
	if !s.Game.InGame {
		return []string{"No active game. Start a new game, then stage and submit outcomes."}
	}
	if !s.Game.Observed {
		return []string{"Observation: submit outcomes until a true outcome occurs. No bet is placed until then."}
	}

	p := ParamsFor(s.Series)
	hints := []string{fmt.Sprintf("Series %s TP/SL: %g / %g.", s.Series, p.TakeProfit, p.StopLoss)}
	switch s.Game.Phase() {
	case models.PhaseStreak:
		hints = append(hints, "STREAK: stake grows by base on each win; TP ends the game when the streak loses.")
	case models.PhaseSplit:
		hints = append(hints, "SPLIT: probe at min, then pay the ledger in two halves; a push repeats the same bet.")
	}
	if s.AutoSeries && s.PendingOneB {
		hints = append(hints, "Auto series armed: the next game plays series B once.")
	}
	return hints
}
