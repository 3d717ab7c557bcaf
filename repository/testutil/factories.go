package testutil

import (
	"time"

	"tracker/engine"
	"tracker/models"
)

// CreateTestSession creates a mid-game session with bankroll tracking on
func CreateTestSession(id string) *models.Session {
	session := engine.NewSession(id, engine.DefaultSettings())
	start, current := 1000.0, 1040.0
	session.BankrollOn = true
	session.BankrollStart = &start
	session.BankrollCurrent = &current
	session.Game = models.Game{
		InGame:    true,
		Observed:  true,
		Number:    2,
		LastTrue:  models.OutcomeRed,
		Mode:      models.ModeOpp,
		LadderBet: 30,
		PnL:       -25,
		State:     models.SplitState{Step: models.SplitPay1, Ledger: 85, NextBet: 43, Half1: 43, Half2: 42},
	}
	return session
}

// CreateTestLogEntries creates n consecutive entries starting at idx first
func CreateTestLogEntries(first, n int) []models.LogEntry {
	base := time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)
	entries := make([]models.LogEntry, n)
	for i := range entries {
		idx := first + i
		entries[i] = models.LogEntry{
			Idx:       idx,
			Timestamp: base.Add(time.Duration(idx) * time.Second),
			GameNo:    1,
			Series:    models.SeriesA,
			GameType:  models.GameTypeRoulette,
			Outcome:   "RED",
			Pick:      "BLACK",
			Bet:       5,
			Result:    models.ResultLoss,
			Delta:     -5,
			GamePnL:   float64(-5 * idx),
			Mode:      models.ModeSame,
			Phase:     models.PhaseNormal,
			LadderBet: 5,
		}
	}
	return entries
}

// CreateTestSplitEntry creates an entry logged during a split
func CreateTestSplitEntry(idx int) models.LogEntry {
	entry := CreateTestLogEntries(idx, 1)[0]
	next := 43.0
	entry.Phase = models.PhaseSplit
	entry.Ledger = 85
	entry.SplitPhase = models.SplitPay1
	entry.NextSplitBet = &next
	entry.Note = `note with "quotes", commas`
	return entry
}
