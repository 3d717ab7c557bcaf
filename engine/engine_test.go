package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/models"
)

var testNow = time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)

// activeSession returns a session mid-game that has already observed lastTrue
func activeSession(gameType models.GameType, series models.Series, mode models.Mode, lastTrue models.Outcome) *models.Session {
	settings := DefaultSettings()
	settings.GameType = gameType
	settings.Series = series
	s := NewSession("test", settings)
	s.Game = models.Game{
		InGame:    true,
		Observed:  true,
		Number:    1,
		LastTrue:  lastTrue,
		Mode:      mode,
		LadderBet: ParamsFor(series).MinBet,
		State:     models.NormalState{},
	}
	return s
}

func record(t *testing.T, s *models.Session, outcome models.Outcome) *models.RoundReport {
	t.Helper()
	report, err := Record(s, outcome, testNow)
	require.NoError(t, err)
	return report
}

func TestParamsFor(t *testing.T) {
	a := ParamsFor(models.SeriesA)
	b := ParamsFor(models.SeriesB)

	assert.Equal(t, 5.0, a.Base)
	assert.Equal(t, 30.0, a.MaxBet)
	assert.Equal(t, -100.0, a.StopLoss)
	assert.Equal(t, 10.0, b.Base)
	assert.Equal(t, 60.0, b.MaxBet)
	assert.Equal(t, 120.0, b.SplitLedgerSeed)
	assert.Equal(t, a, ParamsFor("Z"))
}

func TestRouletteScenario(t *testing.T) {
	s := NewSession("test", DefaultSettings())

	first := record(t, s, models.OutcomeRed)
	assert.True(t, first.StartedGame)
	assert.Equal(t, models.ResultObserve, first.Entry.Result)
	assert.Equal(t, "Observation set lastTrue", first.Entry.Note)
	assert.Equal(t, 1, s.Game.Number)

	second := record(t, s, models.OutcomeRed)
	assert.Equal(t, models.ResultWin, second.Entry.Result)
	assert.Equal(t, 5.0, second.Entry.Bet)
	assert.Equal(t, "RED", second.Entry.Pick)
	assert.Equal(t, 5.0, s.Game.PnL)
	assert.Equal(t, 1, s.Game.ConsecWinsSame)
	assert.Equal(t, 5.0, s.Game.LadderBet)

	record(t, s, models.OutcomeRed)
	require.Equal(t, models.PhaseStreak, s.Game.Phase())
	assert.Equal(t, models.StreakState{Bet: 10}, s.Game.State)
	assert.Equal(t, 10.0, s.Game.PnL)

	fourth := record(t, s, models.OutcomeBlack)
	assert.Nil(t, fourth.End)
	assert.Equal(t, models.ResultLoss, fourth.Entry.Result)
	assert.Equal(t, 10.0, fourth.Entry.Bet)
	assert.Equal(t, -10.0, fourth.Entry.Delta)
	assert.Equal(t, models.PhaseStreak, fourth.Entry.Phase)

	assert.Equal(t, models.PhaseNormal, s.Game.Phase())
	assert.Equal(t, 18.0, s.Game.LadderBet)
	assert.Equal(t, 0.0, s.Game.PnL)
	assert.Equal(t, models.ModeSame, s.Game.Mode)
	assert.Equal(t, 1, s.Game.ModeLosses)
	assert.Equal(t, models.OutcomeBlack, s.Game.LastTrue)

	require.Len(t, s.Log, 4)
	for i, entry := range s.Log {
		assert.Equal(t, i+1, entry.Idx)
	}
}

func TestObservationNeutral(t *testing.T) {
	s := NewSession("test", DefaultSettings())

	report := record(t, s, models.OutcomeGreen)
	assert.Equal(t, models.ResultObserve, report.Entry.Result)
	assert.Equal(t, "Observation (neutral)", report.Entry.Note)
	assert.Equal(t, NoPick, report.Entry.Pick)
	assert.False(t, s.Game.Observed)
	assert.Equal(t, models.NextBet{Active: true, Observing: true}, Next(s))

	record(t, s, models.OutcomeBlack)
	assert.True(t, s.Game.Observed)
	assert.Equal(t, models.NextBet{Active: true, Side: models.OutcomeBlack, Stake: 5}, Next(s))
}

func TestLadderClamp(t *testing.T) {
	tests := []struct {
		name    string
		ladder  float64
		outcome models.Outcome
		want    float64
	}{
		{"win at min stays at min", 5, models.OutcomeRed, 5},
		{"win steps down", 12, models.OutcomeRed, 10},
		{"loss steps up", 20, models.OutcomeBlack, 23},
		{"loss near cap clamps", 29, models.OutcomeBlack, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeOpp, models.OutcomeBlack)
			s.Game.LadderBet = tt.ladder

			record(t, s, tt.outcome)

			assert.Equal(t, tt.want, s.Game.LadderBet)
			p := ParamsFor(models.SeriesA)
			assert.GreaterOrEqual(t, s.Game.LadderBet, p.MinBet)
			assert.LessOrEqual(t, s.Game.LadderBet, p.MaxBet)
		})
	}
}

func TestModeFlip(t *testing.T) {
	t.Run("SAME flips after two losses", func(t *testing.T) {
		s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)

		record(t, s, models.OutcomeBlack)
		assert.Equal(t, models.ModeSame, s.Game.Mode)
		assert.Equal(t, 1, s.Game.ModeLosses)

		record(t, s, models.OutcomeRed)
		assert.Equal(t, models.ModeOpp, s.Game.Mode)
		assert.Equal(t, 0, s.Game.ModeLosses)
	})

	t.Run("OPP flips after one loss", func(t *testing.T) {
		s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeOpp, models.OutcomeRed)
		assert.Equal(t, models.OutcomeBlack, Pick(s))

		record(t, s, models.OutcomeRed)
		assert.Equal(t, models.ModeSame, s.Game.Mode)
		assert.Equal(t, 0, s.Game.ModeLosses)
	})

	t.Run("win resets losses", func(t *testing.T) {
		s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)

		record(t, s, models.OutcomeBlack)
		record(t, s, models.OutcomeBlack)
		assert.Equal(t, models.ModeSame, s.Game.Mode)
		assert.Equal(t, 0, s.Game.ModeLosses)
	})

	t.Run("green does not count", func(t *testing.T) {
		s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeOpp, models.OutcomeRed)

		report := record(t, s, models.OutcomeGreen)
		assert.Equal(t, models.ResultLoss, report.Entry.Result)
		assert.Equal(t, -5.0, s.Game.PnL)
		assert.Equal(t, models.ModeOpp, s.Game.Mode)
		assert.Equal(t, 0, s.Game.ModeLosses)
		assert.Equal(t, models.OutcomeRed, s.Game.LastTrue)
	})
}

func TestStreakGrowthAndAnchor(t *testing.T) {
	s := activeSession(models.GameTypeBaccarat, models.SeriesB, models.ModeSame, models.OutcomeBanker)
	s.Game.State = models.StreakState{Bet: 20}

	report := record(t, s, models.OutcomeBanker)
	assert.Equal(t, 20.0, report.Entry.Bet)
	assert.Equal(t, 19.0, report.Entry.Delta)
	assert.Equal(t, models.StreakState{Bet: 30}, s.Game.State)

	record(t, s, models.OutcomePlayer)
	assert.Equal(t, models.PhaseNormal, s.Game.Phase())
	assert.Equal(t, 36.0, s.Game.LadderBet)
	assert.Equal(t, 0, s.Game.ConsecWinsSame)
	assert.Equal(t, -11.0, s.Game.PnL)
}

func TestStreakDefersTakeProfit(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)
	s.Game.State = models.StreakState{Bet: 20}
	s.Game.PnL = 35

	win := record(t, s, models.OutcomeRed)
	assert.Nil(t, win.End)
	assert.True(t, s.Game.InGame)
	assert.Equal(t, 55.0, s.Game.PnL)
	assert.Equal(t, models.StreakState{Bet: 25, TPHit: true}, s.Game.State)

	loss := record(t, s, models.OutcomeBlack)
	require.NotNil(t, loss.End)
	assert.Equal(t, models.EndReasonTakeProfit, loss.End.Reason)
	assert.Equal(t, 30.0, loss.End.FinalPnL)
	assert.False(t, s.Game.InGame)
	assert.False(t, s.Game.Observed)
}

func TestStreakTakeProfitBeatsStopLoss(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)
	s.Game.State = models.StreakState{Bet: 20, TPHit: true}
	s.Game.PnL = -85

	report := record(t, s, models.OutcomeBlack)
	require.NotNil(t, report.End)
	assert.Equal(t, models.EndReasonTakeProfit, report.End.Reason)
	assert.Equal(t, -105.0, report.End.FinalPnL)
}

func TestSplitLedgerConservation(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)
	s.Game.LadderBet = 30

	record(t, s, models.OutcomeBlack)
	require.Equal(t, models.SplitState{Step: models.SplitProbe, Ledger: 60, NextBet: 5}, s.Game.State)
	assert.Equal(t, 30.0, s.Game.LadderBet)
	assert.Equal(t, -30.0, s.Game.PnL)

	record(t, s, models.OutcomeRed)
	assert.Equal(t, models.SplitState{Step: models.SplitProbe, Ledger: 65, NextBet: 5}, s.Game.State)
	assert.Equal(t, models.ModeOpp, s.Game.Mode)

	// OPP picks black after red
	record(t, s, models.OutcomeBlack)
	assert.Equal(t, models.SplitState{Step: models.SplitPay1, Ledger: 60, NextBet: 30, Half1: 30, Half2: 30}, s.Game.State)

	record(t, s, models.OutcomeBlack)
	assert.Equal(t, models.SplitState{Step: models.SplitProbe, Ledger: 90, NextBet: 5, Half1: 30, Half2: 30}, s.Game.State)

	// back in SAME after the OPP loss, picking black
	assert.Equal(t, models.ModeSame, s.Game.Mode)
	record(t, s, models.OutcomeBlack)
	assert.Equal(t, models.SplitState{Step: models.SplitPay1, Ledger: 85, NextBet: 43, Half1: 43, Half2: 42}, s.Game.State)

	record(t, s, models.OutcomeBlack)
	assert.Equal(t, models.SplitState{Step: models.SplitPay2, Ledger: 42, NextBet: 42, Half1: 43, Half2: 42}, s.Game.State)

	report := record(t, s, models.OutcomeBlack)
	assert.Nil(t, report.End)
	assert.Equal(t, models.PhaseSplit, report.Entry.Phase)
	assert.Equal(t, models.SplitPay2, report.Entry.SplitPhase)
	assert.Equal(t, models.NormalState{}, s.Game.State)
	assert.Equal(t, 15.0, s.Game.LadderBet)
	assert.Equal(t, 30.0, s.Game.PnL)
}

func TestSplitZeroHalfPlaysMinBet(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)
	s.Game.State = models.SplitState{Step: models.SplitProbe, Ledger: 6, NextBet: 5}

	record(t, s, models.OutcomeRed)
	require.Equal(t, models.SplitState{Step: models.SplitPay1, Ledger: 1, NextBet: 1, Half1: 1, Half2: 0}, s.Game.State)
	assert.Equal(t, 1.0, Stake(s))

	record(t, s, models.OutcomeRed)
	require.Equal(t, models.SplitState{Step: models.SplitPay2, Ledger: 0, NextBet: 0, Half1: 1, Half2: 0}, s.Game.State)
	assert.Equal(t, models.PhaseSplit, s.Game.Phase())
	assert.Equal(t, 5.0, Stake(s))

	// the loss is staked at 5 but only the zero half goes back on the ledger
	report := record(t, s, models.OutcomeBlack)
	assert.Equal(t, 5.0, report.Entry.Bet)
	assert.Equal(t, models.SplitState{Step: models.SplitProbe, Ledger: 0, NextBet: 5, Half1: 1, Half2: 0}, s.Game.State)
	assert.Equal(t, 1.0, s.Game.PnL)
}

func TestSplitHalvesCap(t *testing.T) {
	h1, h2 := splitHalves(195, 90)
	assert.Equal(t, 90.0, h1)
	assert.Equal(t, 105.0, h2)

	h1, h2 = splitHalves(55, 90)
	assert.Equal(t, 28.0, h1)
	assert.Equal(t, 27.0, h2)
}

func TestPushIsIdempotent(t *testing.T) {
	states := []models.PhaseState{
		models.NormalState{},
		models.StreakState{Bet: 30},
		models.SplitState{Step: models.SplitPay1, Ledger: 110, NextBet: 55, Half1: 55, Half2: 55},
	}

	for _, state := range states {
		t.Run(string(state.Phase()), func(t *testing.T) {
			s := activeSession(models.GameTypeBaccarat, models.SeriesB, models.ModeSame, models.OutcomePlayer)
			s.Game.State = state
			s.Game.ModeLosses = 1
			s.Game.PnL = -20
			before := s.Game

			report := record(t, s, models.OutcomeTie)
			assert.Equal(t, models.ResultPush, report.Entry.Result)
			assert.Equal(t, 0.0, report.Entry.Bet)
			assert.Equal(t, 0.0, report.Entry.Delta)
			assert.Nil(t, report.End)
			assert.Equal(t, before, s.Game)
		})
	}
}

func TestNeutralAtCap(t *testing.T) {
	t.Run("roulette green splits", func(t *testing.T) {
		s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)
		s.Game.LadderBet = 30

		record(t, s, models.OutcomeGreen)
		assert.Equal(t, models.PhaseSplit, s.Game.Phase())
		assert.Equal(t, 0, s.Game.ModeLosses)
	})

	t.Run("baccarat tie pushes", func(t *testing.T) {
		s := activeSession(models.GameTypeBaccarat, models.SeriesA, models.ModeSame, models.OutcomePlayer)
		s.Game.LadderBet = 30

		record(t, s, models.OutcomeTie)
		assert.Equal(t, models.PhaseNormal, s.Game.Phase())
		assert.Equal(t, 30.0, s.Game.LadderBet)
	})
}

func TestAutoSeries(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)
	s.Game.PnL = -95
	s.Game.LadderBet = 10

	report := record(t, s, models.OutcomeBlack)
	require.NotNil(t, report.End)
	assert.Equal(t, models.EndReasonStopLoss, report.End.Reason)
	assert.Equal(t, models.SeriesA, report.End.Series)
	assert.Equal(t, models.SeriesB, report.End.NextSeries)
	assert.True(t, s.PendingOneB)

	require.NoError(t, StartNewGame(s))
	assert.Equal(t, models.SeriesB, s.Series)
	assert.Equal(t, 2, s.Game.Number)
	assert.Equal(t, 10.0, s.Game.LadderBet)

	record(t, s, models.OutcomeRed)
	s.Game.PnL = 75
	report = record(t, s, models.OutcomeRed)
	require.NotNil(t, report.End)
	assert.Equal(t, models.EndReasonTakeProfit, report.End.Reason)
	assert.Equal(t, models.SeriesA, s.Series)
	assert.False(t, s.PendingOneB)
}

func TestAutoSeriesOff(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)
	s.AutoSeries = false
	s.Game.PnL = -95
	s.Game.LadderBet = 10

	report := record(t, s, models.OutcomeBlack)
	require.NotNil(t, report.End)
	assert.False(t, s.PendingOneB)
	assert.Equal(t, models.SeriesA, report.End.NextSeries)
}

func TestStartNewGame(t *testing.T) {
	s := NewSession("test", DefaultSettings())
	require.NoError(t, StartNewGame(s))
	assert.True(t, s.Game.InGame)
	assert.Len(t, s.History, 1)

	assert.ErrorIs(t, StartNewGame(s), ErrGameInProgress)
	assert.Len(t, s.History, 1)
}

func TestCarryMode(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeOpp, models.OutcomeRed)
	s.Game.PnL = 38
	record(t, s, models.OutcomeBlack)
	require.False(t, s.Game.InGame)

	require.NoError(t, StartNewGame(s))
	assert.Equal(t, models.ModeSame, s.Game.Mode)
	s.Game.InGame = false
	s.Game.Mode = models.ModeOpp

	s.CarryMode = true
	require.NoError(t, StartNewGame(s))
	assert.Equal(t, models.ModeOpp, s.Game.Mode)
}

func TestSubmitErrors(t *testing.T) {
	s := NewSession("test", DefaultSettings())

	_, err := Submit(s, testNow)
	assert.ErrorIs(t, err, ErrNothingStaged)

	assert.ErrorIs(t, Stage(s, models.OutcomeTie), ErrInvalidOutcome)
	assert.ErrorIs(t, Stage(s, "X"), ErrInvalidOutcome)
	assert.Empty(t, s.History)
	assert.Empty(t, s.Log)
}

func TestUndo(t *testing.T) {
	s := NewSession("test", DefaultSettings())
	assert.False(t, Undo(s))

	record(t, s, models.OutcomeRed)
	record(t, s, models.OutcomeRed)
	afterTwo := s.Clone()

	record(t, s, models.OutcomeBlack)
	require.Len(t, s.Log, 3)

	require.True(t, Undo(s))
	assert.Len(t, s.History, 2)
	assert.Equal(t, afterTwo.Game, s.Game)
	assert.Len(t, s.Log, 2)

	record(t, s, models.OutcomeRed)
	assert.Equal(t, 3, s.Log[2].Idx)
	assert.Equal(t, "RED", s.Log[2].Outcome)
}

func TestHistoryBound(t *testing.T) {
	s := NewSession("test", DefaultSettings())
	for i := 0; i < MaxHistory+25; i++ {
		ClearStaged(s)
	}
	assert.Len(t, s.History, MaxHistory)
}

func TestIdxContinuesAfterTrimmedLog(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)
	s.Log = []models.LogEntry{{Idx: 5001}, {Idx: 5002}}

	report := record(t, s, models.OutcomeRed)
	assert.Equal(t, 5003, report.Entry.Idx)
}

func TestConfigure(t *testing.T) {
	s := NewSession("test", DefaultSettings())
	require.NoError(t, Stage(s, models.OutcomeRed))

	settings := s.Settings()
	settings.Series = models.SeriesB
	require.NoError(t, Configure(s, settings))
	assert.Equal(t, models.OutcomeRed, s.PendingOutcome)

	settings.GameType = models.GameTypeBaccarat
	require.NoError(t, Configure(s, settings))
	assert.Empty(t, s.PendingOutcome)
	assert.Len(t, s.History, 2)

	settings.StartMode = "SIDEWAYS"
	assert.ErrorIs(t, Configure(s, settings), ErrInvalidSetting)
	assert.Len(t, s.History, 2)
}

func TestConfigureSeriesClampsLadder(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesB, models.ModeSame, models.OutcomeRed)
	s.Game.LadderBet = 60

	settings := s.Settings()
	settings.Series = models.SeriesA
	require.NoError(t, Configure(s, settings))
	assert.Equal(t, 30.0, s.Game.LadderBet)
	assert.Equal(t, 30.0, Stake(s))

	settings.Series = models.SeriesB
	require.NoError(t, Configure(s, settings))
	assert.Equal(t, 30.0, s.Game.LadderBet)

	// between games the ladder is reset by the next start
	idle := NewSession("idle", DefaultSettings())
	idle.Game.LadderBet = 5
	settings = idle.Settings()
	settings.Series = models.SeriesB
	require.NoError(t, Configure(idle, settings))
	assert.Equal(t, 5.0, idle.Game.LadderBet)
}

func TestNewEveningAndReset(t *testing.T) {
	s := activeSession(models.GameTypeBaccarat, models.SeriesA, models.ModeSame, models.OutcomePlayer)
	s.PendingOneB = true
	require.NoError(t, ApplyBankroll(s, true, "500"))
	record(t, s, models.OutcomePlayer)

	NewEvening(s, "evening-2")
	assert.Equal(t, "evening-2", s.ID)
	assert.Empty(t, s.Log)
	assert.False(t, s.Game.InGame)
	assert.Equal(t, 0, s.Game.Number)
	assert.Equal(t, models.GameTypeBaccarat, s.GameType)
	assert.True(t, s.PendingOneB)
	assert.Equal(t, 500.0, *s.BankrollCurrent)
	assert.Len(t, s.History, 3)

	require.True(t, Undo(s))
	assert.Equal(t, "test", s.ID)
	assert.Len(t, s.Log, 1)

	Reset(s, "fresh", DefaultSettings())
	assert.Equal(t, "fresh", s.ID)
	assert.Empty(t, s.History)
	assert.Empty(t, s.Log)
	assert.False(t, s.BankrollOn)
	assert.Nil(t, s.BankrollStart)
}

func TestBankroll(t *testing.T) {
	s := activeSession(models.GameTypeRoulette, models.SeriesA, models.ModeSame, models.OutcomeRed)

	assert.ErrorIs(t, ApplyBankroll(s, true, "lots"), ErrInvalidBankroll)
	assert.ErrorIs(t, ApplyBankroll(s, true, "NaN"), ErrInvalidBankroll)
	assert.False(t, s.BankrollOn)
	assert.Empty(t, s.History)

	require.NoError(t, ApplyBankroll(s, true, ""))
	assert.True(t, s.BankrollOn)
	assert.Nil(t, s.BankrollStart)

	require.NoError(t, ApplyBankroll(s, true, " 250.5 "))
	assert.Equal(t, 250.5, *s.BankrollStart)
	assert.Equal(t, 250.5, *s.BankrollCurrent)

	require.NoError(t, ApplyBankroll(s, true, ""))
	assert.Equal(t, 250.5, *s.BankrollStart)

	s.Game.PnL = 38
	report := record(t, s, models.OutcomeRed)
	require.NotNil(t, report.End)
	assert.Equal(t, 293.5, *s.BankrollCurrent)
	require.NotNil(t, report.End.BankrollNet)
	assert.Equal(t, 43.0, *report.End.BankrollNet)

	net, ok := BankrollNet(s)
	assert.True(t, ok)
	assert.Equal(t, 43.0, net)
}
