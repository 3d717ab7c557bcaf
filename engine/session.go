package engine

import (
	"fmt"
	"time"

	"tracker/models"
)

// DefaultSettings are the options of a brand-new session
func DefaultSettings() models.SessionSettings {
	return models.SessionSettings{
		GameType:   models.GameTypeRoulette,
		Series:     models.SeriesA,
		StartMode:  models.ModeSame,
		AutoSeries: true,
		CarryMode:  false,
	}
}

// ValidateSettings rejects unknown game types, series and modes
func ValidateSettings(settings models.SessionSettings) error {
	if !ValidGameType(settings.GameType) {
		return fmt.Errorf("%w: game type %q", ErrInvalidSetting, settings.GameType)
	}
	if settings.Series != models.SeriesA && settings.Series != models.SeriesB {
		return fmt.Errorf("%w: series %q", ErrInvalidSetting, settings.Series)
	}
	if settings.StartMode != models.ModeSame && settings.StartMode != models.ModeOpp {
		return fmt.Errorf("%w: start mode %q", ErrInvalidSetting, settings.StartMode)
	}
	return nil
}

// NewSession returns a session with no game started
func NewSession(id string, settings models.SessionSettings) *models.Session {
	s := &models.Session{ID: id}
	s.ApplySettings(settings)
	s.Game = models.Game{
		Mode:      settings.StartMode,
		LadderBet: ParamsFor(settings.Series).MinBet,
		State:     models.NormalState{},
	}
	return s
}

// Stage marks an outcome to be submitted. Staging is not an undoable step.
func Stage(s *models.Session, outcome models.Outcome) error {
	if err := ValidateOutcome(outcome, s.GameType); err != nil {
		return err
	}
	s.PendingOutcome = outcome
	return nil
}

// ClearStaged drops the staged outcome
func ClearStaged(s *models.Session) {
	PushSnapshot(s)
	s.PendingOutcome = ""
}

// Submit applies the staged outcome. Outside a game it starts one first; while the
// game is observing the round is only logged.
func Submit(s *models.Session, now time.Time) (*models.RoundReport, error) {
	outcome := s.PendingOutcome
	if outcome == "" {
		return nil, ErrNothingStaged
	}
	if err := ValidateOutcome(outcome, s.GameType); err != nil {
		return nil, err
	}

	PushSnapshot(s)
	report := &models.RoundReport{}
	if !s.Game.InGame {
		startGame(s)
		report.StartedGame = true
	}

	if !s.Game.Observed {
		report.Entry = observe(s, outcome, now)
		return report, nil
	}

	report.Entry, report.End = playRound(s, outcome, now)
	return report, nil
}

// Record stages and submits an outcome in one step
func Record(s *models.Session, outcome models.Outcome, now time.Time) (*models.RoundReport, error) {
	if err := Stage(s, outcome); err != nil {
		return nil, err
	}
	return Submit(s, now)
}

// Configure replaces the session settings. Changing the game type drops any staged
// outcome, since its symbol may mean something else. Changing the series mid-game
// pulls the ladder bet into the new series' range.
func Configure(s *models.Session, settings models.SessionSettings) error {
	if err := ValidateSettings(settings); err != nil {
		return err
	}
	PushSnapshot(s)
	if settings.GameType != s.GameType {
		s.PendingOutcome = ""
	}
	if settings.Series != s.Series && s.Game.InGame {
		p := ParamsFor(settings.Series)
		s.Game.LadderBet = clamp(s.Game.LadderBet, p.MinBet, p.MaxBet)
	}
	s.ApplySettings(settings)
	return nil
}

// NewEvening starts a fresh session under a new id. Settings, the armed series B
// game and the bankroll carry over; the undo stack is kept so it can be reverted.
func NewEvening(s *models.Session, id string) {
	PushSnapshot(s)
	history := s.History

	next := NewSession(id, s.Settings())
	next.PendingOneB = s.PendingOneB
	next.BankrollOn = s.BankrollOn
	next.BankrollStart = s.BankrollStart
	next.BankrollCurrent = s.BankrollCurrent

	*s = *next
	s.History = history
}

// Reset discards everything, undo history included
func Reset(s *models.Session, id string, settings models.SessionSettings) {
	*s = *NewSession(id, settings)
}
