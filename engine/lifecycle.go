package engine

import "tracker/models"

// StartNewGame begins a game from the between-games state. It is an error to call
// it while a game is running.
func StartNewGame(s *models.Session) error {
	if s.Game.InGame {
		return ErrGameInProgress
	}
	PushSnapshot(s)
	startGame(s)
	return nil
}

func startGame(s *models.Session) {
	if s.AutoSeries && s.PendingOneB {
		s.Series = models.SeriesB
	}
	p := ParamsFor(s.Series)

	number := s.Game.Number + 1
	mode := s.StartMode
	if s.CarryMode && number > 1 && s.Game.Mode != "" {
		mode = s.Game.Mode
	}

	s.Game = models.Game{
		InGame:    true,
		Number:    number,
		Mode:      mode,
		LadderBet: p.MinBet,
		State:     models.NormalState{},
	}
	s.PendingOutcome = ""
}

// EndGame retires the running game, settles the bankroll and applies the
// auto-series rule. The returned report is the only signal that a game ended.
func EndGame(s *models.Session, reason models.EndReason) *models.GameEnd {
	p := ParamsFor(s.Series)
	end := &models.GameEnd{
		Reason:     reason,
		FinalPnL:   s.Game.PnL,
		GameNo:     s.Game.Number,
		Series:     s.Series,
		TakeProfit: p.TakeProfit,
		StopLoss:   p.StopLoss,
	}

	ApplyGameResult(s, s.Game.PnL)
	s.Game.InGame = false
	s.Game.Observed = false

	if s.AutoSeries {
		switch {
		case s.Series == models.SeriesA && reason == models.EndReasonStopLoss:
			s.PendingOneB = true
		case s.Series == models.SeriesB:
			s.Series = models.SeriesA
			s.PendingOneB = false
		}
	}
	s.PendingOutcome = ""

	if s.BankrollOn && s.BankrollCurrent != nil {
		current := *s.BankrollCurrent
		end.Bankroll = &current
		if net, ok := BankrollNet(s); ok {
			end.BankrollNet = &net
		}
	}
	end.NextSeries = s.Series
	if s.AutoSeries && s.PendingOneB {
		end.NextSeries = models.SeriesB
	}
	return end
}
