package engine

import (
	"math"
	"time"

	"tracker/models"
)

// Pick returns the side to back: the last true outcome in SAME mode, its opposite in OPP.
// Empty until the game has observed a true outcome.
func Pick(s *models.Session) models.Outcome {
	if s.Game.LastTrue == "" {
		return ""
	}
	if s.Game.Mode == models.ModeSame {
		return s.Game.LastTrue
	}
	return Opposite(s.Game.LastTrue, s.GameType)
}

// Stake returns the amount to put on the next round for the active phase
func Stake(s *models.Session) float64 {
	p := ParamsFor(s.Series)
	switch st := s.Game.State.(type) {
	case models.StreakState:
		return roundStake(st.Bet)
	case models.SplitState:
		// a zero half (ledger of 1 split 1/0) is still played at the minimum bet
		if st.NextBet == 0 {
			return roundStake(p.MinBet)
		}
		return roundStake(st.NextBet)
	default:
		return s.Game.LadderBet
	}
}

// Next describes the next action. Observing is set while the game waits for its
// first true outcome.
func Next(s *models.Session) models.NextBet {
	if !s.Game.InGame {
		return models.NextBet{}
	}
	if !s.Game.Observed {
		return models.NextBet{Active: true, Observing: true}
	}
	return models.NextBet{Active: true, Side: Pick(s), Stake: Stake(s)}
}

type roundRow struct {
	outcome models.Outcome
	pick    models.Outcome
	bet     float64
	result  models.Result
	delta   float64
	note    string
}

// appendLog records a row from the current game state. Rows are written before any
// phase transition of the round they describe.
func appendLog(s *models.Session, now time.Time, row roundRow) models.LogEntry {
	g := s.Game
	entry := models.LogEntry{
		Idx:            s.LastIdx() + 1,
		Timestamp:      now.UTC(),
		GameNo:         g.Number,
		Series:         s.Series,
		GameType:       s.GameType,
		Outcome:        Label(row.outcome, s.GameType),
		Pick:           Label(row.pick, s.GameType),
		Bet:            row.bet,
		Result:         row.result,
		Delta:          round2(row.delta),
		GamePnL:        g.PnL,
		Mode:           g.Mode,
		ModeLosses:     g.ModeLosses,
		Phase:          g.Phase(),
		LadderBet:      g.LadderBet,
		ConsecWinsSame: g.ConsecWinsSame,
		Note:           row.note,
	}
	if st, ok := g.State.(models.SplitState); ok {
		next := st.NextBet
		entry.Ledger = st.Ledger
		entry.SplitPhase = st.Step
		entry.NextSplitBet = &next
	}
	s.Log = append(s.Log, entry)
	return entry
}

// observe handles a round while the game waits for its first true outcome
func observe(s *models.Session, outcome models.Outcome, now time.Time) models.LogEntry {
	note := "Observation (neutral)"
	if IsTrue(outcome, s.GameType) {
		s.Game.LastTrue = outcome
		s.Game.Observed = true
		note = "Observation set lastTrue"
	}
	entry := appendLog(s, now, roundRow{outcome: outcome, result: models.ResultObserve, note: note})
	s.PendingOutcome = ""
	return entry
}

// playRound settles one outcome against the active phase and runs its transitions
func playRound(s *models.Session, outcome models.Outcome, now time.Time) (models.LogEntry, *models.GameEnd) {
	g := &s.Game
	p := ParamsFor(s.Series)
	pick := Pick(s)
	neutral := IsNeutral(outcome, s.GameType)
	bet := Stake(s)

	result := models.ResultLoss
	won := false
	switch {
	case neutral && s.GameType == models.GameTypeBaccarat:
		result = models.ResultPush
		bet = 0
	case neutral:
		// green loses every even-money bet
	default:
		won = outcome == pick
		if won {
			result = models.ResultWin
		}
	}

	var delta float64
	if result != models.ResultPush && bet > 0 {
		delta = round2(Settle(bet, won, pick, s.GameType))
		g.PnL = add2(g.PnL, delta)
	}

	entry := appendLog(s, now, roundRow{outcome: outcome, pick: pick, bet: bet, result: result, delta: delta})

	if IsTrue(outcome, s.GameType) {
		g.LastTrue = outcome
	}
	s.PendingOutcome = ""
	if result == models.ResultPush {
		return entry, nil
	}

	var reason models.EndReason
	switch st := g.State.(type) {
	case models.StreakState:
		reason = playStreak(g, st, won, neutral, p)
	case models.SplitState:
		reason = playSplit(g, st, won, neutral, p)
	default:
		atCap := bet == p.MaxBet
		// a neutral result at cap only splits on roulette green; ties never get here
		splitAtCap := atCap && (!neutral || (s.GameType == models.GameTypeRoulette && outcome == models.OutcomeGreen))
		reason = playNormal(g, won, neutral, splitAtCap, p)
	}
	if reason == "" {
		return entry, nil
	}
	return entry, EndGame(s, reason)
}

func playNormal(g *models.Game, won, neutral, splitAtCap bool, p models.SeriesParams) models.EndReason {
	if won {
		modeWin(g)
		if g.Mode == models.ModeSame {
			g.ConsecWinsSame++
		} else {
			g.ConsecWinsSame = 0
		}
		g.LadderBet = clamp(add2(g.LadderBet, -p.WinDecrement), p.MinBet, p.MaxBet)
		if g.Mode == models.ModeSame && g.ConsecWinsSame >= 2 {
			enterStreak(g, p)
		}
	} else {
		g.ConsecWinsSame = 0
		g.LadderBet = clamp(add2(g.LadderBet, p.LossIncrement), p.MinBet, p.MaxBet)
		modeLoss(g, neutral)
		if splitAtCap {
			enterSplit(g, p)
		}
	}
	return checkBounds(g, p)
}

// playStreak defers a take-profit reached on a win until the streak loses
func playStreak(g *models.Game, st models.StreakState, won, neutral bool, p models.SeriesParams) models.EndReason {
	if won {
		modeWin(g)
		st.Bet = add2(st.Bet, p.Base)
		if g.PnL >= p.TakeProfit {
			st.TPHit = true
		}
		g.State = st
	} else {
		modeLoss(g, neutral)
		tpReached := st.TPHit || g.PnL >= p.TakeProfit
		exitStreak(g, p)
		if tpReached {
			return models.EndReasonTakeProfit
		}
	}
	if g.PnL <= p.StopLoss {
		return models.EndReasonStopLoss
	}
	return ""
}

func playSplit(g *models.Game, st models.SplitState, won, neutral bool, p models.SeriesParams) models.EndReason {
	switch st.Step {
	case models.SplitPay1:
		if won {
			modeWin(g)
			st.Ledger = math.Max(0, add2(st.Ledger, -st.Half1))
			st.Step = models.SplitPay2
			st.NextBet = math.Max(0, st.Half2)
		} else {
			st.Ledger = add2(st.Ledger, st.Half1)
			modeLoss(g, neutral)
			st.Step = models.SplitProbe
			st.NextBet = p.MinBet
		}
	case models.SplitPay2:
		if won {
			modeWin(g)
			st.Ledger = math.Max(0, add2(st.Ledger, -st.Half2))
			if st.Ledger <= 0 {
				clearSplit(g, p)
				return checkBounds(g, p)
			}
			st.Step = models.SplitProbe
			st.NextBet = p.MinBet
		} else {
			st.Ledger = add2(st.Ledger, st.Half2)
			modeLoss(g, neutral)
			st.Step = models.SplitProbe
			st.NextBet = p.MinBet
		}
	default:
		if won {
			modeWin(g)
			st.Ledger = math.Max(0, add2(st.Ledger, -p.MinBet))
			st.Half1, st.Half2 = splitHalves(st.Ledger, p.MaxSplitBet)
			st.Step = models.SplitPay1
			st.NextBet = st.Half1
		} else {
			st.Ledger = add2(st.Ledger, p.MinBet)
			modeLoss(g, neutral)
			st.NextBet = p.MinBet
		}
	}
	g.State = st
	return checkBounds(g, p)
}

// splitHalves divides a ledger into a larger first half, capped at limit, and the rest
func splitHalves(ledger, limit float64) (float64, float64) {
	half1 := math.Ceil(ledger / 2)
	if half1 > limit {
		half1 = limit
	}
	return half1, add2(ledger, -half1)
}

func checkBounds(g *models.Game, p models.SeriesParams) models.EndReason {
	if g.PnL >= p.TakeProfit {
		return models.EndReasonTakeProfit
	}
	if g.PnL <= p.StopLoss {
		return models.EndReasonStopLoss
	}
	return ""
}

func modeWin(g *models.Game) {
	g.ModeLosses = 0
}

// modeLoss counts a genuine loss. SAME flips after two, OPP after one.
func modeLoss(g *models.Game, neutral bool) {
	if neutral {
		return
	}
	g.ModeLosses++
	if g.Mode == models.ModeSame {
		if g.ModeLosses >= 2 {
			flipMode(g, models.ModeOpp)
		}
		return
	}
	if g.ModeLosses >= 1 {
		flipMode(g, models.ModeSame)
	}
}

func flipMode(g *models.Game, mode models.Mode) {
	g.Mode = mode
	g.ModeLosses = 0
	g.ConsecWinsSame = 0
}

func enterStreak(g *models.Game, p models.SeriesParams) {
	g.State = models.StreakState{Bet: add2(g.LadderBet, p.Base)}
	g.ConsecWinsSame = 0
}

func exitStreak(g *models.Game, p models.SeriesParams) {
	g.State = models.NormalState{}
	g.LadderBet = p.StreakAnchor
	g.ConsecWinsSame = 0
}

func enterSplit(g *models.Game, p models.SeriesParams) {
	g.State = models.SplitState{Step: models.SplitProbe, Ledger: p.SplitLedgerSeed, NextBet: p.MinBet}
	g.ConsecWinsSame = 0
}

func clearSplit(g *models.Game, p models.SeriesParams) {
	g.State = models.NormalState{}
	g.LadderBet = p.SplitAnchor
	g.ConsecWinsSame = 0
}
