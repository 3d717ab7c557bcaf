// Package simulate plays the progression against generated outcomes to estimate
// how often games reach take-profit or stop-loss.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"tracker/engine"
	"tracker/models"
)

// DefaultMaxRounds caps a single simulated game
const DefaultMaxRounds = 1000

// Config controls a simulation run
type Config struct {
	Settings models.SessionSettings
	Games    int
	// MaxRounds abandons a game that has not ended after this many rounds
	MaxRounds int
}

// Result aggregates a simulation run
type Result struct {
	Games        int
	TakeProfits  int
	StopLosses   int
	Unfinished   int
	Rounds       int
	SeriesBGames int
	NetPnL       float64
	BestGame     float64
	WorstGame    float64
}

// Finished returns the number of games that reached take-profit or stop-loss
func (r Result) Finished() int {
	return r.TakeProfits + r.StopLosses
}

// TakeProfitRate returns the share of finished games that hit take-profit, in percent
func (r Result) TakeProfitRate() float64 {
	if r.Finished() == 0 {
		return 0
	}
	return float64(r.TakeProfits) / float64(r.Finished()) * 100
}

// AveragePnL returns the mean P&L of finished games
func (r Result) AveragePnL() float64 {
	if r.Finished() == 0 {
		return 0
	}
	return r.NetPnL / float64(r.Finished())
}

// AverageRounds returns the mean number of rounds per game
func (r Result) AverageRounds() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Rounds) / float64(r.Games)
}

// Run plays cfg.Games games on one session, drawing every round from src.
// Bankroll tracking stays off; net P&L counts finished games only.
func Run(ctx context.Context, cfg Config, src Source) (Result, error) {
	if err := engine.ValidateSettings(cfg.Settings); err != nil {
		return Result{}, err
	}
	if cfg.Games <= 0 {
		return Result{}, errors.New("number of games must be positive")
	}
	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}

	session := engine.NewSession("simulation", cfg.Settings)
	now := time.Unix(0, 0)
	net := decimal.Zero
	var result Result

	for game := 0; game < cfg.Games; game++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := engine.StartNewGame(session); err != nil {
			return result, fmt.Errorf("failed to start game %d: %w", game+1, err)
		}
		result.Games++

		end, rounds, err := playGame(session, src, now, maxRounds)
		result.Rounds += rounds
		if err != nil {
			return result, fmt.Errorf("game %d: %w", game+1, err)
		}
		if end == nil {
			result.Unfinished++
			// abandon the game so the next one can start
			session.Game.InGame = false
			session.Game.Observed = false
			continue
		}

		switch end.Reason {
		case models.EndReasonTakeProfit:
			result.TakeProfits++
		case models.EndReasonStopLoss:
			result.StopLosses++
		}
		if end.Series == models.SeriesB {
			result.SeriesBGames++
		}
		if result.Finished() == 1 || end.FinalPnL > result.BestGame {
			result.BestGame = end.FinalPnL
		}
		if result.Finished() == 1 || end.FinalPnL < result.WorstGame {
			result.WorstGame = end.FinalPnL
		}
		net = net.Add(decimal.NewFromFloat(end.FinalPnL))
	}

	result.NetPnL = net.Round(2).InexactFloat64()
	log.WithFields(log.Fields{
		"games":       result.Games,
		"takeProfits": result.TakeProfits,
		"stopLosses":  result.StopLosses,
		"unfinished":  result.Unfinished,
		"netPnL":      result.NetPnL,
	}).Debug("Simulation finished")
	return result, nil
}

func playGame(session *models.Session, src Source, now time.Time, maxRounds int) (*models.GameEnd, int, error) {
	for round := 1; round <= maxRounds; round++ {
		report, err := engine.Record(session, src.Next(), now)
		if err != nil {
			return nil, round, err
		}
		// nothing is undone or exported here
		session.Log = nil
		session.History = nil
		if report.End != nil {
			return report.End, round, nil
		}
	}
	return nil, maxRounds, nil
}
