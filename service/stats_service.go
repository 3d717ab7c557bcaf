package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"tracker/models"
)

// statsService implements the StatsService interface
type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

// GetSessionStats returns statistics for the stored log of the current session
func (s *statsService) GetSessionStats(ctx context.Context) (*models.SessionStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := uow.SessionRepository().GetCurrent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return SummarizeLog("", nil), nil
	}

	entries, err := uow.LogRepository().GetBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session log: %w", err)
	}

	return SummarizeLog(session.ID, entries), nil
}

// SummarizeLog computes statistics over log entries
func SummarizeLog(sessionID string, entries []models.LogEntry) *models.SessionStats {
	stats := &models.SessionStats{
		SessionID:     sessionID,
		RoundsByPhase: make(map[models.Phase]int),
	}

	staked, net := decimal.Zero, decimal.Zero
	games := make(map[int]struct{})
	for _, e := range entries {
		games[e.GameNo] = struct{}{}
		if e.Result == models.ResultObserve {
			stats.Observed++
			continue
		}

		stats.Rounds++
		stats.RoundsByPhase[e.Phase]++
		staked = staked.Add(decimal.NewFromFloat(e.Bet))
		net = net.Add(decimal.NewFromFloat(e.Delta))

		switch e.Result {
		case models.ResultWin:
			stats.Wins++
			if e.Delta > stats.BiggestWin {
				stats.BiggestWin = e.Delta
			}
		case models.ResultLoss:
			stats.Losses++
			if e.Delta < stats.BiggestLoss {
				stats.BiggestLoss = e.Delta
			}
		case models.ResultPush:
			stats.Pushes++
		}
	}

	stats.Games = len(games)
	stats.TotalStaked = staked.Round(2).InexactFloat64()
	stats.NetResult = net.Round(2).InexactFloat64()
	if decided := stats.Wins + stats.Losses; decided > 0 {
		stats.WinPercentage = float64(stats.Wins) / float64(decided) * 100
	}

	return stats
}
