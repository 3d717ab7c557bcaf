package engine

import "tracker/models"

var (
	seriesA = models.SeriesParams{
		Base:            5,
		TakeProfit:      40,
		StopLoss:        -100,
		LossIncrement:   3,
		WinDecrement:    2,
		MinBet:          5,
		MaxBet:          30,
		StreakAnchor:    18,
		SplitAnchor:     15,
		MaxSplitBet:     90,
		SplitLedgerSeed: 60,
	}
	seriesB = models.SeriesParams{
		Base:            10,
		TakeProfit:      80,
		StopLoss:        -200,
		LossIncrement:   6,
		WinDecrement:    4,
		MinBet:          10,
		MaxBet:          60,
		StreakAnchor:    36,
		SplitAnchor:     30,
		MaxSplitBet:     180,
		SplitLedgerSeed: 120,
	}
)

// ParamsFor returns the constants of a series. Anything other than B plays A.
func ParamsFor(series models.Series) models.SeriesParams {
	if series == models.SeriesB {
		return seriesB
	}
	return seriesA
}
