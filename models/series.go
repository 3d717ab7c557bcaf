package models

// SeriesParams are the fixed stake constants of one series
type SeriesParams struct {
	Base            float64
	TakeProfit      float64
	StopLoss        float64
	LossIncrement   float64
	WinDecrement    float64
	MinBet          float64
	MaxBet          float64
	StreakAnchor    float64
	SplitAnchor     float64
	MaxSplitBet     float64
	SplitLedgerSeed float64
}
