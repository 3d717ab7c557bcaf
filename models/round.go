package models

// EndReason is why a game finished
type EndReason string

const (
	EndReasonTakeProfit EndReason = "TP"
	EndReasonStopLoss   EndReason = "SL"
)

// GameEnd reports a finished game to the presentation layer
type GameEnd struct {
	Reason     EndReason `json:"reason"`
	FinalPnL   float64   `json:"finalPnL"`
	GameNo     int       `json:"gameNo"`
	Series     Series    `json:"series"`
	TakeProfit float64   `json:"takeProfit"`
	StopLoss   float64   `json:"stopLoss"`

	// Bankroll is set when bankroll tracking is on and a current balance exists
	Bankroll    *float64 `json:"bankroll,omitempty"`
	BankrollNet *float64 `json:"bankrollNet,omitempty"`

	// NextSeries is the series the next game will play
	NextSeries Series `json:"nextSeries"`
}

// RoundReport is the result of submitting one outcome
type RoundReport struct {
	Entry       LogEntry
	StartedGame bool
	End         *GameEnd
}

// NextBet is what the player should do on the next round
type NextBet struct {
	Active    bool
	Observing bool
	Side      Outcome
	Stake     float64
}
