package models

import "time"

// Result classifies a logged round
type Result string

const (
	ResultWin     Result = "W"
	ResultLoss    Result = "L"
	ResultObserve Result = "OBS"
	ResultPush    Result = "P"
)

// LogEntry is an immutable audit record of one settled or observed round.
// Outcome and Pick hold display names (RED, BANKER, ...).
type LogEntry struct {
	Idx            int       `json:"idx"`
	Timestamp      time.Time `json:"ts"`
	GameNo         int       `json:"gameNo"`
	Series         Series    `json:"series"`
	GameType       GameType  `json:"gameType"`
	Outcome        string    `json:"outcome"`
	Pick           string    `json:"pick"`
	Bet            float64   `json:"bet"`
	Result         Result    `json:"result"`
	Delta          float64   `json:"delta"`
	GamePnL        float64   `json:"gamePnL"`
	Mode           Mode      `json:"mode"`
	ModeLosses     int       `json:"modeLosses"`
	Phase          Phase     `json:"phase"`
	Ledger         float64   `json:"ledger"`
	SplitPhase     SplitStep `json:"splitPhase,omitempty"`
	NextSplitBet   *float64  `json:"nextSplitBet"`
	LadderBet      float64   `json:"ladderBet"`
	ConsecWinsSame int       `json:"consecWinsSame"`
	Note           string    `json:"note"`
}
