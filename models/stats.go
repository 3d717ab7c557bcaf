package models

// SessionStats summarises the stored log of a session
type SessionStats struct {
	SessionID string

	Rounds   int // settled rounds, pushes included
	Observed int
	Wins     int
	Losses   int
	Pushes   int
	Games    int

	WinPercentage float64
	TotalStaked   float64
	NetResult     float64
	BiggestWin    float64
	BiggestLoss   float64

	// RoundsByPhase counts settled rounds per phase they were played in
	RoundsByPhase map[Phase]int
}
