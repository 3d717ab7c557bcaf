package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tracker/models"
)

// ApplyGameResult adds a finished game's P&L to the running bankroll
func ApplyGameResult(s *models.Session, pnl float64) {
	if !s.BankrollOn || s.BankrollCurrent == nil {
		return
	}
	current := add2(*s.BankrollCurrent, pnl)
	s.BankrollCurrent = &current
}

// BankrollNet returns current minus start, when both are known
func BankrollNet(s *models.Session) (float64, bool) {
	if s.BankrollStart == nil || s.BankrollCurrent == nil {
		return 0, false
	}
	return add2(*s.BankrollCurrent, -*s.BankrollStart), true
}

// ApplyBankroll toggles bankroll tracking. A non-blank start resets both the start
// and current balance; a blank start keeps what is there. Input is validated before
// the session is touched.
func ApplyBankroll(s *models.Session, on bool, startInput string) error {
	startInput = strings.TrimSpace(startInput)

	var start *float64
	if startInput != "" {
		v, err := strconv.ParseFloat(startInput, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q", ErrInvalidBankroll, startInput)
		}
		v = round2(v)
		start = &v
	}

	PushSnapshot(s)
	s.BankrollOn = on
	if start != nil {
		current := *start
		s.BankrollStart = start
		s.BankrollCurrent = &current
	}
	return nil
}
