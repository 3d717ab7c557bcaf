package engine

import "errors"

var (
	ErrInvalidOutcome  = errors.New("outcome is not valid for this game type")
	ErrNothingStaged   = errors.New("no outcome staged")
	ErrGameInProgress  = errors.New("a game is already in progress")
	ErrInvalidBankroll = errors.New("bankroll start must be a number")
	ErrInvalidSetting  = errors.New("invalid session setting")
)
