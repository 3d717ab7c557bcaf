package models

import (
	"encoding/json"
	"fmt"
)

// Phase names the progression phase of an active game
type Phase string

const (
	PhaseNormal Phase = "NORMAL"
	PhaseStreak Phase = "STREAK"
	PhaseSplit  Phase = "SPLIT"
)

// SplitStep is the sub-state of a split recovery
type SplitStep string

const (
	SplitProbe SplitStep = "PROBE"
	SplitPay1  SplitStep = "PAY1"
	SplitPay2  SplitStep = "PAY2"
)

// PhaseState is the data carried by the active phase. Implemented by
// NormalState, StreakState and SplitState.
type PhaseState interface {
	Phase() Phase
	phaseState()
}

// NormalState is the ladder phase; the stake lives in Game.LadderBet
type NormalState struct{}

// StreakState grows the stake by the series base on every win
type StreakState struct {
	Bet   float64 `json:"bet"`
	TPHit bool    `json:"tpHitDuringStreak"`
}

// SplitState works a recovery ledger down in probe/half/remainder steps.
// Half1 and Half2 are only meaningful from PAY1 onwards.
type SplitState struct {
	Step    SplitStep `json:"step"`
	Ledger  float64   `json:"ledger"`
	NextBet float64   `json:"nextBet"`
	Half1   float64   `json:"half1"`
	Half2   float64   `json:"half2"`
}

func (NormalState) Phase() Phase { return PhaseNormal }
func (StreakState) Phase() Phase { return PhaseStreak }
func (SplitState) Phase() Phase  { return PhaseSplit }

func (NormalState) phaseState() {}
func (StreakState) phaseState() {}
func (SplitState) phaseState()  {}

// Game is the state of the current (or last finished) game within a session
type Game struct {
	InGame         bool       `json:"inGame"`
	Observed       bool       `json:"observed"`
	Number         int        `json:"gameNo"`
	LastTrue       Outcome    `json:"lastTrue,omitempty"`
	Mode           Mode       `json:"mode"`
	ModeLosses     int        `json:"modeLosses"`
	ConsecWinsSame int        `json:"consecWinsSame"`
	LadderBet      float64    `json:"ladderBet"`
	PnL            float64    `json:"gamePnL"`
	State          PhaseState `json:"-"`
}

// Phase returns the active phase, NORMAL when no phase data is set
func (g Game) Phase() Phase {
	if g.State == nil {
		return PhaseNormal
	}
	return g.State.Phase()
}

type gameFields Game

type gameJSON struct {
	gameFields
	Phase  Phase        `json:"phase"`
	Streak *StreakState `json:"streak,omitempty"`
	Split  *SplitState  `json:"split,omitempty"`
}

// MarshalJSON flattens the phase union into a phase tag plus the active phase's data
func (g Game) MarshalJSON() ([]byte, error) {
	out := gameJSON{gameFields: gameFields(g), Phase: g.Phase()}
	switch st := g.State.(type) {
	case StreakState:
		out.Streak = &st
	case SplitState:
		out.Split = &st
	}
	return json.Marshal(out)
}

// UnmarshalJSON rebuilds the phase union from its tag
func (g *Game) UnmarshalJSON(data []byte) error {
	var in gameJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*g = Game(in.gameFields)
	switch in.Phase {
	case PhaseNormal, "":
		g.State = NormalState{}
	case PhaseStreak:
		if in.Streak == nil {
			return fmt.Errorf("phase %s without streak data", in.Phase)
		}
		g.State = *in.Streak
	case PhaseSplit:
		if in.Split == nil {
			return fmt.Errorf("phase %s without split data", in.Phase)
		}
		switch in.Split.Step {
		case SplitProbe, SplitPay1, SplitPay2:
		default:
			return fmt.Errorf("unknown split step %q", in.Split.Step)
		}
		g.State = *in.Split
	default:
		return fmt.Errorf("unknown phase %q", in.Phase)
	}
	return nil
}
