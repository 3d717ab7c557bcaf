package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func testSession() Session {
	return Session{
		ID:              "1700000000000",
		GameType:        GameTypeBaccarat,
		Series:          SeriesB,
		StartMode:       ModeOpp,
		AutoSeries:      true,
		PendingOneB:     true,
		BankrollOn:      true,
		BankrollStart:   floatPtr(1000),
		BankrollCurrent: floatPtr(1042.5),
		Game: Game{
			InGame:    true,
			Observed:  true,
			Number:    3,
			LastTrue:  OutcomeBanker,
			Mode:      ModeSame,
			LadderBet: 30,
			PnL:       -42.5,
			State:     SplitState{Step: SplitPay1, Ledger: 115, NextBet: 58, Half1: 58, Half2: 57},
		},
		PendingOutcome: OutcomePlayer,
		Log: []LogEntry{
			{
				Idx:          1,
				Timestamp:    time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC),
				GameNo:       3,
				Series:       SeriesB,
				GameType:     GameTypeBaccarat,
				Outcome:      "BANKER",
				Pick:         "PLAYER",
				Bet:          60,
				Result:       ResultLoss,
				Delta:        -60,
				GamePnL:      -42.5,
				Mode:         ModeSame,
				Phase:        PhaseSplit,
				Ledger:       120,
				SplitPhase:   SplitProbe,
				NextSplitBet: floatPtr(10),
				LadderBet:    60,
				Note:         "",
			},
		},
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	original := testSession()
	original.History = []Session{testSession()}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Session
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Empty(t, restored.History)
	original.History = nil
	assert.Equal(t, original, restored)
}

func TestGameJSONPhases(t *testing.T) {
	tests := []struct {
		name  string
		state PhaseState
		key   string
	}{
		{"normal", NormalState{}, ""},
		{"streak", StreakState{Bet: 23, TPHit: true}, "streak"},
		{"split", SplitState{Step: SplitProbe, Ledger: 60, NextBet: 5}, "split"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := Game{InGame: true, Number: 1, Mode: ModeSame, LadderBet: 5, State: tt.state}

			data, err := json.Marshal(game)
			require.NoError(t, err)

			var raw map[string]any
			require.NoError(t, json.Unmarshal(data, &raw))
			assert.Equal(t, string(tt.state.Phase()), raw["phase"])
			for _, key := range []string{"streak", "split"} {
				_, present := raw[key]
				assert.Equal(t, key == tt.key, present, key)
			}

			var restored Game
			require.NoError(t, json.Unmarshal(data, &restored))
			assert.Equal(t, game, restored)
		})
	}
}

func TestGameJSONRejectsBadPhase(t *testing.T) {
	var g Game
	assert.Error(t, json.Unmarshal([]byte(`{"phase":"SIDEWAYS"}`), &g))
	assert.Error(t, json.Unmarshal([]byte(`{"phase":"STREAK"}`), &g))
	assert.Error(t, json.Unmarshal([]byte(`{"phase":"SPLIT","split":{"step":"PAY3"}}`), &g))
}

func TestSessionClone(t *testing.T) {
	s := testSession()
	c := s.Clone()

	*c.BankrollCurrent = 0
	assert.Equal(t, 1042.5, *s.BankrollCurrent)

	c.Log = append(c.Log, LogEntry{Idx: 2})
	assert.Len(t, s.Log, 1)

	s.Log = append(s.Log, LogEntry{Idx: 2, Note: "live"})
	assert.Equal(t, "", c.Log[1].Note)
}

func TestSettingsUpdateApply(t *testing.T) {
	base := SessionSettings{GameType: GameTypeRoulette, Series: SeriesA, StartMode: ModeSame, AutoSeries: true}
	gt := GameTypeBaccarat
	carry := true

	assert.True(t, SettingsUpdate{}.IsEmpty())

	got := SettingsUpdate{GameType: &gt, CarryMode: &carry}.Apply(base)
	assert.Equal(t, SessionSettings{GameType: GameTypeBaccarat, Series: SeriesA, StartMode: ModeSame, AutoSeries: true, CarryMode: true}, got)
}
