package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		money    string
		signed   string
		stakeFmt string
	}{
		{"zero", 0, "0.00", "0.00", "0"},
		{"whole", 40, "40.00", "+40.00", "40"},
		{"commission", 14.25, "14.25", "+14.25", "14.25"},
		{"loss", -100, "-100.00", "-100.00", "-100"},
		{"rounding", 2.005, "2.00", "+2.00", "2.005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.money, FormatMoney(tt.value))
			assert.Equal(t, tt.signed, FormatSignedMoney(tt.value))
			assert.Equal(t, tt.stakeFmt, FormatStake(tt.value))
		})
	}
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, "<t:1714597200:R>", FormatDiscordTimestamp(ts, "R"))
}
