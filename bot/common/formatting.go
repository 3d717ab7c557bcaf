package common

import (
	"fmt"
	"strconv"
	"time"
)

// FormatMoney formats an amount with two decimals
func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatSignedMoney formats an amount with two decimals and an explicit sign
func FormatSignedMoney(v float64) string {
	if v > 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatStake formats a stake without trailing zeros
func FormatStake(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
