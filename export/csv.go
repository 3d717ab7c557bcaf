package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"tracker/models"
)

// Columns is the CSV header, in column order
var Columns = []string{
	"idx", "ts", "gameNo", "series", "gameType", "outcome", "pick", "bet", "result", "delta",
	"gamePnL", "mode", "modeLosses", "phase", "ledger", "splitPhase", "nextSplitBet", "ladderBet",
	"consecWinsSame", "note",
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FileName returns the download name of a session export
func FileName(sessionID string) string {
	return fmt.Sprintf("APP_session_%s.csv", sessionID)
}

// WriteCSV writes a header row followed by one row per entry
func WriteCSV(w io.Writer, entries []models.LogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, entry := range entries {
		if err := cw.Write(Record(entry)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", entry.Idx, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Record renders one entry in column order
func Record(e models.LogEntry) []string {
	nextSplitBet := ""
	if e.NextSplitBet != nil {
		nextSplitBet = formatAmount(*e.NextSplitBet)
	}
	return []string{
		strconv.Itoa(e.Idx),
		e.Timestamp.UTC().Format(timestampLayout),
		strconv.Itoa(e.GameNo),
		string(e.Series),
		string(e.GameType),
		e.Outcome,
		e.Pick,
		formatAmount(e.Bet),
		string(e.Result),
		formatAmount(e.Delta),
		formatAmount(e.GamePnL),
		string(e.Mode),
		strconv.Itoa(e.ModeLosses),
		string(e.Phase),
		formatAmount(e.Ledger),
		string(e.SplitPhase),
		nextSplitBet,
		formatAmount(e.LadderBet),
		strconv.Itoa(e.ConsecWinsSame),
		e.Note,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseTimestamp reads a timestamp written by Record
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(timestampLayout, value)
}
