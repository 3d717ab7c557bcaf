package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tracker/models"
)

// LogRepository implements the LogRepository interface on sqlite
type LogRepository struct {
	q queryable
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{q: db}
}

func newLogRepositoryWithTx(tx queryable) *LogRepository {
	return &LogRepository{q: tx}
}

// Sync drops stored rows outside the idx range of entries, then inserts the
// entries not stored yet.
func (r *LogRepository) Sync(ctx context.Context, sessionID string, entries []models.LogEntry) error {
	if len(entries) == 0 {
		if _, err := r.q.ExecContext(ctx, `DELETE FROM tracker_log WHERE session_id = ?`, sessionID); err != nil {
			return fmt.Errorf("failed to clear log for session %s: %w", sessionID, err)
		}
		return nil
	}

	first, last := entries[0].Idx, entries[len(entries)-1].Idx
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM tracker_log WHERE session_id = ? AND (idx < ? OR idx > ?)`,
		sessionID, first, last,
	); err != nil {
		return fmt.Errorf("failed to trim log for session %s: %w", sessionID, err)
	}

	var stored int
	if err := r.q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(idx), 0) FROM tracker_log WHERE session_id = ?`, sessionID,
	).Scan(&stored); err != nil {
		return fmt.Errorf("failed to get stored log position for session %s: %w", sessionID, err)
	}

	query := `
INSERT INTO tracker_log (
    session_id, idx, ts, game_no, series, game_type, outcome, pick, bet, result,
    delta, game_pnl, mode, mode_losses, phase, ledger, split_phase, next_split_bet,
    ladder_bet, consec_wins_same, note
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	for _, e := range entries {
		if e.Idx <= stored {
			continue
		}
		var nextSplitBet sql.NullFloat64
		if e.NextSplitBet != nil {
			nextSplitBet = sql.NullFloat64{Float64: *e.NextSplitBet, Valid: true}
		}
		if _, err := r.q.ExecContext(ctx, query,
			sessionID, e.Idx, e.Timestamp.UTC().Format(time.RFC3339Nano), e.GameNo, string(e.Series), string(e.GameType),
			e.Outcome, e.Pick, e.Bet, string(e.Result), e.Delta, e.GamePnL, string(e.Mode), e.ModeLosses,
			string(e.Phase), e.Ledger, string(e.SplitPhase), nextSplitBet, e.LadderBet, e.ConsecWinsSame, e.Note,
		); err != nil {
			return fmt.Errorf("failed to insert log entry %d for session %s: %w", e.Idx, sessionID, err)
		}
	}
	return nil
}

// GetBySession returns the stored entries of a session in idx order
func (r *LogRepository) GetBySession(ctx context.Context, sessionID string) ([]models.LogEntry, error) {
	query := `
SELECT
    idx, ts, game_no, series, game_type, outcome, pick, bet, result,
    delta, game_pnl, mode, mode_losses, phase, ledger, split_phase, next_split_bet,
    ladder_bet, consec_wins_same, note
FROM tracker_log
WHERE session_id = ?
ORDER BY idx
`
	rows, err := r.q.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get log for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	entries := make([]models.LogEntry, 0)
	for rows.Next() {
		var (
			e                                             models.LogEntry
			ts, series, gameType, result, mode, phase, sp string
			nextSplitBet                                  sql.NullFloat64
		)
		if err := rows.Scan(
			&e.Idx, &ts, &e.GameNo, &series, &gameType, &e.Outcome, &e.Pick, &e.Bet, &result,
			&e.Delta, &e.GamePnL, &mode, &e.ModeLosses, &phase, &e.Ledger, &sp, &nextSplitBet,
			&e.LadderBet, &e.ConsecWinsSame, &e.Note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}

		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp of entry %d: %w", e.Idx, err)
		}
		e.Series = models.Series(series)
		e.GameType = models.GameType(gameType)
		e.Result = models.Result(result)
		e.Mode = models.Mode(mode)
		e.Phase = models.Phase(phase)
		e.SplitPhase = models.SplitStep(sp)
		if nextSplitBet.Valid {
			v := nextSplitBet.Float64
			e.NextSplitBet = &v
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate log entries: %w", err)
	}

	return entries, nil
}
