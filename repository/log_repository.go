package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tracker/database"
	"tracker/models"
)

// LogRepository implements the LogRepository interface
type LogRepository struct {
	q queryable
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *database.DB) *LogRepository {
	return &LogRepository{q: db.Pool}
}

// newLogRepositoryWithTx creates a new log repository with a transaction
func newLogRepositoryWithTx(tx queryable) *LogRepository {
	return &LogRepository{q: tx}
}

// Sync drops stored rows outside the idx range of entries (undone rows and rows
// older than the retained tail), then inserts the entries not stored yet.
func (r *LogRepository) Sync(ctx context.Context, sessionID string, entries []models.LogEntry) error {
	if len(entries) == 0 {
		if _, err := r.q.Exec(ctx, `DELETE FROM tracker_log WHERE session_id = $1`, sessionID); err != nil {
			return fmt.Errorf("failed to clear log for session %s: %w", sessionID, err)
		}
		return nil
	}

	first, last := entries[0].Idx, entries[len(entries)-1].Idx
	deleteQuery := `
		DELETE FROM tracker_log
		WHERE session_id = $1 AND (idx < $2 OR idx > $3)
	`
	if _, err := r.q.Exec(ctx, deleteQuery, sessionID, first, last); err != nil {
		return fmt.Errorf("failed to trim log for session %s: %w", sessionID, err)
	}

	var stored int
	maxQuery := `SELECT COALESCE(MAX(idx), 0) FROM tracker_log WHERE session_id = $1`
	if err := r.q.QueryRow(ctx, maxQuery, sessionID).Scan(&stored); err != nil {
		return fmt.Errorf("failed to get stored log position for session %s: %w", sessionID, err)
	}

	insertQuery := `
		INSERT INTO tracker_log (
			session_id, idx, ts, game_no, series, game_type, outcome, pick, bet, result,
			delta, game_pnl, mode, mode_losses, phase, ledger, split_phase, next_split_bet,
			ladder_bet, consec_wins_same, note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	batch := &pgx.Batch{}
	for _, e := range entries {
		if e.Idx <= stored {
			continue
		}
		batch.Queue(insertQuery,
			sessionID, e.Idx, e.Timestamp, e.GameNo, string(e.Series), string(e.GameType), e.Outcome, e.Pick, e.Bet, string(e.Result),
			e.Delta, e.GamePnL, string(e.Mode), e.ModeLosses, string(e.Phase), e.Ledger, string(e.SplitPhase), e.NextSplitBet,
			e.LadderBet, e.ConsecWinsSame, e.Note,
		)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := r.q.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert log entry for session %s: %w", sessionID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to insert log entries for session %s: %w", sessionID, err)
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
		WHERE session_id = $1
		ORDER BY idx
	`

	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get log for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	entries := make([]models.LogEntry, 0)
	for rows.Next() {
		var e models.LogEntry
		var series, gameType, result, mode, phase, splitPhase string
		err := rows.Scan(
			&e.Idx, &e.Timestamp, &e.GameNo, &series, &gameType, &e.Outcome, &e.Pick, &e.Bet, &result,
			&e.Delta, &e.GamePnL, &mode, &e.ModeLosses, &phase, &e.Ledger, &splitPhase, &e.NextSplitBet,
			&e.LadderBet, &e.ConsecWinsSame, &e.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		e.Series = models.Series(series)
		e.GameType = models.GameType(gameType)
		e.Result = models.Result(result)
		e.Mode = models.Mode(mode)
		e.Phase = models.Phase(phase)
		e.SplitPhase = models.SplitStep(splitPhase)
		e.Timestamp = e.Timestamp.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate log entries: %w", err)
	}

	return entries, nil
}
