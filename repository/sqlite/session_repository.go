package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tracker/models"
	"tracker/service"
)

// SessionRepository implements the SessionRepository interface on sqlite
type SessionRepository struct {
	q queryable
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{q: db}
}

func newSessionRepositoryWithTx(tx queryable) *SessionRepository {
	return &SessionRepository{q: tx}
}

// GetCurrent returns the most recently saved session, without its log
func (r *SessionRepository) GetCurrent(ctx context.Context) (*models.Session, error) {
	query := `
SELECT id, state
FROM tracker_sessions
ORDER BY updated_at_ns DESC
LIMIT 1
`
	var id, state string
	err := r.q.QueryRowContext(ctx, query).Scan(&id, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(state), &session); err != nil {
		return nil, fmt.Errorf("%w: session %s: %v", service.ErrCorruptState, id, err)
	}
	session.ID = id
	return &session, nil
}

// Save upserts the session state, leaving out the log and undo history
func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	stored := *session
	stored.Log = nil
	stored.History = nil

	state, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}

	now := time.Now().UTC()
	query := `
INSERT INTO tracker_sessions (id, state, created_at_ms, updated_at_ns)
VALUES (?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    state = excluded.state,
    updated_at_ns = excluded.updated_at_ns
`
	if _, err := r.q.ExecContext(ctx, query, session.ID, string(state), now.UnixMilli(), now.UnixNano()); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}

// DeleteOthers removes every session except keepID. Log rows go with them.
func (r *SessionRepository) DeleteOthers(ctx context.Context, keepID string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM tracker_sessions WHERE id <> ?`, keepID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions other than %s: %w", keepID, err)
	}
	return res.RowsAffected()
}
