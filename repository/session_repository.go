package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tracker/database"
	"tracker/models"
	"tracker/service"
)

// SessionRepository implements the SessionRepository interface
type SessionRepository struct {
	q queryable
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *database.DB) *SessionRepository {
	return &SessionRepository{q: db.Pool}
}

// newSessionRepositoryWithTx creates a new session repository with a transaction
func newSessionRepositoryWithTx(tx queryable) *SessionRepository {
	return &SessionRepository{q: tx}
}

// GetCurrent returns the most recently saved session, without its log
func (r *SessionRepository) GetCurrent(ctx context.Context) (*models.Session, error) {
	query := `
		SELECT id, state
		FROM tracker_sessions
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var id string
	var state []byte
	err := r.q.QueryRow(ctx, query).Scan(&id, &state)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current session: %w", err)
	}

	return decodeSession(id, state)
}

// Save upserts the session state
func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	state, err := encodeSession(session)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tracker_sessions (id, state, updated_at)
		VALUES ($1, $2, clock_timestamp())
		ON CONFLICT (id) DO UPDATE
		SET state = EXCLUDED.state,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := r.q.Exec(ctx, query, session.ID, state); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.ID, err)
	}
	return nil
}

// DeleteOthers removes every session except keepID. Log rows go with them.
func (r *SessionRepository) DeleteOthers(ctx context.Context, keepID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM tracker_sessions WHERE id <> $1`, keepID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions other than %s: %w", keepID, err)
	}
	return tag.RowsAffected(), nil
}

// encodeSession serialises the session without its log and undo history
func encodeSession(session *models.Session) ([]byte, error) {
	stored := *session
	stored.Log = nil
	stored.History = nil

	state, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	return state, nil
}

func decodeSession(id string, state []byte) (*models.Session, error) {
	var session models.Session
	if err := json.Unmarshal(state, &session); err != nil {
		return nil, fmt.Errorf("%w: session %s: %v", service.ErrCorruptState, id, err)
	}
	session.ID = id
	return &session, nil
}
