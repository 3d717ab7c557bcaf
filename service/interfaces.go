package service

import (
	"context"
	"errors"
	"io"

	"tracker/events"
	"tracker/models"
)

// ErrCorruptState is returned by repositories when a stored session cannot be decoded
var ErrCorruptState = errors.New("stored session state is corrupt")

// MaxStoredLogEntries is how many of the newest log entries are kept in storage
const MaxStoredLogEntries = 5000

// SessionRepository defines the interface for session state persistence
type SessionRepository interface {
	// GetCurrent returns the most recently saved session without its log, or nil when none exists
	GetCurrent(ctx context.Context) (*models.Session, error)

	// Save upserts the session state. The log and undo history are not written.
	Save(ctx context.Context, session *models.Session) error

	// DeleteOthers removes every stored session except keepID, log rows included
	DeleteOthers(ctx context.Context, keepID string) (int64, error)
}

// LogRepository defines the interface for audit log persistence
type LogRepository interface {
	// Sync makes the stored log of a session match entries, which must be in idx order
	Sync(ctx context.Context, sessionID string, entries []models.LogEntry) error

	// GetBySession returns the stored entries of a session in idx order
	GetBySession(ctx context.Context, sessionID string) ([]models.LogEntry, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	SessionRepository() SessionRepository
	LogRepository() LogRepository

	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TrackerService defines the operations on the live tracking session
type TrackerService interface {
	// Current returns a copy of the live session, without undo history
	Current(ctx context.Context) (*models.Session, error)

	// Next returns the side and stake for the next round
	Next(ctx context.Context) (models.NextBet, error)

	// CanUndo reports whether an undo snapshot exists
	CanUndo(ctx context.Context) bool

	// Stage marks an outcome for submission
	Stage(ctx context.Context, outcome models.Outcome) error

	// Submit applies the staged outcome
	Submit(ctx context.Context) (*models.RoundReport, error)

	// Record stages and submits an outcome in one step
	Record(ctx context.Context, outcome models.Outcome) (*models.RoundReport, error)

	// ClearStaged drops the staged outcome
	ClearStaged(ctx context.Context) error

	// StartNewGame begins a game; it fails while one is running
	StartNewGame(ctx context.Context) error

	// Undo restores the previous snapshot. It reports false when there was nothing to undo.
	Undo(ctx context.Context) (bool, error)

	// ApplyBankroll toggles bankroll tracking and optionally sets a new start
	ApplyBankroll(ctx context.Context, on bool, startInput string) error

	// Configure changes session settings
	Configure(ctx context.Context, update models.SettingsUpdate) error

	// NewEvening starts a new session keeping settings and bankroll
	NewEvening(ctx context.Context) error

	// Reset replaces the session with a fresh default one
	Reset(ctx context.Context) error

	// ExportCSV writes the session log as CSV and returns the suggested file name
	ExportCSV(ctx context.Context, w io.Writer) (string, error)
}

// StatsService defines statistics over the stored session log
type StatsService interface {
	// GetSessionStats summarises the stored log of the current session
	GetSessionStats(ctx context.Context) (*models.SessionStats, error)
}
