package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"tracker/engine"
	"tracker/events"
	"tracker/export"
	"tracker/models"
)

type trackerService struct {
	uowFactory UnitOfWorkFactory
	defaults   models.SessionSettings
	now        func() time.Time
	newID      func() string

	mu      sync.Mutex
	session *models.Session
}

// Option customises a tracker service
type Option func(*trackerService)

// WithClock overrides the time source used for log timestamps
func WithClock(now func() time.Time) Option {
	return func(s *trackerService) { s.now = now }
}

// WithIDGenerator overrides how new session ids are made
func WithIDGenerator(newID func() string) Option {
	return func(s *trackerService) { s.newID = newID }
}

// NewTrackerService restores the most recently saved session, or starts a fresh one
// with the given defaults when nothing usable is stored.
func NewTrackerService(ctx context.Context, uowFactory UnitOfWorkFactory, defaults models.SessionSettings, opts ...Option) (TrackerService, error) {
	if err := engine.ValidateSettings(defaults); err != nil {
		return nil, err
	}

	s := &trackerService{
		uowFactory: uowFactory,
		defaults:   defaults,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	session, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		session = engine.NewSession(s.newID(), defaults)
		log.WithField("sessionID", session.ID).Info("Started new tracking session")
	} else {
		log.WithFields(log.Fields{
			"sessionID": session.ID,
			"entries":   len(session.Log),
			"gameNo":    session.Game.Number,
		}).Info("Restored tracking session")
	}
	s.session = session
	return s, nil
}

func (s *trackerService) load(ctx context.Context) (*models.Session, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := uow.SessionRepository().GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, ErrCorruptState) {
			log.WithError(err).Warn("Discarding unreadable session state")
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	entries, err := uow.LogRepository().GetBySession(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session log: %w", err)
	}
	session.Log = entries
	session.History = nil
	return session, nil
}

// persist writes the session and its trimmed log in one transaction and queues events
// for delivery after commit. With prune set, every other stored session is deleted.
func (s *trackerService) persist(ctx context.Context, evts []events.Event, prune bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.SessionRepository().Save(ctx, s.session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := uow.LogRepository().Sync(ctx, s.session.ID, storedLog(s.session.Log)); err != nil {
		return fmt.Errorf("failed to save session log: %w", err)
	}
	if prune {
		removed, err := uow.SessionRepository().DeleteOthers(ctx, s.session.ID)
		if err != nil {
			return fmt.Errorf("failed to prune old sessions: %w", err)
		}
		if removed > 0 {
			log.WithFields(log.Fields{
				"sessionID": s.session.ID,
				"removed":   removed,
			}).Info("Pruned replaced sessions")
		}
	}

	for _, evt := range evts {
		uow.EventBus().Publish(evt)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func storedLog(entries []models.LogEntry) []models.LogEntry {
	if n := len(entries); n > MaxStoredLogEntries {
		return entries[n-MaxStoredLogEntries:]
	}
	return entries
}

// mutate runs fn on the live session and persists the result. If fn or persistence
// fails the session is put back the way it was.
func (s *trackerService) mutate(ctx context.Context, op string, fn func(session *models.Session) ([]events.Event, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	backup := s.session.Clone()
	backup.History = s.session.History

	evts, err := fn(s.session)
	if err == nil {
		// only one session is kept once the id changes
		err = s.persist(ctx, evts, s.session.ID != backup.ID)
		if err != nil {
			log.WithFields(log.Fields{
				"sessionID": s.session.ID,
				"operation": op,
			}).WithError(err).Error("Failed to persist session, reverting")
		}
	}
	if err != nil {
		*s.session = backup
		return err
	}

	log.WithFields(log.Fields{
		"sessionID": s.session.ID,
		"operation": op,
		"gameNo":    s.session.Game.Number,
		"phase":     s.session.Game.Phase(),
		"gamePnL":   s.session.Game.PnL,
	}).Debug("Session updated")
	return nil
}

func (s *trackerService) Current(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.session.Clone()
	return &current, nil
}

func (s *trackerService) Next(ctx context.Context) (models.NextBet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return engine.Next(s.session), nil
}

func (s *trackerService) CanUndo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.session.History) > 0
}

func (s *trackerService) Stage(ctx context.Context, outcome models.Outcome) error {
	return s.mutate(ctx, "stage", func(session *models.Session) ([]events.Event, error) {
		return nil, engine.Stage(session, outcome)
	})
}

func (s *trackerService) Submit(ctx context.Context) (*models.RoundReport, error) {
	var report *models.RoundReport
	err := s.mutate(ctx, "submit", func(session *models.Session) ([]events.Event, error) {
		var err error
		report, err = engine.Submit(session, s.now())
		if err != nil {
			return nil, err
		}
		return roundEvents(session.ID, report), nil
	})
	if err != nil {
		return nil, err
	}
	logRound(report)
	return report, nil
}

func (s *trackerService) Record(ctx context.Context, outcome models.Outcome) (*models.RoundReport, error) {
	var report *models.RoundReport
	err := s.mutate(ctx, "record", func(session *models.Session) ([]events.Event, error) {
		var err error
		report, err = engine.Record(session, outcome, s.now())
		if err != nil {
			return nil, err
		}
		return roundEvents(session.ID, report), nil
	})
	if err != nil {
		return nil, err
	}
	logRound(report)
	return report, nil
}

func roundEvents(sessionID string, report *models.RoundReport) []events.Event {
	evts := []events.Event{events.RoundRecordedEvent{SessionID: sessionID, Entry: report.Entry}}
	if report.End != nil {
		evts = append(evts, events.GameEndedEvent{SessionID: sessionID, End: *report.End})
	}
	return evts
}

func logRound(report *models.RoundReport) {
	fields := log.Fields{
		"idx":     report.Entry.Idx,
		"gameNo":  report.Entry.GameNo,
		"outcome": report.Entry.Outcome,
		"result":  report.Entry.Result,
		"bet":     report.Entry.Bet,
		"delta":   report.Entry.Delta,
	}
	if report.End == nil {
		log.WithFields(fields).Debug("Round recorded")
		return
	}
	fields["reason"] = report.End.Reason
	fields["finalPnL"] = report.End.FinalPnL
	log.WithFields(fields).Info("Game ended")
}

func (s *trackerService) ClearStaged(ctx context.Context) error {
	return s.mutate(ctx, "clear", func(session *models.Session) ([]events.Event, error) {
		engine.ClearStaged(session)
		return nil, nil
	})
}

func (s *trackerService) StartNewGame(ctx context.Context) error {
	return s.mutate(ctx, "new_game", func(session *models.Session) ([]events.Event, error) {
		return nil, engine.StartNewGame(session)
	})
}

func (s *trackerService) Undo(ctx context.Context) (bool, error) {
	s.mu.Lock()
	empty := len(s.session.History) == 0
	s.mu.Unlock()
	if empty {
		return false, nil
	}

	undone := false
	err := s.mutate(ctx, "undo", func(session *models.Session) ([]events.Event, error) {
		undone = engine.Undo(session)
		return nil, nil
	})
	if err != nil {
		return false, err
	}
	return undone, nil
}

func (s *trackerService) ApplyBankroll(ctx context.Context, on bool, startInput string) error {
	return s.mutate(ctx, "bankroll", func(session *models.Session) ([]events.Event, error) {
		return nil, engine.ApplyBankroll(session, on, startInput)
	})
}

func (s *trackerService) Configure(ctx context.Context, update models.SettingsUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	return s.mutate(ctx, "configure", func(session *models.Session) ([]events.Event, error) {
		return nil, engine.Configure(session, update.Apply(session.Settings()))
	})
}

func (s *trackerService) NewEvening(ctx context.Context) error {
	return s.mutate(ctx, "new_evening", func(session *models.Session) ([]events.Event, error) {
		previous := session.ID
		engine.NewEvening(session, s.newID())
		return []events.Event{events.SessionResetEvent{
			PreviousSessionID: previous,
			SessionID:         session.ID,
			Kind:              events.ResetKindNewEvening,
		}}, nil
	})
}

func (s *trackerService) Reset(ctx context.Context) error {
	return s.mutate(ctx, "reset", func(session *models.Session) ([]events.Event, error) {
		previous := session.ID
		engine.Reset(session, s.newID(), s.defaults)
		return []events.Event{events.SessionResetEvent{
			PreviousSessionID: previous,
			SessionID:         session.ID,
			Kind:              events.ResetKindFull,
		}}, nil
	})
}

func (s *trackerService) ExportCSV(ctx context.Context, w io.Writer) (string, error) {
	s.mu.Lock()
	id := s.session.ID
	entries := s.session.Log[:len(s.session.Log):len(s.session.Log)]
	s.mu.Unlock()

	if err := export.WriteCSV(w, entries); err != nil {
		return "", fmt.Errorf("failed to export session %s: %w", id, err)
	}
	return export.FileName(id), nil
}
