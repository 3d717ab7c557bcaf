package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"tracker/config"
	"tracker/database"
	"tracker/events"
	"tracker/repository"
	"tracker/repository/sqlite"
	"tracker/service"
)

// store is an opened session store
type store struct {
	uowFactory service.UnitOfWorkFactory
	close      func()
}

// openStore connects to the configured store. A sqlite store is migrated on
// open; postgres is migrated with `tracker migrate up`.
func openStore(ctx context.Context, cfg *config.Config, eventBus *events.Bus) (*store, error) {
	switch cfg.StoreDriver {
	case database.DriverSQLite:
		log.WithField("path", cfg.SQLitePath).Info("Opening sqlite store...")
		if err := database.RunSQLiteMigrations(cfg.SQLitePath); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite store: %w", err)
		}
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return &store{
			uowFactory: sqlite.NewUnitOfWorkFactory(db, eventBus),
			close:      func() { _ = db.Close() },
		}, nil

	default:
		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established successfully")
		return &store{
			uowFactory: repository.NewUnitOfWorkFactory(db, eventBus),
			close:      db.Close,
		}, nil
	}
}

// openTracker opens the store and restores the live session on it
func openTracker(ctx context.Context, cfg *config.Config, eventBus *events.Bus) (service.TrackerService, func(), error) {
	st, err := openStore(ctx, cfg, eventBus)
	if err != nil {
		return nil, nil, err
	}

	trackerService, err := service.NewTrackerService(ctx, st.uowFactory, cfg.SessionDefaults)
	if err != nil {
		st.close()
		return nil, nil, fmt.Errorf("failed to initialize tracker service: %w", err)
	}
	return trackerService, st.close, nil
}
