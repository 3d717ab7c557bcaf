package cmd

import (
	"context"

	"tracker/config"
	"tracker/events"
	"tracker/tui"
)

// RunTUI starts the terminal front end on the configured store
func RunTUI(ctx context.Context) error {
	cfg := config.Get()

	trackerService, closeStore, err := openTracker(ctx, cfg, events.NewBus())
	if err != nil {
		return err
	}
	defer closeStore()

	return tui.Run(ctx, trackerService)
}
