package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"tracker/config"
	"tracker/events"
)

// Export writes the stored session log as CSV. An empty target or a directory
// gets the suggested file name; "-" writes to stdout.
func Export(ctx context.Context, target string) error {
	cfg := config.Get()

	trackerService, closeStore, err := openTracker(ctx, cfg, events.NewBus())
	if err != nil {
		return err
	}
	defer closeStore()

	var buf bytes.Buffer
	name, err := trackerService.ExportCSV(ctx, &buf)
	if err != nil {
		return err
	}

	if target == "-" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}

	path := exportPath(target, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.WithField("path", path).Info("Session log exported")
	return nil
}

func exportPath(target, name string) string {
	if target == "" {
		return name
	}
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, name)
	}
	return target
}
