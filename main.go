package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"tracker/cmd"
	"tracker/config"
	"tracker/database"
	"tracker/logging"
)

const usage = `usage: tracker [command]

commands:
  (none)                 run the Discord bot
  tui                    run the terminal UI
  export [file|dir|-]    write the stored session log as CSV
  simulate [flags]       play simulated games at house odds (-h for flags)
  migrate up|down [n]|status
`

func main() {
	args := os.Args[1:]
	command := ""
	if len(args) > 0 {
		command = args[0]
	}

	// Migrations only need the store location, not the full config
	if command == "migrate" {
		if err := handleMigrationCommand(args[1:]); err != nil {
			log.Fatal("Migration error: ", err)
		}
		return
	}

	// Simulations never touch the store
	if command == "simulate" {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if err := cmd.Simulate(ctx, args[1:], os.Stdout); err != nil {
			cancel()
			log.Fatal("Simulation error: ", err)
		}
		return
	}

	if command != "" && command != "tui" && command != "export" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Get()
	closeLog, err := logging.Setup(logging.Config{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
		JSON:  cfg.IsProduction(),
		Quiet: command == "tui",
	})
	if err != nil {
		log.Fatal("Logging setup error: ", err)
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	switch command {
	case "tui":
		err = cmd.RunTUI(ctx)
	case "export":
		target := ""
		if len(args) > 1 {
			target = args[1]
		}
		err = cmd.Export(ctx, target)
	default:
		err = cmd.Run(ctx)
	}
	if err != nil {
		log.WithError(err).Error("Application error")
		closeLog()
		os.Exit(1)
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: tracker migrate [up|down|status] [args...]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(args) > 1 {
			steps = args[1]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}
