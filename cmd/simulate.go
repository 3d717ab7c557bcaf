package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"tracker/config"
	"tracker/models"
	"tracker/simulate"
)

// Simulate plays simulated games against house odds and prints a summary to out
func Simulate(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("simulate", flag.ContinueOnError)
	flags.SetOutput(out)
	var (
		games      = flags.Int("games", 10000, "number of games to play")
		maxRounds  = flags.Int("max-rounds", simulate.DefaultMaxRounds, "abandon a game after this many rounds")
		seed       = flags.Int64("seed", 0, "random seed (0 picks one from the clock)")
		defaults   = flags.String("defaults", "", "YAML file with session defaults")
		gameType   = flags.String("game", "", "roulette or baccarat")
		series     = flags.String("series", "", "starting series, A or B")
		startMode  = flags.String("mode", "", "start mode, SAME or OPP")
		autoSeries = flags.Bool("auto-series", true, "play one series B game after a series A stop-loss")
		carryMode  = flags.Bool("carry", false, "start each game in the mode the last one ended in")
	)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	settings, err := config.LoadSessionDefaults(*defaults)
	if err != nil {
		return err
	}
	update := models.SettingsUpdate{}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "game":
			v := models.GameType(*gameType)
			update.GameType = &v
		case "series":
			v := models.Series(*series)
			update.Series = &v
		case "mode":
			v := models.Mode(*startMode)
			update.StartMode = &v
		case "auto-series":
			update.AutoSeries = autoSeries
		case "carry":
			update.CarryMode = carryMode
		}
	})
	settings = update.Apply(settings)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.WithFields(log.Fields{
		"games":    *games,
		"seed":     *seed,
		"gameType": settings.GameType,
		"series":   settings.Series,
	}).Info("Running simulation")

	result, err := simulate.Run(ctx, simulate.Config{
		Settings:  settings,
		Games:     *games,
		MaxRounds: *maxRounds,
	}, simulate.NewTableSource(settings.GameType, *seed))
	if err != nil {
		return err
	}

	printSimulation(out, settings, *seed, result)
	return nil
}

func printSimulation(out io.Writer, settings models.SessionSettings, seed int64, r simulate.Result) {
	fmt.Fprintf(out, "=== Simulation: %s, series %s, %s (seed %d) ===\n", settings.GameType, settings.Series, settings.StartMode, seed)
	fmt.Fprintf(out, "Games:        %d (%d unfinished)\n", r.Games, r.Unfinished)
	fmt.Fprintf(out, "Take-profit:  %d (%.2f%% of finished)\n", r.TakeProfits, r.TakeProfitRate())
	fmt.Fprintf(out, "Stop-loss:    %d\n", r.StopLosses)
	fmt.Fprintf(out, "Series B:     %d games\n", r.SeriesBGames)
	fmt.Fprintf(out, "Rounds/game:  %.1f\n", r.AverageRounds())
	fmt.Fprintf(out, "Net P&L:      %.2f (avg %.2f per game)\n", r.NetPnL, r.AveragePnL())
	fmt.Fprintf(out, "Best/worst:   %.2f / %.2f\n", r.BestGame, r.WorstGame)
}
