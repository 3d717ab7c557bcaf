// Package session implements the /session command.
package session

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tracker/bot/common"
	"tracker/service"
)

// Subcommand and option names of /session
const (
	SubcommandSettings   = "settings"
	SubcommandBankroll   = "bankroll"
	SubcommandNewEvening = "new-evening"
	SubcommandReset      = "reset"
	SubcommandExport     = "export"
	SubcommandStats      = "stats"

	optionGameType   = "game_type"
	optionSeries     = "series"
	optionStartMode  = "start_mode"
	optionAutoSeries = "auto_series"
	optionCarryMode  = "carry_mode"
	optionEnabled    = "enabled"
	optionStart      = "start"
	optionConfirm    = "confirm"
)

// Feature represents the session management feature
type Feature struct {
	service service.TrackerService
	stats   service.StatsService
}

// NewFeature creates a new session management feature instance
func NewFeature(trackerService service.TrackerService, statsService service.StatsService) *Feature {
	return &Feature{
		service: trackerService,
		stats:   statsService,
	}
}

// HandleCommand routes /session subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	sub := options[0]
	switch sub.Name {
	case SubcommandSettings:
		f.handleSettings(s, i, sub.Options)
	case SubcommandBankroll:
		f.handleBankroll(s, i, sub.Options)
	case SubcommandNewEvening:
		f.handleNewEvening(s, i)
	case SubcommandReset:
		f.handleReset(s, i, sub.Options)
	case SubcommandExport:
		f.handleExport(s, i)
	case SubcommandStats:
		f.handleStats(s, i)
	default:
		log.Warnf("Unknown session subcommand: %s", sub.Name)
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}

// Command returns the /session slash command definition
func Command() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "session",
		Description: "Manage the tracking session",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandSettings,
				Description: "Change game type, series and mode options",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionGameType,
						Description: "Table game being tracked",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Roulette", Value: "roulette"},
							{Name: "Baccarat", Value: "baccarat"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionSeries,
						Description: "Stake series",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "A", Value: "A"},
							{Name: "B", Value: "B"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionStartMode,
						Description: "Mode each game starts in",
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "SAME", Value: "SAME"},
							{Name: "OPP", Value: "OPP"},
						},
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        optionAutoSeries,
						Description: "Play one series B game after a series A stop-loss",
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        optionCarryMode,
						Description: "Start each game in the mode the last one ended in",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandBankroll,
				Description: "Turn the bankroll manager on or off",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        optionEnabled,
						Description: "Track the bankroll",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optionStart,
						Description: "Starting bankroll (leave empty to keep the current one)",
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandNewEvening,
				Description: "Start a new session keeping settings and bankroll",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandReset,
				Description: "Reset the session and delete the log and undo history",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        optionConfirm,
						Description: "Confirm the reset",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandExport,
				Description: "Download the session log as CSV",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        SubcommandStats,
				Description: "Show statistics for the stored session log",
			},
		},
	}
}
