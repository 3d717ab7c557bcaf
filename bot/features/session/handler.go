package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tracker/bot/common"
	"tracker/engine"
	"tracker/models"
)

func (f *Feature) handleSettings(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	update := parseSettingsUpdate(options)
	if update.IsEmpty() {
		common.RespondWithError(s, i, "Pick at least one setting to change.")
		return
	}

	if err := f.service.Configure(context.Background(), update); err != nil {
		common.HandleError(s, i, toBotError(err), false)
		return
	}

	common.LogResponseError(i, common.RespondWithSuccess(s, i, "Settings updated.", true))
}

func (f *Feature) handleBankroll(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var (
		enabled bool
		start   string
	)
	for _, opt := range options {
		switch opt.Name {
		case optionEnabled:
			enabled = opt.BoolValue()
		case optionStart:
			start = opt.StringValue()
		}
	}

	if err := f.service.ApplyBankroll(context.Background(), enabled, start); err != nil {
		common.HandleError(s, i, toBotError(err), false)
		return
	}

	message := "Bankroll manager turned off."
	if enabled {
		message = "Bankroll manager turned on."
	}
	common.LogResponseError(i, common.RespondWithSuccess(s, i, message, true))
}

func (f *Feature) handleNewEvening(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := f.service.NewEvening(context.Background()); err != nil {
		common.HandleError(s, i, toBotError(err), false)
		return
	}

	common.LogResponseError(i, common.RespondWithSuccess(s, i, "New evening started. Settings and bankroll carried over.", false))
}

func (f *Feature) handleReset(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	confirmed := false
	for _, opt := range options {
		if opt.Name == optionConfirm {
			confirmed = opt.BoolValue()
		}
	}
	if !confirmed {
		common.RespondWithError(s, i, "Reset not confirmed. Nothing was changed.")
		return
	}

	if err := f.service.Reset(context.Background()); err != nil {
		common.HandleError(s, i, toBotError(err), false)
		return
	}

	log.WithField("user_id", common.UserID(i)).Info("Session reset from Discord")
	common.LogResponseError(i, common.RespondWithSuccess(s, i, "Session reset. Log and undo history deleted.", false))
}

func (f *Feature) handleExport(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var buf bytes.Buffer
	name, err := f.service.ExportCSV(context.Background(), &buf)
	if err != nil {
		common.HandleError(s, i, toBotError(err), false)
		return
	}

	common.LogResponseError(i, common.RespondWithFile(s, i, fmt.Sprintf("📄 %s", name), name, "text/csv", &buf))
}

func (f *Feature) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) {
	stats, err := f.stats.GetSessionStats(context.Background())
	if err != nil {
		common.HandleError(s, i, toBotError(err), false)
		return
	}

	common.LogResponseError(i, common.RespondWithEmbed(s, i, BuildStatsEmbed(stats), nil, true))
}

// parseSettingsUpdate turns the given options into a partial settings change
func parseSettingsUpdate(options []*discordgo.ApplicationCommandInteractionDataOption) models.SettingsUpdate {
	var update models.SettingsUpdate
	for _, opt := range options {
		switch opt.Name {
		case optionGameType:
			v := models.GameType(opt.StringValue())
			update.GameType = &v
		case optionSeries:
			v := models.Series(opt.StringValue())
			update.Series = &v
		case optionStartMode:
			v := models.Mode(opt.StringValue())
			update.StartMode = &v
		case optionAutoSeries:
			v := opt.BoolValue()
			update.AutoSeries = &v
		case optionCarryMode:
			v := opt.BoolValue()
			update.CarryMode = &v
		}
	}
	return update
}

func toBotError(err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidBankroll):
		return common.NewUserError("Starting bankroll must be a number.", err)
	case errors.Is(err, engine.ErrInvalidSetting):
		return common.NewUserError("That setting value is not supported.", err)
	}
	return common.NewSystemError(err, "session operation failed")
}
