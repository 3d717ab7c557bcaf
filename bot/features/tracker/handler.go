package tracker

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"tracker/bot/common"
	"tracker/engine"
	"tracker/models"
)

// handleButton applies the action of a panel button and redraws the panel
func (f *Feature) handleButton(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	ctx := context.Background()

	var (
		end *models.GameEnd
		err error
	)
	switch customID {
	case customIDSubmit:
		var report *models.RoundReport
		report, err = f.service.Submit(ctx)
		if report != nil {
			end = report.End
		}
	case customIDClear:
		err = f.service.ClearStaged(ctx)
	case customIDUndo:
		var undone bool
		undone, err = f.service.Undo(ctx)
		if err == nil && !undone {
			err = common.NewUserError("Nothing to undo.", nil)
		}
	case customIDNewGame:
		err = f.service.StartNewGame(ctx)
	case customIDRefresh:
	default:
		outcome, ok := parseStageID(customID)
		if !ok {
			log.WithField("customID", customID).Warn("Unknown tracker button")
			return
		}
		err = f.service.Stage(ctx, outcome)
	}
	if err != nil {
		common.HandleError(s, i, toBotError(err), false)
		return
	}

	log.WithFields(log.Fields{
		"user_id": common.UserID(i),
		"action":  customID,
	}).Debug("Tracker panel action applied")

	embed, components, err := f.buildPanel(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}
	if err := common.UpdateComponentMessage(s, i, embed, components); err != nil {
		common.LogResponseError(i, err)
		return
	}

	if end != nil {
		if _, err := common.FollowUpWithEmbed(s, i, BuildGameEndEmbed(*end), true); err != nil {
			log.WithError(err).Error("Failed to send game end notice")
		}
	}
}

// toBotError maps engine rejections to messages the user can act on
func toBotError(err error) error {
	var botErr *common.BotError
	switch {
	case errors.As(err, &botErr):
		return err
	case errors.Is(err, engine.ErrNothingStaged):
		return common.NewUserError("Stage an outcome first.", err)
	case errors.Is(err, engine.ErrGameInProgress):
		return common.NewUserError("A game is already running.", err)
	case errors.Is(err, engine.ErrInvalidOutcome):
		return common.NewUserError("That outcome does not belong to this game type.", err)
	}
	return common.NewSystemError(err, "tracker operation failed")
}
