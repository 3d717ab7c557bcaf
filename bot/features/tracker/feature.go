// Package tracker implements the interactive tracking panel: outcome buttons,
// submit, undo and new game.
package tracker

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"tracker/bot/common"
	"tracker/service"
)

// Feature represents the tracking panel feature
type Feature struct {
	service service.TrackerService
}

// NewFeature creates a new tracking panel feature instance
func NewFeature(trackerService service.TrackerService) *Feature {
	return &Feature{service: trackerService}
}

// HandleCommand handles the /tracker command by posting a fresh panel
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	embed, components, err := f.buildPanel(ctx)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	common.LogResponseError(i, common.RespondWithEmbed(s, i, embed, components, false))
}

// HandleInteraction handles panel button presses
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}
	f.handleButton(s, i, i.MessageComponentData().CustomID)
}

// buildPanel reads the live session and renders it
func (f *Feature) buildPanel(ctx context.Context) (*discordgo.MessageEmbed, []discordgo.MessageComponent, error) {
	session, err := f.service.Current(ctx)
	if err != nil {
		return nil, nil, common.NewSystemError(err, "failed to load session")
	}
	if session == nil {
		return nil, nil, fmt.Errorf("no live session")
	}
	next, err := f.service.Next(ctx)
	if err != nil {
		return nil, nil, common.NewSystemError(err, "failed to compute next bet")
	}

	return BuildPanelEmbed(session, next), BuildPanelComponents(session, f.service.CanUndo(ctx)), nil
}
