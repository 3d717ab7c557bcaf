package tracker

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"tracker/engine"
	"tracker/models"
)

// Custom IDs of the panel buttons
const (
	CustomIDPrefix  = "trk_"
	customIDStage   = "trk_stage_"
	customIDSubmit  = "trk_submit"
	customIDClear   = "trk_clear"
	customIDUndo    = "trk_undo"
	customIDNewGame = "trk_newgame"
	customIDRefresh = "trk_refresh"
)

// BuildPanelComponents creates the outcome and action button rows of the panel
func BuildPanelComponents(session *models.Session, canUndo bool) []discordgo.MessageComponent {
	outcomes := []discordgo.MessageComponent{}
	for _, outcome := range engine.Outcomes(session.GameType) {
		outcomes = append(outcomes, discordgo.Button{
			Label:    engine.Label(outcome, session.GameType),
			Style:    outcomeStyle(outcome, session.GameType),
			CustomID: customIDStage + string(outcome),
			Disabled: session.PendingOutcome == outcome,
		})
	}

	staged := session.PendingOutcome != ""
	actions := []discordgo.MessageComponent{
		discordgo.Button{
			Label:    "Submit",
			Style:    discordgo.SuccessButton,
			CustomID: customIDSubmit,
			Disabled: !staged,
		},
		discordgo.Button{
			Label:    "Clear",
			Style:    discordgo.SecondaryButton,
			CustomID: customIDClear,
			Disabled: !staged,
		},
		discordgo.Button{
			Label:    "Undo",
			Style:    discordgo.SecondaryButton,
			CustomID: customIDUndo,
			Disabled: !canUndo,
		},
		discordgo.Button{
			Label:    "New Game",
			Style:    discordgo.PrimaryButton,
			CustomID: customIDNewGame,
			Disabled: session.Game.InGame,
		},
		discordgo.Button{
			Label:    "🔄",
			Style:    discordgo.SecondaryButton,
			CustomID: customIDRefresh,
		},
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: outcomes},
		discordgo.ActionsRow{Components: actions},
	}
}

// parseStageID returns the outcome symbol of a stage button
func parseStageID(customID string) (models.Outcome, bool) {
	if !strings.HasPrefix(customID, customIDStage) {
		return "", false
	}
	symbol := strings.TrimPrefix(customID, customIDStage)
	if symbol == "" {
		return "", false
	}
	return models.Outcome(symbol), true
}

func outcomeStyle(outcome models.Outcome, gameType models.GameType) discordgo.ButtonStyle {
	if engine.IsNeutral(outcome, gameType) {
		return discordgo.SuccessButton
	}
	switch {
	case gameType == models.GameTypeRoulette && outcome == models.OutcomeRed:
		return discordgo.DangerButton
	case gameType == models.GameTypeBaccarat && outcome == models.OutcomePlayer:
		return discordgo.PrimaryButton
	case gameType == models.GameTypeBaccarat && outcome == models.OutcomeBanker:
		return discordgo.DangerButton
	}
	return discordgo.SecondaryButton
}
