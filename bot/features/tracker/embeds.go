package tracker

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tracker/bot/common"
	"tracker/engine"
	"tracker/models"
)

// BuildPanelEmbed renders the live session state
func BuildPanelEmbed(session *models.Session, next models.NextBet) *discordgo.MessageEmbed {
	game := session.Game
	nextSide, nextStake := engine.NoPick, engine.NoPick
	switch {
	case next.Observing:
		nextSide, nextStake = "OBS", "OBS"
	case next.Active:
		nextSide = engine.Label(next.Side, session.GameType)
		nextStake = common.FormatStake(next.Stake)
	}

	mode := engine.NoPick
	if game.InGame {
		mode = fmt.Sprintf("%s (losses %d)", game.Mode, game.ModeLosses)
	}

	ladder := common.FormatStake(game.LadderBet)
	phase := string(game.Phase())
	switch st := game.State.(type) {
	case models.StreakState:
		phase = fmt.Sprintf("%s (bet %s)", phase, common.FormatStake(st.Bet))
	case models.SplitState:
		ladder = "FROZEN"
		phase = fmt.Sprintf("%s %s (ledger %s)", phase, st.Step, common.FormatMoney(st.Ledger))
	}

	staged := engine.NoPick
	if session.PendingOutcome != "" {
		staged = engine.Label(session.PendingOutcome, session.GameType)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Next Side", Value: nextSide, Inline: true},
		{Name: "Next Bet", Value: nextStake, Inline: true},
		{Name: "Staged", Value: staged, Inline: true},
		{Name: "Game", Value: fmt.Sprintf("#%d · Series %s · %s", game.Number, session.Series, session.GameType), Inline: true},
		{Name: "Mode", Value: mode, Inline: true},
		{Name: "Game P&L", Value: common.FormatSignedMoney(game.PnL), Inline: true},
		{Name: "Phase", Value: phase, Inline: true},
		{Name: "Ladder", Value: ladder, Inline: true},
		{Name: "Wins SAME", Value: fmt.Sprintf("%d", game.ConsecWinsSame), Inline: true},
	}

	if session.BankrollOn && session.BankrollCurrent != nil {
		value := common.FormatMoney(*session.BankrollCurrent)
		if net, ok := engine.BankrollNet(session); ok {
			value = fmt.Sprintf("%s (session net %s)", value, common.FormatSignedMoney(net))
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Bankroll", Value: value})
	}

	description := strings.Join(engine.Hints(session), " ")
	if n := len(session.Log); n > 0 {
		description = fmt.Sprintf("Last: %s\n%s", formatEntry(session.Log[n-1]), description)
	}

	return &discordgo.MessageEmbed{
		Title:       "🎯 Progression Tracker",
		Description: description,
		Color:       panelColor(session),
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Session %s · %d rounds logged", session.ID, len(session.Log)),
		},
	}
}

// BuildGameEndEmbed renders the notice for a finished game
func BuildGameEndEmbed(end models.GameEnd) *discordgo.MessageEmbed {
	color := common.ColorSuccess
	if end.Reason == models.EndReasonStopLoss {
		color = common.ColorDanger
	}

	bankroll := "Bankroll manager is OFF."
	if end.Bankroll != nil {
		bankroll = common.FormatMoney(*end.Bankroll)
		if end.BankrollNet != nil {
			bankroll = fmt.Sprintf("%s (session net %s)", bankroll, common.FormatSignedMoney(*end.BankrollNet))
		}
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Series", Value: fmt.Sprintf("%s (TP/SL %g / %g)", end.Series, end.TakeProfit, end.StopLoss), Inline: true},
		{Name: "Final Game P&L", Value: common.FormatSignedMoney(end.FinalPnL), Inline: true},
		{Name: "Bankroll", Value: bankroll},
	}
	if end.NextSeries != end.Series {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Next Game",
			Value: fmt.Sprintf("Series %s", end.NextSeries),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("Game #%d ended: %s", end.GameNo, end.Reason),
		Color:  color,
		Fields: fields,
	}
}

func formatEntry(e models.LogEntry) string {
	if e.Result == models.ResultObserve {
		return fmt.Sprintf("#%d %s (observed)", e.Idx, e.Outcome)
	}
	return fmt.Sprintf("#%d %s on %s → %s %s", e.Idx, e.Outcome, e.Pick, e.Result, common.FormatSignedMoney(e.Delta))
}

func panelColor(session *models.Session) int {
	switch {
	case !session.Game.InGame:
		return common.ColorInfo
	case session.Game.Phase() == models.PhaseSplit:
		return common.ColorWarning
	case session.Game.PnL < 0:
		return common.ColorDanger
	case session.Game.PnL > 0:
		return common.ColorSuccess
	}
	return common.ColorPrimary
}
