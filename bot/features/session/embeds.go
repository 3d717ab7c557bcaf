package session

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"tracker/bot/common"
	"tracker/models"
)

var phaseOrder = []models.Phase{models.PhaseNormal, models.PhaseStreak, models.PhaseSplit}

// BuildStatsEmbed creates an embed summarising the stored session log
func BuildStatsEmbed(stats *models.SessionStats) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📊 Session Statistics",
		Color: common.ColorInfo,
	}

	if stats.Rounds == 0 && stats.Observed == 0 {
		embed.Description = "No rounds recorded yet."
		return embed
	}

	color := common.ColorSuccess
	if stats.NetResult < 0 {
		color = common.ColorDanger
	}
	embed.Color = color

	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "Rounds",
			Value:  fmt.Sprintf("%d settled, %d observed", stats.Rounds, stats.Observed),
			Inline: true,
		},
		{
			Name:   "Games",
			Value:  fmt.Sprintf("%d", stats.Games),
			Inline: true,
		},
		{
			Name:   "Record",
			Value:  fmt.Sprintf("%dW / %dL / %dP (%.1f%%)", stats.Wins, stats.Losses, stats.Pushes, stats.WinPercentage),
			Inline: true,
		},
		{
			Name:   "Total Staked",
			Value:  common.FormatMoney(stats.TotalStaked),
			Inline: true,
		},
		{
			Name:   "Net Result",
			Value:  common.FormatSignedMoney(stats.NetResult),
			Inline: true,
		},
		{
			Name:   "Best / Worst Round",
			Value:  fmt.Sprintf("%s / %s", common.FormatSignedMoney(stats.BiggestWin), common.FormatSignedMoney(stats.BiggestLoss)),
			Inline: true,
		},
	}

	var phases []string
	for _, phase := range phaseOrder {
		if n := stats.RoundsByPhase[phase]; n > 0 {
			phases = append(phases, fmt.Sprintf("%s %d", phase, n))
		}
	}
	if len(phases) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Rounds by Phase",
			Value: strings.Join(phases, " · "),
		})
	}

	return embed
}
