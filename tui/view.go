package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracker/engine"
	"tracker/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("2"))

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1"))

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)
)

// recentRounds is how many log rows the screen shows
const recentRounds = 8

func (m Model) View() string {
	if m.session == nil {
		if m.err != nil {
			return fmt.Sprintf("Failed to load session: %v\n\nq to quit\n", m.err)
		}
		return "Loading session..."
	}

	s := m.session
	header := headerStyle.Render(fmt.Sprintf("Progression Tracker · %s · Series %s · Game #%d", s.GameType, s.Series, s.Game.Number))

	sections := []string{header, borderStyle.Render(m.renderState()), m.renderLog()}
	if m.lastEnd != nil {
		sections = append(sections, renderEnd(*m.lastEnd))
	}
	sections = append(sections, hintStyle.Render(strings.Join(engine.Hints(s), " ")))
	if m.err != nil {
		sections = append(sections, downStyle.Render("Error: "+m.err.Error()))
	} else if m.notice != "" {
		sections = append(sections, valueStyle.Render(m.notice))
	}
	sections = append(sections, labelStyle.Render(m.keyHelp()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) renderState() string {
	s := m.session
	g := s.Game

	nextSide, nextStake := engine.NoPick, engine.NoPick
	switch {
	case m.next.Observing:
		nextSide, nextStake = "OBS", "OBS"
	case m.next.Active:
		nextSide = engine.Label(m.next.Side, s.GameType)
		nextStake = strconv.FormatFloat(m.next.Stake, 'f', -1, 64)
	}

	mode, losses := engine.NoPick, engine.NoPick
	if g.InGame {
		mode = string(g.Mode)
		losses = strconv.Itoa(g.ModeLosses)
	}

	staged := engine.NoPick
	if s.PendingOutcome != "" {
		staged = engine.Label(s.PendingOutcome, s.GameType)
	}

	rows := [][2]string{
		{"Next side", nextSide},
		{"Next bet", nextStake},
		{"Staged", staged},
		{"Mode", fmt.Sprintf("%s (losses %s)", mode, losses)},
		{"Phase", string(g.Phase())},
		{"Game P&L", pnl(g.PnL)},
	}

	switch st := g.State.(type) {
	case models.SplitState:
		rows = append(rows,
			[2]string{"Ladder", "FROZEN"},
			[2]string{"Split", fmt.Sprintf("%s ledger %.2f next %s", st.Step, st.Ledger, strconv.FormatFloat(engine.Stake(s), 'f', -1, 64))},
		)
	case models.StreakState:
		rows = append(rows, [2]string{"Streak bet", strconv.FormatFloat(st.Bet, 'f', -1, 64)})
	default:
		rows = append(rows, [2]string{"Ladder", strconv.FormatFloat(g.LadderBet, 'f', -1, 64)})
	}

	if s.BankrollOn && s.BankrollCurrent != nil {
		value := fmt.Sprintf("%.2f", *s.BankrollCurrent)
		if net, ok := engine.BankrollNet(s); ok {
			value = fmt.Sprintf("%s (net %s)", value, pnl(net))
		}
		rows = append(rows, [2]string{"Bankroll", value})
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-11s", r[0]))+" "+valueStyle.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderLog() string {
	entries := m.session.Log
	if len(entries) > recentRounds {
		entries = entries[len(entries)-recentRounds:]
	}
	if len(entries) == 0 {
		return labelStyle.Render("No rounds logged yet.")
	}

	lines := []string{labelStyle.Render(fmt.Sprintf("%-5s %-4s %-7s %-7s %5s %-3s %8s %8s %-6s", "idx", "game", "outcome", "pick", "bet", "res", "delta", "pnl", "phase"))}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		line := fmt.Sprintf("%-5d %-4d %-7s %-7s %5s %-3s %8.2f %8.2f %-6s",
			e.Idx, e.GameNo, e.Outcome, e.Pick, strconv.FormatFloat(e.Bet, 'f', -1, 64), e.Result, e.Delta, e.GamePnL, e.Phase)
		switch e.Result {
		case models.ResultWin:
			line = upStyle.Render(line)
		case models.ResultLoss:
			line = downStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderEnd(end models.GameEnd) string {
	style := upStyle
	if end.Reason == models.EndReasonStopLoss {
		style = downStyle
	}
	text := fmt.Sprintf("GAME #%d ENDED: %s · Series %s (TP/SL %g / %g) · Final P&L %.2f",
		end.GameNo, end.Reason, end.Series, end.TakeProfit, end.StopLoss, end.FinalPnL)
	if end.Bankroll != nil {
		text += fmt.Sprintf(" · Bankroll %.2f", *end.Bankroll)
	}
	return style.Bold(true).Render(text)
}

func (m Model) keyHelp() string {
	symbols := make([]string, 0, 3)
	for _, o := range engine.Outcomes(m.session.GameType) {
		symbols = append(symbols, strings.ToLower(string(o)))
	}
	return fmt.Sprintf("%s stage · enter submit · esc clear · u undo · n new game · q quit", strings.Join(symbols, "/"))
}

func pnl(v float64) string {
	text := fmt.Sprintf("%.2f", v)
	switch {
	case v > 0:
		return upStyle.Render("+" + text)
	case v < 0:
		return downStyle.Render(text)
	}
	return text
}
