// Package tui is a terminal front end for the tracker service.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"tracker/engine"
	"tracker/models"
	"tracker/service"
)

var modelLog = log.WithField("module", "tui")

// stateMsg carries the session state after an action ran
type stateMsg struct {
	session *models.Session
	next    models.NextBet
	canUndo bool
	end     *models.GameEnd
	notice  string
	err     error
}

// Model is the bubbletea model of the tracker screen
type Model struct {
	ctx     context.Context
	service service.TrackerService

	session *models.Session
	next    models.NextBet
	canUndo bool

	lastEnd *models.GameEnd
	notice  string
	err     error
	width   int
}

// New creates the model. The session is loaded by Init.
func New(ctx context.Context, trackerService service.TrackerService) Model {
	return Model{ctx: ctx, service: trackerService}
}

// Run starts the terminal UI and blocks until the user quits
func Run(ctx context.Context, trackerService service.TrackerService) error {
	p := tea.NewProgram(New(ctx, trackerService), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui failed: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.action("load", func(ctx context.Context) (*models.GameEnd, string, error) {
		return nil, "", nil
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case stateMsg:
		m.err = msg.err
		if msg.session != nil {
			m.session = msg.session
			m.next = msg.next
			m.canUndo = msg.canUndo
		}
		if msg.err == nil {
			m.notice = msg.notice
			if msg.end != nil {
				m.lastEnd = msg.end
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "enter":
		return m.action("submit", func(ctx context.Context) (*models.GameEnd, string, error) {
			report, err := m.service.Submit(ctx)
			if err != nil {
				return nil, "", err
			}
			return report.End, describeRound(report), nil
		})
	case "esc":
		return m.action("clear", func(ctx context.Context) (*models.GameEnd, string, error) {
			return nil, "", m.service.ClearStaged(ctx)
		})
	case "u":
		return m.action("undo", func(ctx context.Context) (*models.GameEnd, string, error) {
			undone, err := m.service.Undo(ctx)
			if err != nil || undone {
				return nil, "Undone.", err
			}
			return nil, "Nothing to undo.", nil
		})
	case "n":
		return m.action("new game", func(ctx context.Context) (*models.GameEnd, string, error) {
			return nil, "New game started.", m.service.StartNewGame(ctx)
		})
	}

	if m.session == nil || len(key) != 1 {
		return nil
	}
	outcome := models.Outcome(strings.ToUpper(key))
	if engine.ValidateOutcome(outcome, m.session.GameType) != nil {
		return nil
	}
	return m.action("stage", func(ctx context.Context) (*models.GameEnd, string, error) {
		return nil, "", m.service.Stage(ctx, outcome)
	})
}

// action runs op against the service and reloads the session state
func (m Model) action(name string, op func(ctx context.Context) (*models.GameEnd, string, error)) tea.Cmd {
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		end, notice, err := op(ctx)
		if err != nil {
			modelLog.WithFields(log.Fields{
				"action": name,
				"error":  err,
			}).Warn("Tracker action failed")
		}

		session, loadErr := svc.Current(ctx)
		if loadErr != nil {
			return stateMsg{err: loadErr}
		}
		next, loadErr := svc.Next(ctx)
		if loadErr != nil {
			return stateMsg{err: loadErr}
		}

		return stateMsg{
			session: session,
			next:    next,
			canUndo: svc.CanUndo(ctx),
			end:     end,
			notice:  notice,
			err:     err,
		}
	}
}

func describeRound(report *models.RoundReport) string {
	e := report.Entry
	prefix := ""
	if report.StartedGame {
		prefix = "New game. "
	}
	if e.Result == models.ResultObserve {
		return fmt.Sprintf("%s#%d %s observed.", prefix, e.Idx, e.Outcome)
	}
	return fmt.Sprintf("%s#%d %s on %s: %s %+.2f", prefix, e.Idx, e.Outcome, e.Pick, e.Result, e.Delta)
}
