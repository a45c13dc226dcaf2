package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/coltax/internal/compare"
	"github.com/rgehrsitz/coltax/internal/domain"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ComparisonCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.err = nil
		switch {
		case errors.Is(msg.Err, domain.ErrInvalidInput):
			m.set = nil
			m.notice = "Not applicable: " + msg.Err.Error()
		case msg.Err != nil:
			m.set = nil
			m.err = msg.Err
		default:
			m.set = msg.Set
			m.notice = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKeyPress processes keyboard input. Option keys use ctrl chords so every
// printable key reaches the amount field.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		if m.mode == compare.ModeBudget {
			m.mode = compare.ModeGross
		} else {
			m.mode = compare.ModeBudget
		}
		return m, m.recompute()

	case "ctrl+t":
		if m.goal == compare.GoalMaximizeNet {
			m.goal = compare.GoalMinimizeTax
		} else {
			m.goal = compare.GoalMaximizeNet
		}
		return m, m.recompute()

	case "ctrl+p":
		m.pensioner = !m.pensioner
		return m, m.recompute()

	case "ctrl+g":
		if len(m.groups) > 0 {
			m.group = (m.group + 1) % len(m.groups)
		}
		return m, m.recompute()
	}

	before := m.input.Value()
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, inputCmd
	}
	return m, tea.Batch(inputCmd, m.recompute())
}
