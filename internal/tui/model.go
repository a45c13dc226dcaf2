package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/coltax/internal/compare"
	"github.com/rgehrsitz/coltax/internal/domain"
)

// Model is the live comparison screen: an amount input and the ranked regimes
// recomputed on every change
type Model struct {
	engine *compare.CompareEngine
	source string

	input     textinput.Model
	mode      compare.Mode
	goal      compare.Goal
	pensioner bool
	groups    []string
	group     int

	seq    int
	set    *compare.ComparisonSet
	notice string
	err    error

	width  int
	height int
}

// NewModel creates the model. groups are the SIMPLE activity groups offered for
// cycling; defaultGroup selects the initial one.
func NewModel(engine *compare.CompareEngine, groups []string, defaultGroup, source string) Model {
	ti := textinput.New()
	ti.Placeholder = "8.500.000"
	ti.Prompt = "$ "
	ti.CharLimit = 20
	ti.Focus()

	m := Model{
		engine: engine,
		source: source,
		input:  ti,
		mode:   compare.ModeBudget,
		goal:   compare.GoalMaximizeNet,
		groups: groups,
		width:  100,
		height: 30,
	}
	for i, g := range groups {
		if g == defaultGroup {
			m.group = i
		}
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// ActivityGroup is the currently selected SIMPLE group
func (m Model) ActivityGroup() string {
	if len(m.groups) == 0 {
		return ""
	}
	return m.groups[m.group]
}

// Set returns the last comparison shown, nil when the input is not applicable
func (m Model) Set() *compare.ComparisonSet {
	return m.set
}

// Notice returns the message shown instead of a comparison
func (m Model) Notice() string {
	return m.notice
}

// recompute parses the input and returns the command that runs the comparison.
// An unparseable or non-positive amount is shown as not applicable.
func (m *Model) recompute() tea.Cmd {
	m.seq++
	if m.input.Value() == "" {
		m.set = nil
		m.notice = ""
		return nil
	}

	amount, err := domain.ParseAmount("tui", "amount", m.input.Value())
	if err != nil {
		m.set = nil
		m.notice = "Not applicable: enter a positive amount"
		return nil
	}

	return compareCmd(m.engine, m.seq, compare.CompareOptions{
		Amount: amount,
		Mode:   m.mode,
		Goal:   m.goal,
		Options: domain.CalcOptions{
			Pensioner:     m.pensioner,
			ActivityGroup: m.ActivityGroup(),
		},
	}, m.source)
}

// compareCmd runs a comparison off the update loop
func compareCmd(engine *compare.CompareEngine, seq int, opts compare.CompareOptions, source string) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), opts)
		if set != nil {
			set.ParamsSource = source
		}
		return ComparisonCompleteMsg{Seq: seq, Set: set, Err: err}
	}
}
