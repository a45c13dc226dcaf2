package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/coltax/internal/compare"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{
		m.renderTitleBar(),
		m.renderInput(),
		m.renderBody(),
		m.renderStatusBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("COLTAX - Compensation Regime Comparison")
	subtitle := "Enter an amount to compare"
	if m.source != "" {
		subtitle = "Parameters: " + m.source
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(subtitle))
}

func (m Model) renderInput() string {
	label := "Monthly budget"
	if m.mode == compare.ModeGross {
		label = "Monthly gross"
	}
	options := fmt.Sprintf("Goal: %s   Pensioner: %s   SIMPLE group: %s",
		m.goal, yesNo(m.pensioner), m.ActivityGroup())
	return lipgloss.JoinVertical(lipgloss.Left,
		InputStyle.Render(label+"  "+m.input.View()),
		MutedStyle.Render(options),
	)
}

func (m Model) renderBody() string {
	switch {
	case m.err != nil:
		return ErrorStyle.Render("Error: " + m.err.Error())
	case m.notice != "":
		return BorderStyle.Render(m.notice)
	case m.set == nil:
		return BorderStyle.Render("Type a monthly amount. Results update as you type.")
	}

	parts := []string{}
	if best := m.set.Best(); best != nil {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top,
			metricCard("Best regime", best.Label()),
			metricCard("Net per month", compare.FormatCOP(best.Result.MonthlyNet)),
			metricCard("Annual net", compare.FormatCOP(best.Result.AnnualNet)),
		))
	}
	parts = append(parts, m.renderTable())
	if len(m.set.Recommendations) > 0 {
		recs := make([]string, len(m.set.Recommendations))
		for i, r := range m.set.Recommendations {
			recs[i] = "• " + r
		}
		parts = append(parts, MutedStyle.Render(strings.Join(recs, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTable() string {
	const name, num = 24, 14
	var sb strings.Builder
	sb.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-3s %-*s %*s %*s %*s %*s",
		"#", name, "Regime", num, "Gross/mo", num, "Cost/mo", num, "Net/mo", num, "Annual tax")))
	sb.WriteString("\n")

	for i, cr := range m.set.Ranked {
		r := cr.Result
		row := fmt.Sprintf("%-3d %-*s %*s %*s %*s %*s", cr.Rank, name, cr.Label(),
			num, compare.FormatCOP(r.Gross),
			num, compare.FormatCOP(r.MonthlyCost),
			num, compare.FormatCOP(r.MonthlyNet),
			num, compare.FormatCOP(r.AnnualTax))
		if i == 0 {
			row = BestRowStyle.Render(row)
		}
		sb.WriteString(row + "\n")
	}
	for _, cr := range m.set.NotApplicable {
		sb.WriteString(MutedStyle.Render(fmt.Sprintf("%-3s %-*s not applicable: %s", "-", name, cr.Label(), cr.Result.Reason)))
		sb.WriteString("\n")
	}
	return BorderStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// metricCard is a small labelled value box
func metricCard(label, value string) string {
	return BorderStyle.Width(28).Render(
		MetricLabelStyle.Render(label) + "\n" + MetricValueStyle.Render(value),
	)
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "budget/gross"),
		formatShortcut("ctrl+t", "goal"),
		formatShortcut("ctrl+p", "pensioner"),
		formatShortcut("ctrl+g", "SIMPLE group"),
		formatShortcut("esc", "quit"),
	}
	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
