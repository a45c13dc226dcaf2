package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	bestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing regimes
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("COMPENSATION REGIME COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 100) + "\n")
	amountLabel := "Monthly budget"
	if compSet.Mode == ModeGross {
		amountLabel = "Monthly gross"
	}
	sb.WriteString(fmt.Sprintf("%s: %s   Tax year: %d   Goal: %s\n",
		amountLabel, FormatCOP(compSet.Amount), compSet.Year, compSet.Goal))
	sb.WriteString(fmt.Sprintf("Pensioner: %s   SIMPLE group: %s\n", yesNo(compSet.Pensioner), compSet.ActivityGroup))
	if compSet.ParamsSource != "" {
		sb.WriteString(fmt.Sprintf("Parameters: %s\n", compSet.ParamsSource))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 14

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%-4s %-*s %*s %*s %*s %*s %*s %*s",
		"#",
		nameWidth, "Regime",
		numWidth, "Gross/mo",
		numWidth, "Cost/mo",
		numWidth, "Net/mo",
		numWidth, "Annual net",
		numWidth, "Annual tax",
		8, "Eff."),
	) + "\n")

	for i, cr := range compSet.Ranked {
		row := tf.formatRow(cr, nameWidth, numWidth)
		if i == 0 {
			row = bestStyle.Render(row)
		}
		sb.WriteString(row + "\n")
	}

	if len(compSet.NotApplicable) > 0 {
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, cr := range compSet.NotApplicable {
			sb.WriteString(fmt.Sprintf("%-4s %-*s %s\n", "-", nameWidth, tf.truncate(cr.Label(), nameWidth), cr.Result.Reason))
		}
	}
	sb.WriteString(strings.Repeat("=", 100) + "\n")

	if len(compSet.Ranked) > 1 {
		sb.WriteString("\nCOMPARISON TO BEST\n")
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, cr := range compSet.Ranked[1:] {
			sb.WriteString(fmt.Sprintf("%s:\n", cr.Label()))
			sb.WriteString(fmt.Sprintf("  Annual net: %s%s\n", tf.deltaSymbol(cr.NetDiffFromBest), FormatCOP(cr.NetDiffFromBest.Abs())))
			if !cr.TaxDiffFromBest.IsZero() {
				sb.WriteString(fmt.Sprintf("  Annual tax: %s%s\n", tf.deltaSymbol(cr.TaxDiffFromBest), FormatCOP(cr.TaxDiffFromBest.Abs())))
			}
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 100) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// formatRow formats a single ranked regime
func (tf *TableFormatter) formatRow(cr ComparisonResult, nameWidth, numWidth int) string {
	r := cr.Result
	return fmt.Sprintf("%-4d %-*s %*s %*s %*s %*s %*s %*s",
		cr.Rank,
		nameWidth, tf.truncate(cr.Label(), nameWidth),
		numWidth, FormatCOP(r.Gross),
		numWidth, FormatCOP(r.MonthlyCost),
		numWidth, FormatCOP(r.MonthlyNet),
		numWidth, FormatCOP(r.AnnualNet),
		numWidth, FormatCOP(r.AnnualTax),
		8, FormatPercent(r.EffectiveRate))
}

// deltaSymbol returns a + or - symbol for deltas
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a single-line summary of the ranking
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	parts := make([]string, 0, len(compSet.Ranked)+len(compSet.NotApplicable))
	for _, cr := range compSet.Ranked {
		parts = append(parts, fmt.Sprintf("%d. %s %s", cr.Rank, cr.Label(), FormatCOP(cr.Result.AnnualNet)))
	}
	for _, cr := range compSet.NotApplicable {
		parts = append(parts, cr.Label()+" n/a")
	}
	return strings.Join(parts, " | ")
}

// FormatCOP renders a peso amount with Colombian thousands separators, e.g. $8.500.000
func FormatCOP(d decimal.Decimal) string {
	rounded := d.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	digits := rounded.String()
	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	return sign + "$" + sb.String()
}

// FormatPercent renders a rate such as 0.1234 as 12.34%
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
