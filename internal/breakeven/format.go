package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/coltax/internal/compare"
	"github.com/shopspring/decimal"
)

// TableFormatter formats net-to-gross results as a console table
type TableFormatter struct{}

// Format generates the report for a single regime
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("NET-TO-GROSS RESULT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Regime:              %s\n", result.Regime.Label()))
	sb.WriteString(fmt.Sprintf("Target net/month:    %s\n", compare.FormatCOP(result.TargetNet)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	r := result.Achieved
	sb.WriteString("REQUIRED COMPENSATION\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Gross/month:         %s\n", compare.FormatCOP(result.Gross)))
	sb.WriteString(fmt.Sprintf("Payer cost/month:    %s\n", compare.FormatCOP(r.MonthlyCost)))
	sb.WriteString(fmt.Sprintf("Achieved net/month:  %s\n", compare.FormatCOP(r.MonthlyNet)))
	diff := r.MonthlyNet.Sub(result.TargetNet)
	sb.WriteString(fmt.Sprintf("Difference:          %s%s\n", tf.deltaSymbol(diff), compare.FormatCOP(diff.Abs())))
	sb.WriteString(fmt.Sprintf("Withholding/month:   %s\n", compare.FormatCOP(r.MonthlyWithholding)))
	sb.WriteString(fmt.Sprintf("Annual tax:          %s\n", compare.FormatCOP(r.AnnualTax)))

	return sb.String()
}

// FormatMulti formats one row per regime
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("NET-TO-GROSS BY REGIME\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Target net/month: %s\n\n", compare.FormatCOP(result.TargetNet)))

	sb.WriteString(fmt.Sprintf("%-24s %15s %15s %15s %6s\n", "Regime", "Gross/mo", "Cost/mo", "Net/mo", "OK"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		ok := "yes"
		if !res.Success || !res.Achieved.Applicable {
			ok = "no"
		}
		sb.WriteString(fmt.Sprintf("%-24s %15s %15s %15s %6s\n",
			tf.truncate(res.Regime.Label(), 24),
			compare.FormatCOP(res.Gross),
			compare.FormatCOP(res.Achieved.MonthlyCost),
			compare.FormatCOP(res.Achieved.MonthlyNet),
			ok))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single or multi result
func (jf *JSONFormatter) Format(result any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
