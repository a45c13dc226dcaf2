package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Rank",
		"Regime",
		"Applicable",
		"Reason",
		"Gross Monthly",
		"Transport Subsidy",
		"Monthly Cost",
		"Employer Contributions",
		"Fringe Accrual",
		"Worker Contributions",
		"Monthly Withholding",
		"Monthly Net",
		"Annual Gross",
		"Annual Tax",
		"VAT Liability",
		"Annual Net",
		"Effective Rate",
		"Net Diff from Best",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, cr := range compSet.Ranked {
		if err := writer.Write(cf.formatRow(cr)); err != nil {
			return "", err
		}
	}
	for _, cr := range compSet.NotApplicable {
		if err := writer.Write(cf.formatRow(cr)); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(cr ComparisonResult) []string {
	r := cr.Result
	return []string{
		strconv.Itoa(cr.Rank),
		string(r.Regime),
		strconv.FormatBool(r.Applicable),
		r.Reason,
		r.Gross.StringFixed(2),
		r.TransportSubsidy.StringFixed(2),
		r.MonthlyCost.StringFixed(2),
		r.EmployerContributions.StringFixed(2),
		r.FringeAccrual.StringFixed(2),
		r.WorkerContributions.StringFixed(2),
		r.MonthlyWithholding.StringFixed(2),
		r.MonthlyNet.StringFixed(2),
		r.AnnualGross.StringFixed(2),
		r.AnnualTax.StringFixed(2),
		r.VATLiability.StringFixed(2),
		r.AnnualNet.StringFixed(2),
		r.EffectiveRate.StringFixed(4),
		cr.NetDiffFromBest.StringFixed(2),
	}
}
