package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/coltax/internal/compare"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
)

// VerboseFormatter renders the detailed per-regime console report
type VerboseFormatter struct{}

func (v VerboseFormatter) Name() string { return "verbose" }

func (v VerboseFormatter) Format(set *compare.ComparisonSet) ([]byte, error) {
	var buf bytes.Buffer
	banner := strings.Repeat("=", 72)

	fmt.Fprintln(&buf, banner)
	fmt.Fprintf(&buf, "DETAILED COMPENSATION ANALYSIS - TAX YEAR %d\n", set.Year)
	fmt.Fprintln(&buf, banner)
	fmt.Fprintf(&buf, "Amount: %s (%s)   Goal: %s   Pensioner: %t\n",
		compare.FormatCOP(set.Amount), set.Mode, set.Goal, set.Pensioner)
	if set.ActivityGroup != "" {
		fmt.Fprintf(&buf, "SIMPLE activity group: %s\n", set.ActivityGroup)
	}
	if set.ParamsSource != "" {
		fmt.Fprintf(&buf, "Parameters: %s\n", set.ParamsSource)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for _, cr := range set.Ranked {
		writeRegime(&buf, cr)
	}

	if len(set.NotApplicable) > 0 {
		fmt.Fprintln(&buf, "NOT APPLICABLE")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, cr := range set.NotApplicable {
			fmt.Fprintf(&buf, "  %s: %s\n", cr.Label(), cr.Result.Reason)
		}
		fmt.Fprintln(&buf)
	}

	if len(set.Recommendations) > 0 {
		fmt.Fprintln(&buf, "RECOMMENDATIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, r := range set.Recommendations {
			fmt.Fprintf(&buf, "• %s\n", r)
		}
	}
	return buf.Bytes(), nil
}

func writeRegime(buf *bytes.Buffer, cr compare.ComparisonResult) {
	r := cr.Result
	fmt.Fprintf(buf, "#%d %s\n", cr.Rank, cr.Label())
	fmt.Fprintln(buf, strings.Repeat("=", 50))

	fmt.Fprintln(buf, "MONTHLY:")
	line(buf, "Gross", r.Gross)
	if r.TransportSubsidy.IsPositive() {
		line(buf, "Transport subsidy", r.TransportSubsidy)
	}
	line(buf, "Cost to the payer", r.MonthlyCost)
	if r.EmployerContributions.IsPositive() {
		line(buf, "Employer contributions", r.EmployerContributions)
	}
	if r.FringeAccrual.IsPositive() {
		line(buf, "Fringe accrual", r.FringeAccrual)
	}
	line(buf, "Worker contributions", r.WorkerContributions)
	line(buf, "Withholding", r.MonthlyWithholding)
	line(buf, "Net", r.MonthlyNet)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "TAXABLE BASE:")
	writeBase(buf, r.Base)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "ANNUAL:")
	line(buf, "Gross", r.AnnualGross)
	line(buf, "Contributions", r.AnnualContributions)
	line(buf, "Income tax", r.AnnualTax)
	if r.VATLiability.IsPositive() {
		line(buf, "VAT (charged to client)", r.VATLiability)
	}
	line(buf, "Net", r.AnnualNet)
	fmt.Fprintf(buf, "  %-26s %18s\n", "Effective rate", compare.FormatPercent(r.EffectiveRate))
	if cr.Rank > 1 {
		line(buf, "Net vs best", cr.NetDiffFromBest)
	}

	if rec := r.Reconciliation; rec != nil {
		fmt.Fprintln(buf)
		fmt.Fprintln(buf, "RECONCILIATION:")
		line(buf, "Withholding paid", rec.WithholdingPaid)
		line(buf, "Annual tax", rec.AnnualTax)
		line(buf, "Delta", rec.Delta)
		fmt.Fprintf(buf, "  %-26s %18s\n", "Outcome", outcomeLabel(rec.Outcome))
	}

	if len(r.Notes) > 0 {
		fmt.Fprintln(buf)
		for _, n := range r.Notes {
			fmt.Fprintf(buf, "  note: %s\n", n)
		}
	}
	fmt.Fprintln(buf)
}

func writeBase(buf *bytes.Buffer, b domain.TaxableBase) {
	line(buf, "Gross", b.Gross)
	line(buf, "(-) Mandatory contributions", b.MandatoryContributions)
	line(buf, "Net after contributions", b.NetAfterContributions)
	line(buf, "(-) Capped deductions", b.CappedDeductions)
	line(buf, "(-) Exempt portion", b.ExemptPortion)
	line(buf, "Relief applied", b.AppliedRelief)
	line(buf, "Taxable base", b.TaxableBase)
	if b.LimitApplied {
		fmt.Fprintf(buf, "  %-26s %18s\n", "Ceiling", b.LimitType)
	}
}

func line(buf *bytes.Buffer, label string, amount decimal.Decimal) {
	fmt.Fprintf(buf, "  %-26s %18s\n", label, compare.FormatCOP(amount))
}

func outcomeLabel(o domain.ReconciliationOutcome) string {
	switch o {
	case domain.OutcomeAdditionalOwed:
		return "additional tax owed"
	case domain.OutcomeBalanceInFavor:
		return "balance in favor"
	default:
		return "settled"
	}
}
