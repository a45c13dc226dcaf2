package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/compare"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// monthlyPay is one month as the withholding procedure sees it
type monthlyPay struct {
	Salary        decimal.Decimal
	Subsidy       decimal.Decimal
	Contributions calculation.Contributions
}

func (m monthlyPay) gross() decimal.Decimal {
	return m.Salary.Add(m.Subsidy)
}

// payFor derives subsidy and worker contributions for a monthly amount
func payFor(rt *app, amount decimal.Decimal, opts domain.CalcOptions, contractor bool) monthlyPay {
	p := rt.engine.Params()
	if contractor {
		return monthlyPay{Salary: amount, Contributions: calculation.ContractorContributions(p, amount, opts.Pensioner)}
	}
	pay := monthlyPay{Salary: amount, Contributions: calculation.EmployeeContributions(p, amount, opts.Pensioner)}
	if p.SubsidyEligible(amount) {
		pay.Subsidy = p.TransportSubsidy
	}
	return pay
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func writeBase(w io.Writer, tb domain.TaxableBase) {
	row := func(label string, v decimal.Decimal) {
		fmt.Fprintf(w, "  %-28s %18s\n", label, compare.FormatCOP(v))
	}
	row("Gross income", tb.Gross)
	row("Mandatory contributions", tb.MandatoryContributions)
	row("Net after contributions", tb.NetAfterContributions)
	row("Capped deductions", tb.CappedDeductions)
	row("Exempt portion (25%)", tb.ExemptPortion)
	row("Applied relief", tb.AppliedRelief)
	row("Taxable base", tb.TaxableBase)
	if tb.LimitApplied {
		fmt.Fprintf(w, "  Relief limited by the %s ceiling\n", tb.LimitType)
	}
}

func withholdingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withholding <monthly-salary>",
		Short: "Compute the monthly income tax withholding (Procedure 1)",
		Long: `Run the monthly withholding procedure on a salary, adding the transport
subsidy when the salary qualifies. Worker contributions are derived from the
salary unless --contractor is set, in which case the amount is an honorarium.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			opts, err := calcOptions(cmd, rt.settings)
			if err != nil {
				return report(out, err)
			}
			amount, err := domain.ParseAmount("withholding", "salary", args[0])
			if err != nil {
				return report(out, err)
			}
			contractor, _ := cmd.Flags().GetBool("contractor")

			pay := payFor(rt, amount, opts, contractor)
			wh, err := rt.engine.Withhold(pay.gross(), pay.Contributions.Mandatory(), opts.Deductions)
			if err != nil {
				return report(out, err)
			}

			if rt.settings.Format == "json" {
				return writeJSON(out, wh)
			}
			fmt.Fprintf(out, "MONTHLY WITHHOLDING (tax year %d)\n", rt.year.Year)
			if pay.Subsidy.IsPositive() {
				fmt.Fprintf(out, "  Transport subsidy included: %s\n", compare.FormatCOP(pay.Subsidy))
			}
			writeBase(out, wh.Base)
			fmt.Fprintf(out, "  %-28s %18s\n", "Base in UVT", wh.BaseUnits.StringFixed(2))
			fmt.Fprintf(out, "  %-28s %18s\n", "Withholding", compare.FormatCOP(wh.Withholding))
			return nil
		},
	}
	cmd.Flags().Bool("contractor", false, "Treat the amount as a contractor honorarium")
	addCalcFlags(cmd)
	return cmd
}

func annualCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annual <monthly-salary>",
		Short: "Reconcile a year of withholding against the annual income tax",
		Long: `Build a year of identical months, run the annual depuración with realized
fringe benefits and compare the annual tax to the withholding already paid.
The withholding defaults to what Procedure 1 yields for the salary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			opts, err := calcOptions(cmd, rt.settings)
			if err != nil {
				return report(out, err)
			}
			amount, err := domain.ParseAmount("annual", "salary", args[0])
			if err != nil {
				return report(out, err)
			}

			flags := cmd.Flags()
			months, _ := flags.GetInt("months")
			if months < 1 || months > 12 {
				return fmt.Errorf("--months must be between 1 and 12, got %d", months)
			}
			contractor, _ := flags.GetBool("contractor")
			noFringe, _ := flags.GetBool("no-fringe")

			pay := payFor(rt, amount, opts, contractor)
			withheld := decimal.Zero
			if raw, _ := flags.GetString("withheld"); raw != "" {
				if withheld, err = domain.ParseAmount("annual", "withheld", raw); err != nil {
					return report(out, err)
				}
			} else {
				wh, err := rt.engine.Withhold(pay.gross(), pay.Contributions.Mandatory(), opts.Deductions)
				if err != nil {
					return report(out, err)
				}
				withheld = wh.Withholding
			}

			year := calculation.UniformYear(pay.Salary, pay.Subsidy, pay.Contributions.Mandatory(), withheld)
			rec, err := rt.engine.Reconcile(calculation.AnnualInput{
				Months:        year[:months],
				Deductions:    opts.Deductions,
				AccruesFringe: !contractor && !noFringe,
			})
			if err != nil {
				return report(out, err)
			}

			if rt.settings.Format == "json" {
				return writeJSON(out, rec)
			}
			writeReconciliation(out, rt.year.Year, rec)
			return nil
		},
	}
	cmd.Flags().Int("months", 12, "Months worked in the year")
	cmd.Flags().String("withheld", "", "Monthly withholding already paid (default: computed)")
	cmd.Flags().Bool("contractor", false, "Treat the amount as a contractor honorarium (no fringe benefits)")
	cmd.Flags().Bool("no-fringe", false, "Leave realized fringe benefits out of the annual gross")
	addCalcFlags(cmd)
	return cmd
}

func writeReconciliation(w io.Writer, year int, rec domain.Reconciliation) {
	row := func(label string, v decimal.Decimal) {
		fmt.Fprintf(w, "  %-28s %18s\n", label, compare.FormatCOP(v))
	}
	fmt.Fprintf(w, "ANNUAL RECONCILIATION (tax year %d)\n", year)
	row("Salaries", rec.Salaries)
	row("Transport subsidy", rec.Subsidies)
	row("Service bonus", rec.ServiceBonus)
	row("Severance", rec.Severance)
	row("Severance interest", rec.SeveranceInterest)
	writeBase(w, rec.Base)
	row("Annual income tax", rec.AnnualTax)
	row("Withholding paid", rec.WithholdingPaid)

	switch rec.Outcome {
	case domain.OutcomeAdditionalOwed:
		row("Additional tax owed", rec.Delta)
	case domain.OutcomeBalanceInFavor:
		row("Balance in favor", rec.Delta.Neg())
	default:
		fmt.Fprintln(w, "  Withholding settles the year")
	}
}
