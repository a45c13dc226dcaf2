package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/coltax/internal/compare"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rgehrsitz/coltax/internal/output"
	"github.com/rgehrsitz/coltax/internal/regime"
	"github.com/spf13/cobra"
)

func parseMode(s string) (compare.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "budget":
		return compare.ModeBudget, nil
	case "gross":
		return compare.ModeGross, nil
	default:
		return "", fmt.Errorf("unknown mode %q (use budget or gross)", s)
	}
}

// runCompare executes one comparison and prints it in the configured format
func runCompare(cmd *cobra.Command, rt *app, ce *compare.CompareEngine, raw string, mode compare.Mode) error {
	opts, err := calcOptions(cmd, rt.settings)
	if err != nil {
		return report(cmd.OutOrStdout(), err)
	}
	amount, err := domain.ParseAmount("compare", "amount", raw)
	if err != nil {
		return report(cmd.OutOrStdout(), err)
	}
	goalFlag, _ := cmd.Flags().GetString("goal")
	goal, err := compare.ParseGoal(goalFlag)
	if err != nil {
		return err
	}

	formatter := output.GetFormatterByName(rt.settings.Format)
	if formatter == nil {
		return fmt.Errorf("unsupported format %q (use %s)", rt.settings.Format,
			strings.Join(output.AvailableFormatterNames(), ", "))
	}

	set, err := ce.Compare(cmd.Context(), compare.CompareOptions{
		Amount:  amount,
		Mode:    mode,
		Goal:    goal,
		Options: opts,
	})
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}
	set.ParamsSource = rt.source

	out, err := formatter.Format(set)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", rt.settings.Format, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <amount>",
		Short: "Rank every compensation regime for one monthly amount",
		Long: `Rank the employment, integral salary, contractor and SIMPLE regimes.

By default the amount is the payer's total monthly budget and each regime is
solved for the gross it can afford. With --mode gross every regime gets the same
monthly gross instead.

Examples:
  coltax compare 8.500.000
  coltax compare 8500000 --goal tax --pensioner
  coltax compare 12000000 --mode gross --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}
			modeFlag, _ := cmd.Flags().GetString("mode")
			mode, err := parseMode(modeFlag)
			if err != nil {
				return err
			}
			return runCompare(cmd, rt, compare.NewCompareEngine(rt.engine), args[0], mode)
		},
	}
	cmd.Flags().String("mode", "budget", "Interpret the amount as a payer budget or a gross (budget, gross)")
	cmd.Flags().String("goal", "net", "Ranking goal (net, tax)")
	addCalcFlags(cmd)
	return cmd
}

func simpleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simple <monthly-turnover>",
		Short: "Compare the contractor regime against the SIMPLE regime",
		Long: `Compare ordinary contractor taxation with the SIMPLE regime for the same
monthly turnover. With --all-groups the SIMPLE tax is listed for every
business-activity group instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}

			if all, _ := cmd.Flags().GetBool("all-groups"); all {
				return listGroups(cmd, rt, args[0])
			}

			ce := compare.NewCompareEngineWithModels(regime.NewContractor(rt.engine), regime.NewSimple(rt.engine))
			ce.Year = rt.year.Year
			ce.Logger = *rt.log.Zerolog()
			return runCompare(cmd, rt, ce, args[0], compare.ModeGross)
		},
	}
	cmd.Flags().String("goal", "net", "Ranking goal (net, tax)")
	cmd.Flags().Bool("all-groups", false, "List the SIMPLE tax of every business-activity group")
	addCalcFlags(cmd)
	return cmd
}

func listGroups(cmd *cobra.Command, rt *app, raw string) error {
	out := cmd.OutOrStdout()
	turnover, err := domain.ParseAmount("simple", "turnover", raw)
	if err != nil {
		return report(out, err)
	}
	opts, err := calcOptions(cmd, rt.settings)
	if err != nil {
		return report(out, err)
	}

	model := regime.NewSimple(rt.engine)
	fmt.Fprintf(out, "SIMPLE tax by activity group, monthly turnover %s\n", compare.FormatCOP(turnover))
	fmt.Fprintf(out, "%-30s %16s %16s %8s\n", "Group", "Annual tax", "Monthly net", "Rate")
	for _, group := range rt.year.SimpleGroups() {
		opts.ActivityGroup = group
		r, err := model.CostOf(turnover, opts)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%-30s %16s %16s %8s", group,
			compare.FormatCOP(r.AnnualTax), compare.FormatCOP(r.MonthlyNet), compare.FormatPercent(r.EffectiveRate))
		if !r.Applicable {
			line += "  (" + r.Reason + ")"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
