package main

import (
	"fmt"

	"github.com/rgehrsitz/coltax/internal/breakeven"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rgehrsitz/coltax/internal/regime"
	"github.com/spf13/cobra"
)

func netToGrossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "net-to-gross <monthly-net>",
		Short: "Find the gross each regime needs to leave a target monthly net",
		Long: `Search, for every regime or the one named with --regime, the monthly gross
that leaves the worker the target net after contributions and withholding, and
report which regime costs the payer least.

Examples:
  coltax net-to-gross 6.000.000
  coltax net-to-gross 6000000 --regime simple --group educacion_salud`,
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
			target, err := domain.ParseAmount("net-to-gross", "target net", args[0])
			if err != nil {
				return report(out, err)
			}

			models := regime.All(rt.engine)
			if kind, _ := cmd.Flags().GetString("regime"); kind != "" {
				m, ok := regime.ByKind(rt.engine, domain.RegimeKind(kind))
				if !ok {
					return fmt.Errorf("unknown regime %q", kind)
				}
				models = []regime.Model{m}
			}

			var constraints breakeven.Constraints
			if raw, _ := cmd.Flags().GetString("max-gross"); raw != "" {
				maxGross, err := domain.ParseAmount("net-to-gross", "max gross", raw)
				if err != nil {
					return report(out, err)
				}
				constraints.MaxGross = &maxGross
			}

			solver := breakeven.NewDefaultSolver()
			multi, err := solver.SolveAll(cmd.Context(), models, target, opts, constraints)
			if err != nil {
				return err
			}
			rt.log.Info().
				Str("target_net", target.StringFixed(0)).
				Int("regimes", len(multi.Results)).
				Msg("net-to-gross solved")

			if rt.settings.Format == "json" {
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(multi)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMulti(multi))
			return nil
		},
	}
	cmd.Flags().String("regime", "", "Solve a single regime (employment, integral_salary, independent_contractor, simple)")
	cmd.Flags().String("max-gross", "", "Stop searching above this monthly gross")
	addCalcFlags(cmd)
	return cmd
}
