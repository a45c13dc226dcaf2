package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/coltax/internal/calculation"
	"github.com/rgehrsitz/coltax/internal/config"
	"github.com/rgehrsitz/coltax/internal/domain"
	"github.com/rgehrsitz/coltax/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app is what every calculation command needs: resolved settings, a logger and
// an engine bound to the selected tax year
type app struct {
	settings *config.Settings
	log      *logger.Logger
	year     *domain.TaxYear
	source   string
	engine   *calculation.Engine
}

// setup loads settings, applies flag overrides and builds the engine
func setup(cmd *cobra.Command) (*app, error) {
	s, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("year") {
		s.Year, _ = flags.GetInt("year")
	}
	if flags.Changed("params") {
		s.ParamsFile, _ = flags.GetString("params")
	}
	if flags.Changed("format") {
		s.Format, _ = flags.GetString("format")
	}
	if flags.Changed("log-level") {
		s.LogLevel, _ = flags.GetString("log-level")
	}
	if debugMode, _ := flags.GetBool("debug"); debugMode {
		s.LogLevel = "debug"
	}

	log := logger.New(logger.Config{Env: s.Env, Level: s.LogLevel, Out: cmd.ErrOrStderr()})

	ty, source, err := s.TaxYear()
	if err != nil {
		return nil, err
	}
	log.Debug().Int("year", ty.Year).Str("source", source).Msg("tax year loaded")

	engine := calculation.NewEngine(ty)
	engine.SetLogger(log.Zerolog())

	return &app{settings: s, log: log, year: ty, source: source, engine: engine}, nil
}

// addCalcFlags registers the per-request switches shared by the calculation commands
func addCalcFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("pensioner", false, "Worker already receives a pension (no pension or solidarity contributions)")
	cmd.Flags().String("group", "", "SIMPLE business-activity group (default from settings)")
	cmd.Flags().Bool("dependents", false, "Claim the dependents deduction")
	cmd.Flags().String("housing-interest", "", "Monthly housing loan interest")
	cmd.Flags().String("prepaid-medicine", "", "Monthly prepaid medicine")
	cmd.Flags().String("voluntary-pension", "", "Monthly voluntary pension contributions")
}

// calcOptions reads the flags registered by addCalcFlags
func calcOptions(cmd *cobra.Command, s *config.Settings) (domain.CalcOptions, error) {
	flags := cmd.Flags()
	opts := domain.CalcOptions{ActivityGroup: s.ActivityGroup}
	opts.Pensioner, _ = flags.GetBool("pensioner")
	if group, _ := flags.GetString("group"); group != "" {
		opts.ActivityGroup = group
	}
	opts.Deductions.HasDependents, _ = flags.GetBool("dependents")

	amounts := []struct {
		flag string
		dst  *decimal.Decimal
	}{
		{"housing-interest", &opts.Deductions.HousingInterest},
		{"prepaid-medicine", &opts.Deductions.PrepaidMedicine},
		{"voluntary-pension", &opts.Deductions.VoluntaryPension},
	}
	for _, a := range amounts {
		raw, _ := flags.GetString(a.flag)
		if raw == "" {
			continue
		}
		v, err := domain.ParseAmount("options", a.flag, raw)
		if err != nil {
			return domain.CalcOptions{}, err
		}
		*a.dst = v
	}
	return opts, nil
}

// report prints an invalid amount as "not applicable" and passes other errors on
func report(w io.Writer, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		fmt.Fprintf(w, "Not applicable: %v\n", err)
		return nil
	}
	return err
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coltax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [params-file]",
		Short: "Validate a tax-year parameter file (or the configured year)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				ty     *domain.TaxYear
				source string
				err    error
			)
			if len(args) == 1 {
				source = args[0]
				ty, err = config.NewInputParser().LoadFromFile(source)
			} else {
				var rt *app
				if rt, err = setup(cmd); err == nil {
					ty, source = rt.year, rt.source
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Tax year %d parameters (%s) are valid\n", ty.Year, source)
			fmt.Fprintf(cmd.OutOrStdout(), "  UVT: %s   withholding brackets: %d   income tax brackets: %d\n",
				ty.UVT.String(), ty.MonthlyWithholding.Len(), ty.AnnualIncomeTax.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "  SIMPLE groups: %v\n", ty.SimpleGroups())
			return nil
		},
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "coltax",
		Short: "Colombian compensation tax calculator",
		Long: `Compares what a worker keeps and what a payer spends under the Colombian
employment, integral salary, independent contractor and SIMPLE regimes.

Settings come from COLTAX_* environment variables and an optional coltax.yaml;
flags override both.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().Int("year", config.DefaultYear, "Tax year of the bundled parameters")
	root.PersistentFlags().String("params", "", "Tax-year parameter file (overrides --year)")
	root.PersistentFlags().StringP("format", "f", "table", "Output format (table, csv, json, verbose, html)")
	root.PersistentFlags().String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Bool("debug", false, "Log every calculation step")

	root.AddCommand(compareCmd())
	root.AddCommand(simpleCmd())
	root.AddCommand(withholdingCmd())
	root.AddCommand(annualCmd())
	root.AddCommand(netToGrossCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
