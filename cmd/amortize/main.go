package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpgo/mortgage-projector/internal/calculation"
	"github.com/rpgo/mortgage-projector/internal/config"
	"github.com/rpgo/mortgage-projector/internal/dashboard"
	"github.com/rpgo/mortgage-projector/internal/domain"
	"github.com/rpgo/mortgage-projector/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// scenarioFlags are shared by every command that runs a simulation.
type scenarioFlags struct {
	configFile string
	variant    string
	horizon    int
	verbose    bool

	principal        string
	rate             string
	term             string
	extra            string
	portfolio        string
	marketReturn     string
	homeValue        string
	homeAppreciation string
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "scenario YAML file")
	fs.StringVar(&f.variant, "variant", "", "engine variant: long_horizon or stop_at_payoff")
	fs.IntVar(&f.horizon, "horizon", 0, "simulation horizon in years (overrides the variant preset)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")

	fs.StringVar(&f.principal, "principal", "", "loan amount")
	fs.StringVar(&f.rate, "rate", "", "annual interest rate in percent")
	fs.StringVar(&f.term, "term", "", "loan term in years")
	fs.StringVar(&f.extra, "extra", "", "extra monthly payment")
	fs.StringVar(&f.portfolio, "portfolio", "", "initial investment portfolio")
	fs.StringVar(&f.marketReturn, "market-return", "", "annual market return in percent")
	fs.StringVar(&f.homeValue, "home-value", "", "initial home value (defaults to the principal)")
	fs.StringVar(&f.homeAppreciation, "home-appreciation", "", "annual home appreciation in percent")
}

// scenario is a fully resolved simulation request.
type scenario struct {
	cfg   *domain.Configuration
	input domain.SimulationInput
	opts  domain.EngineOptions
}

// resolve loads the config file (if any), applies flag overrides and validates the result.
func (f *scenarioFlags) resolve(cmd *cobra.Command) (*scenario, error) {
	parser := config.NewInputParser()
	cfg := &domain.Configuration{}
	if f.configFile != "" {
		loaded, err := parser.LoadFromFile(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overrides := []struct {
		flag   string
		value  string
		target *string
	}{
		{"principal", f.principal, &cfg.Loan.Principal},
		{"rate", f.rate, &cfg.Loan.AnnualRatePercent},
		{"term", f.term, &cfg.Loan.TermYears},
		{"extra", f.extra, &cfg.Loan.ExtraMonthlyPayment},
		{"portfolio", f.portfolio, &cfg.Investment.InitialPortfolio},
		{"market-return", f.marketReturn, &cfg.Investment.AnnualMarketReturnPercent},
		{"home-value", f.homeValue, &cfg.Home.InitialValue},
		{"home-appreciation", f.homeAppreciation, &cfg.Home.AnnualAppreciationPercent},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.target = o.value
		}
	}
	if cmd.Flags().Changed("variant") {
		cfg.Simulation.Variant = f.variant
	}
	if cmd.Flags().Changed("horizon") {
		h := f.horizon
		cfg.Simulation.HorizonYears = &h
	}

	in, err := parser.ParseRawInput(cfg.RawInput())
	if err != nil {
		return nil, err
	}
	opts, err := parser.EngineOptions(cfg)
	if err != nil {
		return nil, err
	}
	return &scenario{cfg: cfg, input: in, opts: opts}, nil
}

func (f *scenarioFlags) logger(w io.Writer) calculation.Logger {
	return calculation.NewStdLogger(w, f.verbose)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "amortize",
		Short:         "Mortgage amortization and net worth projector",
		Long:          "Simulates a mortgage month by month alongside an investment portfolio that services it and a home that appreciates, and reports yearly balance, equity and net worth.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newCalculateCmd(),
		newChartsCmd(),
		newTargetCmd(),
		newExampleConfigCmd(),
		newValidateCmd(),
		newFormatsCmd(),
	)
	return root
}

func newCalculateCmd() *cobra.Command {
	var (
		flags     scenarioFlags
		format    string
		outputDir string
		timeframe string
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run the simulation and print or write a report",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			tf, err := calculation.ParseTimeframe(timeframe)
			if err != nil {
				return err
			}

			engine := calculation.NewEngine()
			engine.SetLogger(flags.logger(cmd.ErrOrStderr()))
			engine.Debug = flags.verbose
			p, err := engine.Simulate(sc.input, sc.opts)
			if err != nil {
				return err
			}
			view := calculation.Project(p, tf)

			if outputDir != "" {
				files, err := output.GenerateReport(view, format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
				}
				return nil
			}

			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q (available: %s)", output.ErrUnsupportedFormat, format, strings.Join(output.AvailableFormatterNames(), ", "))
			}
			data, err := f.Format(view)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (see 'formats')")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write a timestamped report file into this directory instead of stdout")
	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "all", "limit the report to the first N years, or 'all'")
	return cmd
}

func newChartsCmd() *cobra.Command {
	var (
		flags      scenarioFlags
		outputDir  string
		timeframes []string
	)
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Render one HTML chart page per surface",
		Long:  "Renders the mortgage, portfolio and net_worth surfaces, each truncated to its own timeframe. Timeframes come from the config file and may be overridden with --timeframe surface=value.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			for _, kv := range timeframes {
				name, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("invalid --timeframe %q: want surface=value", kv)
				}
				if sc.cfg.Simulation.Timeframes == nil {
					sc.cfg.Simulation.Timeframes = map[string]string{}
				}
				sc.cfg.Simulation.Timeframes[name] = value
			}
			tfs, err := config.NewInputParser().Timeframes(sc.cfg)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return err
			}

			d := dashboard.New(&output.FileRenderer{Dir: outputDir}, sc.opts)
			d.SetLogger(flags.logger(cmd.ErrOrStderr()))
			for surface, tf := range tfs {
				if err := d.SetTimeframe(surface, tf); err != nil {
					return err
				}
			}
			if err := d.Recalculate(sc.cfg.RawInput()); err != nil {
				return err
			}
			for _, s := range domain.AllSurfaces {
				tf, _ := d.Timeframe(s)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-4s %s\n", s, tf, d.Chart(s).ID())
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory for chart pages")
	cmd.Flags().StringArrayVarP(&timeframes, "timeframe", "t", nil, "surface=years|all, repeatable")
	return cmd
}

func newTargetCmd() *cobra.Command {
	var (
		flags scenarioFlags
		years string
	)
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Find the extra monthly payment that retires the loan within a number of years",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			target, err := decimal.NewFromString(strings.TrimSpace(years))
			if err != nil {
				return fmt.Errorf("%w: --years %q is not a number", calculation.ErrInvalidInput, years)
			}

			engine := calculation.NewEngine()
			engine.SetLogger(flags.logger(cmd.ErrOrStderr()))
			extra, p, err := engine.SolveExtraPayment(sc.input, sc.opts, target)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Target payoff:        %s years\n", target)
			fmt.Fprintf(w, "Extra monthly payment: %s\n", output.FormatCurrencyCents(extra))
			fmt.Fprintf(w, "Monthly payment:       %s\n", output.FormatCurrencyCents(p.Summary.MonthlyPayment))
			fmt.Fprintf(w, "Payoff:                %s\n", output.FormatPayoff(p.Summary.PayoffMonth))
			fmt.Fprintf(w, "Total interest:        %s\n", output.FormatCurrency(p.Summary.TotalInterest))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&years, "years", "", "target payoff in years")
	_ = cmd.MarkFlagRequired("years")
	return cmd
}

func newExampleConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example-config [file]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "example_config.yaml"
			if len(args) == 1 {
				filename = args[0]
			}
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, filename); err != nil {
				return fmt.Errorf("failed to write %s: %w", filename, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", filename)
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(w, "Aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
		},
	}
}
