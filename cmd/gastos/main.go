package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yurifrl/gastos/pkg/config"
	"github.com/yurifrl/gastos/pkg/plan"
	"github.com/yurifrl/gastos/pkg/service"
)

var (
	cliFilters service.Filters
	cfgFile    string
)

var rootCmd = &cobra.Command{
	Use:   "gastos",
	Short: "Extract credit card transactions from PDF statements",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract [flags] <statement.pdf>...",
	Short: "Extract transactions to CSV and chart the top categories",
	Long: `Extract transactions from one or more statements into a CSV file and a chart
named after the first statement. Installment purchases are counted once, which
requires statements to be given newest first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		processor, err := newProcessor(cmd)
		if err != nil {
			return err
		}
		outputs, err := processor.Run(args, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("\nTransactions have been extracted and saved to %s\n", outputs.CSV)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Preview (or run with --run) a YAML batch of statements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planPath := args[0]

		p, err := plan.Load(planPath)
		if err != nil {
			return err
		}

		fmt.Printf("Plan preview for %s\n", planPath)
		p.Print(os.Stdout)

		run, _ := cmd.Flags().GetBool("run")
		if !run {
			return nil
		}

		processor, err := newProcessor(cmd)
		if err != nil {
			return err
		}
		outputs, err := processor.Run(p.Files(), os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("\nTransactions have been extracted and saved to %s\n", outputs.CSV)
		return nil
	},
}

func newProcessor(cmd *cobra.Command) (*service.Processor, error) {
	// Load configuration (config file + env + flag overrides)
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gastos",
		Level:           level,
	})

	return service.NewProcessor(cfg, logger,
		service.WithFilters(cliFilters),
		service.WithColors(isatty.IsTerminal(os.Stdout.Fd())),
	), nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is gastos.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory (default: next to the first statement)")
	rootCmd.PersistentFlags().String("engine", "mupdf", "PDF text engine (mupdf or ledongthuc)")
	rootCmd.PersistentFlags().Int("top", 10, "Number of categories in the report and chart")
	rootCmd.PersistentFlags().Bool("no-raw", false, "Do not save the extracted raw text")
	rootCmd.PersistentFlags().Bool("no-chart", false, "Do not render the chart")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	// Filter flags (global)
	rootCmd.PersistentFlags().Float64Var(&cliFilters.MinAmount, "min", 0, "Minimum amount")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.MaxAmount, "max", 0, "Maximum amount")
	rootCmd.PersistentFlags().StringVar(&cliFilters.Payee, "payee", "", "Filter by merchant (case insensitive)")

	// Flags specific to the plan subcommand
	planCmd.Flags().Bool("run", false, "Process the statements after previewing them")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(planCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
