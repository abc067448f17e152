package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/example/expense-tracker/internal/config"
	"github.com/example/expense-tracker/internal/logger"
	"github.com/example/expense-tracker/pkg/tracker"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once flags and config are resolved
type app struct {
	configPath string
	file       string
	format     string

	cfg        *config.Config
	ledgerFmt  tracker.Format
	log        zerolog.Logger
	controller *tracker.ExpenseController
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "expense-tracker",
		Short: "Record income and expenses and report balances",
		Long: `Expense Tracker records income and expense movements in a JSON or CSV
ledger file, computes the running balance and summarizes movements by category.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Expense Tracker v%s\n", version)
			fmt.Fprintln(cmd.OutOrStdout(), "Use --help for available commands")
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a TOML config file")
	flags.StringVarP(&a.file, "file", "f", "", "ledger file (overrides data_file)")
	flags.StringVar(&a.format, "format", "", "ledger format: json or csv (overrides format)")

	rootCmd.AddCommand(
		newAddCmd(a),
		newBalanceCmd(a),
		newSummaryCmd(a),
		newListCmd(a),
		newConvertCmd(a),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.file != "" {
		cfg.DataFile = a.file
	}
	if a.format != "" {
		cfg.Format = a.format
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Validate already checked it
	a.ledgerFmt, _ = cfg.LedgerFormat()
	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    cmd.ErrOrStderr(),
	})
	a.controller = tracker.New(tracker.WithLogger(a.log))
	return nil
}

// open loads the ledger file. A file that does not exist yet is an empty
// ledger.
func (a *app) open() error {
	err := a.controller.Load(a.cfg.DataFile, a.ledgerFmt)
	if errors.Is(err, fs.ErrNotExist) {
		a.log.Info().Str("path", a.cfg.DataFile).Msg("ledger file not found, starting empty")
		return nil
	}
	return err
}

func (a *app) save() error {
	return a.controller.Save(a.cfg.DataFile, a.ledgerFmt)
}

// formatAmount renders amount in the configured currency, rounding to its
// minor unit
func (a *app) formatAmount(amount decimal.Decimal) string {
	cur := money.GetCurrency(a.cfg.Currency)
	if cur == nil {
		return amount.String()
	}
	return cur.Formatter().Format(amount.Shift(int32(cur.Fraction)).Round(0).IntPart())
}
