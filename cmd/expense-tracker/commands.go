package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/example/expense-tracker/pkg/movement"
	"github.com/example/expense-tracker/pkg/tracker"
)

func newAddCmd(a *app) *cobra.Command {
	var description, date string

	cmd := &cobra.Command{
		Use:   "add <income|expense> <amount> <category>",
		Short: "Record a movement in the ledger",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := movement.ParseKind(args[0])
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("amount %q is not a number: %w", args[1], err)
			}
			var when time.Time
			if date != "" {
				if when, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("date %q must be YYYY-MM-DD: %w", date, err)
				}
			}

			if err := a.open(); err != nil {
				return err
			}
			m, err := a.controller.Add(kind, amount, args[2], description, when)
			if err != nil {
				return err
			}
			if err := a.save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s of %s in %q\n", m.Kind(), a.formatAmount(m.Amount()), m.Category())
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "free text description")
	cmd.Flags().StringVar(&date, "date", "", "date of the movement, YYYY-MM-DD (default today)")
	return cmd
}

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print total income minus total expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Balance: %s\n", a.formatAmount(a.controller.Balance()))
			return nil
		},
	}
}

func newSummaryCmd(a *app) *cobra.Command {
	var expensesOnly bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize movements by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if expensesOnly {
				summary := a.controller.ExpenseSummary()
				fmt.Fprintln(tw, "CATEGORY\tEXPENSE")
				for _, category := range tracker.Categories(summary) {
					fmt.Fprintf(tw, "%s\t%s\n", category, a.formatAmount(summary[category]))
				}
				return tw.Flush()
			}

			summary := a.controller.SummaryByCategory()
			fmt.Fprintln(tw, "CATEGORY\tINCOME\tEXPENSE\tNET")
			for _, category := range tracker.Categories(summary) {
				total := summary[category]
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", category,
					a.formatAmount(total.Income), a.formatAmount(total.Expense), a.formatAmount(total.Net()))
			}
			total := a.controller.Totals()
			fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%s\n",
				a.formatAmount(total.Income), a.formatAmount(total.Expense), a.formatAmount(total.Net()))
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&expensesOnly, "expenses-only", false, "only report expense totals")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movements in the order they were recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(); err != nil {
				return err
			}

			movements := a.controller.Movements()
			if category != "" {
				movements = a.controller.ByCategory(category)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tKIND\tAMOUNT\tCATEGORY\tDESCRIPTION")
			for _, m := range movements {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					m.Date().Format(time.DateOnly), m.Kind(), a.formatAmount(m.Amount()), m.Category(), m.Description())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list movements of this category")
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <destination>",
		Short: "Write the ledger to another file, optionally in another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[0]
			format, err := tracker.FormatFromPath(dest)
			if to != "" {
				format, err = tracker.ParseFormat(to)
			}
			if err != nil {
				return err
			}

			if err := a.open(); err != nil {
				return err
			}
			if err := a.controller.Save(dest, format); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d movements to %s (%s)\n", a.controller.Len(), dest, format)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination format: json or csv (default from extension)")
	return cmd
}
