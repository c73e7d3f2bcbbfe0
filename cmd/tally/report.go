package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tally/internal/ledger"
	"tally/internal/model"
	"tally/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derived summaries and series over the ledger",
	}

	cmd.AddCommand(reportMonthCmd())
	cmd.AddCommand(reportYearCmd())
	cmd.AddCommand(reportDailyCmd())
	cmd.AddCommand(reportBreakdownCmd())

	return cmd
}

// withReportEngine opens storage and hands a report engine to fn, closing the
// store on every exit path.
func withReportEngine(cmd *cobra.Command, fn func(*report.Engine) error) error {
	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(report.New(ledger.New(store)))
}

func withLedger(cmd *cobra.Command, fn func(*ledger.Ledger) error) error {
	store, err := initStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ledger.New(store))
}

func reportMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month <year> <month>",
		Short: "Income, expense, and balance for one month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args[0], args[1])
			if err != nil {
				return err
			}

			return withLedger(cmd, func(led *ledger.Ledger) error {
				summary, err := led.MonthlySummary(cmd.Context(), year, month)
				if err != nil {
					return fmt.Errorf("failed to compute monthly summary: %w", err)
				}

				fmt.Println(headerStyle.Render(fmt.Sprintf("%04d-%02d", summary.Year, summary.Month)))
				fmt.Printf("  Income:  %s\n", incomeStyle.Render(summary.Income.String()))
				fmt.Printf("  Expense: %s\n", expenseStyle.Render(summary.Expense.String()))
				fmt.Printf("  Balance: %s\n", summary.Balance)
				return nil
			})
		},
	}
}

func reportYearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year <year>",
		Short: "Per-month income and expense totals for a year",
		Long: `Print income and expense totals for each month of a year. Months with no
activity are omitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[0])
			}

			return withReportEngine(cmd, func(eng *report.Engine) error {
				series, err := eng.YearlySeries(cmd.Context(), year)
				if err != nil {
					return fmt.Errorf("failed to compute yearly series: %w", err)
				}

				if len(series) == 0 {
					fmt.Println(subtleStyle.Render(fmt.Sprintf("No activity in %d.", year)))
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				defer w.Flush()

				fmt.Fprintf(w, "%s\t%s\t%s\n",
					headerStyle.Render("Month"),
					headerStyle.Render("Income"),
					headerStyle.Render("Expense"))
				for _, point := range series {
					fmt.Fprintf(w, "%04d-%02d\t%s\t%s\n",
						year, point.Month,
						incomeStyle.Render(point.Income.String()),
						expenseStyle.Render(point.Expense.String()))
				}
				return nil
			})
		},
	}
}

func reportDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily <year> <month>",
		Short: "Per-day income and expense totals for one month",
		Long: `Print income and expense totals for each day of a month that has at least
one transaction. Inactive days are omitted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseYearMonth(args[0], args[1])
			if err != nil {
				return err
			}

			return withReportEngine(cmd, func(eng *report.Engine) error {
				series, err := eng.DailySeries(cmd.Context(), year, month)
				if err != nil {
					return fmt.Errorf("failed to compute daily series: %w", err)
				}

				if len(series) == 0 {
					fmt.Println(subtleStyle.Render(fmt.Sprintf("No activity in %04d-%02d.", year, month)))
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				defer w.Flush()

				fmt.Fprintf(w, "%s\t%s\t%s\n",
					headerStyle.Render("Day"),
					headerStyle.Render("Income"),
					headerStyle.Render("Expense"))
				for _, point := range series {
					fmt.Fprintf(w, "%04d-%02d-%02d\t%s\t%s\n",
						year, month, point.Day,
						incomeStyle.Render(point.Income.String()),
						expenseStyle.Render(point.Expense.String()))
				}
				return nil
			})
		},
	}
}

func reportBreakdownCmd() *cobra.Command {
	var (
		from     string
		to       string
		kindFlag string
	)

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Category totals over a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := model.ParseDate(from)
			if err != nil {
				return err
			}
			end, err := model.ParseDate(to)
			if err != nil {
				return err
			}
			kind, err := model.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			return withReportEngine(cmd, func(eng *report.Engine) error {
				totals, err := eng.CategoryBreakdown(cmd.Context(), start, end, kind)
				if err != nil {
					return fmt.Errorf("failed to compute breakdown: %w", err)
				}

				if len(totals) == 0 {
					fmt.Println(subtleStyle.Render("No matching transactions."))
					return nil
				}

				names := make([]string, 0, len(totals))
				for name := range totals {
					names = append(names, name)
				}
				// Largest first, ties by name
				sort.Slice(names, func(i, j int) bool {
					if totals[names[i]].Cents != totals[names[j]].Cents {
						return totals[names[i]].Cents > totals[names[j]].Cents
					}
					return names[i] < names[j]
				})

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				defer w.Flush()

				fmt.Fprintf(w, "%s\t%s\n",
					headerStyle.Render("Category"),
					headerStyle.Render("Total"))
				for _, name := range names {
					style := categoryStyle(eng.ColorIndex(name))
					fmt.Fprintf(w, "%s\t%s\n", style.Render(name), totals[name])
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "range end date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&kindFlag, "kind", "expense", "kind to break down (income or expense)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func parseYearMonth(yearArg, monthArg string) (int, int, error) {
	year, err := strconv.Atoi(yearArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", yearArg)
	}
	month, err := strconv.Atoi(monthArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q", monthArg)
	}
	return year, month, nil
}
