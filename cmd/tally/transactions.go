package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tally/internal/ledger"
	"tally/internal/model"
)

// txFlags carries the transaction fields shared by add and update.
type txFlags struct {
	date        string
	kind        string
	amount      string
	description string
	categoryID  int64
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.kind, "kind", "", "transaction kind (income or expense)")
	cmd.Flags().Int64Var(&f.categoryID, "category", 0, "category id")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount (e.g. 120.50)")
	cmd.Flags().StringVar(&f.description, "description", "", "optional free-text description")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")
}

func (f *txFlags) parse() (model.Date, model.Kind, model.Money, error) {
	date, err := model.ParseDate(f.date)
	if err != nil {
		return model.Date{}, "", model.Money{}, err
	}
	kind, err := model.ParseKind(f.kind)
	if err != nil {
		return model.Date{}, "", model.Money{}, err
	}
	amount, err := model.ParseAmount(f.amount)
	if err != nil {
		return model.Date{}, "", model.Money{}, err
	}
	return date, kind, amount, nil
}

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and manage transactions",
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			date, kind, amount, err := flags.parse()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			txn, err := ledger.New(store).Add(ctx, date, kind, flags.categoryID, amount, flags.description)
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			fmt.Println(successStyle.Render(
				fmt.Sprintf("Recorded %s of %s on %s (id %d)", txn.Kind, txn.Amount, txn.Date, txn.ID)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func listTxCmd() *cobra.Command {
	var (
		limit  int
		offset int
		from   string
		to     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Long: `List transactions ordered by date descending, most recently created first
within a day. Use --from/--to for an inclusive date range, otherwise
--limit/--offset paginate the full ledger.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			led := ledger.New(store)

			var txns []model.Transaction
			if from != "" || to != "" {
				if from == "" || to == "" {
					return fmt.Errorf("--from and --to must be used together")
				}
				start, parseErr := model.ParseDate(from)
				if parseErr != nil {
					return parseErr
				}
				end, parseErr := model.ParseDate(to)
				if parseErr != nil {
					return parseErr
				}
				txns, err = led.ListByDateRange(ctx, start, end)
			} else {
				txns, err = led.List(ctx, limit, offset)
			}
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(txns) == 0 {
				fmt.Println(subtleStyle.Render("No transactions found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Date"),
				headerStyle.Render("Kind"),
				headerStyle.Render("Amount"),
				headerStyle.Render("Category"),
				headerStyle.Render("Description"))

			for _, txn := range txns {
				name := txn.CategoryName
				if name == "" {
					name = subtleStyle.Render("(missing category)")
				}
				style := kindStyle(txn.Kind == model.KindIncome)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID, txn.Date, style.Render(txn.Kind.String()),
					txn.Amount, name, txn.Description)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum rows to return (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	cmd.Flags().StringVar(&from, "from", "", "range start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "range end date (YYYY-MM-DD, inclusive)")

	return cmd
}

func updateTxCmd() *cobra.Command {
	var flags txFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of an existing transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseTxID(args[0])
			if err != nil {
				return err
			}

			date, kind, amount, err := flags.parse()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := ledger.New(store).Update(ctx, id, date, kind, flags.categoryID, amount, flags.description); err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("Updated transaction %d", id)))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := parseTxID(args[0])
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := ledger.New(store).Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}

			fmt.Println(warningStyle.Render(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}
}

func parseTxID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction id %q", arg)
	}
	return id, nil
}
