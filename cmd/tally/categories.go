package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tally/internal/model"
	"tally/internal/registry"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage income and expense categories",
		Long:  `List, add, and delete the categories transactions are recorded against.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long:  `Display all categories ordered by kind and name, or one kind with --kind.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			reg := registry.New(store)

			var categories []model.Category
			if kindFlag != "" {
				kind, parseErr := model.ParseKind(kindFlag)
				if parseErr != nil {
					return parseErr
				}
				categories, err = reg.ListByKind(ctx, kind)
			} else {
				categories, err = reg.ListAll(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(subtleStyle.Render("No categories found. Use 'tally categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Kind"),
				headerStyle.Render("Name"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 8),
				strings.Repeat("-", 20))

			for _, cat := range categories {
				style := kindStyle(cat.Kind == model.KindIncome)
				fmt.Fprintf(w, "%d\t%s\t%s\n", cat.ID, style.Render(cat.Kind.String()), cat.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", "filter by kind (income or expense)")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Long:  `Create a new category. Names are unique across both kinds.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kind, err := model.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cat, err := registry.New(store).Add(ctx, args[0], kind)
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("Added %s category %q (id %d)", cat.Kind, cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", "category kind (income or expense)")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long:  `Delete a category. Refused while any transaction still references it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := registry.New(store).Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}

			fmt.Println(successStyle.Render(fmt.Sprintf("Deleted category %d", id)))
			return nil
		},
	}
}
