package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect the underlying database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the database file location",
		Long: `Print the path of the SQLite file backing the ledger. Backup tooling copies
this file wholesale; make sure no write is in flight during the copy.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println(store.Path())
			return nil
		},
	})

	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Initialize or upgrade the database schema",
		Long: `Create the schema and seed default categories if the database is new.
Safe to run repeatedly; existing data is never cleared.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println(successStyle.Render("Database schema is up to date."))
			return nil
		},
	}
}
