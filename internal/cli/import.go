package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/amlich/internal/database"
	"github.com/zapponejosh/amlich/internal/observance"
)

func importCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:     "import FILE",
		Short:   "Replace the stored observances with a YAML file",
		Example: "  amlich import observances.yaml --db ./data/amlich.db",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = a.cfg.DatabasePath
			}

			db, err := database.Open(database.DefaultConfig(dbPath), a.log)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := db.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			n, err := observance.Import(cmd.Context(), args[0], db)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d observances into %s\n", n, dbPath)
			return err
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (defaults to DATABASE_PATH)")
	return cmd
}
