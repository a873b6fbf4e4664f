package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Migrator is implemented by stores that own their schema
type Migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := app.Database.(Migrator)
			if !ok {
				return fmt.Errorf("the %s store has no migrations", app.StoreName)
			}

			applied, err := m.RunMigrations(app.Ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "Schema is up to date")
				return nil
			}
			for _, f := range applied {
				fmt.Fprintf(out, "✓ Applied %s\n", f)
			}
			return nil
		},
	}
}
