package cmd

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.openStorage(cmd.Context()); err != nil {
				return err
			}
			if err := rt.requirePostgres("migrate"); err != nil {
				return err
			}
			if err := rt.migrate(cmd.Context()); err != nil {
				return err
			}
			cmd.Println("migrations up to date")
			return nil
		},
	}
}
