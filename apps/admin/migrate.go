package main

import (
	"github.com/spf13/cobra"

	"github.com/trezcool/userql/storage/database"
)

func newMigrateCmd(cli *commandLine) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run database migrations",
		Long: `Run a goose command against the embedded migrations of the selected engine.
Commands: up, up-by-one, up-to VERSION, down, down-to VERSION, redo, reset, status, version.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.migrate(cmd, args)
		},
	}
}

func (cli *commandLine) migrate(cmd *cobra.Command, args []string) error {
	return database.RunMigration(cmd.Context(), cli.db, cli.conf.Database.Engine, args[0], args[1:]...)
}
