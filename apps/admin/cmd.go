package main

import (
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/userql/core"
	"github.com/trezcool/userql/core/user"
	"github.com/trezcool/userql/storage/database"
	sqlxrepos "github.com/trezcool/userql/storage/database/sqlx"
)

type commandLine struct {
	conf   *core.Config
	db     *sqlx.DB
	usrSvc *user.Service
}

// connect opens the database once; commands run against the sqlx user repository.
func (cli *commandLine) connect() error {
	if cli.db != nil {
		return nil
	}
	db, err := database.Open(cli.conf)
	if err != nil {
		return err
	}
	cli.setDB(db)
	return nil
}

func (cli *commandLine) setDB(db *sqlx.DB) {
	cli.db = db
	cli.usrSvc = user.NewService(sqlxrepos.NewUserRepository(db, cli.conf.Database.Engine), core.NewValidator())
}

func (cli *commandLine) close() {
	if cli.db != nil {
		_ = cli.db.Close()
		cli.db = nil
	}
}

func newRootCmd(cli *commandLine) *cobra.Command {
	root := &cobra.Command{
		Use:          "admin",
		Short:        "userql administration",
		Long:         "Command line interface to migrate the users database and manage its users.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cli.conf.Database.Engine = core.CleanString(cli.conf.Database.Engine, true)
			return cli.connect()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cli.conf.Database.Engine, "engine", cli.conf.Database.Engine, "database driver: postgres or sqlite3")
	flags.StringVar(&cli.conf.Database.URL, "database-url", cli.conf.Database.URL, "database URL (defaults to DATABASE_URL)")

	root.AddCommand(
		newMigrateCmd(cli),
		newAddUserCmd(cli),
		newListUsersCmd(cli),
		newDeleteUserCmd(cli),
		newResetUsersCmd(cli),
	)
	return root
}

// describe spells out validation failures, which only read "invalid input" otherwise.
func describe(err error) error {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		msgs := make([]string, 0, len(vErr.Fields))
		for _, fErr := range vErr.Fields {
			msgs = append(msgs, fErr.Field+": "+fErr.Error)
		}
		return errors.Errorf("invalid input: %s", strings.Join(msgs, "; "))
	}
	return err
}
