package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/userql/core/user"
)

func newListUsersCmd(cli *commandLine) *cobra.Command {
	var name, email string
	var minAge int

	cmd := &cobra.Command{
		Use:   "listusers",
		Short: "List the database users, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter user.QueryFilter
			if cmd.Flags().Changed("name") {
				filter.Name = null.StringFrom(name)
			}
			if cmd.Flags().Changed("email") {
				filter.Email = null.StringFrom(email)
			}
			if cmd.Flags().Changed("min-age") {
				filter.Age = null.IntFrom(minAge)
			}
			return cli.listUsers(cmd, filter)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "name contains (case-insensitive)")
	cmd.Flags().StringVar(&email, "email", "", "email contains (case-insensitive)")
	cmd.Flags().IntVar(&minAge, "min-age", 0, "minimum age")
	return cmd
}

func (cli *commandLine) listUsers(cmd *cobra.Command, filter user.QueryFilter) error {
	users, err := cli.usrSvc.Filter(cmd.Context(), filter)
	if err != nil {
		return describe(err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tAGE")
	for _, usr := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", usr.ID, usr.Name, usr.Email, usr.Age)
	}
	return w.Flush()
}

func newDeleteUserCmd(cli *commandLine) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteuser ID",
		Short: "Delete a database user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Errorf("invalid user ID %q", args[0])
			}
			deleted, err := cli.usrSvc.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return user.ErrNotFound
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user #%d\n", id)
			return nil
		},
	}
}

func newResetUsersCmd(cli *commandLine) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "resetusers",
		Short: "Delete every database user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("refusing to delete all users without --yes")
			}
			if err := cli.usrSvc.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all users deleted")
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the deletion")
	return cmd
}
