package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/userql/core/user"
)

func newAddUserCmd(cli *commandLine) *cobra.Command {
	var nu user.NewUser

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.addUser(cmd, nu)
		},
	}
	cmd.Flags().StringVar(&nu.Name, "name", "", "the user's name")
	cmd.Flags().StringVar(&nu.Email, "email", "", "the user's email")
	cmd.Flags().IntVar(&nu.Age, "age", 0, "the user's age (0-255)")
	return cmd
}

func (cli *commandLine) addUser(cmd *cobra.Command, nu user.NewUser) error {
	usr, err := cli.usrSvc.Create(cmd.Context(), nu)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created user #%d\n", usr.ID)
	return nil
}
