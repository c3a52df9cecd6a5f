package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/denchenko/usergrid/internal/core/app"
	"github.com/denchenko/usergrid/internal/core/domain"
	ascii "github.com/denchenko/usergrid/internal/format/ascii"
	"github.com/denchenko/usergrid/internal/log"
	"github.com/spf13/cobra"
)

var errInvalidAge = errors.New("age must be an integer")

func Users(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage stored users",
	}

	cmd.AddCommand(
		UsersList(appInstance, formatter),
		UsersGet(appInstance, formatter),
		UsersCreate(appInstance, formatter),
		UsersDelete(appInstance),
	)

	return cmd
}

func UsersList(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var users []*domain.User
			err := log.WithSpinner(cmd.ErrOrStderr(), "Fetching users...", func() error {
				var err error
				users, err = appInstance.ListUsers(cmd.Context())

				return err
			})
			if err != nil {
				return err
			}

			formatted, err := formatter.FormatUsers(users)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), formatted)

			return nil
		},
	}
}

func UsersGet(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := appInstance.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return printUser(cmd, formatter, user)
		},
	}
}

func UsersCreate(appInstance *app.App, formatter *ascii.Formatter) *cobra.Command {
	return &cobra.Command{
		Use:   "create <login> <age>",
		Short: "Create a user with a generated ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			age, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: %q", errInvalidAge, args[1])
			}

			user, err := appInstance.CreateUser(cmd.Context(), domain.UserRequest{Login: args[0], Age: age})
			if err != nil {
				return err
			}

			return printUser(cmd, formatter, user)
		},
	}
}

func UsersDelete(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appInstance.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])

			return nil
		},
	}
}

func printUser(cmd *cobra.Command, formatter *ascii.Formatter, user *domain.User) error {
	formatted, err := formatter.FormatUser(user)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), formatted)

	return nil
}
