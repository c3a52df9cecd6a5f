package commands

import (
	"fmt"

	"github.com/denchenko/usergrid/internal/core/app"
	"github.com/denchenko/usergrid/internal/log"
	"github.com/spf13/cobra"
)

func Seed(appInstance *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Clear the store and write the seed users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := log.WithSpinner(cmd.ErrOrStderr(), "Seeding users...", func() error {
				return appInstance.Seed(cmd.Context())
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d users\n", len(app.SeedUsers()))

			return nil
		},
	}
}
