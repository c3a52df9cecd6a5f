package cli

import (
	"github.com/denchenko/usergrid/internal/adapters/primary/cli/commands"
	httpadapter "github.com/denchenko/usergrid/internal/adapters/primary/http"
	"github.com/denchenko/usergrid/internal/core/app"
	ascii "github.com/denchenko/usergrid/internal/format/ascii"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Command creates and returns the root CLI command.
func Command(i do.Injector) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           "usergrid",
		Long:          `A CLI tool for managing users stored in the cache grid.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	appInstance := do.MustInvoke[*app.App](i)
	formatter := do.MustInvoke[*ascii.Formatter](i)
	logger := do.MustInvoke[*zap.Logger](i)

	cmd.AddCommand(
		commands.Users(appInstance, formatter),
		commands.Seed(appInstance),
		commands.Serve(appInstance, func() (*httpadapter.Server, error) {
			return do.Invoke[*httpadapter.Server](i)
		}, logger),
	)

	return cmd, nil
}
