package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/denchenko/usergrid/internal/adapters/primary/http"
	"github.com/denchenko/usergrid/internal/core/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func Serve(appInstance *app.App, server func() (*httpadapter.Server, error), logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the users HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := server()
			if err != nil {
				return fmt.Errorf("failed to create HTTP server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			appInstance.SeedOnStart(ctx)

			return run(ctx, srv, logger)
		},
	}
}

func run(ctx context.Context, srv *httpadapter.Server, logger *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
