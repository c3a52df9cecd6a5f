package adapters

import (
	"fmt"

	"github.com/denchenko/usergrid/internal/adapters/primary/cli"
	httpadapter "github.com/denchenko/usergrid/internal/adapters/primary/http"
	"github.com/denchenko/usergrid/internal/adapters/secondary/cache"
	"github.com/denchenko/usergrid/internal/adapters/secondary/repository/cached"
	"github.com/denchenko/usergrid/internal/config"
	"github.com/denchenko/usergrid/internal/core/app"
	"github.com/denchenko/usergrid/internal/core/domain"
	"github.com/denchenko/usergrid/internal/core/provider"
	ascii "github.com/denchenko/usergrid/internal/format/ascii"
	"github.com/denchenko/usergrid/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RepositoryProvider hands out the process-wide user repository.
type RepositoryProvider = provider.Provider[cache.Cache[domain.User], app.Repository]

var PrimaryPackage = do.Package(
	do.Lazy[*ascii.Formatter](NewFormatter),
	do.Lazy[*cobra.Command](cli.Command),
	do.Lazy[*httpadapter.Server](NewHTTPServer),
)

var SecondaryPackage = do.Package(
	do.Lazy[cache.Cache[domain.User]](NewCache),
	do.Lazy[*RepositoryProvider](NewRepositoryProvider),
	do.Transient[app.Repository](NewRepository),
)

// NewCache creates the store engine selected by configuration.
func NewCache(i do.Injector) (cache.Cache[domain.User], error) {
	cfg := do.MustInvoke[*config.Config](i)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return nil, fmt.Errorf("failed to register store metrics: %w", err)
	}

	logger := do.MustInvoke[*zap.Logger](i)

	store, err := cache.New[domain.User](cache.Options{
		Driver:    cfg.StoreDriver,
		RedisAddr: cfg.RedisAddr,
		RedisDB:   cfg.RedisDB,
		Prefix:    cfg.RedisPrefix,
		Workers:   cfg.StoreWorkers,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	return store, nil
}

// NewRepositoryProvider creates the lazy holder of the user repository.
func NewRepositoryProvider(i do.Injector) (*RepositoryProvider, error) {
	logger := do.MustInvoke[*zap.Logger](i)

	return cached.NewProvider(logger), nil
}

// NewRepository resolves app.Repository through the provider on every
// invocation, so an installed mock is seen by later consumers.
func NewRepository(i do.Injector) (app.Repository, error) {
	p := do.MustInvoke[*RepositoryProvider](i)
	store := do.MustInvoke[cache.Cache[domain.User]](i)

	return p.Get(store)
}

// NewFormatter creates the terminal formatter.
func NewFormatter(_ do.Injector) (*ascii.Formatter, error) {
	return ascii.NewFormatter(), nil
}

// NewHTTPServer creates a new HTTP server.
func NewHTTPServer(i do.Injector) (*httpadapter.Server, error) {
	appInstance := do.MustInvoke[*app.App](i)
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*zap.Logger](i)

	return httpadapter.NewServer(cfg.HTTPAddress, appInstance, logger, prometheus.DefaultGatherer), nil
}

// Close releases the store if it was created and flushes the logger.
func Close(i do.Injector) {
	if store, err := do.Invoke[cache.Cache[domain.User]](i); err == nil {
		_ = store.Close()
	}

	if logger, err := do.Invoke[*zap.Logger](i); err == nil {
		_ = logger.Sync()
	}
}
