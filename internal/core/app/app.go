package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/denchenko/usergrid/internal/config"
	"github.com/denchenko/usergrid/internal/core/async"
	"github.com/denchenko/usergrid/internal/core/domain"
	"github.com/denchenko/usergrid/internal/log"
	"go.uber.org/zap"
)

// ErrUserNotFound is returned when no user is stored under the requested ID.
var ErrUserNotFound = errors.New("user not found")

// Repository defines the user persistence operations (port).
//
// FindByID resolves empty, not with an error, when the user does not exist.
// Delete succeeds whether or not the user exists. FindAll yields a snapshot
// taken when the sequence is first consumed, in no particular order.
type Repository interface {
	Init(ctx context.Context) *async.Completion
	FindByID(ctx context.Context, id string) *async.Promise[*domain.User]
	Save(ctx context.Context, user *domain.User) *async.Promise[*domain.User]
	Delete(ctx context.Context, user *domain.User) *async.Completion
	FindAll(ctx context.Context) *async.Sequence[*domain.User]
}

// SeedUsers returns the fixed users written by Repository.Init.
func SeedUsers() []*domain.User {
	return []*domain.User{
		{ID: "e2ac4fba-ce48-42fe-a0b9-c7555b65154f", Login: "test", Age: 10},
		{ID: "10b86e02-109d-488a-8e25-8bb63a7c4f1c", Login: "wojtek", Age: 18},
		{ID: "4ca315c0-e214-4b62-9c2a-71d78e29412e", Login: "admin", Age: 60},
	}
}

// App represents the core application with all business logic.
type App struct {
	cfg    *config.Config
	repo   Repository
	logger *zap.Logger
}

// NewApp creates a new application instance. It does not touch the repository.
func NewApp(cfg *config.Config, repo Repository, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &App{
		cfg:    cfg,
		repo:   repo,
		logger: logger.Named("app"),
	}, nil
}

// SeedOnStart seeds the repository when configured to. Long-running servers
// call it once at startup; failures are logged and do not stop the server.
func (a *App) SeedOnStart(ctx context.Context) {
	if !a.cfg.SeedOnStart {
		return
	}

	if err := a.Seed(ctx); err != nil {
		a.logger.Warn("failed to seed users", zap.Error(err))

		return
	}

	a.logger.Info("seeded users", zap.Int("count", len(SeedUsers())))
}

// Seed clears the repository and writes the seed users.
func (a *App) Seed(ctx context.Context) error {
	if err := a.repo.Init(ctx).Wait(ctx); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	return nil
}

// ListUsers returns every stored user.
func (a *App) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := a.repo.FindAll(ctx).Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// GetUser returns the user stored under id.
func (a *App) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, found, err := a.repo.FindByID(ctx, id).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}

	return user, nil
}

// CreateUser stores a new user with a generated ID.
func (a *App) CreateUser(ctx context.Context, req domain.UserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	saved, _, err := a.repo.Save(ctx, domain.NewUser(req)).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Debug("user created", log.UserID(saved.ID))

	return saved, nil
}

// UpdateUser replaces the fields of an existing user.
func (a *App) UpdateUser(ctx context.Context, id string, req domain.UserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := a.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	saved, _, err := a.repo.Save(ctx, existing.Apply(req)).Await(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return saved, nil
}

// DeleteUser removes an existing user.
func (a *App) DeleteUser(ctx context.Context, id string) error {
	existing, err := a.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if err := a.repo.Delete(ctx, existing).Wait(ctx); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	a.logger.Debug("user deleted", log.UserID(id))

	return nil
}
