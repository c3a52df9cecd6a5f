package cached

import (
	"context"
	"errors"
	"fmt"

	"github.com/denchenko/usergrid/internal/adapters/secondary/cache"
	"github.com/denchenko/usergrid/internal/core/app"
	"github.com/denchenko/usergrid/internal/core/async"
	"github.com/denchenko/usergrid/internal/core/domain"
	"github.com/denchenko/usergrid/internal/core/provider"
	"github.com/denchenko/usergrid/internal/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoStore is returned when a repository is requested without a store.
var ErrNoStore = errors.New("no store configured")

// UserRepository implements app.Repository on top of an asynchronous key-value
// store. Every entry is keyed by the user ID.
type UserRepository struct {
	cache  cache.Cache[domain.User]
	logger *zap.Logger
}

// NewUserRepository creates a new repository over c.
func NewUserRepository(c cache.Cache[domain.User], logger *zap.Logger) *UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &UserRepository{
		cache:  c,
		logger: logger.Named("repository"),
	}
}

// NewProvider returns the holder that lazily builds the one UserRepository.
func NewProvider(logger *zap.Logger) *provider.Provider[cache.Cache[domain.User], app.Repository] {
	return provider.New(func(c cache.Cache[domain.User]) (app.Repository, error) {
		if c == nil {
			return nil, ErrNoStore
		}

		return NewUserRepository(c, logger), nil
	})
}

func (r *UserRepository) settled(op string, err error) {
	if err != nil {
		r.logger.Warn("result settled twice", log.Op(op), zap.Error(err))
	}
}

// Init clears the store and writes the seed users.
func (r *UserRepository) Init(_ context.Context) *async.Completion {
	if err := r.cache.Clear(); err != nil {
		return async.FailedCompletion(async.StoreFailure("clear", err))
	}

	var g errgroup.Group
	for _, user := range app.SeedUsers() {
		g.Go(func() error {
			if _, _, err := r.cache.PutAsync(user.ID, *user).Get(); err != nil {
				return async.StoreFailure("put", err)
			}

			stored, found, err := r.cache.Get(user.ID)
			if err != nil {
				return async.StoreFailure("get", err)
			}

			if found {
				r.logger.Info("seeded user", zap.Stringer("user", &stored))
			}

			return nil
		})
	}

	done := async.NewCompletion()
	go func() {
		if err := g.Wait(); err != nil {
			r.settled("init", done.Fail(err))

			return
		}

		r.settled("init", done.Complete())
	}()

	return done
}

// FindByID resolves to the user stored under id, or empty if there is none.
func (r *UserRepository) FindByID(_ context.Context, id string) *async.Promise[*domain.User] {
	result := async.NewPromise[*domain.User]()

	r.cache.GetAsync(id).Listen(func(f cache.Future[domain.User]) {
		user, found, err := f.Get()

		switch {
		case err != nil:
			r.settled("find_by_id", result.Reject(async.StoreFailure("get", err)))
		case !found:
			r.settled("find_by_id", result.ResolveEmpty())
		default:
			r.settled("find_by_id", result.Resolve(&user))
		}
	})

	return result
}

// Save upserts user under its ID and resolves to the same user. The last
// writer wins; the store is not read back.
func (r *UserRepository) Save(_ context.Context, user *domain.User) *async.Promise[*domain.User] {
	if user == nil || user.ID == "" {
		return async.Failed[*domain.User](fmt.Errorf("%w: missing id", domain.ErrInvalidUser))
	}

	result := async.NewPromise[*domain.User]()

	r.cache.PutAsync(user.ID, *user).Listen(func(f cache.Future[domain.User]) {
		if _, _, err := f.Get(); err != nil {
			r.settled("save", result.Reject(async.StoreFailure("put", err)))

			return
		}

		r.settled("save", result.Resolve(user))
	})

	return result
}

// Delete removes the entry for user. Deleting a missing user succeeds.
func (r *UserRepository) Delete(_ context.Context, user *domain.User) *async.Completion {
	if user == nil || user.ID == "" {
		return async.FailedCompletion(fmt.Errorf("%w: missing id", domain.ErrInvalidUser))
	}

	if err := r.cache.Remove(user.ID); err != nil {
		return async.FailedCompletion(async.StoreFailure("remove", err))
	}

	return async.Completed()
}

// FindAll yields the users present when the sequence is first consumed.
func (r *UserRepository) FindAll(_ context.Context) *async.Sequence[*domain.User] {
	return async.NewSequence(func() ([]*domain.User, error) {
		entries, err := r.cache.Scan()
		if err != nil {
			return nil, async.StoreFailure("scan", err)
		}

		users := make([]*domain.User, 0, len(entries))
		for _, entry := range entries {
			user := entry.Value
			users = append(users, &user)
		}

		return users, nil
	})
}
