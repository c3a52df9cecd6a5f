package cached

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/denchenko/usergrid/internal/adapters/secondary/cache"
	"github.com/denchenko/usergrid/internal/config"
	"github.com/denchenko/usergrid/internal/core/app"
	"github.com/denchenko/usergrid/internal/core/async"
	"github.com/denchenko/usergrid/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (*UserRepository, cache.Cache[domain.User]) {
	t.Helper()

	store := cache.NewInMemoryCache[domain.User](4)
	t.Cleanup(func() { _ = store.Close() })

	return NewUserRepository(store, nil), store
}

func TestUserRepository_SaveThenFind(t *testing.T) {
	ctx := context.Background()
	repo, store := newRepository(t)

	u := &domain.User{ID: "a1", Login: "alice", Age: 30}

	saved, ok, err := repo.Save(ctx, u).Await(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Same(t, u, saved)

	got, ok, err := repo.FindByID(ctx, u.ID).Await(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, u, got)

	stored, found, err := store.Get(u.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, u.ID, stored.ID, "entry key matches the user id")
}

func TestUserRepository_FindAbsent(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository(t)

	got, ok, err := repo.FindByID(ctx, "never-inserted").Await(ctx)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestUserRepository_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository(t)

	_, _, err := repo.Save(ctx, &domain.User{ID: "x", Login: "first", Age: 1}).Await(ctx)
	require.NoError(t, err)

	_, _, err = repo.Save(ctx, &domain.User{ID: "x", Login: "second", Age: 2}).Await(ctx)
	require.NoError(t, err)

	got, ok, err := repo.FindByID(ctx, "x").Await(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, &domain.User{ID: "x", Login: "second", Age: 2}, got)
}

func TestUserRepository_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository(t)

	u := &domain.User{ID: "d1", Login: "doomed", Age: 5}
	_, _, err := repo.Save(ctx, u).Await(ctx)
	require.NoError(t, err)

	for range 2 {
		require.NoError(t, repo.Delete(ctx, u).Wait(ctx))

		_, ok, err := repo.FindByID(ctx, u.ID).Await(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestUserRepository_InitSeeds(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository(t)

	_, _, err := repo.Save(ctx, &domain.User{ID: "stale", Login: "old", Age: 1}).Await(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.Init(ctx).Wait(ctx))

	users, err := repo.FindAll(ctx).Collect()
	require.NoError(t, err)
	assert.ElementsMatch(t, app.SeedUsers(), users)
}

func TestUserRepository_FindAllSnapshot(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository(t)

	_, _, err := repo.Save(ctx, &domain.User{ID: "1", Login: "one", Age: 1}).Await(ctx)
	require.NoError(t, err)

	seq := repo.FindAll(ctx)

	first, ok := seq.Next()
	require.True(t, ok)
	assert.Equal(t, "1", first.ID)

	_, _, err = repo.Save(ctx, &domain.User{ID: "2", Login: "two", Age: 2}).Await(ctx)
	require.NoError(t, err)

	_, ok = seq.Next()
	assert.False(t, ok, "entries added after subscription are not reflected")

	fresh, err := repo.FindAll(ctx).Collect()
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestUserRepository_SaveWithoutID(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository(t)

	_, _, err := repo.Save(ctx, &domain.User{Login: "anon"}).Await(ctx)
	require.ErrorIs(t, err, domain.ErrInvalidUser)

	_, _, err = repo.Save(ctx, nil).Await(ctx)
	require.ErrorIs(t, err, domain.ErrInvalidUser)

	require.ErrorIs(t, repo.Delete(ctx, nil).Wait(ctx), domain.ErrInvalidUser)
}

func TestUserRepository_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepository(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.Save(ctx, &domain.User{ID: "same", Login: "writer", Age: i}).Await(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	users, err := repo.FindAll(ctx).Collect()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

var errNodeDown = errors.New("node unavailable")

// failingCache reports errNodeDown from every operation.
type failingCache struct{}

func (failingCache) Get(string) (domain.User, bool, error) {
	return domain.User{}, false, errNodeDown
}

func (failingCache) Put(string, domain.User) error { return errNodeDown }
func (failingCache) Remove(string) error           { return errNodeDown }
func (failingCache) Clear() error                  { return errNodeDown }
func (failingCache) Close() error                  { return nil }

func (failingCache) Scan() ([]cache.Entry[domain.User], error) {
	return nil, errNodeDown
}

func (failingCache) GetAsync(string) cache.Future[domain.User] {
	return cache.CompletedFuture(domain.User{}, false, errNodeDown)
}

func (failingCache) PutAsync(string, domain.User) cache.Future[domain.User] {
	return cache.CompletedFuture(domain.User{}, false, errNodeDown)
}

func (failingCache) RemoveAsync(string) cache.Future[bool] {
	return cache.CompletedFuture(false, false, errNodeDown)
}

func TestUserRepository_StoreFailures(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(failingCache{}, nil)
	u := &domain.User{ID: "1", Login: "one", Age: 1}

	tests := []struct {
		name string
		run  func() error
	}{
		{
			name: "find by id",
			run: func() error {
				_, _, err := repo.FindByID(ctx, "1").Await(ctx)

				return err
			},
		},
		{
			name: "save",
			run: func() error {
				_, _, err := repo.Save(ctx, u).Await(ctx)

				return err
			},
		},
		{
			name: "delete",
			run: func() error {
				return repo.Delete(ctx, u).Wait(ctx)
			},
		},
		{
			name: "find all",
			run: func() error {
				_, err := repo.FindAll(ctx).Collect()

				return err
			},
		},
		{
			name: "init",
			run: func() error {
				return repo.Init(ctx).Wait(ctx)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()

			require.ErrorIs(t, err, async.ErrStoreFailure)
			assert.ErrorIs(t, err, errNodeDown)
		})
	}
}

func TestNewProvider(t *testing.T) {
	store := cache.NewInMemoryCache[domain.User](1)
	t.Cleanup(func() { _ = store.Close() })

	t.Run("memoizes", func(t *testing.T) {
		p := NewProvider(nil)

		first := p.MustGet(store)
		second := p.MustGet(store)

		assert.Same(t, first, second)
		assert.Equal(t, 1, p.Created())
	})

	t.Run("mock wins over memoized instance", func(t *testing.T) {
		p := NewProvider(nil)
		_ = p.MustGet(store)

		mock := NewUserRepository(store, nil)
		p.SetMock(mock)

		got, err := p.Get(store)
		require.NoError(t, err)
		assert.Same(t, mock, got)
	})

	t.Run("missing store", func(t *testing.T) {
		p := NewProvider(nil)

		_, err := p.Get(nil)
		require.ErrorIs(t, err, ErrNoStore)
	})
}

func TestNewApp_SharedStoreKeepsRecords(t *testing.T) {
	t.Setenv("USERGRID_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("USERGRID_SEED_ON_START", "")

	ctx := context.Background()
	store := cache.NewInMemoryCache[domain.User](2)
	t.Cleanup(func() { _ = store.Close() })

	cfg, err := config.New()
	require.NoError(t, err)
	require.True(t, cfg.SeedOnStart)

	daemon, err := app.NewApp(cfg, NewUserRepository(store, nil), nil)
	require.NoError(t, err)
	daemon.SeedOnStart(ctx)

	bob, err := daemon.CreateUser(ctx, domain.UserRequest{Login: "bob", Age: 33})
	require.NoError(t, err)

	client, err := app.NewApp(cfg, NewUserRepository(store, nil), nil)
	require.NoError(t, err)

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, len(app.SeedUsers())+1)

	got, err := daemon.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob, got)
}
