package mocks

import (
	"context"

	"github.com/denchenko/usergrid/internal/core/async"
	"github.com/denchenko/usergrid/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of app.Repository.
type MockRepository struct {
	mock.Mock
}

// Init mocks the Init method.
func (m *MockRepository) Init(ctx context.Context) *async.Completion {
	args := m.Called(ctx)

	return args.Get(0).(*async.Completion)
}

// FindByID mocks the FindByID method.
func (m *MockRepository) FindByID(ctx context.Context, id string) *async.Promise[*domain.User] {
	args := m.Called(ctx, id)

	return args.Get(0).(*async.Promise[*domain.User])
}

// Save mocks the Save method.
func (m *MockRepository) Save(ctx context.Context, user *domain.User) *async.Promise[*domain.User] {
	args := m.Called(ctx, user)
	if fn, ok := args.Get(0).(func(context.Context, *domain.User) *async.Promise[*domain.User]); ok {
		return fn(ctx, user)
	}

	return args.Get(0).(*async.Promise[*domain.User])
}

// Delete mocks the Delete method.
func (m *MockRepository) Delete(ctx context.Context, user *domain.User) *async.Completion {
	args := m.Called(ctx, user)

	return args.Get(0).(*async.Completion)
}

// FindAll mocks the FindAll method.
func (m *MockRepository) FindAll(ctx context.Context) *async.Sequence[*domain.User] {
	args := m.Called(ctx)

	return args.Get(0).(*async.Sequence[*domain.User])
}
