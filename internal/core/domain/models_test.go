package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	req := UserRequest{Login: "super-test", Age: 99}

	a := NewUser(req)
	b := NewUser(req)

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "super-test", a.Login)
	assert.Equal(t, 99, a.Age)
}

func TestUser_Apply(t *testing.T) {
	u := &User{ID: "10b86e02-109d-488a-8e25-8bb63a7c4f1c", Login: "wojtek", Age: 18}

	replaced := u.Apply(UserRequest{Login: "update-login", Age: 40})

	assert.Equal(t, &User{ID: u.ID, Login: "update-login", Age: 40}, replaced)
	assert.Equal(t, "wojtek", u.Login, "receiver is left untouched")
}

func TestUser_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *User
		expected bool
	}{
		{name: "same id different fields", a: &User{ID: "1", Age: 1}, b: &User{ID: "1", Age: 2}, expected: true},
		{name: "different id", a: &User{ID: "1"}, b: &User{ID: "2"}, expected: false},
		{name: "both nil", expected: true},
		{name: "one nil", a: &User{ID: "1"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}

func TestUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		req         UserRequest
		expectError bool
	}{
		{name: "valid", req: UserRequest{Login: "test", Age: 10}},
		{name: "zero age", req: UserRequest{Login: "baby", Age: 0}},
		{name: "missing login", req: UserRequest{Age: 10}, expectError: true},
		{name: "negative age", req: UserRequest{Login: "test", Age: -1}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidUser)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
