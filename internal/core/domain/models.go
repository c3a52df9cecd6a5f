package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidUser is returned when a user or user request fails validation.
var ErrInvalidUser = errors.New("invalid user")

// User is a record stored in the cache under its ID.
type User struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Age   int    `json:"age"`
}

// UserRequest is the transient input used to create or replace a User.
// It never carries an ID.
type UserRequest struct {
	Login string `json:"login"`
	Age   int    `json:"age"`
}

// NewUser creates a user with a freshly generated ID.
func NewUser(req UserRequest) *User {
	return &User{
		ID:    uuid.NewString(),
		Login: req.Login,
		Age:   req.Age,
	}
}

// Apply returns a full replacement of u carrying the requested fields.
func (u *User) Apply(req UserRequest) *User {
	return &User{
		ID:    u.ID,
		Login: req.Login,
		Age:   req.Age,
	}
}

// Equal reports whether both users share the same identity.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}

	return u.ID == other.ID
}

func (u *User) String() string {
	return fmt.Sprintf("User(id=%s, login=%s, age=%d)", u.ID, u.Login, u.Age)
}

// Validate checks the request fields.
func (r UserRequest) Validate() error {
	if r.Login == "" {
		return fmt.Errorf("%w: login is required", ErrInvalidUser)
	}

	if r.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidUser)
	}

	return nil
}
