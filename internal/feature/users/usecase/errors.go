// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user exists for the given id.
	ErrUserNotFound = errors.New("user not found")

	// ErrNameRequired is returned when a create or update would leave the
	// user with an empty name.
	ErrNameRequired = errors.New("name is required")

	// ErrPasswordRequired is returned when a create is attempted without a
	// plaintext password, or an update supplies an empty one.
	ErrPasswordRequired = errors.New("password is required")

	// ErrInvalidData is returned when the persistence layer rejects the
	// payload for violating the schema.
	ErrInvalidData = errors.New("invalid user data")
)
