// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"user_backend/internal/feature/users/domain/entity"
	usersusecase "user_backend/internal/feature/users/usecase"
)

var (
	// ErrUserNotFound is returned when no user matches the login name.
	ErrUserNotFound = errors.New("user not found")

	// ErrCredentialNotSet is returned when the matched user has no stored
	// credential. This is a server-side data problem, not an authentication
	// failure, and is reported as such.
	ErrCredentialNotSet = errors.New("password not set for this user")

	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("invalid password")
)

// UserFinder abstracts the user lookup the login flow needs.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserFinder interface {
	// FindByNameFold retrieves a user by case-insensitive exact name match,
	// with its credential attached.
	FindByNameFold(ctx context.Context, name string) (*entity.User, error)
}

// PasswordVerifier abstracts password verification against a stored hash.
type PasswordVerifier interface {
	Verify(plaintext, hash string) (bool, error)
}

// TokenGenerator abstracts signed token issuance.
type TokenGenerator interface {
	GenerateToken(userID uint, name string) (string, error)
}

// AuthUsecase implements the login flow.
type AuthUsecase struct {
	users    UserFinder
	verifier PasswordVerifier
	tokens   TokenGenerator
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users UserFinder, verifier PasswordVerifier, tokens TokenGenerator) *AuthUsecase {
	return &AuthUsecase{users: users, verifier: verifier, tokens: tokens}
}

// Login authenticates a user by name and password and returns a signed
// bearer token. The outcomes are deliberately distinct: unknown name,
// missing credential row, and wrong password each map to their own error.
func (u *AuthUsecase) Login(ctx context.Context, name, password string) (string, error) {
	user, err := u.users.FindByNameFold(ctx, name)
	if err != nil {
		if errors.Is(err, usersusecase.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user.Credential == nil || user.Credential.PasswordHash == "" {
		return "", ErrCredentialNotSet
	}

	ok, err := u.verifier.Verify(password, user.Credential.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidPassword
	}

	token, err := u.tokens.GenerateToken(user.ID, user.Name)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
