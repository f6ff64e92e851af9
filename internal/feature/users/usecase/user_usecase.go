package usecase

import (
	"context"
	"fmt"

	"user_backend/internal/feature/users/domain/entity"
)

// UserRepository abstracts the persistence layer for the user aggregate.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type UserRepository interface {
	// FindAll returns every user with its location set. An empty database
	// yields an empty slice, not an error.
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByID returns the user with its location set, or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Create persists the user together with its nested locations and
	// credential as one atomic write.
	Create(ctx context.Context, u *entity.User) error

	// Update applies the patch atomically and returns the updated aggregate,
	// or ErrUserNotFound if the id does not exist.
	Update(ctx context.Context, id uint, patch UserPatch) (*entity.User, error)

	// Delete removes the user and its dependent credential and location
	// rows, or returns ErrUserNotFound.
	Delete(ctx context.Context, id uint) error
}

// PasswordHasher abstracts one-way password hashing.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// LocationInput carries one location record from the transport layer. On
// update, a non-nil ID targets an existing row; a nil (or unknown) ID
// inserts a new one.
type LocationInput struct {
	ID       *uint
	Country  string
	District string
	Street   string
}

// CreateUserInput is everything needed to create a user aggregate.
type CreateUserInput struct {
	Name      string
	Salary    *float64
	Status    *bool
	Locations []LocationInput
	Password  string
}

// UpdateUserInput is a partial update: nil fields keep their prior value.
// Locations, when present, are upserted individually; rows not mentioned
// are left untouched.
type UpdateUserInput struct {
	Name      *string
	Salary    *float64
	Status    *bool
	Locations []LocationInput
	Password  *string
}

// UserPatch is the repository-facing form of an update: the password has
// already been hashed and field semantics mirror UpdateUserInput.
type UserPatch struct {
	Name         *string
	Salary       *float64
	Status       *bool
	Locations    []LocationInput
	PasswordHash *string
}

// UserUsecase provides business logic for the user aggregate.
type UserUsecase struct {
	repo   UserRepository
	hasher PasswordHasher
}

// NewUserUsecase creates a new UserUsecase with the given dependencies.
func NewUserUsecase(repo UserRepository, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{repo: repo, hasher: hasher}
}

// List returns all users with their location sets.
func (u *UserUsecase) List(ctx context.Context) ([]entity.User, error) {
	return u.repo.FindAll(ctx)
}

// Get returns one user by id with its location set.
func (u *UserUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.repo.FindByID(ctx, id)
}

// Create hashes the password and persists the aggregate (user, locations,
// credential) as one atomic write. Name and password are mandatory.
func (u *UserUsecase) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	if in.Password == "" {
		return nil, ErrPasswordRequired
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:       in.Name,
		Salary:     in.Salary,
		Status:     in.Status,
		Credential: &entity.Credential{PasswordHash: hashed},
	}
	for _, loc := range in.Locations {
		user.Locations = append(user.Locations, entity.Location{
			Country:  loc.Country,
			District: loc.District,
			Street:   loc.Street,
		})
	}

	if err := u.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. A supplied password is hashed and
// replaces (never merges with) the existing credential.
func (u *UserUsecase) Update(ctx context.Context, id uint, in UpdateUserInput) (*entity.User, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, ErrNameRequired
	}

	patch := UserPatch{
		Name:      in.Name,
		Salary:    in.Salary,
		Status:    in.Status,
		Locations: in.Locations,
	}

	if in.Password != nil {
		if *in.Password == "" {
			return nil, ErrPasswordRequired
		}
		hashed, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.PasswordHash = &hashed
	}

	return u.repo.Update(ctx, id, patch)
}

// Delete removes the user and cascades to its credential and locations.
func (u *UserUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}
