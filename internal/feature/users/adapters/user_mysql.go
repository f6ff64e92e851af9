// Package adapters provides the gorm repository for the users feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"user_backend/internal/feature/users/domain/entity"
	"user_backend/internal/feature/users/usecase"
)

// MySQL error numbers the handler layer cares about: rejected payloads.
const (
	mysqlErrBadNull      = 1048 // column cannot be null
	mysqlErrDataTooLong  = 1406 // data too long for column
	mysqlErrFKConstraint = 1452 // foreign key constraint fails
	mysqlErrDupEntry     = 1062 // duplicate entry for unique key
)

// userMySQL is the MySQL implementation of the repository interfaces the
// users and auth usecases define. It uses GORM for database operations.
type userMySQL struct {
	db *gorm.DB
}

// Compile-time check that userMySQL satisfies the users repository.
var _ usecase.UserRepository = (*userMySQL)(nil)

// NewUserMySQL creates a new userMySQL with the given gorm.DB connection.
func NewUserMySQL(db *gorm.DB) *userMySQL {
	return &userMySQL{db: db}
}

// classify maps low-level write failures onto the usecase sentinels.
func classify(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrBadNull, mysqlErrDataTooLong, mysqlErrFKConstraint, mysqlErrDupEntry:
			return usecase.ErrInvalidData
		}
	}
	return err
}

// ensureLocations keeps the serialized Location key an empty array rather
// than null when a user has no location rows; gorm leaves unmatched
// preloads nil.
func ensureLocations(u *entity.User) {
	if u.Locations == nil {
		u.Locations = make([]entity.Location, 0)
	}
}

// FindAll returns every user with its locations preloaded. Credentials are
// never loaded here.
func (r *userMySQL) FindAll(ctx context.Context) ([]entity.User, error) {
	users := make([]entity.User, 0)
	if err := r.db.WithContext(ctx).Preload("Locations").Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		ensureLocations(&users[i])
	}
	return users, nil
}

// FindByID returns one user with its locations preloaded.
// It returns usecase.ErrUserNotFound when the row does not exist.
func (r *userMySQL) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Preload("Locations").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	ensureLocations(&u)
	return &u, nil
}

// FindByNameFold returns the user whose name matches case-insensitively,
// with its credential preloaded. When several users share a name the lowest
// id wins. Returns usecase.ErrUserNotFound when no name matches.
func (r *userMySQL) FindByNameFold(ctx context.Context, name string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		Order("id").
		Preload("Credential").
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create persists the user together with its nested locations and
// credential inside one transaction.
func (r *userMySQL) Create(ctx context.Context, u *entity.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(u).Error
	})
	if err != nil {
		return classify(err)
	}
	ensureLocations(u)
	return nil
}

// Update applies the patch inside one transaction. Supplied locations are
// upserted by id (known id updates in place, anything else inserts); rows
// not mentioned are left alone. A supplied password hash replaces the
// credential row, inserting one if none existed.
func (r *userMySQL) Update(ctx context.Context, id uint, patch usecase.UserPatch) (*entity.User, error) {
	var out *entity.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u entity.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrUserNotFound
			}
			return err
		}

		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.Salary != nil {
			updates["salary"] = *patch.Salary
		}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}
		if len(updates) > 0 {
			if err := tx.Model(&u).Updates(updates).Error; err != nil {
				return err
			}
		}

		for _, loc := range patch.Locations {
			fields := map[string]any{
				"country":  loc.Country,
				"district": loc.District,
				"street":   loc.Street,
			}
			if loc.ID != nil {
				// Existence probe instead of RowsAffected: the MySQL driver
				// reports affected rows, so a value-identical update counts
				// zero and would be mistaken for a missing row.
				var existing entity.Location
				err := tx.Select("id").
					Where("id = ? AND user_id = ?", *loc.ID, id).
					First(&existing).Error
				switch {
				case err == nil:
					if err := tx.Model(&entity.Location{}).
						Where("id = ?", *loc.ID).
						Updates(fields).Error; err != nil {
						return err
					}
					continue
				case !errors.Is(err, gorm.ErrRecordNotFound):
					return err
				}
				// Unknown id under this user: fall through to insert
			}
			newLoc := entity.Location{
				Country:  loc.Country,
				District: loc.District,
				Street:   loc.Street,
				UserID:   id,
			}
			if err := tx.Create(&newLoc).Error; err != nil {
				return err
			}
		}

		if patch.PasswordHash != nil {
			// Same existence probe as the location upsert: affected-rows
			// semantics would report zero for a value-identical hash.
			var existing entity.Credential
			err := tx.Select("user_id").
				Where("user_id = ?", id).
				First(&existing).Error
			switch {
			case err == nil:
				if err := tx.Model(&entity.Credential{}).
					Where("user_id = ?", id).
					Update("password_hash", *patch.PasswordHash).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				cred := entity.Credential{UserID: id, PasswordHash: *patch.PasswordHash}
				if err := tx.Create(&cred).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		var reloaded entity.User
		if err := tx.Preload("Locations").First(&reloaded, id).Error; err != nil {
			return err
		}
		ensureLocations(&reloaded)
		out = &reloaded
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// Delete removes the user's credential and location rows before the user
// row itself, all in one transaction, so referential integrity holds at
// every point. Returns usecase.ErrUserNotFound for an unknown id.
func (r *userMySQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u entity.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrUserNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&entity.Credential{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entity.Location{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.User{}, id).Error
	})
}
