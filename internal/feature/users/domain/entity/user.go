// Package entity defines the domain entities for the users feature.
package entity

import "time"

// User is the aggregate root. It owns zero or more Locations and at most
// one Credential (one-to-one by foreign key).
type User struct {
	// ID is the unique identifier for the user. Immutable once assigned.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is required. Names are not unique (known gap, kept as-is).
	Name string `gorm:"size:255;not null" json:"name"`

	// Salary is optional; nil means never set.
	Salary *float64 `json:"salary"`

	// Status is optional; nil means never set.
	Status *bool `json:"status"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// Locations are the user's location records. The JSON key matches the
	// relation name the API has always exposed.
	Locations []Location `gorm:"foreignKey:UserID" json:"Location"`

	// Credential holds the user's hashed password, if one was ever set.
	// It is never serialized.
	Credential *Credential `gorm:"foreignKey:UserID" json:"-"`
}

// Location is an address record owned by exactly one User.
type Location struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Country  string `gorm:"size:255" json:"country"`
	District string `gorm:"size:255" json:"district"`
	Street   string `gorm:"size:255" json:"street"`

	// UserID references the owning user. A location cannot exist orphaned.
	UserID uint `gorm:"index;not null" json:"-"`
}

// Credential stores only the bcrypt hash of a user's password, keyed by the
// owning user's id. Plaintext is never persisted.
type Credential struct {
	UserID       uint   `gorm:"primaryKey" json:"-"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}
