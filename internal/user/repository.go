package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUsernameTaken is returned whenever a user would be created or renamed to a username that is already in use
var ErrUsernameTaken = errors.New("the username is already taken")

// Repository defines the user repository API
type Repository interface {
	// Get retrieves all users, oldest first
	Get(ctx context.Context) ([]*User, error)

	// GetByID retrieves a user by their ID.
	// Returns nil if no user with the given ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by their username.
	// Returns nil if no user with the given username exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create creates a new user
	Create(ctx context.Context, create *Create) (*User, error)

	// Update updates an existing user
	Update(ctx context.Context, id uuid.UUID, update *Update) (*User, error)

	// Delete deletes a user by their ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// Create is used to create a new user
type Create struct {
	Username     string
	PasswordHash string
	Admin        bool
	Active       bool
}

// Update is used to update an existing user
type Update struct {
	Username     *string
	PasswordHash *string
	Admin        *bool
	Active       *bool
}

// Apply applies the update to the given user
func (update *Update) Apply(obj *User) {
	if update.Username != nil {
		obj.Username = *update.Username
	}
	if update.PasswordHash != nil {
		obj.PasswordHash = *update.PasswordHash
	}
	if update.Admin != nil {
		obj.Admin = *update.Admin
	}
	if update.Active != nil {
		obj.Active = *update.Active
	}
}
