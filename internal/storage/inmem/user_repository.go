package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/skybi/tools-sys/internal/user"
)

type userRecord struct {
	ID       string
	Username string
	User     user.User
}

// UserRepository implements the user.Repository interface using go-memdb.
// Usernames are unique regardless of their case.
type UserRepository struct {
	db *memdb.MemDB
}

var _ user.Repository = (*UserRepository)(nil)

// Get retrieves all users, oldest first
func (repo *UserRepository) Get(_ context.Context) ([]*user.User, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get(tableUsers, "id")
	if err != nil {
		return nil, err
	}

	users := []*user.User{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		cpy := obj.(*userRecord).User
		users = append(users, &cpy)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return repo.first("id", id.String())
}

// GetByUsername retrieves a user by their username
func (repo *UserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	return repo.first("username", username)
}

func (repo *UserRepository) first(index, value string) (*user.User, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First(tableUsers, index, value)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	cpy := obj.(*userRecord).User
	return &cpy, nil
}

// Create creates a new user
func (repo *UserRepository) Create(_ context.Context, create *user.Create) (*user.User, error) {
	obj := user.User{
		ID:           uuid.New(),
		Username:     create.Username,
		PasswordHash: create.PasswordHash,
		Admin:        create.Admin,
		Active:       create.Active,
		CreatedAt:    time.Now().UTC(),
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()

	// go-memdb does not enforce unique indexes on its own
	existing, err := txn.First(tableUsers, "username", obj.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrUsernameTaken
	}

	if err := txn.Insert(tableUsers, newUserRecord(obj)); err != nil {
		return nil, err
	}
	txn.Commit()

	return &obj, nil
}

// Update updates an existing user.
// Returns nil if no user with the given ID exists.
func (repo *UserRepository) Update(_ context.Context, id uuid.UUID, update *user.Update) (*user.User, error) {
	txn := repo.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableUsers, "id", id.String())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	old := raw.(*userRecord)

	if update.Username != nil {
		existing, err := txn.First(tableUsers, "username", *update.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.(*userRecord).ID != old.ID {
			return nil, user.ErrUsernameTaken
		}
	}

	obj := old.User
	update.Apply(&obj)

	// Remove the old record first so that a changed username does not leave a stale index entry behind
	if err := txn.Delete(tableUsers, old); err != nil {
		return nil, err
	}
	if err := txn.Insert(tableUsers, newUserRecord(obj)); err != nil {
		return nil, err
	}
	txn.Commit()

	return &obj, nil
}

// Delete deletes a user by their ID
func (repo *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(tableUsers, "id", id.String()); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func newUserRecord(obj user.User) *userRecord {
	return &userRecord{
		ID:       obj.ID.String(),
		Username: obj.Username,
		User:     obj,
	}
}
