package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/hashmap"
	"github.com/skybi/tools-sys/internal/user"
)

// UserRepository implements the user.Repository interface in order to implement caching
type UserRepository struct {
	repo  user.Repository
	cache *hashmap.ExpiringMap[uuid.UUID, *user.User]
}

var _ user.Repository = (*UserRepository)(nil)

// Get retrieves all users
func (repo *UserRepository) Get(ctx context.Context) ([]*user.User, error) {
	users, err := repo.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, obj := range users {
		repo.cache.Set(obj.ID, obj)
	}
	return users, nil
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cached, ok := repo.cache.Lookup(id)
	if ok {
		return cached, nil
	}
	obj, err := repo.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.cache.Set(obj.ID, obj)
	}
	return obj, nil
}

// GetByUsername retrieves a user by their username.
// The lookup itself always hits the underlying repository as the cache is keyed by ID.
func (repo *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	obj, err := repo.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		repo.cache.Set(obj.ID, obj)
	}
	return obj, nil
}

// Create creates a new user
func (repo *UserRepository) Create(ctx context.Context, create *user.Create) (*user.User, error) {
	obj, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(obj.ID, obj)
	return obj, nil
}

// Update updates an existing user
func (repo *UserRepository) Update(ctx context.Context, id uuid.UUID, update *user.Update) (*user.User, error) {
	obj, err := repo.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		repo.cache.Unset(id)
		return nil, nil
	}
	repo.cache.Set(obj.ID, obj)
	return obj, nil
}

// Delete deletes a user by their ID
func (repo *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	repo.cache.Unset(id)
	return nil
}
