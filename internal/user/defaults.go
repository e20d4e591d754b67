package user

import (
	"context"
)

// EnsureDefaultAdmin creates an active admin account if the repository does not contain any user yet.
// It returns the created user or nil if users already existed.
func EnsureDefaultAdmin(ctx context.Context, repo Repository, username, passwordHash string) (*User, error) {
	users, err := repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return nil, nil
	}
	return repo.Create(ctx, &Create{
		Username:     username,
		PasswordHash: passwordHash,
		Admin:        true,
		Active:       true,
	})
}
