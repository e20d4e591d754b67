package inmem

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/tool"
	"github.com/skybi/tools-sys/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T) *Driver {
	t.Helper()
	driver := New()
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)
	return driver
}

func TestToolRepository(t *testing.T) {
	ctx := context.Background()
	repo := newDriver(t).Tools()

	created, err := repo.Create(ctx, &tool.Create{Name: "JSON Formatter", Route: "/tools/json"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, tool.DefaultVersion, created.DisplayVersion())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	version := "2.0.0"
	updated, err := repo.Update(ctx, created.ID, &tool.Update{Version: &version})
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", updated.DisplayVersion())
	assert.Equal(t, "JSON Formatter", updated.Name)

	// the previously returned object must not be affected by the update
	assert.Equal(t, "", fetched.Version)

	notUpdated, err := repo.Update(ctx, uuid.New(), &tool.Update{Version: &version})
	require.NoError(t, err)
	assert.Nil(t, notUpdated)

	tools, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, tools, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	tools, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, tools)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := newDriver(t).Users()

	admin, err := repo.Create(ctx, &user.Create{Username: "admin", PasswordHash: "hash", Admin: true, Active: true})
	require.NoError(t, err)

	t.Run("lookup by username ignores case", func(t *testing.T) {
		obj, err := repo.GetByUsername(ctx, "ADMIN")
		require.NoError(t, err)
		require.NotNil(t, obj)
		assert.Equal(t, admin.ID, obj.ID)
	})

	t.Run("duplicate usernames are rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &user.Create{Username: "Admin"})
		assert.ErrorIs(t, err, user.ErrUsernameTaken)
	})

	t.Run("renaming updates the username index", func(t *testing.T) {
		alice, err := repo.Create(ctx, &user.Create{Username: "alice", Active: true})
		require.NoError(t, err)

		taken := "admin"
		_, err = repo.Update(ctx, alice.ID, &user.Update{Username: &taken})
		assert.ErrorIs(t, err, user.ErrUsernameTaken)

		renamed := "alicia"
		active := false
		obj, err := repo.Update(ctx, alice.ID, &user.Update{Username: &renamed, Active: &active})
		require.NoError(t, err)
		assert.Equal(t, "alicia", obj.Username)
		assert.False(t, obj.Active)

		old, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Nil(t, old)

		require.NoError(t, repo.Delete(ctx, alice.ID))
	})

	t.Run("default admin is only created for empty repositories", func(t *testing.T) {
		created, err := user.EnsureDefaultAdmin(ctx, repo, "root", "hash")
		require.NoError(t, err)
		assert.Nil(t, created)

		empty := newDriver(t).Users()
		created, err = user.EnsureDefaultAdmin(ctx, empty, "root", "hash")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, created.Admin)
		assert.True(t, created.Active)
	})
}
