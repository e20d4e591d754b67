package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/hashmap"
	"github.com/skybi/tools-sys/internal/storage"
	"github.com/skybi/tools-sys/internal/tool"
	"github.com/skybi/tools-sys/internal/user"
)

const cleanupInterval = 10 * time.Second

// Driver represents a storage driver implementation that wraps another one in order to implement in-memory caching
type Driver struct {
	underlying storage.Driver
	lifetime   time.Duration
	users      *UserRepository
	tools      *ToolRepository
}

var _ storage.Driver = (*Driver)(nil)

// New returns a new caching storage driver whose entries live for the given lifetime.
// The underlying driver has to be initialized before Initialize is called.
func New(underlying storage.Driver, lifetime time.Duration) *Driver {
	return &Driver{
		underlying: underlying,
		lifetime:   lifetime,
	}
}

// Initialize initializes the caching repositories
func (driver *Driver) Initialize(_ context.Context) error {
	userCache := hashmap.NewExpiring[uuid.UUID, *user.User](driver.lifetime)
	userCache.ScheduleCleanupTask(cleanupInterval)
	driver.users = &UserRepository{
		repo:  driver.underlying.Users(),
		cache: userCache,
	}

	toolCache := hashmap.NewExpiring[uuid.UUID, *tool.Tool](driver.lifetime)
	toolCache.ScheduleCleanupTask(cleanupInterval)
	driver.tools = &ToolRepository{
		repo:  driver.underlying.Tools(),
		cache: toolCache,
	}

	return nil
}

// Users provides the caching user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Tools provides the caching tool repository implementation
func (driver *Driver) Tools() tool.Repository {
	return driver.tools
}

// Close closes the caching repositories and the underlying driver
func (driver *Driver) Close() {
	driver.users.cache.StopCleanupTask()
	driver.users = nil
	driver.tools.cache.StopCleanupTask()
	driver.tools = nil
	driver.underlying.Close()
}
