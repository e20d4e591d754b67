package inmem

import (
	"context"

	"github.com/hashicorp/go-memdb"
	"github.com/skybi/tools-sys/internal/storage"
	"github.com/skybi/tools-sys/internal/tool"
	"github.com/skybi/tools-sys/internal/user"
)

const (
	tableTools = "tools"
	tableUsers = "users"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableTools: {
			Name: tableTools,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "ID"},
				},
			},
		},
		tableUsers: {
			Name: tableUsers,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "ID"},
				},
				"username": {
					Name:         "username",
					Unique:       true,
					AllowMissing: false,
					Indexer:      &memdb.StringFieldIndex{Field: "Username", Lowercase: true},
				},
			},
		},
	},
}

// Driver represents the in-memory storage driver built using hashicorp/go-memdb.
// Its contents are lost as soon as the process terminates.
type Driver struct {
	db    *memdb.MemDB
	users *UserRepository
	tools *ToolRepository
}

var _ storage.Driver = (*Driver)(nil)

// New creates a new empty in-memory storage driver.
// Use Initialize to create the database and the repository implementations.
func New() *Driver {
	return &Driver{}
}

// Initialize creates the in-memory database and initializes the repository implementations
func (driver *Driver) Initialize(_ context.Context) error {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return err
	}
	driver.db = db
	driver.users = &UserRepository{db: db}
	driver.tools = &ToolRepository{db: db}
	return nil
}

// Users provides the in-memory user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Tools provides the in-memory tool repository implementation
func (driver *Driver) Tools() tool.Repository {
	return driver.tools
}

// Close discards the database and the repository implementations
func (driver *Driver) Close() {
	driver.users = nil
	driver.tools = nil
	driver.db = nil
}
