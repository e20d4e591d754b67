package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
	"github.com/skybi/tools-sys/internal/tool"
)

type toolRecord struct {
	ID   string
	Tool tool.Tool
}

// ToolRepository implements the tool.Repository interface using go-memdb
type ToolRepository struct {
	db *memdb.MemDB
}

var _ tool.Repository = (*ToolRepository)(nil)

// Get retrieves all tools, newest first
func (repo *ToolRepository) Get(_ context.Context) ([]*tool.Tool, error) {
	txn := repo.db.Txn(false)
	it, err := txn.Get(tableTools, "id")
	if err != nil {
		return nil, err
	}

	tools := []*tool.Tool{}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		cpy := obj.(*toolRecord).Tool
		tools = append(tools, &cpy)
	}
	sort.SliceStable(tools, func(i, j int) bool {
		return tools[i].CreatedAt.After(tools[j].CreatedAt)
	})
	return tools, nil
}

// GetByID retrieves a tool by its ID
func (repo *ToolRepository) GetByID(_ context.Context, id uuid.UUID) (*tool.Tool, error) {
	txn := repo.db.Txn(false)
	obj, err := txn.First(tableTools, "id", id.String())
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	cpy := obj.(*toolRecord).Tool
	return &cpy, nil
}

// Create creates a new tool
func (repo *ToolRepository) Create(_ context.Context, create *tool.Create) (*tool.Tool, error) {
	now := time.Now().UTC()
	obj := tool.Tool{
		ID:          uuid.New(),
		Name:        create.Name,
		Description: create.Description,
		Version:     create.Version,
		Route:       create.Route,
		Icon:        create.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	txn := repo.db.Txn(true)
	defer txn.Abort()
	if err := txn.Insert(tableTools, &toolRecord{ID: obj.ID.String(), Tool: obj}); err != nil {
		return nil, err
	}
	txn.Commit()

	return &obj, nil
}

// Update updates an existing tool.
// Returns nil if no tool with the given ID exists.
func (repo *ToolRepository) Update(_ context.Context, id uuid.UUID, update *tool.Update) (*tool.Tool, error) {
	txn := repo.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableTools, "id", id.String())
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	// Records stored inside the database must never be modified in place
	obj := raw.(*toolRecord).Tool
	update.Apply(&obj)
	obj.UpdatedAt = time.Now().UTC()

	if err := txn.Insert(tableTools, &toolRecord{ID: obj.ID.String(), Tool: obj}); err != nil {
		return nil, err
	}
	txn.Commit()

	return &obj, nil
}

// Delete deletes a tool by its ID
func (repo *ToolRepository) Delete(_ context.Context, id uuid.UUID) error {
	txn := repo.db.Txn(true)
	defer txn.Abort()
	if _, err := txn.DeleteAll(tableTools, "id", id.String()); err != nil {
		return err
	}
	txn.Commit()
	return nil
}
