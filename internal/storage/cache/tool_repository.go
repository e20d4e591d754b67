package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/hashmap"
	"github.com/skybi/tools-sys/internal/tool"
)

// ToolRepository implements the tool.Repository interface in order to implement caching
type ToolRepository struct {
	repo  tool.Repository
	cache *hashmap.ExpiringMap[uuid.UUID, *tool.Tool]
}

var _ tool.Repository = (*ToolRepository)(nil)

// Get retrieves all tools
func (repo *ToolRepository) Get(ctx context.Context) ([]*tool.Tool, error) {
	tools, err := repo.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, obj := range tools {
		repo.cache.Set(obj.ID, obj)
	}
	return tools, nil
}

// GetByID retrieves a tool by its ID
func (repo *ToolRepository) GetByID(ctx context.Context, id uuid.UUID) (*tool.Tool, error) {
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

// Create creates a new tool
func (repo *ToolRepository) Create(ctx context.Context, create *tool.Create) (*tool.Tool, error) {
	obj, err := repo.repo.Create(ctx, create)
	if err != nil {
		return nil, err
	}
	repo.cache.Set(obj.ID, obj)
	return obj, nil
}

// Update updates an existing tool
func (repo *ToolRepository) Update(ctx context.Context, id uuid.UUID, update *tool.Update) (*tool.Tool, error) {
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

// Delete deletes a tool by its ID
func (repo *ToolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.repo.Delete(ctx, id); err != nil {
		return err
	}
	repo.cache.Unset(id)
	return nil
}
