package tool

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the tool repository API
type Repository interface {
	// Get retrieves all tools, newest first
	Get(ctx context.Context) ([]*Tool, error)

	// GetByID retrieves a tool by its ID.
	// Returns nil if no tool with the given ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (*Tool, error)

	// Create creates a new tool
	Create(ctx context.Context, create *Create) (*Tool, error)

	// Update updates an existing tool
	Update(ctx context.Context, id uuid.UUID, update *Update) (*Tool, error)

	// Delete deletes a tool by its ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// Create is used to create a new tool
type Create struct {
	Name        string
	Description string
	Version     string
	Route       string
	Icon        string
}

// Update is used to update an existing tool
type Update struct {
	Name        *string
	Description *string
	Version     *string
	Route       *string
	Icon        *string
}

// Apply applies the update to the given tool
func (update *Update) Apply(obj *Tool) {
	if update.Name != nil {
		obj.Name = *update.Name
	}
	if update.Description != nil {
		obj.Description = *update.Description
	}
	if update.Version != nil {
		obj.Version = *update.Version
	}
	if update.Route != nil {
		obj.Route = *update.Route
	}
	if update.Icon != nil {
		obj.Icon = *update.Icon
	}
}
