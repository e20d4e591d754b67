package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/tools-sys/internal/tool"
)

const toolColumns = "tool_id, name, description, version, route, icon, created_at, updated_at"

// ToolRepository implements the tool.Repository interface using PostgreSQL
type ToolRepository struct {
	db *pgxpool.Pool
}

var _ tool.Repository = (*ToolRepository)(nil)

// Get retrieves all tools, newest first
func (repo *ToolRepository) Get(ctx context.Context) ([]*tool.Tool, error) {
	rows, err := repo.db.Query(ctx, "SELECT "+toolColumns+" FROM tools ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tools := []*tool.Tool{}
	for rows.Next() {
		obj, err := repo.rowToTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, obj)
	}
	return tools, rows.Err()
}

// GetByID retrieves a tool by its ID
func (repo *ToolRepository) GetByID(ctx context.Context, id uuid.UUID) (*tool.Tool, error) {
	row := repo.db.QueryRow(ctx, "SELECT "+toolColumns+" FROM tools WHERE tool_id = $1", id)
	obj, err := repo.rowToTool(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new tool
func (repo *ToolRepository) Create(ctx context.Context, create *tool.Create) (*tool.Tool, error) {
	now := time.Now().UTC()
	obj := &tool.Tool{
		ID:          uuid.New(),
		Name:        create.Name,
		Description: create.Description,
		Version:     create.Version,
		Route:       create.Route,
		Icon:        create.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := repo.db.Exec(
		ctx,
		"INSERT INTO tools ("+toolColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		obj.ID,
		obj.Name,
		obj.Description,
		obj.Version,
		obj.Route,
		obj.Icon,
		obj.CreatedAt,
		obj.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Update updates an existing tool.
// Returns nil if no tool with the given ID exists.
func (repo *ToolRepository) Update(ctx context.Context, id uuid.UUID, update *tool.Update) (*tool.Tool, error) {
	query := squirrel.Update("tools").Where(squirrel.Eq{"tool_id": id}).Set("updated_at", time.Now().UTC())
	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Description != nil {
		query = query.Set("description", *update.Description)
	}
	if update.Version != nil {
		query = query.Set("version", *update.Version)
	}
	if update.Route != nil {
		query = query.Set("route", *update.Route)
	}
	if update.Icon != nil {
		query = query.Set("icon", *update.Icon)
	}

	sql, values, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := repo.db.Exec(ctx, sql, values...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	// Re-fetch the tool
	return repo.GetByID(ctx, id)
}

// Delete deletes a tool by its ID
func (repo *ToolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM tools WHERE tool_id = $1", id)
	return err
}

func (repo *ToolRepository) rowToTool(row pgx.Row) (*tool.Tool, error) {
	obj := new(tool.Tool)
	err := row.Scan(
		&obj.ID,
		&obj.Name,
		&obj.Description,
		&obj.Version,
		&obj.Route,
		&obj.Icon,
		&obj.CreatedAt,
		&obj.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
