package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/skybi/tools-sys/internal/user"
)

const (
	userColumns = "user_id, username, password_hash, admin, active, created_at"

	codeUniqueViolation = "23505"
)

// UserRepository implements the user.Repository interface using PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

var _ user.Repository = (*UserRepository)(nil)

// Get retrieves all users, oldest first
func (repo *UserRepository) Get(ctx context.Context) ([]*user.User, error) {
	rows, err := repo.db.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		obj, err := repo.rowToUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, obj)
	}
	return users, rows.Err()
}

// GetByID retrieves a user by their ID
func (repo *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return repo.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE user_id = $1", id)
}

// GetByUsername retrieves a user by their username (case-insensitive)
func (repo *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return repo.getOne(ctx, "SELECT "+userColumns+" FROM users WHERE LOWER(username) = LOWER($1)", username)
}

func (repo *UserRepository) getOne(ctx context.Context, sql string, args ...any) (*user.User, error) {
	obj, err := repo.rowToUser(repo.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return obj, nil
}

// Create creates a new user
func (repo *UserRepository) Create(ctx context.Context, create *user.Create) (*user.User, error) {
	obj := &user.User{
		ID:           uuid.New(),
		Username:     create.Username,
		PasswordHash: create.PasswordHash,
		Admin:        create.Admin,
		Active:       create.Active,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := repo.db.Exec(
		ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		obj.ID,
		obj.Username,
		obj.PasswordHash,
		obj.Admin,
		obj.Active,
		obj.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return obj, nil
}

// Update updates an existing user.
// Returns nil if no user with the given ID exists.
func (repo *UserRepository) Update(ctx context.Context, id uuid.UUID, update *user.Update) (*user.User, error) {
	if update.Username == nil && update.PasswordHash == nil && update.Admin == nil && update.Active == nil {
		return repo.GetByID(ctx, id)
	}

	query := squirrel.Update("users").Where(squirrel.Eq{"user_id": id})
	if update.Username != nil {
		query = query.Set("username", *update.Username)
	}
	if update.PasswordHash != nil {
		query = query.Set("password_hash", *update.PasswordHash)
	}
	if update.Admin != nil {
		query = query.Set("admin", *update.Admin)
	}
	if update.Active != nil {
		query = query.Set("active", *update.Active)
	}

	sql, values, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := repo.db.Exec(ctx, sql, values...)
	if err != nil {
		return nil, translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	// Re-fetch the user
	return repo.GetByID(ctx, id)
}

// Delete deletes a user by their ID
func (repo *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repo.db.Exec(ctx, "DELETE FROM users WHERE user_id = $1", id)
	return err
}

func (repo *UserRepository) rowToUser(row pgx.Row) (*user.User, error) {
	obj := new(user.User)
	if err := row.Scan(&obj.ID, &obj.Username, &obj.PasswordHash, &obj.Admin, &obj.Active, &obj.CreatedAt); err != nil {
		return nil, err
	}
	return obj, nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
		return user.ErrUsernameTaken
	}
	return err
}
