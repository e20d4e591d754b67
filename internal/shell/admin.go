package shell

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/client"
)

// authorize returns the token of the current session if the guard allows the admin panel
func (shell *Shell) authorize() (string, error) {
	if !shell.sessions.Guard(adminPath).Allowed() {
		return "", ErrLoginRequired
	}
	return shell.sessions.Current().Token, nil
}

func (shell *Shell) afterAction(ctx context.Context, err error, location string) (*Result, error) {
	if err != nil {
		if client.IsUnauthorized(err) {
			return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: messageReLogin}
		}
		return nil, err
	}
	return shell.Navigate(ctx, location)
}

// CreateTool creates a tool and renders the admin panel
func (shell *Shell) CreateTool(ctx context.Context, input *client.ToolInput) (*Result, error) {
	token, err := shell.authorize()
	if err != nil {
		return nil, err
	}
	_, err = shell.api.CreateTool(ctx, token, input)
	return shell.afterAction(ctx, err, adminPath)
}

// UpdateTool replaces the writable fields of a tool and renders the admin panel
func (shell *Shell) UpdateTool(ctx context.Context, id uuid.UUID, input *client.ToolInput) (*Result, error) {
	token, err := shell.authorize()
	if err != nil {
		return nil, err
	}
	_, err = shell.api.UpdateTool(ctx, token, id, input)
	return shell.afterAction(ctx, err, adminPath)
}

// DeleteTool deletes a tool and renders the admin panel
func (shell *Shell) DeleteTool(ctx context.Context, id uuid.UUID) (*Result, error) {
	token, err := shell.authorize()
	if err != nil {
		return nil, err
	}
	return shell.afterAction(ctx, shell.api.DeleteTool(ctx, token, id), adminPath)
}

// CreateUser creates a user and renders the users tab of the admin panel
func (shell *Shell) CreateUser(ctx context.Context, create *client.UserCreate) (*Result, error) {
	token, err := shell.authorize()
	if err != nil {
		return nil, err
	}
	_, err = shell.api.CreateUser(ctx, token, create)
	return shell.afterAction(ctx, err, adminUsersPath)
}

// UpdateUser partially updates a user and renders the users tab of the admin panel
func (shell *Shell) UpdateUser(ctx context.Context, id uuid.UUID, update *client.UserUpdate) (*Result, error) {
	token, err := shell.authorize()
	if err != nil {
		return nil, err
	}
	_, err = shell.api.UpdateUser(ctx, token, id, update)
	return shell.afterAction(ctx, err, adminUsersPath)
}

// DeleteUser deletes a user and renders the users tab of the admin panel
func (shell *Shell) DeleteUser(ctx context.Context, id uuid.UUID) (*Result, error) {
	token, err := shell.authorize()
	if err != nil {
		return nil, err
	}
	return shell.afterAction(ctx, shell.api.DeleteUser(ctx, token, id), adminUsersPath)
}
