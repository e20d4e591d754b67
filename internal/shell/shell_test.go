package shell

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/client"
	"github.com/skybi/tools-sys/internal/session"
	"github.com/skybi/tools-sys/internal/session/storage/inmem"
	"github.com/skybi/tools-sys/internal/tool"
	"github.com/skybi/tools-sys/internal/user"
	"github.com/skybi/tools-sys/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	tools     []*tool.Tool
	users     []*user.User
	listErr   error
	lastToken string
	deleted   []uuid.UUID
	created   []*client.ToolInput
}

func (api *fakeAPI) ListTools(_ context.Context) ([]*tool.Tool, error) {
	return api.tools, api.listErr
}

func (api *fakeAPI) GetTool(_ context.Context, id string) (*tool.Tool, error) {
	for _, obj := range api.tools {
		if obj.ID.String() == id {
			return obj, nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "tool not found"}
}

func (api *fakeAPI) CreateTool(_ context.Context, token string, input *client.ToolInput) (*tool.Tool, error) {
	api.lastToken = token
	api.created = append(api.created, input)
	obj := &tool.Tool{ID: uuid.New(), Name: input.Name, Route: input.Route}
	api.tools = append(api.tools, obj)
	return obj, nil
}

func (api *fakeAPI) UpdateTool(_ context.Context, token string, id uuid.UUID, input *client.ToolInput) (*tool.Tool, error) {
	api.lastToken = token
	for _, obj := range api.tools {
		if obj.ID == id {
			obj.Name = input.Name
			return obj, nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "tool not found"}
}

func (api *fakeAPI) DeleteTool(_ context.Context, token string, id uuid.UUID) error {
	api.lastToken = token
	api.deleted = append(api.deleted, id)
	return nil
}

func (api *fakeAPI) ListUsers(_ context.Context, token string) ([]*user.User, error) {
	api.lastToken = token
	if token == "" {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
	}
	return api.users, nil
}

func (api *fakeAPI) CreateUser(_ context.Context, token string, create *client.UserCreate) (*user.User, error) {
	api.lastToken = token
	obj := &user.User{ID: uuid.New(), Username: create.Username, Admin: create.Admin, Active: create.Active}
	api.users = append(api.users, obj)
	return obj, nil
}

func (api *fakeAPI) UpdateUser(_ context.Context, token string, _ uuid.UUID, _ *client.UserUpdate) (*user.User, error) {
	api.lastToken = token
	return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
}

func (api *fakeAPI) DeleteUser(_ context.Context, token string, id uuid.UUID) error {
	api.lastToken = token
	api.deleted = append(api.deleted, id)
	return nil
}

type stubAuthenticator struct {
	calls int
}

func (stub *stubAuthenticator) Login(_ context.Context, request *client.LoginRequest) (*client.LoginResponse, error) {
	stub.calls++
	if request.Password != "secret" {
		return nil, &client.APIError{StatusCode: http.StatusUnauthorized, Message: "invalid username or password"}
	}
	return &client.LoginResponse{
		Token: "token-1",
		User:  &user.User{ID: uuid.New(), Username: request.Username, Admin: true, Active: true},
	}, nil
}

func newShell(t *testing.T, api *fakeAPI, loggedIn bool) (*Shell, *bytes.Buffer) {
	t.Helper()
	store := inmem.New()
	if loggedIn {
		require.NoError(t, store.Set(session.KeyLoggedIn, "true"))
		require.NoError(t, store.Set(session.KeyUsername, "alice"))
		require.NoError(t, store.Set(session.KeyToken, "token-1"))
	}
	buf := new(bytes.Buffer)
	return New(session.NewManager(store, &stubAuthenticator{}), api, view.New(buf)), buf
}

func TestNavigateAnonymous(t *testing.T) {
	for _, location := range []string{"/", "/admin", "/tools/whatever", "/nope"} {
		shell, buf := newShell(t, &fakeAPI{}, false)
		result, err := shell.Navigate(context.Background(), location)
		require.NoError(t, err)
		assert.Equal(t, PageLogin, result.Page, location)
		assert.Equal(t, session.LoginPath, result.Location)
		assert.Contains(t, buf.String(), "Login required")
	}
}

func TestNavigateAuthenticated(t *testing.T) {
	linter := &tool.Tool{ID: uuid.New(), Name: "Linter", Description: "Finds bugs", Route: "/lint"}
	api := &fakeAPI{
		tools: []*tool.Tool{linter},
		users: []*user.User{{ID: uuid.New(), Username: "bob", Active: true}},
	}

	t.Run("login redirects home", func(t *testing.T) {
		shell, buf := newShell(t, api, true)
		result, err := shell.Navigate(context.Background(), "/login/")
		require.NoError(t, err)
		assert.Equal(t, PageCatalog, result.Page)
		assert.Equal(t, session.HomePath, result.Location)
		assert.Contains(t, buf.String(), "Linter")
		assert.Contains(t, buf.String(), "alice")
	})

	t.Run("tool detail", func(t *testing.T) {
		shell, buf := newShell(t, api, true)
		result, err := shell.Navigate(context.Background(), "/tools/"+linter.ID.String())
		require.NoError(t, err)
		assert.Equal(t, PageTool, result.Page)
		assert.Contains(t, buf.String(), "Finds bugs")
	})

	t.Run("missing tool", func(t *testing.T) {
		shell, buf := newShell(t, api, true)
		result, err := shell.Navigate(context.Background(), "/tools/"+uuid.NewString())
		require.NoError(t, err)
		assert.Equal(t, PageNotFound, result.Page)
		assert.Contains(t, buf.String(), "Tool not found")
	})

	t.Run("unknown location", func(t *testing.T) {
		shell, buf := newShell(t, api, true)
		result, err := shell.Navigate(context.Background(), "/tools/a/b")
		require.NoError(t, err)
		assert.Equal(t, PageNotFound, result.Page)
		assert.Contains(t, buf.String(), "Page not found")
	})

	t.Run("admin users tab", func(t *testing.T) {
		shell, buf := newShell(t, api, true)
		result, err := shell.Navigate(context.Background(), "/admin?tab=users")
		require.NoError(t, err)
		assert.Equal(t, PageAdmin, result.Page)
		assert.Equal(t, "token-1", api.lastToken)
		assert.Contains(t, buf.String(), "bob")
	})

	t.Run("fetch error renders inline", func(t *testing.T) {
		shell, buf := newShell(t, &fakeAPI{listErr: errors.New("connection refused")}, true)
		result, err := shell.Navigate(context.Background(), "/")
		require.NoError(t, err)
		assert.Equal(t, PageCatalog, result.Page)
		assert.Error(t, result.Err)
		assert.Contains(t, buf.String(), "Error: connection refused")
	})
}

func TestLoginLogout(t *testing.T) {
	shell, buf := newShell(t, &fakeAPI{}, false)

	_, err := shell.Login(context.Background(), "alice", "wrong", false)
	var sessionErr *session.Error
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, session.KindAuth, sessionErr.Kind)
	assert.Contains(t, buf.String(), "invalid username or password")
	assert.False(t, shell.Session().Authenticated)

	result, err := shell.Login(context.Background(), "alice", "secret", false)
	require.NoError(t, err)
	assert.Equal(t, PageCatalog, result.Page)
	assert.True(t, shell.Session().Authenticated)
	assert.Contains(t, buf.String(), "No tools yet")

	result, err = shell.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PageLogin, result.Page)
	assert.False(t, shell.Session().Authenticated)
}

func TestAdminActions(t *testing.T) {
	t.Run("requires session", func(t *testing.T) {
		api := &fakeAPI{}
		shell, _ := newShell(t, api, false)
		_, err := shell.CreateTool(context.Background(), &client.ToolInput{Name: "Linter", Route: "/lint"})
		assert.ErrorIs(t, err, ErrLoginRequired)
		assert.Empty(t, api.created)
	})

	t.Run("tool lifecycle", func(t *testing.T) {
		api := &fakeAPI{}
		shell, buf := newShell(t, api, true)

		result, err := shell.CreateTool(context.Background(), &client.ToolInput{Name: "Linter", Route: "/lint"})
		require.NoError(t, err)
		assert.Equal(t, PageAdmin, result.Page)
		assert.Equal(t, "token-1", api.lastToken)
		assert.Contains(t, buf.String(), "Linter")

		id := api.tools[0].ID
		_, err = shell.UpdateTool(context.Background(), id, &client.ToolInput{Name: "Checker", Route: "/lint"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Checker")

		_, err = shell.DeleteTool(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{id}, api.deleted)
	})

	t.Run("user actions", func(t *testing.T) {
		api := &fakeAPI{}
		shell, buf := newShell(t, api, true)

		result, err := shell.CreateUser(context.Background(), &client.UserCreate{Username: "carol", Password: "pw", Active: true})
		require.NoError(t, err)
		assert.Equal(t, "/admin?tab=users", result.Location)
		assert.Contains(t, buf.String(), "carol")

		_, err = shell.UpdateUser(context.Background(), api.users[0].ID, &client.UserUpdate{})
		assert.True(t, client.IsUnauthorized(err))

		_, err = shell.DeleteUser(context.Background(), api.users[0].ID)
		require.NoError(t, err)
	})
}
