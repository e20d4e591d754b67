// Package shell implements the navigation layer of the Tools-Sys client.
// It resolves locations to pages, consults the session guard before rendering anything and performs the admin
// actions on behalf of the logged in user.
package shell

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tools-sys/internal/client"
	"github.com/skybi/tools-sys/internal/session"
	"github.com/skybi/tools-sys/internal/tool"
	"github.com/skybi/tools-sys/internal/user"
	"github.com/skybi/tools-sys/internal/view"
)

const (
	maxRedirects = 3

	adminPath       = "/admin"
	adminUsersPath  = "/admin?tab=users"
	toolPathPrefix  = "/tools/"
	messageNoTool   = "Tool not found"
	messageNoPage   = "Page not found"
	messageReLogin  = "your session was rejected by the API, please log out and log in again"
	queryKeyTab     = "tab"
	queryValueUsers = "users"
)

var (
	// ErrTooManyRedirects is returned if the guard keeps redirecting
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrLoginRequired is returned if an admin action is attempted without a session
	ErrLoginRequired = errors.New("please log in first")
)

// API represents the calls the shell performs against the Tools-Sys REST API
type API interface {
	ListTools(ctx context.Context) ([]*tool.Tool, error)
	GetTool(ctx context.Context, id string) (*tool.Tool, error)
	CreateTool(ctx context.Context, token string, input *client.ToolInput) (*tool.Tool, error)
	UpdateTool(ctx context.Context, token string, id uuid.UUID, input *client.ToolInput) (*tool.Tool, error)
	DeleteTool(ctx context.Context, token string, id uuid.UUID) error
	ListUsers(ctx context.Context, token string) ([]*user.User, error)
	CreateUser(ctx context.Context, token string, create *client.UserCreate) (*user.User, error)
	UpdateUser(ctx context.Context, token string, id uuid.UUID, update *client.UserUpdate) (*user.User, error)
	DeleteUser(ctx context.Context, token string, id uuid.UUID) error
}

var _ API = (*client.Client)(nil)

// Page identifies the kind of page a navigation ended on
type Page string

const (
	PageCatalog  Page = "catalog"
	PageTool     Page = "tool"
	PageAdmin    Page = "admin"
	PageLogin    Page = "login"
	PageNotFound Page = "not-found"
)

// Result describes the outcome of a navigation
type Result struct {
	// Location is the location that was finally rendered after following all redirects
	Location string
	Page     Page
	// Err is the error rendered inline, if any
	Err error
}

// Shell renders pages for locations
type Shell struct {
	sessions *session.Manager
	api      API
	renderer *view.Renderer
}

// New creates a new shell
func New(sessions *session.Manager, api API, renderer *view.Renderer) *Shell {
	return &Shell{
		sessions: sessions,
		api:      api,
		renderer: renderer,
	}
}

// Session returns the current session
func (shell *Shell) Session() session.Session {
	return shell.sessions.Current()
}

// Navigate renders the page at the given location, following guard redirects
func (shell *Shell) Navigate(ctx context.Context, location string) (*Result, error) {
	redirects := 0
	for {
		decision := shell.sessions.Guard(location)
		if decision.Allowed() {
			break
		}
		if redirects == maxRedirects {
			return nil, ErrTooManyRedirects
		}
		log.Debug().Str("from", location).Str("to", decision.Target).Msg("guard redirected navigation")
		location = decision.Target
		redirects++
	}

	result, body := shell.route(ctx, location)
	sections := []string{shell.renderer.Nav(shell.sessions.Current()), body}
	if result.Err != nil {
		sections = append(sections, shell.renderer.Error(result.Err))
	}
	if err := shell.renderer.Write(sections...); err != nil {
		return nil, err
	}
	return result, nil
}

func (shell *Shell) route(ctx context.Context, location string) (*Result, string) {
	result := &Result{Location: location}
	path := session.CleanPath(location)

	switch {
	case path == session.HomePath:
		result.Page = PageCatalog
		tools, err := shell.api.ListTools(ctx)
		if err != nil {
			result.Err = err
		}
		return result, shell.renderer.Catalog(tools)

	case path == session.LoginPath:
		result.Page = PageLogin
		return result, shell.renderer.Login()

	case path == adminPath:
		result.Page = PageAdmin
		return result, shell.adminPanel(ctx, location, result)

	case strings.HasPrefix(path, toolPathPrefix) && !strings.Contains(path[len(toolPathPrefix):], "/"):
		obj, err := shell.api.GetTool(ctx, path[len(toolPathPrefix):])
		if err != nil {
			if client.IsNotFound(err) {
				result.Page = PageNotFound
				return result, shell.renderer.NotFound(messageNoTool)
			}
			result.Page = PageTool
			result.Err = err
			return result, ""
		}
		result.Page = PageTool
		return result, shell.renderer.ToolDetail(obj)

	default:
		result.Page = PageNotFound
		return result, shell.renderer.NotFound(messageNoPage)
	}
}

func (shell *Shell) adminPanel(ctx context.Context, location string, result *Result) string {
	tab := view.AdminTabTools
	if parsed, err := url.Parse(location); err == nil && parsed.Query().Get(queryKeyTab) == queryValueUsers {
		tab = view.AdminTabUsers
	}

	var tools []*tool.Tool
	var users []*user.User
	var err error
	if tab == view.AdminTabUsers {
		users, err = shell.api.ListUsers(ctx, shell.sessions.Current().Token)
		if client.IsUnauthorized(err) {
			err = errors.New(messageReLogin)
		}
	} else {
		tools, err = shell.api.ListTools(ctx)
	}
	result.Err = err
	return shell.renderer.Admin(tab, tools, users)
}

// Login logs in using the given credentials and renders the catalog.
// Failed attempts render the login page together with the error and return it.
func (shell *Shell) Login(ctx context.Context, username, password string, remember bool) (*Result, error) {
	if _, err := shell.sessions.Login(ctx, username, password, remember); err != nil {
		if writeErr := shell.renderer.Write(
			shell.renderer.Nav(shell.sessions.Current()),
			shell.renderer.Login(),
			shell.renderer.Error(err),
		); writeErr != nil {
			return nil, writeErr
		}
		return nil, err
	}
	return shell.Navigate(ctx, session.HomePath)
}

// Logout destroys the session and renders the login page
func (shell *Shell) Logout(ctx context.Context) (*Result, error) {
	if err := shell.sessions.Logout(); err != nil {
		return nil, err
	}
	return shell.Navigate(ctx, session.LoginPath)
}
