package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tools-sys/internal/tool"
	"github.com/skybi/tools-sys/internal/user"
)

const statusSuccess = "success"

type envelope[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// Client performs typed calls against the Tools-Sys REST API.
// Requests are never retried.
type Client struct {
	http *resty.Client
}

// New creates a new API client talking to the given base URL
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// LoginRequest represents the credentials sent to the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// LoginResponse represents the data returned by a successful login
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

// ToolInput represents the writable fields of a tool
type ToolInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	Route       string `json:"route"`
	Icon        string `json:"icon,omitempty"`
}

// UserCreate represents the fields used to create a user
type UserCreate struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Admin    bool   `json:"is_admin"`
	Active   bool   `json:"is_active"`
}

// UserUpdate represents a partial user update; nil fields are left untouched
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Admin    *bool   `json:"is_admin,omitempty"`
	Active   *bool   `json:"is_active,omitempty"`
}

// Login sends the given credentials to the authentication endpoint
func (client *Client) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	var data *LoginResponse
	err := client.do(ctx, http.MethodPost, "/api/auth/login", "", request, &data)
	if err != nil {
		return nil, err
	}
	if data == nil || data.Token == "" {
		return nil, &NetworkError{Err: errors.New("the login response did not contain a token")}
	}
	return data, nil
}

// ListTools retrieves all tools of the catalog
func (client *Client) ListTools(ctx context.Context) ([]*tool.Tool, error) {
	tools := []*tool.Tool{}
	if err := client.do(ctx, http.MethodGet, "/api/tools", "", nil, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// GetTool retrieves a single tool.
// A missing tool results in an error for which IsNotFound reports true.
func (client *Client) GetTool(ctx context.Context, id string) (*tool.Tool, error) {
	var obj *tool.Tool
	if err := client.do(ctx, http.MethodGet, "/api/tools/{id}", "", nil, &obj, pathParam("id", id)); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "tool not found"}
	}
	return obj, nil
}

// CreateTool creates a new tool
func (client *Client) CreateTool(ctx context.Context, token string, input *ToolInput) (*tool.Tool, error) {
	var obj *tool.Tool
	if err := client.do(ctx, http.MethodPost, "/api/tools", token, input, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// UpdateTool replaces the writable fields of an existing tool
func (client *Client) UpdateTool(ctx context.Context, token string, id uuid.UUID, input *ToolInput) (*tool.Tool, error) {
	var obj *tool.Tool
	if err := client.do(ctx, http.MethodPut, "/api/tools/{id}", token, input, &obj, pathParam("id", id.String())); err != nil {
		return nil, err
	}
	return obj, nil
}

// DeleteTool deletes a tool
func (client *Client) DeleteTool(ctx context.Context, token string, id uuid.UUID) error {
	return client.do(ctx, http.MethodDelete, "/api/tools/{id}", token, nil, nil, pathParam("id", id.String()))
}

// ListUsers retrieves all users
func (client *Client) ListUsers(ctx context.Context, token string) ([]*user.User, error) {
	users := []*user.User{}
	if err := client.do(ctx, http.MethodGet, "/api/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates a new user
func (client *Client) CreateUser(ctx context.Context, token string, create *UserCreate) (*user.User, error) {
	var obj *user.User
	if err := client.do(ctx, http.MethodPost, "/api/users", token, create, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// UpdateUser partially updates an existing user
func (client *Client) UpdateUser(ctx context.Context, token string, id uuid.UUID, update *UserUpdate) (*user.User, error) {
	var obj *user.User
	if err := client.do(ctx, http.MethodPut, "/api/users/{id}", token, update, &obj, pathParam("id", id.String())); err != nil {
		return nil, err
	}
	return obj, nil
}

// DeleteUser deletes a user
func (client *Client) DeleteUser(ctx context.Context, token string, id uuid.UUID) error {
	return client.do(ctx, http.MethodDelete, "/api/users/{id}", token, nil, nil, pathParam("id", id.String()))
}

type requestOption func(request *resty.Request)

func pathParam(key, value string) requestOption {
	return func(request *resty.Request) {
		request.SetPathParam(key, value)
	}
}

// do performs a request and decodes the response envelope.
// If target is non-nil, the envelope data is decoded into it.
func (client *Client) do(ctx context.Context, method, path, token string, body, target any, options ...requestOption) error {
	request := client.http.R().SetContext(ctx)
	if token != "" {
		request.SetAuthToken(token)
	}
	if body != nil {
		request.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	for _, option := range options {
		option(request)
	}

	response, err := request.Execute(method, path)
	if err != nil {
		return &NetworkError{Err: err}
	}
	log.Debug().Str("method", method).Str("url", response.Request.URL).Int("status", response.StatusCode()).Msg("performed API request")

	result := envelope[json.RawMessage]{}
	if err := json.Unmarshal(response.Body(), &result); err != nil {
		return &NetworkError{Err: err}
	}
	if result.Status != statusSuccess {
		return &APIError{
			StatusCode: response.StatusCode(),
			Message:    result.Message,
		}
	}

	if target == nil || len(result.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Data, target); err != nil {
		return &NetworkError{Err: err}
	}
	return nil
}
