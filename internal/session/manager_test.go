package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skybi/tools-sys/internal/client"
	"github.com/skybi/tools-sys/internal/session"
	"github.com/skybi/tools-sys/internal/session/storage/inmem"
	"github.com/skybi/tools-sys/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	calls    int
	last     *client.LoginRequest
	response *client.LoginResponse
	err      error
}

func (stub *stubAuthenticator) Login(_ context.Context, request *client.LoginRequest) (*client.LoginResponse, error) {
	stub.calls++
	stub.last = request
	return stub.response, stub.err
}

type failingStore struct {
	*inmem.Store
	failOn   string
	failOnce bool
}

func (store *failingStore) Set(key, value string) error {
	if key == store.failOn {
		if store.failOnce {
			store.failOn = ""
		}
		return errors.New("disk full")
	}
	return store.Store.Set(key, value)
}

func successfulLogin(username string) *stubAuthenticator {
	return &stubAuthenticator{
		response: &client.LoginResponse{
			Token: "token-1",
			User: &user.User{
				ID:       uuid.New(),
				Username: username,
				Admin:    true,
				Active:   true,
			},
		},
	}
}

func TestLoadSession(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		manager := session.NewManager(inmem.New(), &stubAuthenticator{})
		assert.Equal(t, session.Session{}, manager.LoadSession())
		assert.False(t, manager.Current().Authenticated)
	})

	t.Run("persisted session", func(t *testing.T) {
		id := uuid.New()
		store := inmem.NewOf(map[string]string{
			session.KeyLoggedIn:  "true",
			session.KeyUsername:  "alice",
			session.KeyToken:     "abc",
			session.KeyLoginTime: "2024-03-01T12:00:00Z",
			session.KeyUser:      `{"id":"` + id.String() + `","username":"alice","is_admin":true,"is_active":true}`,
		})

		loaded := session.NewManager(store, &stubAuthenticator{}).Current()
		assert.True(t, loaded.Authenticated)
		assert.Equal(t, "alice", loaded.Username)
		assert.Equal(t, "abc", loaded.Token)
		assert.True(t, loaded.LoginTime.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
		require.NotNil(t, loaded.User)
		assert.Equal(t, id, loaded.User.ID)
		assert.True(t, loaded.User.Admin)
	})

	t.Run("marker other than true", func(t *testing.T) {
		store := inmem.NewOf(map[string]string{
			session.KeyLoggedIn: "false",
			session.KeyUsername: "alice",
		})
		assert.Equal(t, session.Session{}, session.NewManager(store, &stubAuthenticator{}).Current())
	})

	t.Run("malformed optional entries", func(t *testing.T) {
		store := inmem.NewOf(map[string]string{
			session.KeyLoggedIn:  "true",
			session.KeyUsername:  "alice",
			session.KeyLoginTime: "yesterday",
			session.KeyUser:      "{not json",
		})

		loaded := session.NewManager(store, &stubAuthenticator{}).Current()
		assert.True(t, loaded.Authenticated)
		assert.Equal(t, "alice", loaded.Username)
		assert.True(t, loaded.LoginTime.IsZero())
		assert.Nil(t, loaded.User)
	})
}

func TestLogin(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		cases := [][2]string{{"", "secret"}, {"alice", ""}, {"   ", "secret"}, {"alice", "\t "}}
		for _, credentials := range cases {
			store := inmem.New()
			authenticator := &stubAuthenticator{}
			manager := session.NewManager(store, authenticator)

			_, err := manager.Login(context.Background(), credentials[0], credentials[1], false)
			var sessionErr *session.Error
			require.ErrorAs(t, err, &sessionErr)
			assert.Equal(t, session.KindValidation, sessionErr.Kind)
			assert.Zero(t, authenticator.calls)
			assert.Empty(t, store.Snapshot())
		}
	})

	t.Run("success", func(t *testing.T) {
		store := inmem.New()
		authenticator := successfulLogin("alice")
		manager := session.NewManager(store, authenticator)

		before := time.Now().UTC()
		created, err := manager.Login(context.Background(), "alice", "secret", true)
		require.NoError(t, err)

		assert.Equal(t, 1, authenticator.calls)
		assert.Equal(t, &client.LoginRequest{Username: "alice", Password: "secret", Remember: true}, authenticator.last)

		assert.True(t, created.Authenticated)
		assert.Equal(t, "alice", created.Username)
		assert.Equal(t, "token-1", created.Token)
		assert.Equal(t, created, manager.Current())

		values := store.Snapshot()
		assert.Equal(t, "true", values[session.KeyLoggedIn])
		assert.Equal(t, "alice", values[session.KeyUsername])
		assert.Equal(t, "token-1", values[session.KeyToken])

		loginTime, err := time.Parse(time.RFC3339, values[session.KeyLoginTime])
		require.NoError(t, err)
		assert.Equal(t, time.UTC, loginTime.Location())
		assert.WithinDuration(t, before, loginTime, time.Minute)

		persisted := new(user.User)
		require.NoError(t, json.Unmarshal([]byte(values[session.KeyUser]), persisted))
		assert.Equal(t, authenticator.response.User.ID, persisted.ID)
	})

	t.Run("username from response", func(t *testing.T) {
		store := inmem.New()
		manager := session.NewManager(store, successfulLogin("Alice"))

		created, err := manager.Login(context.Background(), "alice", "secret", false)
		require.NoError(t, err)
		assert.Equal(t, "Alice", created.Username)
		assert.Equal(t, "Alice", store.Snapshot()[session.KeyUsername])
	})

	t.Run("username falls back to submitted one", func(t *testing.T) {
		store := inmem.New()
		authenticator := &stubAuthenticator{response: &client.LoginResponse{Token: "token-1"}}
		manager := session.NewManager(store, authenticator)

		created, err := manager.Login(context.Background(), "alice", "secret", false)
		require.NoError(t, err)
		assert.Equal(t, "alice", created.Username)
		assert.Nil(t, created.User)
		_, hasUser := store.Get(session.KeyUser)
		assert.False(t, hasUser)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		prior := map[string]string{session.KeyToken: "stale"}
		store := inmem.NewOf(prior)
		authenticator := &stubAuthenticator{err: &client.APIError{StatusCode: 401, Message: "invalid username or password"}}
		manager := session.NewManager(store, authenticator)

		_, err := manager.Login(context.Background(), "alice", "wrong", false)
		var sessionErr *session.Error
		require.ErrorAs(t, err, &sessionErr)
		assert.Equal(t, session.KindAuth, sessionErr.Kind)
		assert.Equal(t, "invalid username or password", sessionErr.Error())
		assert.Equal(t, prior, store.Snapshot())
		assert.False(t, manager.Current().Authenticated)
	})

	t.Run("rejected credentials without message", func(t *testing.T) {
		authenticator := &stubAuthenticator{err: &client.APIError{StatusCode: 401}}
		manager := session.NewManager(inmem.New(), authenticator)

		_, err := manager.Login(context.Background(), "alice", "wrong", false)
		assert.ErrorIs(t, err, &session.Error{Kind: session.KindAuth, Message: "login failed"})
	})

	t.Run("unreachable API", func(t *testing.T) {
		store := inmem.New()
		authenticator := &stubAuthenticator{err: &client.NetworkError{Err: errors.New("connection refused")}}
		manager := session.NewManager(store, authenticator)

		_, err := manager.Login(context.Background(), "alice", "secret", false)
		var sessionErr *session.Error
		require.ErrorAs(t, err, &sessionErr)
		assert.Equal(t, session.KindNetwork, sessionErr.Kind)
		assert.Equal(t, "login failed, please try again later", sessionErr.Message)
		assert.Empty(t, store.Snapshot())
		assert.False(t, manager.Current().Authenticated)
	})

	t.Run("store failure", func(t *testing.T) {
		store := &failingStore{Store: inmem.New(), failOn: session.KeyLoggedIn}
		manager := session.NewManager(store, successfulLogin("alice"))

		_, err := manager.Login(context.Background(), "alice", "secret", false)
		assert.ErrorIs(t, err, &session.Error{Kind: session.KindStorage})
		assert.Empty(t, store.Snapshot())
		assert.False(t, manager.Current().Authenticated)
	})

	t.Run("store failure keeps previous session", func(t *testing.T) {
		store := &failingStore{Store: inmem.New()}
		manager := session.NewManager(store, successfulLogin("bob"))
		previous, err := manager.Login(context.Background(), "bob", "secret", false)
		require.NoError(t, err)
		persisted := store.Snapshot()

		store.failOn = session.KeyUser
		store.failOnce = true
		manager = session.NewManager(store, successfulLogin("alice"))
		_, err = manager.Login(context.Background(), "alice", "secret", false)
		assert.ErrorIs(t, err, &session.Error{Kind: session.KindStorage})

		assert.Equal(t, persisted, store.Snapshot())
		assert.Equal(t, previous.Username, manager.Current().Username)
		assert.Equal(t, manager.Current(), manager.LoadSession())
	})

	t.Run("unrecoverable store failure resets both sides", func(t *testing.T) {
		store := &failingStore{Store: inmem.New()}
		manager := session.NewManager(store, successfulLogin("bob"))
		_, err := manager.Login(context.Background(), "bob", "secret", false)
		require.NoError(t, err)

		store.failOn = session.KeyLoggedIn
		manager = session.NewManager(store, successfulLogin("alice"))
		require.True(t, manager.Current().Authenticated)
		_, err = manager.Login(context.Background(), "alice", "secret", false)
		assert.ErrorIs(t, err, &session.Error{Kind: session.KindStorage})

		assert.Empty(t, store.Snapshot())
		assert.False(t, manager.Current().Authenticated)
		assert.Equal(t, manager.Current(), manager.LoadSession())
	})

	t.Run("login without user drops the previous one", func(t *testing.T) {
		store := inmem.New()
		_, err := session.NewManager(store, successfulLogin("bob")).Login(context.Background(), "bob", "secret", false)
		require.NoError(t, err)
		_, hasUser := store.Get(session.KeyUser)
		require.True(t, hasUser)

		authenticator := &stubAuthenticator{response: &client.LoginResponse{Token: "token-2"}}
		created, err := session.NewManager(store, authenticator).Login(context.Background(), "alice", "secret", false)
		require.NoError(t, err)
		assert.Equal(t, "alice", created.Username)

		_, hasUser = store.Get(session.KeyUser)
		assert.False(t, hasUser)
		assert.Nil(t, session.NewManager(store, &stubAuthenticator{}).Current().User)
	})

	t.Run("reload after login", func(t *testing.T) {
		store := inmem.New()
		created, err := session.NewManager(store, successfulLogin("alice")).Login(context.Background(), "alice", "secret", false)
		require.NoError(t, err)

		reloaded := session.NewManager(store, &stubAuthenticator{}).Current()
		assert.Equal(t, created.Username, reloaded.Username)
		assert.Equal(t, created.Token, reloaded.Token)
		assert.True(t, created.LoginTime.Equal(reloaded.LoginTime))
		assert.Equal(t, created.User, reloaded.User)
	})
}

func TestLogout(t *testing.T) {
	store := inmem.New()
	require.NoError(t, store.Set("theme", "dark"))
	manager := session.NewManager(store, successfulLogin("alice"))

	_, err := manager.Login(context.Background(), "alice", "secret", false)
	require.NoError(t, err)

	require.NoError(t, manager.Logout())
	assert.Equal(t, session.Session{}, manager.Current())
	assert.Equal(t, map[string]string{"theme": "dark"}, store.Snapshot())
	assert.Equal(t, session.Session{}, manager.LoadSession())

	require.NoError(t, manager.Logout())
	assert.Equal(t, map[string]string{"theme": "dark"}, store.Snapshot())
}

func TestManagerGuard(t *testing.T) {
	manager := session.NewManager(inmem.New(), successfulLogin("alice"))
	assert.Equal(t, session.Decision{Outcome: session.Redirect, Target: session.LoginPath}, manager.Guard("/admin"))

	_, err := manager.Login(context.Background(), "alice", "secret", false)
	require.NoError(t, err)
	assert.True(t, manager.Guard("/admin").Allowed())
	assert.Equal(t, session.Decision{Outcome: session.Redirect, Target: session.HomePath}, manager.Guard("/login"))

	require.NoError(t, manager.Logout())
	assert.Equal(t, session.Decision{Outcome: session.Redirect, Target: session.LoginPath}, manager.Guard("/"))
}
