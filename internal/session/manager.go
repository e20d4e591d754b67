package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skybi/tools-sys/internal/client"
	"github.com/skybi/tools-sys/internal/user"
)

const (
	messageMissingCredentials = "please enter a username and a password"
	messageLoginFailed        = "login failed"
	messageNetworkFailure     = "login failed, please try again later"
	messageStorageFailure     = "the session could not be saved"
)

// Authenticator performs the login request against the API
type Authenticator interface {
	Login(ctx context.Context, request *client.LoginRequest) (*client.LoginResponse, error)
}

// Manager owns the session of the client.
// It is the only component reading from and writing to the session store.
type Manager struct {
	store         Store
	authenticator Authenticator
	now           func() time.Time

	mtx     sync.RWMutex
	current Session
}

// NewManager creates a new session manager and loads the persisted session
func NewManager(store Store, authenticator Authenticator) *Manager {
	manager := &Manager{
		store:         store,
		authenticator: authenticator,
		now:           time.Now,
	}
	manager.LoadSession()
	return manager
}

// Current returns the in-memory session
func (manager *Manager) Current() Session {
	manager.mtx.RLock()
	defer manager.mtx.RUnlock()
	return manager.current
}

// Guard evaluates the guard for the given location using the in-memory session
func (manager *Manager) Guard(location string) Decision {
	return Guard(location, manager.Current())
}

// LoadSession reads the persisted session into memory and returns it.
// Missing or malformed entries never fail; they result in an unauthenticated session.
func (manager *Manager) LoadSession() Session {
	loaded := readSession(manager.store)

	manager.mtx.Lock()
	manager.current = loaded
	manager.mtx.Unlock()
	return loaded
}

func readSession(store Store) Session {
	marker, _ := store.Get(KeyLoggedIn)
	if marker != loggedInMarker {
		return Session{}
	}

	loaded := Session{Authenticated: true}
	loaded.Username, _ = store.Get(KeyUsername)
	loaded.Token, _ = store.Get(KeyToken)

	if raw, ok := store.Get(KeyLoginTime); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			loaded.LoginTime = parsed
		} else {
			log.Debug().Err(err).Msg("ignoring malformed persisted login time")
		}
	}

	if raw, ok := store.Get(KeyUser); ok {
		obj := new(user.User)
		if err := json.Unmarshal([]byte(raw), obj); err == nil {
			loaded.User = obj
		} else {
			log.Debug().Err(err).Msg("ignoring malformed persisted user")
		}
	}
	return loaded
}

// Login sends the given credentials to the API and persists the resulting session.
// Failed attempts return an *Error and leave both the store and the in-memory session untouched.
// If a failed save cannot be rolled back, both are reset to an unauthenticated session instead.
// The remember flag is forwarded to the API only.
func (manager *Manager) Login(ctx context.Context, username, password string, remember bool) (Session, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return Session{}, &Error{Kind: KindValidation, Message: messageMissingCredentials}
	}

	response, err := manager.authenticator.Login(ctx, &client.LoginRequest{
		Username: username,
		Password: password,
		Remember: remember,
	})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			message := apiErr.Message
			if message == "" {
				message = messageLoginFailed
			}
			return Session{}, &Error{Kind: KindAuth, Message: message, Err: err}
		}
		log.Debug().Err(err).Msg("login request failed")
		return Session{}, &Error{Kind: KindNetwork, Message: messageNetworkFailure, Err: err}
	}

	created := Session{
		Authenticated: true,
		Username:      username,
		Token:         response.Token,
		LoginTime:     manager.now().UTC(),
		User:          response.User,
	}
	if response.User != nil && response.User.Username != "" {
		created.Username = response.User.Username
	}

	prior := manager.snapshot()
	if err := manager.persist(created); err != nil {
		if restoreErr := manager.restore(prior); restoreErr != nil {
			// The prior session is lost; make memory match the emptied store
			log.Warn().Err(restoreErr).Msg("could not restore the previous session")
			if clearErr := manager.clear(); clearErr != nil {
				log.Warn().Err(clearErr).Msg("could not clear a partially persisted session")
			}
			manager.mtx.Lock()
			manager.current = Session{}
			manager.mtx.Unlock()
		}
		return Session{}, &Error{Kind: KindStorage, Message: messageStorageFailure, Err: err}
	}

	manager.mtx.Lock()
	manager.current = created
	manager.mtx.Unlock()
	return created, nil
}

// persist writes the session field by field; the logged in marker is written last
func (manager *Manager) persist(created Session) error {
	values := [][2]string{
		{KeyToken, created.Token},
		{KeyUsername, created.Username},
		{KeyLoginTime, created.LoginTime.Format(time.RFC3339Nano)},
	}
	if created.User != nil {
		raw, err := json.Marshal(created.User)
		if err != nil {
			return err
		}
		values = append(values, [2]string{KeyUser, string(raw)})
	} else if err := manager.store.Remove(KeyUser); err != nil {
		return err
	}
	values = append(values, [2]string{KeyLoggedIn, loggedInMarker})

	for _, pair := range values {
		if err := manager.store.Set(pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

// snapshot returns the currently stored session values; absent keys are missing from the map
func (manager *Manager) snapshot() map[string]string {
	values := make(map[string]string, len(Keys))
	for _, key := range Keys {
		if value, ok := manager.store.Get(key); ok {
			values[key] = value
		}
	}
	return values
}

// restore writes back the values returned by snapshot; the logged in marker is handled last
func (manager *Manager) restore(values map[string]string) error {
	for i := len(Keys) - 1; i >= 0; i-- {
		key := Keys[i]
		if key == KeyLoggedIn {
			continue
		}
		if err := manager.restoreKey(key, values); err != nil {
			return err
		}
	}
	return manager.restoreKey(KeyLoggedIn, values)
}

func (manager *Manager) restoreKey(key string, values map[string]string) error {
	if value, ok := values[key]; ok {
		return manager.store.Set(key, value)
	}
	return manager.store.Remove(key)
}

// Logout removes the persisted session and resets the in-memory one.
// Logging out without a session is a no-op.
func (manager *Manager) Logout() error {
	err := manager.clear()

	manager.mtx.Lock()
	manager.current = Session{}
	manager.mtx.Unlock()
	return err
}

func (manager *Manager) clear() error {
	var errs []error
	for _, key := range Keys {
		if err := manager.store.Remove(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
