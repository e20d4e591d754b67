// Package session implements the client side session lifecycle of Tools-Sys.
//
// A session is the locally persisted belief about whether the current client is authenticated and under which
// identity. It is created on a successful login, read back on every start of the client and destroyed on logout.
// It is never checked against the API once it was persisted.
package session

import (
	"time"

	"github.com/skybi/tools-sys/internal/user"
)

// The keys used to persist a session inside a Store
const (
	KeyLoggedIn  = "isLoggedIn"
	KeyUsername  = "username"
	KeyToken     = "token"
	KeyLoginTime = "loginTime"
	KeyUser      = "user"
)

// Keys contains every key a session may occupy inside a Store
var Keys = []string{KeyLoggedIn, KeyUsername, KeyToken, KeyLoginTime, KeyUser}

const loggedInMarker = "true"

// Session represents the authentication state of the client.
// All fields but Authenticated are only set if the session is authenticated.
type Session struct {
	Authenticated bool
	Username      string
	Token         string
	LoginTime     time.Time
	User          *user.User
}

// Store represents the local key-value store a session is persisted to
type Store interface {
	// Get returns the value stored under the given key and whether it exists
	Get(key string) (string, bool)

	// Set stores a value under the given key
	Set(key, value string) error

	// Remove removes the value stored under the given key.
	// Removing a non-existing key is not an error.
	Remove(key string) error
}
