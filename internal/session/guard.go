package session

import (
	"net/url"
	"path"
)

// The paths the guard redirects to
const (
	HomePath  = "/"
	LoginPath = "/login"
)

// Outcome represents the result of a guard evaluation
type Outcome int

const (
	// Allow means the requested view may be rendered
	Allow Outcome = iota

	// Redirect means the client has to navigate to Decision.Target instead
	Redirect
)

// Decision represents the guard's verdict on a navigation
type Decision struct {
	Outcome Outcome
	Target  string
}

// Allowed reports whether the requested view may be rendered
func (decision Decision) Allowed() bool {
	return decision.Outcome == Allow
}

// Guard decides whether the view at the given location may be rendered with the given session.
// Unauthenticated clients are sent to the login view; authenticated clients are sent away from it.
func Guard(location string, current Session) Decision {
	onLogin := CleanPath(location) == LoginPath
	switch {
	case !current.Authenticated && !onLogin:
		return Decision{Outcome: Redirect, Target: LoginPath}
	case current.Authenticated && onLogin:
		return Decision{Outcome: Redirect, Target: HomePath}
	default:
		return Decision{Outcome: Allow}
	}
}

// CleanPath strips query and fragment off a location and returns its cleaned absolute path
func CleanPath(location string) string {
	raw := location
	if parsed, err := url.Parse(location); err == nil {
		raw = parsed.Path
	}
	if raw == "" {
		return HomePath
	}
	return path.Clean("/" + raw)
}
