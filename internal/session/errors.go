package session

// ErrorKind classifies the errors returned by Manager.Login
type ErrorKind int

const (
	// KindValidation means the credentials were incomplete; no request was sent
	KindValidation ErrorKind = iota

	// KindAuth means the API rejected the credentials
	KindAuth

	// KindNetwork means the API could not be reached
	KindNetwork

	// KindStorage means the session could not be persisted
	KindStorage
)

var kindNames = map[ErrorKind]string{
	KindValidation: "validation",
	KindAuth:       "auth",
	KindNetwork:    "network",
	KindStorage:    "storage",
}

func (kind ErrorKind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "unknown"
}

// Error represents a failed login attempt.
// Message is meant to be shown to the user.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) Unwrap() error {
	return err.Err
}

// Is reports whether target is an *Error of the same kind, so errors.Is(err, &Error{Kind: KindAuth}) works
func (err *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == err.Kind && (other.Message == "" || other.Message == err.Message)
}
