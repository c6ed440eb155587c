package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNotFound marks an operation targeting an id absent from the
	// active store.
	ErrNotFound = errors.New("note not found")

	// ErrSignedOut marks a note operation attempted with neither a token
	// nor a guest marker present. Callers must redirect to login.
	ErrSignedOut = errors.New("not signed in")
)

// RemoteErrorKind classifies failures of the remote notes API.
type RemoteErrorKind int

const (
	// KindNetwork is a transport or connectivity failure; the request may
	// never have reached the server.
	KindNetwork RemoteErrorKind = iota
	// KindServer is a non-2xx HTTP response other than 401/403.
	KindServer
	// KindAuth is a 401/403 response: the stored token is stale and the
	// user should be prompted to log in again.
	KindAuth
)

func (k RemoteErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// RemoteError is a failed call to the remote notes API. Status is zero for
// transport failures; Body carries the best-effort response text.
type RemoteError struct {
	Kind   RemoteErrorKind
	Status int
	Body   string
	Err    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("remote %s error: %v", e.Kind, e.Err)
	case e.Body != "":
		return fmt.Sprintf("remote %s error: status=%d body=%s", e.Kind, e.Status, e.Body)
	default:
		return fmt.Sprintf("remote %s error: status=%d", e.Kind, e.Status)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

func remoteKind(err error, kind RemoteErrorKind) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == kind
}

// IsAuthError reports whether err is a 401/403 remote failure.
func IsAuthError(err error) bool { return remoteKind(err, KindAuth) }

// IsNetworkError reports whether err is a transport failure.
func IsNetworkError(err error) bool { return remoteKind(err, KindNetwork) }

// IsServerError reports whether err is a non-2xx (non-auth) response.
func IsServerError(err error) bool { return remoteKind(err, KindServer) }
