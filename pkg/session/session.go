// Package session resolves the active session mode from persisted
// credentials and owns the transitions between signed-out, guest, and
// authenticated states.
package session

import "fmt"

// Keychain keys. The token and the guest marker are independent flags;
// Resolve reconciles them.
const (
	KeyToken = "userToken"
	KeyGuest = "isGuest"
)

// guestMarkerValue is the only value the guest marker is ever set to.
const guestMarkerValue = "true"

// Mode identifies how the client should route note operations.
type Mode int

const (
	// ModeSignedOut means neither a token nor a guest marker is present.
	// It is not a valid mode for note operations; callers must redirect
	// to login.
	ModeSignedOut Mode = iota
	// ModeGuest routes all note operations to the local store.
	ModeGuest
	// ModeAuthenticated routes note operations to the remote API.
	ModeAuthenticated
)

func (m Mode) String() string {
	switch m {
	case ModeGuest:
		return "guest"
	case ModeAuthenticated:
		return "authenticated"
	default:
		return "signed-out"
	}
}

// Session is the resolved state for a single operation. Token is empty
// unless Mode is ModeAuthenticated.
type Session struct {
	Mode  Mode
	Token string
}

// Keychain is the secure-credential facility. Get returns ("", nil) for
// absent keys; absence is never a fault.
type Keychain interface {
	Get(name string) (string, error)
	Set(name, value string) error
	Delete(name string) error
}

// Resolver derives the current Session from the keychain. Resolve is
// read-only; the Login/GuestLogin/Logout transitions are separate calls.
type Resolver struct {
	kc Keychain
}

// NewResolver creates a Resolver over the given keychain.
func NewResolver(kc Keychain) *Resolver {
	return &Resolver{kc: kc}
}

// Resolve reconciles the two persisted flags into exactly one mode.
// A non-empty token always wins; the guest marker is only meaningful as a
// fallback when no token is stored.
func (r *Resolver) Resolve() (Session, error) {
	token, err := r.kc.Get(KeyToken)
	if err != nil {
		return Session{}, fmt.Errorf("failed to read token: %w", err)
	}
	if token != "" {
		return Session{Mode: ModeAuthenticated, Token: token}, nil
	}

	guest, err := r.kc.Get(KeyGuest)
	if err != nil {
		return Session{}, fmt.Errorf("failed to read guest marker: %w", err)
	}
	if guest == guestMarkerValue {
		return Session{Mode: ModeGuest}, nil
	}

	return Session{Mode: ModeSignedOut}, nil
}

// Login stores the token and clears the guest marker so the marker cannot
// shadow the new identity.
func (r *Resolver) Login(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	if err := r.kc.Set(KeyToken, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := r.kc.Delete(KeyGuest); err != nil {
		return fmt.Errorf("failed to clear guest marker: %w", err)
	}
	return nil
}

// GuestLogin sets the guest marker. It does NOT clear a stale token: a
// leftover token will shadow the marker on the next Resolve. Use Logout
// first to drop a stale identity.
func (r *Resolver) GuestLogin() error {
	if err := r.kc.Set(KeyGuest, guestMarkerValue); err != nil {
		return fmt.Errorf("failed to set guest marker: %w", err)
	}
	return nil
}

// Logout clears both flags, returning the client to the signed-out state.
func (r *Resolver) Logout() error {
	if err := r.kc.Delete(KeyToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	if err := r.kc.Delete(KeyGuest); err != nil {
		return fmt.Errorf("failed to clear guest marker: %w", err)
	}
	return nil
}
