package platform

import (
	"log/slog"

	"notably/pkg/core"
	"notably/pkg/session"
)

// options holds the internal configuration for the application wiring.
type options struct {
	logger   *slog.Logger
	keychain session.Keychain
	local    core.Store
	remote   core.Remote
}

// Option defines a functional option for configuring the app.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger shared by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKeychain injects a custom credential store (e.g. in-memory for
// tests). If provided, the default file keychain is skipped.
func WithKeychain(kc session.Keychain) Option {
	return func(o *options) {
		o.keychain = kc
	}
}

// WithLocalStore injects a custom local note store.
func WithLocalStore(store core.Store) Option {
	return func(o *options) {
		o.local = store
	}
}

// WithRemote injects a custom remote client (e.g. a fake for tests).
func WithRemote(remote core.Remote) Option {
	return func(o *options) {
		o.remote = remote
	}
}
