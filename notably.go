// Package notably is a terminal client for a remote notes API with a
// guest mode. Authenticated operations go to the server; guest operations
// persist to a device-local collection; failed writes fall back from
// remote to local so user data is never silently lost.
package notably

import (
	"notably/internal/config"
	"notably/internal/platform"
)

// --- Types ---

// App is the wired application: repository, session resolver, auth client.
type App = platform.App

// Config holds the application settings.
type Config = config.Config

// --- Configuration ---

// Option defines a functional option for configuring the app.
type Option = platform.Option

// WithLogger sets the logger shared by all components.
var WithLogger = platform.WithLogger

// WithKeychain injects a custom credential store.
var WithKeychain = platform.WithKeychain

// WithLocalStore injects a custom local note store.
var WithLocalStore = platform.WithLocalStore

// WithRemote injects a custom remote client.
var WithRemote = platform.WithRemote

// --- Factory ---

// LoadConfig reads the config file at path (or defaults when empty),
// applying environment overrides.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}

// DefaultConfigPath returns the expected config file location.
func DefaultConfigPath() (string, error) {
	return config.DefaultPath()
}

// New builds the application from configuration.
func New(cfg Config, opts ...Option) (*App, error) {
	return platform.New(cfg, opts...)
}
