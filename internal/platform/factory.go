// Package platform wires configuration into a ready-to-use application:
// keychain, session resolver, local store, remote client, repository.
package platform

import (
	"log/slog"

	"notably/internal/config"
	"notably/pkg/adapters/local"
	"notably/pkg/adapters/rest"
	"notably/pkg/core"
	"notably/pkg/session"
)

// App bundles the wired components the screens work with.
type App struct {
	Config     config.Config
	Repository *core.Repository
	Resolver   *session.Resolver
	Auth       *rest.Client
	Local      *local.Store
}

// New builds the application from configuration.
//
//	app, err := platform.New(cfg, platform.WithLogger(slog.Default()))
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	kc := o.keychain
	if kc == nil {
		fileKC, err := session.NewFileKeychain(cfg.KeychainDir())
		if err != nil {
			return nil, err
		}
		kc = fileKC
	}
	resolver := session.NewResolver(kc)

	client := rest.NewClient(cfg.APIBaseURL,
		rest.WithTimeout(cfg.RequestTimeout),
		rest.WithLogger(logger),
	)

	store := local.NewStore(cfg.NotesPath(), logger)

	var localStore core.Store = store
	if o.local != nil {
		localStore = o.local
	}
	var remote core.Remote = client
	if o.remote != nil {
		remote = o.remote
	}

	repo := core.NewRepository(localStore, remote, resolver, logger)

	return &App{
		Config:     cfg,
		Repository: repo,
		Resolver:   resolver,
		Auth:       client,
		Local:      store,
	}, nil
}
