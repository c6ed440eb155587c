package notably_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notably"
	"notably/pkg/core"
)

// downRemote fails every call the way an unreachable server would.
type downRemote struct{}

var errDown = &core.RemoteError{Kind: core.KindNetwork, Err: errors.New("connection refused")}

func (downRemote) List(ctx context.Context, token string) ([]core.Note, error) {
	return nil, errDown
}
func (downRemote) Get(ctx context.Context, token, id string) (core.Note, error) {
	return core.Note{}, errDown
}
func (downRemote) Create(ctx context.Context, token, title, content string) (core.Note, error) {
	return core.Note{}, errDown
}
func (downRemote) Update(ctx context.Context, token, id, title, content string) (*core.Note, error) {
	return nil, errDown
}
func (downRemote) Delete(ctx context.Context, token, id string) error {
	return errDown
}

func newTestApp(t *testing.T) *notably.App {
	t.Helper()
	app, err := notably.New(notably.Config{DataDir: t.TempDir()},
		notably.WithRemote(downRemote{}),
	)
	require.NoError(t, err)
	return app
}

func TestFlow_GuestLifecycle(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	// Fresh install: nothing works until a session exists.
	_, err := app.Repository.List(ctx)
	require.ErrorIs(t, err, core.ErrSignedOut)

	require.NoError(t, app.Resolver.GuestLogin())

	res, err := app.Repository.Add(ctx, "packing list", "socks")
	require.NoError(t, err)
	require.False(t, res.FellBack, "guest writes never touch the remote")

	res, err = app.Repository.Update(ctx, res.Note.ID, "packing list", "socks, charger")
	require.NoError(t, err)
	assert.Equal(t, "socks, charger", res.Note.Content)

	require.NoError(t, app.Repository.Delete(ctx, res.Note.ID))

	notes, err := app.Repository.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	// Logout keeps the device collection on disk.
	require.NoError(t, app.Resolver.Logout())
	_, err = app.Repository.List(ctx)
	require.ErrorIs(t, err, core.ErrSignedOut)
}

func TestFlow_AuthenticatedFallbackWithServerDown(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, app.Resolver.Login("jwt"))

	// Reads surface the outage.
	_, err := app.Repository.List(ctx)
	require.Error(t, err)
	assert.True(t, core.IsNetworkError(err))

	// Writes do not lose data: they land in the local store.
	res, err := app.Repository.Add(ctx, "meeting notes", "agenda")
	require.NoError(t, err)
	assert.True(t, res.FellBack)

	// The fallback copy is on disk and survives in guest mode.
	require.NoError(t, app.Resolver.Logout())
	require.NoError(t, app.Resolver.GuestLogin())

	notes, err := app.Repository.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "meeting notes", notes[0].Title)
}

func TestFlow_SessionSurvivesRestart(t *testing.T) {
	dataDir := t.TempDir()
	cfg := notably.Config{DataDir: dataDir}

	app, err := notably.New(cfg, notably.WithRemote(downRemote{}))
	require.NoError(t, err)
	require.NoError(t, app.Resolver.Login("persistent-jwt"))

	// A new process sees the same session.
	reopened, err := notably.New(cfg, notably.WithRemote(downRemote{}))
	require.NoError(t, err)

	sess, err := reopened.Resolver.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "persistent-jwt", sess.Token)
}
