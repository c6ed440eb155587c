package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notably"
	"notably/pkg/core"
)

// unreachableRemote fails every call the way a dead connection would.
type unreachableRemote struct{}

var errRefused = &core.RemoteError{Kind: core.KindNetwork, Err: errors.New("connection refused")}

func (unreachableRemote) List(ctx context.Context, token string) ([]core.Note, error) {
	return nil, errRefused
}
func (unreachableRemote) Get(ctx context.Context, token, id string) (core.Note, error) {
	return core.Note{}, errRefused
}
func (unreachableRemote) Create(ctx context.Context, token, title, content string) (core.Note, error) {
	return core.Note{}, errRefused
}
func (unreachableRemote) Update(ctx context.Context, token, id, title, content string) (*core.Note, error) {
	return nil, errRefused
}
func (unreachableRemote) Delete(ctx context.Context, token, id string) error {
	return errRefused
}

func newEditTestApp(t *testing.T) *notably.App {
	t.Helper()
	app, err := notably.New(notably.Config{DataDir: t.TempDir()},
		notably.WithRemote(unreachableRemote{}),
	)
	require.NoError(t, err)
	return app
}

func TestMergedFields_FillsOmittedFlag(t *testing.T) {
	app := newEditTestApp(t)
	ctx := context.Background()
	require.NoError(t, app.Resolver.GuestLogin())

	res, err := app.Repository.Add(ctx, "trip", "pack socks")
	require.NoError(t, err)

	title, content, err := mergedFields(ctx, app.Repository, res.Note.ID, "trip 2026", "")
	require.NoError(t, err)
	assert.Equal(t, "trip 2026", title)
	assert.Equal(t, "pack socks", content, "the omitted flag keeps the stored value")
}

func TestMergedFields_SurfacesFetchFailure(t *testing.T) {
	app := newEditTestApp(t)
	ctx := context.Background()
	require.NoError(t, app.Resolver.Login("jwt"))

	_, _, err := mergedFields(ctx, app.Repository, "srv-42", "onlytitle", "")
	require.Error(t, err, "a failed fetch must abort the edit, not blank the other field")
	assert.True(t, core.IsNetworkError(err))

	// Nothing was written anywhere: the local collection is untouched.
	require.NoError(t, app.Resolver.Logout())
	require.NoError(t, app.Resolver.GuestLogin())
	notes, err := app.Repository.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestMergedFields_UnknownIDIsNotFound(t *testing.T) {
	app := newEditTestApp(t)
	ctx := context.Background()
	require.NoError(t, app.Resolver.GuestLogin())

	_, _, err := mergedFields(ctx, app.Repository, "never-existed", "t", "c")
	assert.ErrorIs(t, err, core.ErrNotFound)

	notes, err := app.Repository.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes, "an edit of an unknown id must not create a note")
}
