package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"notably/pkg/session"
)

// Store is the contract for the device-local note collection.
type Store interface {
	// List returns all notes in insertion order. An empty collection is
	// not an error.
	List(ctx context.Context) ([]Note, error)

	// Add assigns a fresh id, appends the note, and returns the stored copy.
	Add(ctx context.Context, title, content string) (Note, error)

	// AddNote appends a note keeping its existing id. Used for fallback
	// writes, where the id may already be server-assigned.
	AddNote(ctx context.Context, n Note) (Note, error)

	// Update replaces title/content in place, preserving position. An
	// absent id is a benign no-op, never an error: callers may race with
	// a concurrent delete.
	Update(ctx context.Context, id, title, content string) (Note, error)

	// Delete removes the note. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error

	// Find returns the note or ErrNotFound.
	Find(ctx context.Context, id string) (Note, error)
}

// Remote is the contract for the notes API. Every call carries the bearer
// credential of the resolved session.
type Remote interface {
	List(ctx context.Context, token string) ([]Note, error)
	Get(ctx context.Context, token, id string) (Note, error)
	// Create returns the note with its server-assigned id.
	Create(ctx context.Context, token, title, content string) (Note, error)
	// Update returns nil on success when the server sends no body.
	Update(ctx context.Context, token, id, title, content string) (*Note, error)
	Delete(ctx context.Context, token, id string) error
}

// SessionSource supplies the mode and credential for each call.
type SessionSource interface {
	Resolve() (session.Session, error)
}

// SaveResult reports the outcome of an Add or Update.
type SaveResult struct {
	// Note is the persisted state (id assigned for creates).
	Note Note
	// Skipped is true when the note was blank and no store was contacted.
	Skipped bool
	// FellBack is true when the remote write failed and the note was
	// persisted locally instead. The copy diverges from the server until
	// a manual sync; this is never reconciled automatically.
	FellBack bool
	// Cause is the remote failure that triggered the fallback.
	Cause error
}

// Repository presents one CRUD surface to the screens, hiding the
// remote/local split. The session is resolved fresh on every call, never
// cached: login and logout take effect immediately.
//
// Policy summary: reads surface every failure; Add/Update absorb remote
// failures by falling back to the local store (data loss is worse than
// divergence); Delete has no safe fallback and always surfaces failure.
type Repository struct {
	local  Store
	remote Remote
	source SessionSource
	logger *slog.Logger
}

// NewRepository wires the dual-mode repository.
func NewRepository(local Store, remote Remote, source SessionSource, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{local: local, remote: remote, source: source, logger: logger}
}

func (r *Repository) resolve() (session.Session, error) {
	sess, err := r.source.Resolve()
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to resolve session: %w", err)
	}
	if sess.Mode == session.ModeSignedOut {
		return session.Session{}, ErrSignedOut
	}
	return sess, nil
}

// List returns the notes of the active store. When authenticated, a remote
// failure is surfaced as-is: returning stale local data under an
// authenticated identity would be wrong, so reads never fall back. This is
// a deliberate asymmetry versus Add/Update.
func (r *Repository) List(ctx context.Context) ([]Note, error) {
	sess, err := r.resolve()
	if err != nil {
		return nil, err
	}
	if sess.Mode == session.ModeGuest {
		return r.local.List(ctx)
	}
	return r.remote.List(ctx, sess.Token)
}

// Get fetches a single note for editing. Read policy: failures surface.
func (r *Repository) Get(ctx context.Context, id string) (Note, error) {
	sess, err := r.resolve()
	if err != nil {
		return Note{}, err
	}
	if sess.Mode == session.ModeGuest {
		return r.local.Find(ctx, id)
	}
	return r.remote.Get(ctx, sess.Token, id)
}

// Add persists a new note. Blank notes are a no-op before any I/O, so
// autosave never creates empty entries. When authenticated and the remote
// create fails for any reason, the note is written to the local store
// instead and the result carries a warning rather than an error.
func (r *Repository) Add(ctx context.Context, title, content string) (SaveResult, error) {
	if (Note{Title: title, Content: content}).Blank() {
		return SaveResult{Skipped: true}, nil
	}

	sess, err := r.resolve()
	if err != nil {
		return SaveResult{}, err
	}

	if sess.Mode == session.ModeGuest {
		n, err := r.local.Add(ctx, title, content)
		if err != nil {
			return SaveResult{}, err
		}
		return SaveResult{Note: n}, nil
	}

	n, err := r.remote.Create(ctx, sess.Token, title, content)
	if err == nil {
		return SaveResult{Note: n}, nil
	}

	var re *RemoteError
	if !errors.As(err, &re) {
		return SaveResult{}, err
	}
	return r.fallbackAdd(ctx, title, content, err)
}

func (r *Repository) fallbackAdd(ctx context.Context, title, content string, cause error) (SaveResult, error) {
	n, lerr := r.local.Add(ctx, title, content)
	if lerr != nil {
		return SaveResult{}, fmt.Errorf("remote save failed (%v) and local fallback failed: %w", cause, lerr)
	}
	r.logger.Warn("remote save failed, note kept locally",
		"id", n.ID, "error", cause)
	return SaveResult{Note: n, FellBack: true, Cause: cause}, nil
}

// Update mirrors Add's fallback policy. The same id targets both stores;
// ids are opaque strings, so a server-assigned id landing in the local
// store is valid (see NewLocalID for how local ids stay out of its way).
func (r *Repository) Update(ctx context.Context, id, title, content string) (SaveResult, error) {
	if (Note{Title: title, Content: content}).Blank() {
		return SaveResult{Skipped: true}, nil
	}

	sess, err := r.resolve()
	if err != nil {
		return SaveResult{}, err
	}

	if sess.Mode == session.ModeGuest {
		n, err := r.local.Update(ctx, id, title, content)
		if err != nil {
			return SaveResult{}, err
		}
		return SaveResult{Note: n}, nil
	}

	updated, err := r.remote.Update(ctx, sess.Token, id, title, content)
	if err == nil {
		if updated == nil {
			// Success without echo: the server accepted the write but
			// returned no body. Report the submitted state.
			return SaveResult{Note: Note{ID: id, Title: title, Content: content}}, nil
		}
		return SaveResult{Note: *updated}, nil
	}

	var re *RemoteError
	if !errors.As(err, &re) {
		return SaveResult{}, err
	}

	n, lerr := r.local.Update(ctx, id, title, content)
	if lerr != nil {
		return SaveResult{}, fmt.Errorf("remote update failed (%v) and local fallback failed: %w", err, lerr)
	}
	if n.ID == "" {
		// The note exists nowhere locally; keep the edit as a new local
		// entry under the same id rather than dropping it.
		n, lerr = r.local.AddNote(ctx, Note{ID: id, Title: title, Content: content})
		if lerr != nil {
			return SaveResult{}, fmt.Errorf("remote update failed (%v) and local fallback failed: %w", err, lerr)
		}
	}
	r.logger.Warn("remote update failed, note kept locally",
		"id", n.ID, "error", err)
	return SaveResult{Note: n, FellBack: true, Cause: err}, nil
}

// Delete removes the note from the active store. There is no fallback:
// deleting locally while the canonical copy is remote would desync state,
// so remote failures surface to the caller.
func (r *Repository) Delete(ctx context.Context, id string) error {
	sess, err := r.resolve()
	if err != nil {
		return err
	}
	if sess.Mode == session.ModeGuest {
		return r.local.Delete(ctx, id)
	}
	return r.remote.Delete(ctx, sess.Token, id)
}
