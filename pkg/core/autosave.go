package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
)

// DefaultAutosaveInterval is the quiet period after the last edit before a
// flush fires.
const DefaultAutosaveInterval = time.Second

// Saver is the slice of Repository the autosave controller needs.
type Saver interface {
	Add(ctx context.Context, title, content string) (SaveResult, error)
	Update(ctx context.Context, id, title, content string) (SaveResult, error)
}

type pendingEdit struct {
	title   string
	content string
}

// Autosave coalesces rapid edit events into a single repository write.
// Every Edit replaces the pending values and restarts the timer (debounce,
// not throttle); after a full quiet interval the latest values are flushed
// through the repository and the controller returns to idle.
//
// Flush failures never interrupt the editor: outcomes go to the OnResult
// callback, which defaults to the logger.
type Autosave struct {
	saver    Saver
	interval time.Duration
	logger   *slog.Logger
	onResult func(SaveResult, error)
	ctx      context.Context

	mu      sync.Mutex
	timer   *time.Timer
	pending *pendingEdit
	noteID  string
	closed  bool
}

// AutosaveOption configures the controller.
type AutosaveOption func(*Autosave)

// WithInterval overrides the quiet period. Mainly for tests.
func WithInterval(d time.Duration) AutosaveOption {
	return func(a *Autosave) { a.interval = d }
}

// WithOnResult registers an observer for flush outcomes.
func WithOnResult(fn func(SaveResult, error)) AutosaveOption {
	return func(a *Autosave) { a.onResult = fn }
}

// WithAutosaveLogger sets the logger for the silent failure sink.
func WithAutosaveLogger(logger *slog.Logger) AutosaveOption {
	return func(a *Autosave) { a.logger = logger }
}

// NewAutosave creates a controller for one editing session. noteID is
// empty for a fresh editor; the first successful flush then creates the
// note and later flushes update it. ctx bounds all flush I/O.
func NewAutosave(ctx context.Context, saver Saver, noteID string, opts ...AutosaveOption) *Autosave {
	a := &Autosave{
		saver:    saver,
		interval: DefaultAutosaveInterval,
		logger:   slog.Default(),
		ctx:      ctx,
		noteID:   noteID,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.onResult == nil {
		a.onResult = func(res SaveResult, err error) {
			switch {
			case err != nil:
				a.logger.Warn("autosave failed", "error", err)
			case res.FellBack:
				a.logger.Warn("autosave fell back to local store", "id", res.Note.ID, "error", res.Cause)
			case !res.Skipped:
				a.logger.Debug("autosaved", "id", res.Note.ID)
			}
		}
	}
	return a
}

// Edit records the latest editor state and restarts the quiet timer.
func (a *Autosave) Edit(title, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.pending = &pendingEdit{title: title, content: content}
	if a.timer == nil {
		a.timer = time.AfterFunc(a.interval, a.flushTimer)
		return
	}
	a.timer.Reset(a.interval)
}

// flushTimer fires after the quiet period. The save runs on a supervised
// goroutine so a slow store never blocks the timer.
func (a *Autosave) flushTimer() {
	pending := a.take()
	if pending == nil {
		return
	}
	lifecycle.Go(a.ctx, func(ctx context.Context) error {
		a.save(ctx, pending)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		a.logger.Error("autosave flush panic", "error", err)
	}))
}

// Flush saves any pending edit immediately (manual save). It is a no-op
// when idle.
func (a *Autosave) Flush(ctx context.Context) (SaveResult, error) {
	pending := a.take()
	if pending == nil {
		return SaveResult{Skipped: true}, nil
	}
	return a.saveOnce(ctx, pending)
}

// Close cancels any pending edit without flushing. Edits made within the
// last quiet interval are lost; an accepted trade-off of teardown.
func (a *Autosave) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// NoteID returns the id the controller is updating. Empty until the first
// successful create.
func (a *Autosave) NoteID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.noteID
}

func (a *Autosave) take() *pendingEdit {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.pending
	a.pending = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	return p
}

func (a *Autosave) save(ctx context.Context, p *pendingEdit) {
	res, err := a.saveOnce(ctx, p)
	a.onResult(res, err)
}

func (a *Autosave) saveOnce(ctx context.Context, p *pendingEdit) (SaveResult, error) {
	id := a.NoteID()
	var (
		res SaveResult
		err error
	)
	if id == "" {
		res, err = a.saver.Add(ctx, p.title, p.content)
	} else {
		res, err = a.saver.Update(ctx, id, p.title, p.content)
	}
	if err == nil && !res.Skipped && res.Note.ID != "" {
		a.mu.Lock()
		a.noteID = res.Note.ID
		a.mu.Unlock()
	}
	return res, err
}
