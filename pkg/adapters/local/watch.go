package local

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// debounceWindow collapses the bursts of filesystem events a single
// read-modify-write cycle produces into one notification.
const debounceWindow = 50 * time.Millisecond

// Event signals that the collection changed on disk. The blob is a single
// key, so events carry no per-note identity.
type Event struct {
	Timestamp int64
}

// Watch emits an Event whenever the collection blob is written by anyone,
// including other processes. The watcher runs until ctx is cancelled, then
// closes the returned channel.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the parent directory: editors and this store itself may
	// replace the file, which would drop a watch on the file node.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch data directory: %w", err)
	}

	events := make(chan Event, 1)
	s.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer func() {
			s.setWatcherActive(false)
			_ = watcher.Close()
			close(events)
		}()
		return s.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("collection watcher panic", "error", err)
	}))

	return events, nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, events chan<- Event) error {
	debounce := time.NewTimer(debounceWindow)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			s.logger.Debug("collection changed on disk", "op", ev.Op.String())
			if pending {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce.Reset(debounceWindow)
			pending = true

		case <-debounce.C:
			pending = false
			select {
			case events <- Event{Timestamp: time.Now().Unix()}:
			case <-ctx.Done():
				return nil
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("fsnotify error", "error", werr)
		}
	}
}
