package local

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch_EmitsOnWrite(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The parent directory must exist before the watcher starts.
	_, err := s.Add(ctx, "seed", "")
	require.NoError(t, err)

	events, err := s.Watch(ctx)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	_, err = s.Add(ctx, "trigger", "")
	require.NoError(t, err)

	select {
	case ev, ok := <-events:
		require.True(t, ok)
		require.NotZero(t, ev.Timestamp)
	case <-ctx.Done():
		t.Fatal("no event after a write")
	}
}

func TestWatch_CoalescesBursts(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.Add(ctx, "seed", "")
	require.NoError(t, err)

	events, err := s.Watch(ctx)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	// A rapid burst of writes well inside the debounce window.
	for i := 0; i < 5; i++ {
		_, err := s.Add(ctx, "burst", "")
		require.NoError(t, err)
	}

	select {
	case <-events:
	case <-ctx.Done():
		t.Fatal("no event after the burst")
	}

	// The burst settles into at most one trailing notification, not five.
	extra := 0
	timeout := time.After(300 * time.Millisecond)
drain:
	for {
		select {
		case _, ok := <-events:
			if !ok {
				break drain
			}
			extra++
		case <-timeout:
			break drain
		}
	}
	require.LessOrEqual(t, extra, 1, "burst produced %d extra events", extra)
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	_, err := s.Add(ctx, "seed", "")
	require.NoError(t, err)

	events, err := s.Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok, "channel must close after cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("channel did not close")
	}
}

func TestWatch_IgnoresSiblingFiles(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := s.Add(ctx, "seed", "")
	require.NoError(t, err)

	events, err := s.Watch(ctx)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	sibling := NewStore(s.Path()+".other", slog.Default())
	_, err = sibling.Add(ctx, "noise", "")
	require.NoError(t, err)

	select {
	case ev, ok := <-events:
		if ok {
			t.Fatalf("unexpected event for a sibling file: %+v", ev)
		}
	case <-time.After(300 * time.Millisecond):
	}
}
