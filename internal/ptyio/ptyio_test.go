package ptyio

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/glyphterm/glyph/internal/clipboard"
	"github.com/glyphterm/glyph/internal/core"
	"github.com/glyphterm/glyph/internal/term"
)

// fakePTY is an in-memory PTY double: Read drains a queue of byte
// chunks (with io.EOF once closed and drained), Write/SetSize record
// their calls.
type fakePTY struct {
	mu     sync.Mutex
	chunks [][]byte
	closed bool
	writes [][]byte
	sizes  []core.SizeInfo
}

func (f *fakePTY) push(b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chunks = append(f.chunks, b)
}

func (f *fakePTY) Read(p []byte) (int, error) {
	for {
		f.mu.Lock()
		if len(f.chunks) > 0 {
			chunk := f.chunks[0]
			f.chunks = f.chunks[1:]
			f.mu.Unlock()
			n := copy(p, chunk)
			return n, nil
		}
		closed := f.closed
		f.mu.Unlock()
		if closed {
			return 0, io.EOF
		}
		time.Sleep(time.Millisecond)
	}
}

func (f *fakePTY) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	buf := make([]byte, len(p))
	copy(buf, p)
	f.writes = append(f.writes, buf)
	return len(p), nil
}

func (f *fakePTY) SetSize(rows, cols uint16) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, core.SizeInfo{})
	return nil
}

func (f *fakePTY) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func newTestAdapter() *term.Adapter {
	size := core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}
	return term.New(size, clipboard.NewMemory())
}

// newTestForwarder builds an EventForwarder for a standalone tab at a
// fixed handle; no AddTab/renumber traffic runs against collection in
// these tests, so the handle never changes.
func newTestForwarder(events chan core.ForwardedEvent) *core.EventForwarder {
	collection := core.NewTabCollection(1, nil)
	tab := &core.Tab{Handle: core.TabHandle{WindowID: 1, TabID: 0}}
	return core.NewEventForwarder(collection, tab, events)
}

func TestSpawn_FeedsOutputIntoTerminal(t *testing.T) {
	pty := &fakePTY{}
	pty.push([]byte("hello"))

	adapter := newTestAdapter()
	events := make(chan core.ForwardedEvent, 32)
	forwarder := newTestForwarder(events)

	writer, thread := Spawn(pty, adapter, forwarder)
	defer func() {
		writer.Shutdown()
		thread.Join()
	}()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Event.Kind == core.EventWakeup && adapter.Dirty() {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for a Wakeup event after PTY output")
		}
	}
}

func TestSpawn_ShutdownJoins(t *testing.T) {
	pty := &fakePTY{}
	adapter := newTestAdapter()
	events := make(chan core.ForwardedEvent, 32)
	forwarder := newTestForwarder(events)

	writer, thread := Spawn(pty, adapter, forwarder)
	writer.Shutdown()

	done := make(chan struct{})
	go func() {
		thread.Join()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected Join to return after Shutdown")
	}

	pty.mu.Lock()
	closed := pty.closed
	pty.mu.Unlock()
	if !closed {
		t.Fatalf("expected PTY closed after Shutdown")
	}
}

// TestSpawn_Property6_ExitObservedOnce exercises property 6 at the
// ptyio level: once the PTY's Read returns an error, exactly one Exit
// event is forwarded.
func TestSpawn_Property6_ExitObservedOnce(t *testing.T) {
	pty := &fakePTY{}
	pty.push([]byte("x"))
	pty.closed = true // Read drains the queued chunk, then returns EOF

	adapter := newTestAdapter()
	events := make(chan core.ForwardedEvent, 32)
	forwarder := newTestForwarder(events)

	_, thread := Spawn(pty, adapter, forwarder)

	select {
	case <-thread.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected reader thread to exit after EOF")
	}

	exitCount := 0
	close(events)
	for ev := range events {
		if ev.Event.Kind == core.EventExit {
			exitCount++
		}
	}
	if exitCount != 1 {
		t.Fatalf("expected exactly 1 Exit event, got %d", exitCount)
	}
}
