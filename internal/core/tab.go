package core

// IOThread is the join handle for a tab's PTY I/O goroutine (spec §3
// "io_thread: join handle for the PTY I/O thread"). Join blocks until the
// thread has exited; it must only be called after Shutdown has been sent
// on the tab's PTYWriter.
type IOThread interface {
	Join()
}

// Tab is the per-tab state described in spec §3. While a Tab exists its
// PTY I/O thread is alive; on close, Shutdown is enqueued and the thread
// is joined before the Tab is dropped (enforced by TabCollection.CloseTab).
type Tab struct {
	Handle TabHandle
	Title  string

	Terminal Terminal
	Writer   PTYWriter
	Resize   Resizer
	IO       IOThread
}

// TabFactory constructs a new Tab bound to the given handle and initial
// size. collection is the owning TabCollection, passed through so the
// factory can hand its EventForwarder a stable (collection, tab) pair to
// resolve the tab's current handle from rather than a one-time copy (spec
// §4.1: renumbering must be observable by the forwarder on its next
// push). It is the seam between the orchestration core and the concrete
// Terminal/PTY implementations (internal/term, internal/ptyio), so
// TabCollection can be unit tested with a fake factory that never touches
// a real PTY.
type TabFactory func(collection *TabCollection, handle TabHandle, size SizeInfo) (*Tab, error)

// shutdown enqueues Shutdown on the tab's writer and joins its I/O thread,
// satisfying the invariant in spec §3 and §5: "closing a tab sends
// Shutdown ... then joins the I/O thread. The Terminal is dropped only
// after the join returns."
func (t *Tab) shutdown() {
	if t.Writer != nil {
		t.Writer.Shutdown()
	}
	if t.IO != nil {
		t.IO.Join()
	}
}
