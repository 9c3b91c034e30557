// Package gpucontext tracks the "current on at most one thread at a
// time" invariant spec §5 requires of each window's GPU context. It does
// not talk to any real graphics API — the native display/shell/context
// handles are external, platform-specific collaborators (spec §6), the
// same layer gazed-vu's device.context wraps per-platform; this package
// only owns the cross-thread mutual-exclusion rule sitting in front of
// whatever real context a Display implementation binds.
package gpucontext

import (
	"errors"
	"sync"
)

// ErrCurrentElsewhere is returned by MakeCurrent when another goroutine
// already holds the context current.
var ErrCurrentElsewhere = errors.New("gpucontext: already current on another goroutine")

// Tracker enforces single-owner MakeCurrent/Release pairing for one
// window's GPU context.
type Tracker struct {
	mu      sync.Mutex
	current bool
}

// MakeCurrent binds the context to the calling goroutine. It fails if
// the context is already current elsewhere rather than silently
// rebinding, since a silent rebind would violate the one-thread
// invariant without anyone noticing.
func (t *Tracker) MakeCurrent() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current {
		return ErrCurrentElsewhere
	}
	t.current = true
	return nil
}

// Release marks the context not-current, allowing another goroutine (or
// the same one) to call MakeCurrent again.
func (t *Tracker) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = false
}

// Current reports whether the context is presently bound to any thread.
func (t *Tracker) Current() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
