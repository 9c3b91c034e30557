package core

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// WindowFactory constructs a new WindowContext bound to id. It is the
// seam between WindowRegistry and the concrete Display/TabFactory
// implementations, mirroring TabFactory's role one level up.
type WindowFactory func(id WindowID) (*WindowContext, error)

// WindowRegistry owns every open window and tracks which one, if any, is
// active (spec §3 "WindowRegistry: map of WindowID to WindowContext, at
// most one active window", §8 property 2/5).
type WindowRegistry struct {
	mu      sync.Mutex
	nextID  WindowID
	factory WindowFactory

	windows map[WindowID]*WindowContext
	active  WindowID
	hasActive bool
}

func NewWindowRegistry(factory WindowFactory) *WindowRegistry {
	return &WindowRegistry{factory: factory, windows: make(map[WindowID]*WindowContext)}
}

// NewWindow allocates a fresh WindowID, constructs its WindowContext via
// the factory, and registers it. It does not change the active window
// (spec §4.2 "NewWindow creates but does not activate").
func (r *WindowRegistry) NewWindow() (WindowID, error) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.mu.Unlock()

	ctx, err := r.factory(id)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.windows[id] = ctx
	r.mu.Unlock()
	return id, nil
}

// Activate marks id as the active window if it exists (spec §8 property
// 2: "at most one window is active").
func (r *WindowRegistry) Activate(id WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.windows[id]; !ok {
		return
	}
	r.active = id
	r.hasActive = true
}

// Deactivate clears the active window if it is currently id.
func (r *WindowRegistry) Deactivate(id WindowID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasActive && r.active == id {
		r.hasActive = false
	}
}

// Active returns the active WindowContext, or nil if none is active.
func (r *WindowRegistry) Active() *WindowContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.hasActive {
		return nil
	}
	return r.windows[r.active]
}

// ActiveID returns the active WindowID and whether one is set.
func (r *WindowRegistry) ActiveID() (WindowID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.hasActive
}

// Get returns the WindowContext for id, or nil.
func (r *WindowRegistry) Get(id WindowID) *WindowContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.windows[id]
}

// All returns every registered WindowContext, in no particular order —
// adapted from alacritty's WindowContextTracker::get_all_window_contexts,
// used by the main loop to redraw inactive-but-visible windows (spec
// §4.9, SPEC_FULL.md supplemented feature).
func (r *WindowRegistry) All() []*WindowContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*WindowContext, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, w)
	}
	return out
}

// Len reports the number of open windows.
func (r *WindowRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows)
}

// CloseWindow closes every tab in id's window, removes it from the
// registry, and clears the active slot if it pointed at id (spec §4.2
// close_window).
func (r *WindowRegistry) CloseWindow(id WindowID) {
	r.mu.Lock()
	ctx, ok := r.windows[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	delete(r.windows, id)
	if r.hasActive && r.active == id {
		r.hasActive = false
	}
	r.mu.Unlock()

	for _, t := range ctx.Tabs.Snapshot() {
		ctx.Tabs.CloseTab(ctx.Tabs.HandleOf(t).TabID)
	}
}

// Shutdown closes every window concurrently, using an errgroup so a
// single slow PTY join does not serialize shutdown behind the others
// (spec §4.2's close_window fan-out applied at exit).
func (r *WindowRegistry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	ids := make([]WindowID, 0, len(r.windows))
	for id := range r.windows {
		ids = append(ids, id)
	}
	r.mu.Unlock()

	g, _ := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			r.CloseWindow(id)
			return nil
		})
	}
	return g.Wait()
}
