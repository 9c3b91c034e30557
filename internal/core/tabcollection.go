package core

import (
	"fmt"
	"sync"
)

// TabCollection is the per-window ordered list of tabs with an active
// index (spec §3, §4.2). All operations are synchronous and window-local;
// the EventForwarder reads a Tab's Handle atomically under the same lock
// (spec §4.1).
type TabCollection struct {
	mu          sync.Mutex
	windowID    WindowID
	factory     TabFactory
	tabs        []*Tab
	activeIndex int
}

// NewTabCollection creates an empty collection for windowID. factory is
// used by AddTab to construct new Tabs (spawning their PTY I/O thread).
func NewTabCollection(windowID WindowID, factory TabFactory) *TabCollection {
	return &TabCollection{windowID: windowID, factory: factory}
}

// Bootstrap seeds the very first tab of a brand-new window using a
// placeholder size, before the real Display geometry is known — adapted
// from alacritty's TermTabCollection::initialize, which decouples terminal
// construction from display creation so startup isn't blocked on it
// (spec SPEC_FULL.md "Supplemented features").
func (c *TabCollection) Bootstrap() (TabID, error) {
	return c.AddTab(SizeInfo{Width: 100, Height: 100, CellWidth: 1, CellHeight: 1, DPR: 1})
}

// Len returns the number of tabs.
func (c *TabCollection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tabs)
}

// IsEmpty reports whether the collection has no tabs.
func (c *TabCollection) IsEmpty() bool {
	return c.Len() == 0
}

// ActiveIndex returns the current active_index.
func (c *TabCollection) ActiveIndex() TabID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TabID(c.activeIndex)
}

// ActiveTab returns the active tab, or nil if the collection is empty.
func (c *TabCollection) ActiveTab() *Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tabs) == 0 {
		return nil
	}
	return c.tabs[c.activeIndex]
}

// Tab returns the tab at id, or nil if out of range.
func (c *TabCollection) Tab(id TabID) *Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id < 0 || int(id) >= len(c.tabs) {
		return nil
	}
	return c.tabs[id]
}

// Snapshot returns a shallow copy of the tab pointers in order, safe to
// range over without holding the collection lock (used by rendering and
// the tab bar, spec §4.7 "RedrawRequested: recompute TabBarState snapshot
// from the live TabCollection").
func (c *TabCollection) Snapshot() []*Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Tab, len(c.tabs))
	copy(out, c.tabs)
	return out
}

// AddTab appends a new tab, spawning its PTY I/O thread via the factory,
// and returns its TabID (spec §4.2 add_tab).
func (c *TabCollection) AddTab(size SizeInfo) (TabID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := TabID(len(c.tabs))
	handle := TabHandle{WindowID: c.windowID, TabID: id}
	tab, err := c.factory(c, handle, size)
	if err != nil {
		return 0, fmt.Errorf("add tab: %w", err)
	}
	tab.Handle = handle
	c.tabs = append(c.tabs, tab)
	return id, nil
}

// ActivateTab sets active_index if id is in range; no-op otherwise (spec
// §4.2 activate_tab).
func (c *TabCollection) ActivateTab(id TabID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id < 0 || int(id) >= len(c.tabs) {
		return
	}
	c.activeIndex = int(id)
}

// MoveTab removes the tab at from and reinserts it at to, renumbering
// tab_ids and tracking the active tab across the move (spec §4.2 move_tab,
// §8 property 4).
func (c *TabCollection) MoveTab(from, to TabID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.tabs)
	if from < 0 || int(from) >= n || to < 0 || int(to) >= n {
		return
	}
	if from == to {
		return
	}

	activeTab := c.tabs[c.activeIndex]

	moved := c.tabs[from]
	rest := make([]*Tab, 0, n-1)
	rest = append(rest, c.tabs[:from]...)
	rest = append(rest, c.tabs[from+1:]...)

	out := make([]*Tab, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	c.tabs = out

	c.renumber()
	c.activeIndex = c.indexOf(activeTab)
}

// SetTabTitle assigns a tab's title.
func (c *TabCollection) SetTabTitle(id TabID, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id < 0 || int(id) >= len(c.tabs) {
		return
	}
	c.tabs[id].Title = title
}

// CloseTab removes the tab at id: it enqueues Shutdown on its PTY writer,
// joins the I/O thread, removes the entry, renumbers, and keeps the
// previously active tab active when a different tab is closed, clamping
// active_index if the active tab itself was the last one (spec §4.2
// close_tab, §8 property 3). No-op if id is out of range.
func (c *TabCollection) CloseTab(id TabID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id < 0 || int(id) >= len(c.tabs) {
		return
	}

	tab := c.tabs[id]
	tab.shutdown()

	c.tabs = append(c.tabs[:id], c.tabs[id+1:]...)
	c.renumber()

	if len(c.tabs) == 0 {
		c.activeIndex = 0
		return
	}
	if int(id) < c.activeIndex {
		c.activeIndex--
	}
	if c.activeIndex >= len(c.tabs) {
		c.activeIndex = len(c.tabs) - 1
	}
}

// CloseCurrentTab closes the active tab (spec §4.2 close_current_tab).
func (c *TabCollection) CloseCurrentTab() {
	c.mu.Lock()
	idx := TabID(c.activeIndex)
	c.mu.Unlock()
	c.CloseTab(idx)
}

// HandleOf returns tab's current TabHandle under the collection's lock,
// reflecting any renumbering a CloseTab/MoveTab has applied since tab was
// created (spec §4.1 "the forwarder reads the current (window_id, tab_id)
// from the shared handle"). Safe to call concurrently with AddTab,
// MoveTab, and CloseTab.
func (c *TabCollection) HandleOf(tab *Tab) TabHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return tab.Handle
}

// renumber sets tab.Handle.TabID = index for every contained tab, as
// required after any insertion/removal (spec §4.2 "Renumbering rule").
// Callers must hold c.mu.
func (c *TabCollection) renumber() {
	for i, t := range c.tabs {
		t.Handle.TabID = TabID(i)
	}
}

// indexOf finds tab's current index. Callers must hold c.mu.
func (c *TabCollection) indexOf(tab *Tab) int {
	for i, t := range c.tabs {
		if t == tab {
			return i
		}
	}
	return 0
}
