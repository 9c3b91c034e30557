package core

import "sync"

// MessageBar holds a transient status message shown above/below the tab
// bar (spec §3 "message_buffer"). A zero-value MessageBar is empty.
type MessageBar struct {
	Text    string
	IsError bool
}

// WindowContext owns everything scoped to a single OS window: its GPU
// context token, its tabs, its tab bar processor, and pending display
// state (spec §3, §4.3). The GPU context itself is an external
// collaborator (spec §6 GPUContext) reached only through the Display
// interface; WindowContext only tracks whether a redraw is owed.
type WindowContext struct {
	mu sync.Mutex

	ID    WindowID
	Tabs  *TabCollection
	Bar   *TabBarProcessor

	display Display

	fontSize             float64
	displayUpdatePending  bool
	message               MessageBar
	estimatedDPR          float64
	size                 SizeInfo
}

// Display is the external rendering collaborator a WindowContext drives
// (spec §6: Display/Renderer). Its internals — glyph atlas, shader
// pipeline, swapchain — are out of scope.
type Display interface {
	// MakeCurrent binds the window's GPU context to the calling thread.
	// Only one thread may hold a context current at a time (spec §5 "GPU
	// context: current on at most one thread at a time").
	MakeCurrent() error
	// Release unbinds the context, allowing the next MakeCurrent (by this
	// thread or another) to succeed.
	Release()
	// Resize updates the swapchain/framebuffer to match size.
	Resize(size SizeInfo)
	// Draw renders one frame for the active tab and the given tab bar
	// state; spec §4.9 "multiplexed drawing: render only the active tab's
	// Terminal plus the TabBarState snapshot".
	Draw(active *Tab, bar TabBarState)
}

const defaultFontSize = 14.0

// NewWindowContext constructs a WindowContext with a fresh, empty
// TabCollection bound to factory, and bootstraps its first tab.
func NewWindowContext(id WindowID, factory TabFactory, display Display) (*WindowContext, error) {
	tabs := NewTabCollection(id, factory)
	if _, err := tabs.Bootstrap(); err != nil {
		return nil, err
	}
	return &WindowContext{
		ID:           id,
		Tabs:         tabs,
		Bar:          NewTabBarProcessor(),
		display:      display,
		fontSize:     defaultFontSize,
		estimatedDPR: 1,
		size:         SizeInfo{Width: 100, Height: 100, CellWidth: 1, CellHeight: 1, DPR: 1},
	}, nil
}

// Display returns the window's renderer.
func (w *WindowContext) Display() Display { return w.display }

// FontSize returns the window's current font size in points.
func (w *WindowContext) FontSize() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fontSize
}

// SetFontSize updates the font size and marks a display update pending
// (spec §3 "font_size: per-window, changed by Ctrl+/Ctrl-").
func (w *WindowContext) SetFontSize(size float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if size < 1 {
		size = 1
	}
	w.fontSize = size
	w.displayUpdatePending = true
}

// EstimatedDPR returns the cached device pixel ratio estimate (adapted
// from WindowContextTracker.estimated_dpr). Nothing in this package reads
// it when sizing tabs: NewWindowContext and TabCollection.Bootstrap use a
// DPR of 1.
func (w *WindowContext) EstimatedDPR() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.estimatedDPR
}

func (w *WindowContext) SetEstimatedDPR(dpr float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if dpr <= 0 {
		dpr = 1
	}
	w.estimatedDPR = dpr
}

// TakeDisplayUpdate reports and clears the pending display-update flag
// (spec §4.3: a resize or font change marks display_update_pending;
// MainLoop consumes it once per iteration).
func (w *WindowContext) TakeDisplayUpdate() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	pending := w.displayUpdatePending
	w.displayUpdatePending = false
	return pending
}

// MarkDisplayUpdate flags that geometry changed and a Resize/redraw is
// owed.
func (w *WindowContext) MarkDisplayUpdate() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.displayUpdatePending = true
}

// SetMessage sets the transient message bar contents.
func (w *WindowContext) SetMessage(text string, isError bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.message = MessageBar{Text: text, IsError: isError}
}

// ClearMessage empties the message bar.
func (w *WindowContext) ClearMessage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.message = MessageBar{}
}

// Message returns the current message bar contents.
func (w *WindowContext) Message() MessageBar {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// lastSize returns the most recently applied SizeInfo, used to size
// newly created tabs the same as their siblings (spec §4.2 create_tab).
func (w *WindowContext) lastSize() SizeInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Resize applies a new SizeInfo to the Display, the tab bar geometry,
// and the active tab's Terminal/PTY (spec §4.3: "propagate the new size
// to the active Tab's Terminal and to the PTY resizer", matching the
// original source's Display::handle_update, which takes one active
// terminal, not the whole tab list). A background tab keeps whatever
// size it had when it was last active; nothing in the original source
// resizes a tab on activation either, so a background tab's PTY only
// catches up to the window's current size once it becomes active and
// the window resizes again.
func (w *WindowContext) Resize(size SizeInfo) {
	w.mu.Lock()
	w.size = size
	w.mu.Unlock()

	w.display.Resize(size)
	w.Bar.SetGeometry(size.Width, defaultTabBarHeight)
	if t := w.Tabs.ActiveTab(); t != nil {
		t.Terminal.Resize(size)
		if t.Resize != nil {
			_ = t.Resize.SetSize(size.Lines(), size.Cols())
		}
		if t.Writer != nil {
			_ = t.Writer.Resize(size)
		}
	}
	w.MarkDisplayUpdate()
}
