package core

import (
	"context"
	"time"
)

// InputEvent is a UI-thread-originated event: a keypress, pointer
// action, or resize request, already resolved to a specific window
// (spec §4.4 input dispatch). The concrete decoding from raw terminal
// input or a windowing toolkit happens in internal/termproc and
// internal/keymap; MainLoop only consumes the result.
type InputEvent struct {
	Window  WindowID
	Command *Command // non-nil if the input maps directly to a Command
	Resize  *SizeInfo
	Redraw  bool
}

// RedrawRequested asks the main loop to recompute tab bar geometry and
// redraw the named window on its next iteration (spec §4.7 "hover/drag
// motion requests a redraw without mutating any Command state").
func RedrawRequested(window WindowID) InputEvent {
	return InputEvent{Window: window, Redraw: true}
}

// MainLoop drives one iteration of: drain PTY events, drain input
// events, apply queued Commands at the barrier, then redraw (spec §4.8).
// Window/tab mutation happens only inside the barrier step, never while
// handling an individual event, so a Command raised mid-dispatch is
// guaranteed to see a consistent TabCollection when it runs.
type MainLoop struct {
	Registry *WindowRegistry
	Commands *CommandQueue
	Events   chan ForwardedEvent
	Input    chan InputEvent

	// RedrawInterval bounds how long an inactive-but-visible window can
	// go without a forced redraw when nothing else woke the loop (spec
	// §4.9 supplemented feature: inactive windows still redraw, just not
	// on every PTY byte).
	RedrawInterval time.Duration
}

// DefaultRedrawInterval is the ticker period a MainLoop uses when not
// otherwise specified (spec §4.9 supplemented feature: inactive windows
// still redraw periodically).
const DefaultRedrawInterval = 16 * time.Millisecond

// NewMainLoop constructs a MainLoop with sensibly sized channels and the
// default redraw interval.
func NewMainLoop(reg *WindowRegistry) *MainLoop {
	return &MainLoop{
		Registry:       reg,
		Commands:       NewCommandQueue(),
		Events:         make(chan ForwardedEvent, 256),
		Input:          make(chan InputEvent, 64),
		RedrawInterval: DefaultRedrawInterval,
	}
}

// Run blocks, processing events until ctx is cancelled or the registry
// has no windows left. A bad event or a failing Command never stops the
// loop: barrier discards the errors Run(reg, q) returns, and the rest of
// the same drain is still applied.
func (m *MainLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(m.RedrawInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case fwd := <-m.Events:
			m.handleTerminalEvent(fwd)
			m.barrier()
			if m.Registry.Len() == 0 {
				return
			}

		case in := <-m.Input:
			m.handleInput(in)
			m.barrier()
			if m.Registry.Len() == 0 {
				return
			}

		case <-ticker.C:
			m.redrawVisible()
		}
	}
}

// handleTerminalEvent resolves a ForwardedEvent's TabHandle against the
// live WindowRegistry and applies its effect directly to the Terminal or
// WindowContext it names — Wakeup/Bell/Title/ClipboardStore never go
// through the Command queue, since they mutate the tab/window they
// originated from, not the registry's topology (spec §4.1, §4.6: only
// topology changes — new/close/move/activate — are deferred Commands).
func (m *MainLoop) handleTerminalEvent(fwd ForwardedEvent) {
	win := m.Registry.Get(fwd.Handle.WindowID)
	if win == nil {
		return
	}
	tab := win.Tabs.Tab(fwd.Handle.TabID)
	if tab == nil {
		return
	}

	switch fwd.Event.Kind {
	case EventTitle:
		win.Tabs.SetTabTitle(fwd.Handle.TabID, fwd.Event.Title)
		win.MarkDisplayUpdate()

	case EventBell:
		win.MarkDisplayUpdate()

	case EventExit:
		_ = m.Commands.Push(CloseTab(fwd.Handle.WindowID, fwd.Handle.TabID))

	case EventConfigReload:
		win.MarkDisplayUpdate()

	case EventClipboardStore:
		if tab.Terminal != nil {
			_ = tab.Terminal.Clipboard().Store(0, fwd.Event.Text)
		}

	case EventWakeup:
		win.MarkDisplayUpdate()
	}
}

// handleInput applies an InputEvent: either enqueues the Command it
// carries, applies a resize directly (resizes are not deferred — they
// must be visible to the very next redraw), or marks a redraw.
func (m *MainLoop) handleInput(in InputEvent) {
	win := m.Registry.Get(in.Window)
	if win == nil {
		return
	}

	if in.Resize != nil {
		win.Resize(*in.Resize)
	}
	if in.Command != nil {
		_ = m.Commands.Push(*in.Command)
	}
	if in.Redraw {
		win.MarkDisplayUpdate()
	}
}

// barrier drains and applies every queued Command, then redraws any
// window whose display_update_pending flag was set by the Commands just
// applied or by the event/input handling above (spec §4.8 "barrier:
// apply then redraw, in that order, every iteration").
func (m *MainLoop) barrier() {
	Run(m.Registry, m.Commands)
	m.redrawVisible()
}

// redrawVisible redraws every window with a pending display update,
// even if it is not the active window — a backgrounded window is still
// visible on screen and must not go stale (spec §4.9 "multiplexed
// drawing: every visible window redraws; only the active tab's Terminal
// within each window is actually rendered").
func (m *MainLoop) redrawVisible() {
	for _, win := range m.Registry.All() {
		if !win.TakeDisplayUpdate() {
			continue
		}
		active := win.Tabs.ActiveTab()
		bar := win.Bar.Layout(win.Tabs.Snapshot(), win.Tabs.ActiveIndex())
		if win.display != nil {
			if err := win.display.MakeCurrent(); err != nil {
				continue
			}
			win.display.Draw(active, bar)
			win.display.Release()
		}
	}
}
