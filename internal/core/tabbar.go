package core

import (
	"math"

	"github.com/charmbracelet/x/ansi"
)

// defaultTabBarHeight is the tab bar's height in pixels (spec §3
// "tab_bar_height: fixed per window").
const defaultTabBarHeight = 32.0

const (
	minTabWidth     = 40.0
	maxTabWidth     = 200.0
	closeButtonSize = 16.0
	dragThresholdPx = 4.0
	detachFactor    = 1.5 // detach = dy > detachFactor * bar height
)

// DragPhase enumerates the press→drag→detach→drop state machine (spec
// §4.7).
type DragPhase int

const (
	DragNone DragPhase = iota
	DragPressed
	DragDragging
	DragDetached
)

// DragInfo tracks an in-progress tab-bar interaction.
type DragInfo struct {
	Phase      DragPhase
	Tab        TabID
	StartX     float64
	StartY     float64
	CurrentX   float64
	CurrentY   float64
	TargetSlot int
}

// TabGeometry is one tab's on-screen rectangle within the bar, used for
// both hit-testing and rendering (spec §6 TabBarState contract).
type TabGeometry struct {
	Tab        TabID
	Title      string
	X, Width   float64
	CloseX     float64
	CloseWidth float64
}

// TabBarState is an immutable snapshot of the tab bar's geometry for one
// frame, computed from the live TabCollection (spec §4.7, §4.9).
type TabBarState struct {
	Width, Height float64
	Tabs          []TabGeometry
	ActiveTab     TabID
	Drag          DragInfo
}

// TabBarProcessor owns the tab bar's width/height and in-progress drag
// state, and turns pointer events into Commands (spec §4.7). It holds no
// reference to the TabCollection; callers pass a snapshot in.
type TabBarProcessor struct {
	width, height float64
	drag          DragInfo
}

func NewTabBarProcessor() *TabBarProcessor {
	return &TabBarProcessor{height: defaultTabBarHeight}
}

// SetGeometry updates the bar's pixel dimensions, e.g. on window resize.
func (p *TabBarProcessor) SetGeometry(width, height float64) {
	p.width = width
	p.height = height
}

// Layout computes each tab's rectangle given the live tab list and active
// index, dividing the bar width evenly between minTabWidth and
// maxTabWidth per tab (spec §4.7 "tab widths are evenly divided, clamped
// to [minTabWidth, maxTabWidth]").
// When there is at most one tab the bar is invisible and hit-testing
// passes through to whatever is beneath it (spec §4.7 "when tab count ≤
// 1 the bar is invisible and the processor passes through", §9 Open
// Question (b)): Layout returns a TabBarState with no TabGeometry
// entries, so HitTest/HitTestClose always report no hit.
func (p *TabBarProcessor) Layout(tabs []*Tab, active TabID) TabBarState {
	state := TabBarState{Width: p.width, Height: p.height, ActiveTab: active, Drag: p.drag}
	n := len(tabs)
	if n <= 1 {
		return state
	}

	width := p.width / float64(n)
	if width < minTabWidth {
		width = minTabWidth
	}
	if width > maxTabWidth {
		width = maxTabWidth
	}

	x := 0.0
	state.Tabs = make([]TabGeometry, 0, n)
	for _, t := range tabs {
		g := TabGeometry{
			Tab:        t.Handle.TabID,
			Title:      ellipsize(t.Title, width-closeButtonSize-8),
			X:          x,
			Width:      width,
			CloseWidth: closeButtonSize,
		}
		g.CloseX = x + width - closeButtonSize - 4
		state.Tabs = append(state.Tabs, g)
		x += width
	}
	return state
}

// HitTest returns the tab under (x, y), or -1 if none (spec §4.7
// "hit-testing resolves a pointer position to a tab index or none", §8
// property 8: hit_test(x,y) = floor(x*N/window_width) for y < height).
// x and window_width are assumed to already be in the same coordinate
// space (both logical or both physical) — the caller reconciles dpr
// before calling HitTest, so N-way division alone determines the slot.
func (state TabBarState) HitTest(x, y float64) TabID {
	n := len(state.Tabs)
	if n == 0 || y < 0 || y >= state.Height || x < 0 || x >= state.Width {
		return -1
	}
	slot := int(x * float64(n) / state.Width)
	if slot >= n {
		slot = n - 1
	}
	return TabID(slot)
}

// HitTestClose reports whether (x, y) lands on a tab's close button.
func (state TabBarState) HitTestClose(x, y float64) (TabID, bool) {
	if y < 0 || y > state.Height {
		return 0, false
	}
	for _, g := range state.Tabs {
		if x >= g.CloseX && x < g.CloseX+g.CloseWidth {
			return g.Tab, true
		}
	}
	return 0, false
}

// PointerDown starts a potential drag at (x, y). It only records a press;
// the drag does not begin until movement exceeds dragThresholdPx (spec
// §4.7 press→drag state transition).
func (p *TabBarProcessor) PointerDown(tab TabID, x, y float64) {
	p.drag = DragInfo{Phase: DragPressed, Tab: tab, StartX: x, StartY: y, CurrentX: x, CurrentY: y}
}

// PointerMove advances the drag state machine. Returns true if a reorder
// target slot changed and a redraw is owed.
func (p *TabBarProcessor) PointerMove(x, y float64, tabCount int) bool {
	if p.drag.Phase == DragNone {
		return false
	}
	p.drag.CurrentX, p.drag.CurrentY = x, y

	dx := math.Abs(x - p.drag.StartX)
	dy := y - p.drag.StartY

	if p.drag.Phase == DragPressed && (dx > dragThresholdPx || math.Abs(dy) > dragThresholdPx) {
		p.drag.Phase = DragDragging
	}
	switch p.drag.Phase {
	case DragDragging:
		if dy > detachFactor*p.height {
			p.drag.Phase = DragDetached
		}
	case DragDetached:
		if dy <= detachFactor*p.height {
			p.drag.Phase = DragDragging
		}
	}

	if p.drag.Phase == DragDragging && tabCount > 0 {
		slot := int(x * float64(tabCount) / p.width)
		if slot < 0 {
			slot = 0
		}
		if slot >= tabCount {
			slot = tabCount - 1
		}
		if slot != p.drag.TargetSlot {
			p.drag.TargetSlot = slot
			return true
		}
	}
	return false
}

// PointerUp ends the drag, returning the resulting Command (MoveTab if a
// reorder happened within the bar, NewWindow if it was dropped while
// detached, or the zero Command if it was just a click) and whether a
// command was produced (spec §4.7 drop resolution, §8 scenario S4/S5).
func (p *TabBarProcessor) PointerUp(windowID WindowID) (Command, bool) {
	drag := p.drag
	p.drag = DragInfo{}

	switch drag.Phase {
	case DragDragging:
		if drag.TargetSlot != int(drag.Tab) {
			return MoveTab(windowID, drag.Tab, TabID(drag.TargetSlot)), true
		}
	case DragDetached:
		return NewWindow(), true
	}
	return Command{}, false
}

// Dragging reports whether a drag (not just a press) is in progress.
func (p *TabBarProcessor) Dragging() bool {
	return p.drag.Phase == DragDragging || p.drag.Phase == DragDetached
}

// ellipsis is the literal trailing marker spec §6's tab-rendering
// contract specifies: a title is "ellipsized with a trailing \"...\"",
// three literal dots rather than the single Unicode ellipsis rune.
const ellipsis = "..."

// ellipsize truncates s to fit within width pixels, assuming one cell per
// ~8px (a rough monospace approximation; real glyph metrics belong to
// the Display collaborator), appending ellipsis when truncated (spec
// §4.7 "tab titles that overflow their slot are ellipsized"). Cell
// width, not rune count, decides the cut so a title with wide (e.g.
// CJK) runes doesn't overflow its slot.
func ellipsize(s string, width float64) string {
	const approxCharWidth = 8.0
	maxCells := int(width / approxCharWidth)
	if maxCells < 1 {
		maxCells = 1
	}
	if ansi.StringWidth(s) <= maxCells {
		return s
	}
	ellipsisWidth := ansi.StringWidth(ellipsis)
	if maxCells <= ellipsisWidth {
		return ellipsis
	}
	runes := []rune(s)
	for i := len(runes); i > 0; i-- {
		candidate := string(runes[:i]) + ellipsis
		if ansi.StringWidth(candidate) <= maxCells {
			return candidate
		}
	}
	return ellipsis
}
