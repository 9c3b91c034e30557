// Package term adapts internal/vterm's grid and parser — the external
// Terminal collaborator described in spec §6 — to the core.Terminal
// interface, adding the fair-mutex and dirty-tracking semantics spec §5
// requires of anything shared between a UI thread and a PTY I/O thread.
package term

import (
	"strings"
	"sync"

	"github.com/glyphterm/glyph/internal/clipboard"
	"github.com/glyphterm/glyph/internal/core"
	"github.com/glyphterm/glyph/internal/vterm"
)

// Adapter wraps a *vterm.VTerm with the locking and bookkeeping
// core.Terminal requires. One Adapter backs exactly one Tab.
type Adapter struct {
	mu sync.Mutex

	vt      *vterm.VTerm
	clip    clipboard.Clipboard
	focused bool
	dirty   bool
	selKind core.SelectionKind
}

// New constructs an Adapter around a freshly created VTerm sized to
// size's initial Lines/Cols.
func New(size core.SizeInfo, clip clipboard.Clipboard) *Adapter {
	lines, cols := int(size.Lines()), int(size.Cols())
	if lines < 1 {
		lines = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Adapter{vt: vterm.New(cols, lines), clip: clip}
}

// Resize implements core.Terminal.
func (a *Adapter) Resize(size core.SizeInfo) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vt.Resize(int(size.Cols()), int(size.Lines()))
	a.dirty = true
}

// RenderableCellCount implements core.Terminal.
func (a *Adapter) RenderableCellCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vt.Width * a.vt.Height
}

// BackgroundColor implements core.Terminal. internal/vterm has no
// themeable background (it always renders on the Display's default), so
// this returns the conventional terminal black.
func (a *Adapter) BackgroundColor() (uint8, uint8, uint8) { return 0, 0, 0 }

// VisualBellActive implements core.Terminal and always reports false.
// internal/vterm ignores BEL and keeps no bell state, and nothing in this
// tree emits EventBell; MainLoop only marks a display update if one
// arrives (see internal/core/mainloop.go).
func (a *Adapter) VisualBellActive() bool { return false }

// Selection implements core.Terminal, translating vterm's absolute
// line/column selection into the Point-based core.Selection shape. The
// Kind is the one most recently passed to SetSelection.
func (a *Adapter) Selection() core.Selection {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.vt.HasSelection() {
		return core.Selection{}
	}
	return core.Selection{
		Kind:  a.selKind,
		Start: core.Point{Line: a.vt.SelStartY(), Col: a.vt.SelStartX()},
		End:   core.Point{Line: a.vt.SelEndY(), Col: a.vt.SelEndX()},
	}
}

// SetSelection implements core.Terminal.
func (a *Adapter) SetSelection(sel core.Selection) {
	a.mu.Lock()
	defer a.mu.Unlock()
	rect := sel.Kind == core.SelectionBlock
	a.selKind = sel.Kind
	a.vt.SetSelection(sel.Start.Col, sel.Start.Line, sel.End.Col, sel.End.Line, true, rect)
	a.dirty = true
}

// ClearSelection implements core.Terminal.
func (a *Adapter) ClearSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vt.ClearSelection()
	a.dirty = true
}

// VisibleToBuffer implements core.Terminal, converting a screen-relative
// row into an absolute scrollback+screen line.
func (a *Adapter) VisibleToBuffer(p core.Point) core.Point {
	a.mu.Lock()
	defer a.mu.Unlock()
	return core.Point{Line: a.vt.ScreenYToAbsoluteLine(p.Line), Col: p.Col}
}

// ScrollDisplay implements core.Terminal.
func (a *Adapter) ScrollDisplay(delta int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vt.ScrollView(delta)
}

// IsFocused implements core.Terminal.
func (a *Adapter) IsFocused() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.focused
}

// SetFocused implements core.Terminal.
func (a *Adapter) SetFocused(v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.focused = v
	a.vt.ShowCursor = v
}

// Dirty implements core.Terminal.
func (a *Adapter) Dirty() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirty
}

// MarkDirty implements core.Terminal.
func (a *Adapter) MarkDirty() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dirty = true
}

// ClearDirty implements core.Terminal.
func (a *Adapter) ClearDirty() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dirty = false
}

// Mode implements core.Terminal, projecting vterm's DECSET-tracked flags
// onto the bitset the input dispatcher consults.
func (a *Adapter) Mode() core.TerminalMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	var m core.TerminalMode
	if a.vt.MouseReport {
		m |= core.ModeMouseReport
	}
	if a.vt.MouseMotion {
		m |= core.ModeMouseMotion
	}
	if a.vt.AltScreen {
		m |= core.ModeAltScreen
	}
	if a.vt.BracketedPaste {
		m |= core.ModeBracketedPaste
	}
	return m
}

// Clipboard implements core.Terminal.
func (a *Adapter) Clipboard() clipboard.Clipboard { return a.clip }

// ConsumeTitle implements core.Terminal.
func (a *Adapter) ConsumeTitle() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vt.ConsumeTitle()
}

// Write implements core.Terminal. It is the one method called from the
// PTY I/O thread rather than the UI thread (spec §5): the Adapter's
// mutex is what makes that safe.
func (a *Adapter) Write(p []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.vt.Write(p)
	a.dirty = true
}

// Render returns the current screen as plain text, one line per row,
// for a software Display to composite (internal/display). It reads
// whichever buffer vterm.RenderBuffers selects — the live screen, or the
// frozen synchronized-output snapshot — so a redraw never tears mid
// repaint (spec §5 synchronized-output invariant).
func (a *Adapter) Render() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	screen, _ := a.vt.RenderBuffers()
	var b strings.Builder
	for i, line := range screen {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range line {
			if cell.Width == 0 {
				continue
			}
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SelectedText extracts the plain text covered by sel from the current
// screen, letting internal/termproc copy a completed selection without
// reaching into vterm internals itself. It implements termproc.TextSource.
func (a *Adapter) SelectedText(sel core.Selection) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if sel.Kind == core.SelectionNone {
		return ""
	}
	screen, _ := a.vt.RenderBuffers()

	start, end := sel.Start, sel.End
	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}

	var b strings.Builder
	for line := start.Line; line <= end.Line && line < len(screen); line++ {
		if line < 0 {
			continue
		}
		row := screen[line]
		from, to := 0, len(row)
		if sel.Kind == core.SelectionSimple || sel.Kind == core.SelectionBlock {
			if line == start.Line {
				from = start.Col
			}
			if line == end.Line {
				to = end.Col + 1
			}
		}
		if from < 0 {
			from = 0
		}
		if to > len(row) {
			to = len(row)
		}
		for _, cell := range row[from:to] {
			if cell.Width == 0 {
				continue
			}
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			b.WriteRune(r)
		}
		if line < end.Line {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var _ core.Terminal = (*Adapter)(nil)
