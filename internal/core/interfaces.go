package core

import "github.com/glyphterm/glyph/internal/clipboard"

// SizeInfo describes a terminal's pixel geometry, mirroring the external
// Terminal/PTY contract's SizeInfo (spec §6, §4.3 resize algorithm).
type SizeInfo struct {
	Width, Height         float64
	CellWidth, CellHeight float64
	PaddingX, PaddingY    float64
	DPR                   float64
}

// Lines and Cols derive the PTY's row/column count from pixel geometry,
// matching the Resize algorithm in spec §4.3.
func (s SizeInfo) Lines() uint16 {
	usable := s.Height - 2*s.PaddingY
	if usable < s.CellHeight {
		return 1
	}
	return uint16(usable / s.CellHeight)
}

func (s SizeInfo) Cols() uint16 {
	usable := s.Width - 2*s.PaddingX
	if usable < s.CellWidth {
		return 1
	}
	return uint16(usable / s.CellWidth)
}

// Point is a (line, column) cell coordinate.
type Point struct {
	Line, Col int
}

// TerminalMode is a bitset of terminal operating modes relevant to input
// routing (spec §4.4: "mode() intersects MOUSE_MODE").
type TerminalMode uint32

const (
	ModeMouseReport TerminalMode = 1 << iota
	ModeMouseMotion
	ModeAltScreen
	ModeBracketedPaste
)

func (m TerminalMode) Intersects(flag TerminalMode) bool { return m&flag != 0 }

// SelectionKind is the selection state machine's variant (spec §4.4).
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionSimple
	SelectionBlock
	SelectionSemantic
	SelectionLines
)

// Selection captures the anchor/active cursor of an in-progress or
// completed selection.
type Selection struct {
	Kind          SelectionKind
	Start, End    Point
}

// Resizer is the TIOCSWINSZ-equivalent handle used to resize the PTY
// independent of the terminal grid (spec §6 "Pty::resize_handle()").
type Resizer interface {
	SetSize(rows, cols uint16) error
}

// Terminal is the external grid/VT-parser collaborator (spec §6). Its
// internals (scrollback structure, escape parsing) are out of scope; the
// core only ever touches it through this interface.
type Terminal interface {
	Resize(size SizeInfo)
	RenderableCellCount() int
	BackgroundColor() (r, g, b uint8)
	VisualBellActive() bool

	Selection() Selection
	SetSelection(Selection)
	ClearSelection()

	VisibleToBuffer(p Point) Point
	ScrollDisplay(delta int)

	IsFocused() bool
	SetFocused(bool)

	// Dirty reports whether the terminal has unconsumed changes since the
	// last ClearDirty, driving the redraw decisions in MainLoop (§4.8) and
	// multiplexed drawing (§4.9).
	Dirty() bool
	MarkDirty()
	ClearDirty()

	Mode() TerminalMode

	Clipboard() clipboard.Clipboard

	// ConsumeTitle returns the terminal's current title and whether it
	// changed since the last call (used to emit TerminalEvent Title).
	ConsumeTitle() (string, bool)

	// Write feeds PTY output bytes into the VT parser. Called only from
	// the tab's PTY I/O thread, under the fair lock the caller is
	// expected to hold (spec §5 "Terminal grid: shared by one UI thread +
	// one PTY I/O thread; fair mutex; no nested acquires").
	Write(p []byte)
}

// PTYWriter is the typed channel contract a Tab holds to talk to its PTY
// I/O thread (spec §3 "pty_writer: typed channel ... accepts Write(bytes),
// Resize(SizeInfo), Shutdown").
type PTYWriter interface {
	Write(p []byte) error
	Resize(size SizeInfo) error
	Shutdown()
}
