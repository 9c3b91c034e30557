package core

import "github.com/glyphterm/glyph/internal/clipboard"

// fakeTerminal is a minimal Terminal double for unit tests, avoiding any
// real VT parsing or PTY I/O.
type fakeTerminal struct {
	size      SizeInfo
	selection Selection
	focused   bool
	dirty     bool
	mode      TerminalMode
	title     string
	titleSeen bool
	clip      *clipboard.Memory
}

func newFakeTerminal() *fakeTerminal {
	return &fakeTerminal{clip: clipboard.NewMemory()}
}

func (f *fakeTerminal) Resize(size SizeInfo)                { f.size = size }
func (f *fakeTerminal) RenderableCellCount() int             { return 0 }
func (f *fakeTerminal) BackgroundColor() (uint8, uint8, uint8) { return 0, 0, 0 }
func (f *fakeTerminal) VisualBellActive() bool               { return false }
func (f *fakeTerminal) Selection() Selection                 { return f.selection }
func (f *fakeTerminal) SetSelection(s Selection)              { f.selection = s }
func (f *fakeTerminal) ClearSelection()                       { f.selection = Selection{} }
func (f *fakeTerminal) VisibleToBuffer(p Point) Point          { return p }
func (f *fakeTerminal) ScrollDisplay(delta int)                {}
func (f *fakeTerminal) IsFocused() bool                        { return f.focused }
func (f *fakeTerminal) SetFocused(v bool)                      { f.focused = v }
func (f *fakeTerminal) Dirty() bool                            { return f.dirty }
func (f *fakeTerminal) MarkDirty()                             { f.dirty = true }
func (f *fakeTerminal) ClearDirty()                            { f.dirty = false }
func (f *fakeTerminal) Mode() TerminalMode                     { return f.mode }
func (f *fakeTerminal) Clipboard() clipboard.Clipboard          { return f.clip }
func (f *fakeTerminal) ConsumeTitle() (string, bool) {
	seen := f.titleSeen
	f.titleSeen = false
	return f.title, seen
}
func (f *fakeTerminal) Write(p []byte) {}

// fakeWriter is a no-op PTYWriter double.
type fakeWriter struct {
	shutdown bool
}

func (w *fakeWriter) Write(p []byte) error        { return nil }
func (w *fakeWriter) Resize(size SizeInfo) error   { return nil }
func (w *fakeWriter) Shutdown()                    { w.shutdown = true }

// fakeResizer is a no-op Resizer double.
type fakeResizer struct{}

func (fakeResizer) SetSize(rows, cols uint16) error { return nil }

// fakeIOThread is a no-op IOThread double.
type fakeIOThread struct {
	joined bool
}

func (t *fakeIOThread) Join() { t.joined = true }

// fakeDisplay is a no-op Display double that records calls for
// assertions.
type fakeDisplay struct {
	draws   int
	resizes int
	current int
}

func (d *fakeDisplay) MakeCurrent() error      { d.current++; return nil }
func (d *fakeDisplay) Release()                {}
func (d *fakeDisplay) Resize(size SizeInfo)    { d.resizes++ }
func (d *fakeDisplay) Draw(active *Tab, bar TabBarState) { d.draws++ }

// fakeTabFactory builds Tabs wired entirely to fakes, for tests that
// never want a real PTY/VT pair.
func fakeTabFactory(collection *TabCollection, handle TabHandle, size SizeInfo) (*Tab, error) {
	term := newFakeTerminal()
	term.size = size
	return &Tab{
		Handle:   handle,
		Terminal: term,
		Writer:   &fakeWriter{},
		Resize:   fakeResizer{},
		IO:       &fakeIOThread{},
	}, nil
}

// fakeWindowFactory builds WindowContexts backed by fakeTabFactory and a
// fakeDisplay, for WindowRegistry-level tests.
func fakeWindowFactory(id WindowID) (*WindowContext, error) {
	return NewWindowContext(id, fakeTabFactory, &fakeDisplay{})
}
