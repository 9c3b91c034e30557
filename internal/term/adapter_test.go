package term

import (
	"testing"

	"github.com/glyphterm/glyph/internal/clipboard"
	"github.com/glyphterm/glyph/internal/core"
)

func TestAdapter_WriteMarksDirty(t *testing.T) {
	a := New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
	if a.Dirty() {
		t.Fatalf("expected a freshly created terminal to be clean")
	}
	a.Write([]byte("hello"))
	if !a.Dirty() {
		t.Fatalf("expected Write to mark the terminal dirty")
	}
	a.ClearDirty()
	if a.Dirty() {
		t.Fatalf("expected ClearDirty to clear the dirty flag")
	}
}

func TestAdapter_TitleRoundTrips(t *testing.T) {
	a := New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
	a.Write([]byte("\x1b]0;my title\x07"))

	title, changed := a.ConsumeTitle()
	if !changed || title != "my title" {
		t.Fatalf("expected title %q changed=true, got %q changed=%v", "my title", title, changed)
	}
	if _, changed := a.ConsumeTitle(); changed {
		t.Fatalf("expected ConsumeTitle to report unchanged on second call")
	}
}

func TestAdapter_BracketedPasteMode(t *testing.T) {
	a := New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
	a.Write([]byte("\x1b[?2004h"))
	if !a.Mode().Intersects(core.ModeBracketedPaste) {
		t.Fatalf("expected ModeBracketedPaste set after DECSET 2004")
	}
	a.Write([]byte("\x1b[?2004l"))
	if a.Mode().Intersects(core.ModeBracketedPaste) {
		t.Fatalf("expected ModeBracketedPaste cleared after DECRST 2004")
	}
}

func TestAdapter_SelectionRoundTrips(t *testing.T) {
	a := New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
	sel := core.Selection{Kind: core.SelectionSimple, Start: core.Point{Line: 0, Col: 1}, End: core.Point{Line: 0, Col: 4}}
	a.SetSelection(sel)

	got := a.Selection()
	if got.Start != sel.Start || got.End != sel.End {
		t.Fatalf("expected selection to round-trip, got %+v", got)
	}

	a.ClearSelection()
	if a.Selection().Kind != core.SelectionNone {
		t.Fatalf("expected selection cleared")
	}
}

func TestAdapter_SelectedTextExtractsRange(t *testing.T) {
	a := New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
	a.Write([]byte("hello world"))
	sel := core.Selection{Kind: core.SelectionSimple, Start: core.Point{Line: 0, Col: 0}, End: core.Point{Line: 0, Col: 4}}
	if got := a.SelectedText(sel); got != "hello" {
		t.Fatalf("expected %q, got %q", "hello", got)
	}
}

func TestAdapter_SelectedTextEmptyWhenNoSelection(t *testing.T) {
	a := New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
	if got := a.SelectedText(core.Selection{}); got != "" {
		t.Fatalf("expected empty string for no selection, got %q", got)
	}
}

func TestAdapter_RenderReflectsWrittenText(t *testing.T) {
	a := New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
	a.Write([]byte("hi there"))
	if got := a.Render(); !containsSubstring(got, "hi there") {
		t.Fatalf("expected rendered screen to contain written text, got %q", got)
	}
}

func containsSubstring(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func TestAdapter_ClipboardWiring(t *testing.T) {
	a := New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
	if err := a.Clipboard().Store(clipboard.KindClipboard, "copied text"); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := a.Clipboard().Load(clipboard.KindClipboard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "copied text" {
		t.Fatalf("expected %q, got %q", "copied text", got)
	}
}
