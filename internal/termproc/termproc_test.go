package termproc

import (
	"testing"
	"time"

	"github.com/glyphterm/glyph/internal/clipboard"
	"github.com/glyphterm/glyph/internal/core"
	"github.com/glyphterm/glyph/internal/keymap"
	"github.com/glyphterm/glyph/internal/term"
)

func newTestAdapter() *term.Adapter {
	return term.New(core.SizeInfo{Width: 800, Height: 600, CellWidth: 8, CellHeight: 16, DPR: 1}, clipboard.NewMemory())
}

func TestHandleClick_EscalatesOnRepeatedClicksAtSameCell(t *testing.T) {
	p := New(keymap.NewResolver())
	a := newTestAdapter()
	pt := core.Point{Line: 2, Col: 3}
	now := time.Unix(1000, 0)

	p.HandleClick(now, pt, a)
	if got := a.Selection().Kind; got != core.SelectionSimple {
		t.Fatalf("expected first click to select Simple, got %v", got)
	}

	p.HandleClick(now.Add(100*time.Millisecond), pt, a)
	if got := a.Selection().Kind; got != core.SelectionSemantic {
		t.Fatalf("expected second click at same cell to escalate to Semantic, got %v", got)
	}

	p.HandleClick(now.Add(200*time.Millisecond), pt, a)
	if got := a.Selection().Kind; got != core.SelectionLines {
		t.Fatalf("expected third click at same cell to escalate to Lines, got %v", got)
	}
}

func TestHandleClick_ResetsWhenOutsideTimeout(t *testing.T) {
	p := New(keymap.NewResolver())
	a := newTestAdapter()
	pt := core.Point{Line: 0, Col: 0}
	now := time.Unix(2000, 0)

	p.HandleClick(now, pt, a)
	p.HandleClick(now.Add(2*time.Second), pt, a)

	if got := a.Selection().Kind; got != core.SelectionSimple {
		t.Fatalf("expected click outside timeout to reset to Simple, got %v", got)
	}
}

func TestHandleClick_ResetsWhenAtDifferentCell(t *testing.T) {
	p := New(keymap.NewResolver())
	a := newTestAdapter()
	now := time.Unix(3000, 0)

	p.HandleClick(now, core.Point{Line: 0, Col: 0}, a)
	p.HandleClick(now.Add(10*time.Millisecond), core.Point{Line: 5, Col: 5}, a)

	if got := a.Selection().Kind; got != core.SelectionSimple {
		t.Fatalf("expected click at a different cell to reset to Simple, got %v", got)
	}
}

func TestHandleSelectionEnd_CopiesSelectedText(t *testing.T) {
	a := newTestAdapter()
	a.Write([]byte("hello world"))
	a.SetSelection(core.Selection{Kind: core.SelectionSimple, Start: core.Point{Line: 0, Col: 0}, End: core.Point{Line: 0, Col: 4}})

	p := New(keymap.NewResolver())
	text := p.HandleSelectionEnd(a)
	if text != "hello" {
		t.Fatalf("expected %q, got %q", "hello", text)
	}

	got, err := a.Clipboard().Load(clipboard.KindClipboard)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "hello" {
		t.Fatalf("expected clipboard to hold %q, got %q", "hello", got)
	}
}

func TestHandleSelectionEnd_NoSelectionCopiesNothing(t *testing.T) {
	a := newTestAdapter()
	p := New(keymap.NewResolver())
	if text := p.HandleSelectionEnd(a); text != "" {
		t.Fatalf("expected empty copy with no selection, got %q", text)
	}
}

func TestHandlePaste_WrapsInBracketedPasteMarkers(t *testing.T) {
	a := newTestAdapter()
	a.Write([]byte("\x1b[?2004h"))

	w := &recordingWriter{}
	p := New(keymap.NewResolver())
	if err := p.HandlePaste("pasted", a, w); err != nil {
		t.Fatalf("HandlePaste: %v", err)
	}
	want := "\x1b[200~pasted\x1b[201~"
	if string(w.written) != want {
		t.Fatalf("expected %q, got %q", want, w.written)
	}
}

func TestHandlePaste_PlainWithoutBracketedMode(t *testing.T) {
	a := newTestAdapter()
	w := &recordingWriter{}
	p := New(keymap.NewResolver())
	if err := p.HandlePaste("pasted", a, w); err != nil {
		t.Fatalf("HandlePaste: %v", err)
	}
	if string(w.written) != "pasted" {
		t.Fatalf("expected plain paste, got %q", w.written)
	}
}

func TestHandleKey_AppShortcutReturnsCommandInsteadOfWriting(t *testing.T) {
	a := newTestAdapter()
	w := &recordingWriter{}
	p := New(keymap.NewResolver())

	cmd, ok := p.HandleKey(core.WindowID(1), "t", keymap.ModCtrl|keymap.ModShift, a, w)
	if !ok {
		t.Fatalf("expected app shortcut to resolve")
	}
	if cmd.Kind != core.CmdCreateTab {
		t.Fatalf("expected CmdCreateTab, got %v", cmd.Kind)
	}
	if len(w.written) != 0 {
		t.Fatalf("expected no PTY bytes written for an app shortcut, got %q", w.written)
	}
}

func TestHandleKey_UnboundKeyWritesToPTY(t *testing.T) {
	a := newTestAdapter()
	w := &recordingWriter{}
	p := New(keymap.NewResolver())

	_, ok := p.HandleKey(core.WindowID(1), "a", 0, a, w)
	if ok {
		t.Fatalf("expected plain key to not resolve to a Command")
	}
	if string(w.written) != "a" {
		t.Fatalf("expected %q written to PTY, got %q", "a", w.written)
	}
}

type recordingWriter struct {
	written []byte
}

func (w *recordingWriter) Write(p []byte) error {
	w.written = append(w.written, p...)
	return nil
}
func (w *recordingWriter) Resize(size core.SizeInfo) error { return nil }
func (w *recordingWriter) Shutdown()                       {}
