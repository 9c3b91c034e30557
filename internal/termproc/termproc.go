// Package termproc implements the per-window TerminalProcessor (spec
// §4.4): keyboard, mouse, scroll, clipboard, and selection handling for
// the Tab currently active in a window. It is the consumer-side
// counterpart to internal/keymap's Resolver. It has no link to
// internal/core.TabBarProcessor: whoever feeds it pointer events decides
// which of the two receives a click inside the tab strip.
package termproc

import (
	"sync"
	"time"

	"github.com/glyphterm/glyph/internal/clipboard"
	"github.com/glyphterm/glyph/internal/core"
	"github.com/glyphterm/glyph/internal/keymap"
)

// clickTimeout bounds how long after a click a second click at the same
// cell escalates the selection kind instead of starting a fresh one
// (spec §4.4 "Double/triple click within the click timeout upgrades the
// state").
const clickTimeout = 500 * time.Millisecond

// TextSource is an optional capability a Terminal implementation can
// provide so HandleSelectionEnd can copy the actual selected text
// instead of just clearing selection state. internal/term.Adapter
// implements it.
type TextSource interface {
	SelectedText(sel core.Selection) string
}

// Processor holds one window's click-escalation state across events. It
// is not safe to share between windows, so each window needs its own;
// core.WindowContext does not hold one.
type Processor struct {
	resolver *keymap.Resolver

	mu           sync.Mutex
	lastClickAt  time.Time
	lastClickPos core.Point
	clickCount   int
}

// New constructs a Processor bound to resolver, the app-level keyboard
// shortcut table (spec §4.4 keyboard dispatch consults internal/keymap
// before falling back to PTY bytes).
func New(resolver *keymap.Resolver) *Processor {
	return &Processor{resolver: resolver}
}

// HandleKey resolves a keypress into either an app-level Command (the
// caller should push it to the CommandQueue) or raw bytes written
// directly to the PTY, matching spec §4.4 "resolve key + modifiers +
// current mode into bytes to write to the PTY".
func (p *Processor) HandleKey(window core.WindowID, key string, mods keymap.Modifiers, terminal core.Terminal, writer core.PTYWriter) (core.Command, bool) {
	cmd, ok, bytes := p.resolver.Resolve(window, key, mods, terminal.Mode())
	if ok {
		return cmd, true
	}
	if len(bytes) > 0 && writer != nil {
		_ = writer.Write(bytes)
	}
	return core.Command{}, false
}

// HandleClick processes a left-button press at cell pt at time now,
// escalating Click → DoubleClick (semantic) → TripleClick (lines) when
// consecutive clicks land on the same cell within clickTimeout, and
// resetting to a simple selection otherwise (spec §4.4 selection state
// machine).
func (p *Processor) HandleClick(now time.Time, pt core.Point, terminal core.Terminal) {
	p.mu.Lock()
	sameSpot := !p.lastClickAt.IsZero() && now.Sub(p.lastClickAt) <= clickTimeout && pt == p.lastClickPos
	if sameSpot {
		p.clickCount++
		if p.clickCount > 3 {
			p.clickCount = 1
		}
	} else {
		p.clickCount = 1
	}
	p.lastClickAt = now
	p.lastClickPos = pt
	count := p.clickCount
	p.mu.Unlock()

	kind := core.SelectionSimple
	switch count {
	case 2:
		kind = core.SelectionSemantic
	case 3:
		kind = core.SelectionLines
	}
	terminal.SetSelection(core.Selection{Kind: kind, Start: pt, End: pt})
}

// HandleDrag extends an in-progress selection to pt while the left
// button remains held. It is a no-op if no selection is active.
func (p *Processor) HandleDrag(pt core.Point, terminal core.Terminal) {
	sel := terminal.Selection()
	if sel.Kind == core.SelectionNone {
		return
	}
	sel.End = pt
	terminal.SetSelection(sel)
}

// HandleScroll implements spec §4.4 "scroll_display(lines) on the
// terminal; while left button is held, extend selection to the new
// cell."
func (p *Processor) HandleScroll(lines int, leftHeld bool, pt core.Point, terminal core.Terminal) {
	terminal.ScrollDisplay(lines)
	if leftHeld {
		p.HandleDrag(pt, terminal)
	}
}

// HandleSelectionEnd copies a completed selection to the clipboard (spec
// §4.4 "copy-on-selection when selection ends") and returns the copied
// text, which is empty if there was no selection or the Terminal cannot
// produce selected text.
func (p *Processor) HandleSelectionEnd(terminal core.Terminal) string {
	sel := terminal.Selection()
	if sel.Kind == core.SelectionNone {
		return ""
	}
	src, ok := terminal.(TextSource)
	if !ok {
		return ""
	}
	text := src.SelectedText(sel)
	if text != "" {
		_ = terminal.Clipboard().Store(clipboard.KindClipboard, text)
	}
	return text
}

// HandlePaste writes text to the PTY, wrapping it in bracketed-paste
// markers when the terminal's mode has requested them (spec §4.4 "paste
// by writing raw bytes to PTY").
func (p *Processor) HandlePaste(text string, terminal core.Terminal, writer core.PTYWriter) error {
	if writer == nil {
		return nil
	}
	if terminal.Mode().Intersects(core.ModeBracketedPaste) {
		text = "\x1b[200~" + text + "\x1b[201~"
	}
	return writer.Write([]byte(text))
}

// HandleDroppedFile writes a dropped file's path, as UTF-8 bytes, to the
// PTY (spec §4.4 "Dropped-file").
func (p *Processor) HandleDroppedFile(path string, writer core.PTYWriter) error {
	if writer == nil {
		return nil
	}
	return writer.Write([]byte(path))
}
