// Package keymap resolves a decoded key event, its modifiers, and the
// addressed Terminal's current mode into either an app-level Command or
// raw bytes to write to the PTY (spec §4.4 TerminalProcessor input
// dispatch: "keyboard events consult the terminal's mode before
// deciding whether to intercept or forward").
package keymap

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/glyphterm/glyph/internal/core"
)

// Modifiers mirrors tea.KeyMod but is kept as our own type so the
// resolver's signature does not leak a bubbletea type into internal/core.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

func FromTeaMod(m tea.KeyMod) Modifiers {
	var out Modifiers
	if m&tea.ModShift != 0 {
		out |= ModShift
	}
	if m&tea.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tea.ModCtrl != 0 {
		out |= ModCtrl
	}
	return out
}

// Binding is one configured app-level shortcut (spec SPEC_FULL.md
// Keymap domain stack entry).
type Binding struct {
	Key  string
	Mods Modifiers
	Cmd  func(w core.WindowID) core.Command
}

// Resolver holds the configured app-level bindings and falls back to PTY
// byte encoding for everything else.
type Resolver struct {
	bindings []Binding
}

// NewResolver builds a Resolver with glyph's fixed set of chrome
// shortcuts: Ctrl+Shift+T creates a tab and Ctrl+Shift+W closes the
// current one (spec §4.2's create_tab/close_tab operations). There are no
// bindings for switching to the next or previous tab.
func NewResolver() *Resolver {
	return &Resolver{bindings: []Binding{
		{Key: "t", Mods: ModCtrl | ModShift, Cmd: core.CreateTab},
		{Key: "w", Mods: ModCtrl | ModShift, Cmd: core.CloseCurrentTab},
	}}
}

// Resolve decides what a keypress means for the given window and
// terminal mode. It returns (cmd, true, nil) for an app-level shortcut,
// or (zero, false, bytes) when the key should be written to the PTY
// (spec §4.4: "bracketed paste and CSI-u encoded keys are forwarded
// verbatim when the terminal has requested them").
func (r *Resolver) Resolve(window core.WindowID, key string, mods Modifiers, mode core.TerminalMode) (core.Command, bool, []byte) {
	for _, b := range r.bindings {
		if b.Key == key && b.Mods == mods {
			return b.Cmd(window), true, nil
		}
	}
	return core.Command{}, false, Encode(key, mods, mode)
}

// Encode turns a key and its modifiers into PTY bytes. Plain keys with
// no modifiers pass through unchanged; modified keys use the CSI-u
// ("modifyOtherKeys"/kitty keyboard protocol) form when the terminal has
// asked for extended key reporting (bracketed paste / kitty mode),
// falling back to the classic Ctrl/Alt byte mangling otherwise — no pack
// example implements CSI-u, so this is a direct, hand-written transcoder
// of the published xterm protocol (see DESIGN.md).
func Encode(key string, mods Modifiers, mode core.TerminalMode) []byte {
	runes := []rune(key)
	if len(runes) != 1 {
		return []byte(key) // named keys (Enter, Tab, arrows) handled by the caller's termproc table
	}
	r := runes[0]

	if mods == 0 {
		return []byte(string(r))
	}

	if mode.Intersects(core.ModeBracketedPaste) {
		return []byte(fmt.Sprintf("\x1b[%d;%du", r, int(mods)+1))
	}

	if mods&ModCtrl != 0 && r >= 'a' && r <= 'z' {
		return []byte{byte(r - 'a' + 1)}
	}
	if mods&ModAlt != 0 {
		return append([]byte{0x1b}, []byte(string(r))...)
	}
	return []byte(string(r))
}
