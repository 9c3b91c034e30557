package keymap

import (
	"testing"

	"github.com/glyphterm/glyph/internal/core"
)

func TestResolver_AppShortcutTakesPrecedence(t *testing.T) {
	r := NewResolver()
	cmd, ok, bytes := r.Resolve(1, "t", ModCtrl|ModShift, 0)
	if !ok {
		t.Fatalf("expected Ctrl+Shift+T to resolve to a Command")
	}
	if bytes != nil {
		t.Fatalf("expected no PTY bytes when a Command is produced")
	}
	if cmd.Kind != core.CmdCreateTab || cmd.Window != 1 {
		t.Fatalf("expected CreateTab(1), got %+v", cmd)
	}
}

func TestResolver_UnboundKeyFallsThroughToPTY(t *testing.T) {
	r := NewResolver()
	_, ok, bytes := r.Resolve(1, "a", 0, 0)
	if ok {
		t.Fatalf("expected 'a' with no modifiers to fall through to PTY bytes")
	}
	if string(bytes) != "a" {
		t.Fatalf("expected raw byte 'a', got %q", bytes)
	}
}

func TestEncode_CtrlLetterProducesControlByte(t *testing.T) {
	got := Encode("c", ModCtrl, 0)
	if len(got) != 1 || got[0] != 0x03 {
		t.Fatalf("expected Ctrl+C to encode as 0x03, got %v", got)
	}
}

func TestEncode_PlainKeyPassesThrough(t *testing.T) {
	got := Encode("x", 0, 0)
	if string(got) != "x" {
		t.Fatalf("expected plain key to pass through unchanged, got %q", got)
	}
}

func TestEncode_BracketedPasteModeUsesCSIu(t *testing.T) {
	got := Encode("a", ModCtrl, core.ModeBracketedPaste)
	if len(got) == 0 || got[0] != 0x1b {
		t.Fatalf("expected a CSI-u escape sequence, got %v", got)
	}
}
