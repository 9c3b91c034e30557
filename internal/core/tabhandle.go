// Package core implements the orchestration layer of the terminal: window
// and tab lifecycle, the command queue, PTY event fan-in, and the
// multiplexed-draw invariant. The terminal grid, VT parser, font
// rasterizer, and GPU pipeline are external collaborators reached only
// through the Terminal, Resizer, and Display interfaces (see interfaces.go).
package core

// WindowID identifies a WindowContext within a WindowRegistry.
type WindowID uint64

// TabID is a dense index into the owning window's TabCollection. It
// changes whenever tabs are reordered or removed — see TabCollection's
// renumbering rule.
type TabID int

// TabHandle is a weak, cheap-to-clone, cross-thread identifier for a tab.
// It must be re-resolved against the live TabCollection before use: after
// a close or reorder, a previously observed TabHandle's TabID may no
// longer name the tab it used to.
type TabHandle struct {
	WindowID WindowID
	TabID    TabID
}
