// Package display implements the Display/Renderer external contract
// from spec §6 with a software stand-in: it composites the active tab's
// terminal grid and the tab bar into a single ANSI string instead of
// driving a real GPU shader pipeline, playing the same role a
// Canvas-style compositor plays for a TUI's panes. The real
// glyph-atlas/shader pipeline is the external collaborator spec §1
// explicitly puts out of scope; SoftwareDisplay is what exercises the
// Display interface end to end without one.
package display

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/glyphterm/glyph/internal/core"
	"github.com/glyphterm/glyph/internal/gpucontext"
	"github.com/glyphterm/glyph/internal/term"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	inactiveTabStyle = lipgloss.NewStyle().Faint(true)
)

// SoftwareDisplay renders a window's active tab and tab bar to a string
// buffer, guarded by a gpucontext.Tracker so MakeCurrent/Release honor
// the same single-thread invariant a real GPU context would enforce.
type SoftwareDisplay struct {
	ctx gpucontext.Tracker

	mu     sync.Mutex
	width  int
	height int
	frame  string
	frames int
}

func NewSoftwareDisplay() *SoftwareDisplay {
	return &SoftwareDisplay{}
}

func (d *SoftwareDisplay) MakeCurrent() error { return d.ctx.MakeCurrent() }
func (d *SoftwareDisplay) Release()           { d.ctx.Release() }

func (d *SoftwareDisplay) Resize(size core.SizeInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width = int(size.Cols())
	d.height = int(size.Lines())
}

// Draw composites the tab bar above the active tab's rendered terminal
// grid. It only ever reads the active Tab's Terminal (spec §4.9
// "multiplexed drawing: render only the active tab"), so an inactive
// window's other tabs never pay a render cost. With at most one tab the
// bar is invisible (spec §4.7, §9 Open Question (b)) and Draw emits the
// terminal grid alone, with no bar line occupying a row above it.
func (d *SoftwareDisplay) Draw(active *core.Tab, bar core.TabBarState) {
	var body string
	if active != nil {
		if adapter, ok := active.Terminal.(*term.Adapter); ok {
			body = adapter.Render()
		}
	}

	frame := body
	if len(bar.Tabs) > 1 {
		var barLine strings.Builder
		for _, g := range bar.Tabs {
			if g.Tab == bar.ActiveTab {
				barLine.WriteString(activeTabStyle.Render(" " + g.Title + " "))
			} else {
				barLine.WriteString(inactiveTabStyle.Render(" " + g.Title + " "))
			}
		}
		rendered := barLine.String()
		if d.width > 0 && lipgloss.Width(rendered) > d.width {
			rendered = runewidth.Truncate(rendered, d.width, "")
		}
		frame = rendered + "\n" + body
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame = frame
	d.frames++
}

// Frame returns the most recently drawn frame, for tests and for a
// future real terminal-mode renderer to blit.
func (d *SoftwareDisplay) Frame() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// FrameCount reports how many times Draw has run, letting tests assert
// on the multiplexed-drawing invariant (spec §8 scenario S6) without
// depending on wall-clock timing.
func (d *SoftwareDisplay) FrameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

var _ core.Display = (*SoftwareDisplay)(nil)
