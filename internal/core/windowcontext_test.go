package core

import "testing"

// TestWindowContext_ResizeOnlyAffectsActiveTab covers spec §4.3: a
// window resize propagates only to the active Tab's Terminal/PTY, not
// every tab in the TabCollection.
func TestWindowContext_ResizeOnlyAffectsActiveTab(t *testing.T) {
	win, err := NewWindowContext(1, fakeTabFactory, &fakeDisplay{})
	if err != nil {
		t.Fatalf("NewWindowContext: %v", err)
	}
	if _, err := win.Tabs.AddTab(newTestSize()); err != nil {
		t.Fatalf("AddTab: %v", err)
	}
	win.Tabs.ActivateTab(0) // tab 0 (the bootstrap tab) is active

	background := win.Tabs.Tab(1).Terminal.(*fakeTerminal)
	beforeBackground := background.size

	resized := SizeInfo{Width: 1200, Height: 900, CellWidth: 8, CellHeight: 16, DPR: 1}
	win.Resize(resized)

	active := win.Tabs.Tab(0).Terminal.(*fakeTerminal)
	if active.size != resized {
		t.Errorf("expected active tab's Terminal to receive the new size, got %+v", active.size)
	}
	if background.size != beforeBackground {
		t.Errorf("expected background tab's Terminal size unchanged, got %+v, want %+v", background.size, beforeBackground)
	}
}
