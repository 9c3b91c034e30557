package core

import (
	"context"
	"testing"
)

func TestWindowRegistry_NewWindowDoesNotActivate(t *testing.T) {
	r := NewWindowRegistry(fakeWindowFactory)

	id, err := r.NewWindow()
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	if _, ok := r.ActiveID(); ok {
		t.Fatalf("NewWindow must not activate the created window")
	}
	if r.Get(id) == nil {
		t.Fatalf("expected window %d to be registered", id)
	}
}

func TestWindowRegistry_AtMostOneActive(t *testing.T) {
	r := NewWindowRegistry(fakeWindowFactory)
	a, _ := r.NewWindow()
	b, _ := r.NewWindow()

	r.Activate(a)
	r.Activate(b)

	id, ok := r.ActiveID()
	if !ok || id != b {
		t.Fatalf("expected window %d active, got %d (ok=%v)", b, id, ok)
	}

	r.Deactivate(a) // deactivating a non-active window is a no-op
	if _, ok := r.ActiveID(); !ok {
		t.Fatalf("Deactivate(a) must not clear the active window when b is active")
	}

	r.Deactivate(b)
	if _, ok := r.ActiveID(); ok {
		t.Fatalf("expected no active window after deactivating the active one")
	}
}

func TestWindowRegistry_CloseWindowClosesAllTabs(t *testing.T) {
	r := NewWindowRegistry(fakeWindowFactory)
	id, _ := r.NewWindow()
	win := r.Get(id)

	if _, err := win.Tabs.AddTab(newTestSize()); err != nil {
		t.Fatalf("AddTab: %v", err)
	}
	tabs := win.Tabs.Snapshot()
	writers := make([]*fakeWriter, len(tabs))
	for i, tab := range tabs {
		writers[i] = tab.Writer.(*fakeWriter)
	}

	r.Activate(id)
	r.CloseWindow(id)

	if r.Get(id) != nil {
		t.Fatalf("expected window removed from registry")
	}
	if _, ok := r.ActiveID(); ok {
		t.Fatalf("expected active window cleared after closing it")
	}
	for i, w := range writers {
		if !w.shutdown {
			t.Fatalf("expected tab %d writer shut down", i)
		}
	}
}

func TestWindowRegistry_All(t *testing.T) {
	r := NewWindowRegistry(fakeWindowFactory)
	a, _ := r.NewWindow()
	b, _ := r.NewWindow()

	all := r.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(all))
	}
	seen := map[WindowID]bool{}
	for _, w := range all {
		seen[w.ID] = true
	}
	if !seen[a] || !seen[b] {
		t.Fatalf("expected All() to include both windows, got %+v", seen)
	}
}

func TestWindowRegistry_Shutdown(t *testing.T) {
	r := NewWindowRegistry(fakeWindowFactory)
	for i := 0; i < 3; i++ {
		if _, err := r.NewWindow(); err != nil {
			t.Fatalf("NewWindow: %v", err)
		}
	}

	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected all windows closed, got %d remaining", r.Len())
	}
}
