package core

import "testing"

// TestTabBar_HitTest exercises scenario S5: 2 tabs, tab_bar_height = 24,
// window width 800.
func TestTabBar_HitTest(t *testing.T) {
	p := NewTabBarProcessor()
	p.SetGeometry(800, 24)
	state := p.Layout([]*Tab{{Handle: TabHandle{TabID: 0}}, {Handle: TabHandle{TabID: 1}}}, 0)

	if got := state.HitTest(401, 10); got != 1 {
		t.Errorf("HitTest(401,10) = %d, want 1", got)
	}
	if got := state.HitTest(399, 10); got != 0 {
		t.Errorf("HitTest(399,10) = %d, want 0", got)
	}
	if got := state.HitTest(401, 60); got != -1 {
		t.Errorf("HitTest(401,60) = %d, want -1 (outside bar)", got)
	}
}

// TestTabBar_SingleTabBarIsInvisible covers the tab count ≤ 1 passthrough
// (spec §4.7, §9 Open Question (b)): Layout produces no TabGeometry, so
// every pointer position misses.
func TestTabBar_SingleTabBarIsInvisible(t *testing.T) {
	p := NewTabBarProcessor()
	p.SetGeometry(800, 24)

	for _, tabs := range [][]*Tab{nil, {{Handle: TabHandle{TabID: 0}}}} {
		state := p.Layout(tabs, 0)
		if len(state.Tabs) != 0 {
			t.Errorf("len(tabs)=%d: expected no TabGeometry, got %d", len(tabs), len(state.Tabs))
		}
		if got := state.HitTest(400, 10); got != -1 {
			t.Errorf("len(tabs)=%d: HitTest = %d, want -1 (bar invisible)", len(tabs), got)
		}
		if _, ok := state.HitTestClose(400, 10); ok {
			t.Errorf("len(tabs)=%d: HitTestClose hit, want no hit (bar invisible)", len(tabs))
		}
	}
}

// TestTabBar_HitTestFormula checks property 8 directly: hit_test(x,y) =
// floor(x*N/window_width) for y < H, across a spread of N and widths.
// The bar is only visible from 2 tabs up (spec §4.7 tab count ≤ 1
// passthrough), so N starts at 2.
func TestTabBar_HitTestFormula(t *testing.T) {
	widths := []float64{800, 333, 1920}
	counts := []int{2, 3, 7}

	for _, width := range widths {
		for _, n := range counts {
			p := NewTabBarProcessor()
			p.SetGeometry(width, 24)
			tabs := make([]*Tab, n)
			for i := range tabs {
				tabs[i] = &Tab{Handle: TabHandle{TabID: TabID(i)}}
			}
			state := p.Layout(tabs, 0)

			for _, x := range []float64{0, width * 0.1, width * 0.5, width * 0.9, width - 1} {
				want := int(x * float64(n) / width)
				if want >= n {
					want = n - 1
				}
				got := state.HitTest(x, 10)
				if int(got) != want {
					t.Errorf("width=%v n=%d x=%v: HitTest=%d, want %d", width, n, x, got, want)
				}
			}
		}
	}
}

// TestTabBar_DragDetachThreshold exercises property 9: detached = dy >
// 1.5*H, with an exact boundary on both sides.
func TestTabBar_DragDetachThreshold(t *testing.T) {
	const h = 24.0
	const eps = 0.01

	p := NewTabBarProcessor()
	p.SetGeometry(300, h)
	p.PointerDown(0, 50, 10)
	p.PointerMove(50, 10+1.5*h+eps, 1) // push past the threshold

	if p.drag.Phase != DragDetached {
		t.Errorf("expected DragDetached at dy = 1.5*H+eps, got phase %v", p.drag.Phase)
	}

	p2 := NewTabBarProcessor()
	p2.SetGeometry(300, h)
	p2.PointerDown(0, 50, 10)
	p2.PointerMove(50, 10+1.5*h-eps, 1)

	if p2.drag.Phase != DragDragging {
		t.Errorf("expected DragDragging at dy = 1.5*H-eps, got phase %v", p2.drag.Phase)
	}
}

// TestTabBar_DragDropProducesMoveTab exercises scenario S4: 3 tabs, press
// at tab 0's center, drag by 1.5 tab widths horizontally, release.
func TestTabBar_DragDropProducesMoveTab(t *testing.T) {
	const width = 300.0
	p := NewTabBarProcessor()
	p.SetGeometry(width, 24)
	tabWidth := width / 3

	p.PointerDown(0, tabWidth/2, 10)
	p.PointerMove(tabWidth/2+1.5*tabWidth, 10, 3)

	cmd, ok := p.PointerUp(WindowID(1))
	if !ok {
		t.Fatalf("expected a Command from PointerUp")
	}
	if cmd.Kind != CmdMoveTab || cmd.From != 0 || cmd.To != 2 {
		t.Errorf("expected MoveTab(w,0,2), got %+v", cmd)
	}
}

// TestTabBar_DropWhileDetachedCreatesWindow covers the resolved Open
// Question (a): a tab dropped while detached spawns a new window rather
// than transferring the existing Tab (see DESIGN.md).
func TestTabBar_DropWhileDetachedCreatesWindow(t *testing.T) {
	const h = 24.0
	p := NewTabBarProcessor()
	p.SetGeometry(300, h)
	p.PointerDown(0, 50, 10)
	p.PointerMove(50, 10+2*h, 1)

	cmd, ok := p.PointerUp(WindowID(1))
	if !ok {
		t.Fatalf("expected a Command from PointerUp")
	}
	if cmd.Kind != CmdNewWindow {
		t.Errorf("expected NewWindow as the detach-drop command, got %+v", cmd)
	}
}

// TestTabBar_EllipsisIdempotence covers property 10.
func TestTabBar_EllipsisIdempotence(t *testing.T) {
	short := "tab"
	if got := ellipsize(short, 200); got != short {
		t.Errorf("ellipsize(%q, 200) = %q, want unchanged", short, got)
	}

	// Applying it twice to an already-fitting result must be a fixed
	// point.
	once := ellipsize("a reasonably long terminal tab title", 60)
	twice := ellipsize(once, 60)
	if once != twice {
		t.Errorf("ellipsize is not idempotent: %q then %q", once, twice)
	}
}
