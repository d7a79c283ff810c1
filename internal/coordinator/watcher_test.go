package coordinator

import (
	"testing"
	"time"

	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
)

func TestDragDeferralAndDropFocus(t *testing.T) {
	// A window is dragged from display 1 to display 2 and released.
	// Nothing fires during the drag; 100ms after release drag-end runs and,
	// after the settle delay, focuses the drop target under the cursor.
	c, env, clk := newTestCoordinator()

	dragged := win(10, 1)
	dragged.Bounds = model.Bounds{X: 2200, Y: 100, Width: 600, Height: 400}
	other := win(20, 2)
	env.windows = []model.Window{dragged, other}
	startOnDisplay1(t, c, env)

	// Mouse-down on the title bar, then drag across the boundary.
	env.sendInput(platform.EventLeftDown, model.Point{X: 500, Y: 100}, clk.Now())
	clk.advance(500 * time.Millisecond) // clear of the click cooldown
	env.sendInput(platform.EventLeftDrag, model.Point{X: 1000, Y: 100}, clk.Now())
	env.sendInput(platform.EventLeftDrag, model.Point{X: 2000, Y: 150}, clk.Now())
	env.sendInput(platform.EventLeftDrag, model.Point{X: 2500, Y: 200}, clk.Now())

	if !c.dragActive {
		t.Fatal("dragActive must be set during a drag")
	}
	if c.lastDisplay.ID != 2 {
		t.Fatalf("the display crossing is still tracked during a drag, got %d", c.lastDisplay.ID)
	}

	clk.advance(time.Second)
	if len(env.raised) != 0 {
		t.Fatalf("no activation may fire while the drag is active, got %v", env.raised)
	}

	// Release. The dragged window now lives on display 2 under the cursor.
	env.windows[0].DisplayID = 2
	env.sendInput(platform.EventLeftUp, model.Point{X: 2500, Y: 200}, clk.Now())

	clk.advance(100 * time.Millisecond) // button-up delay → drag-end
	if c.dragActive {
		t.Fatal("dragActive must clear at drag-end")
	}
	if len(env.raised) != 0 {
		t.Fatalf("drag-end must wait for the settle delay, got %v", env.raised)
	}

	clk.advance(250 * time.Millisecond) // settle delay
	if len(env.raised) != 1 || env.raised[0] != 10 {
		t.Fatalf("the dropped window must be focused with cursor priority, got %v", env.raised)
	}
}

func TestPlainClickDoesNotActivate(t *testing.T) {
	c, env, clk := newTestCoordinator()
	env.windows = []model.Window{win(10, 1)}
	startOnDisplay1(t, c, env)

	env.sendInput(platform.EventLeftDown, model.Point{X: 100, Y: 100}, clk.Now())
	clk.advance(50 * time.Millisecond)
	env.sendInput(platform.EventLeftUp, model.Point{X: 100, Y: 100}, clk.Now())
	clk.advance(2 * time.Second)

	// Poll will also run here; everything stays on display 1.
	if len(env.raised) != 0 {
		t.Fatalf("a click without drag must not trigger any activation, got %v", env.raised)
	}
}

func TestDragEndSupersedesPendingDebounce(t *testing.T) {
	// Only one activation may be pending at a time: a drag-end schedules
	// its cursor-priority activation and cancels a pending debounce.
	c, env, clk := newTestCoordinator()
	target := win(20, 2)
	target.Bounds = model.Bounds{X: 2400, Y: 100, Width: 600, Height: 400}
	env.windows = []model.Window{target}
	startOnDisplay1(t, c, env)

	env.sendInput(platform.EventLeftDrag, model.Point{X: 2500, Y: 200}, clk.Now())
	env.sendInput(platform.EventLeftUp, model.Point{X: 2500, Y: 200}, clk.Now())
	clk.advance(100 * time.Millisecond) // drag-end schedules the settle timer
	clk.advance(250 * time.Millisecond)

	if len(env.raised) != 1 {
		t.Fatalf("exactly one activation expected, got %v", env.raised)
	}
}

func TestRightButtonDragBehavesLikeLeft(t *testing.T) {
	c, env, clk := newTestCoordinator()
	target := win(20, 2)
	target.Bounds = model.Bounds{X: 2400, Y: 100, Width: 600, Height: 400}
	env.windows = []model.Window{target}
	startOnDisplay1(t, c, env)

	env.sendInput(platform.EventRightDrag, model.Point{X: 2500, Y: 200}, clk.Now())
	if !c.dragActive {
		t.Fatal("right drags must mark dragActive")
	}
	env.sendInput(platform.EventRightUp, model.Point{X: 2500, Y: 200}, clk.Now())
	clk.advance(400 * time.Millisecond)

	if len(env.raised) != 1 || env.raised[0] != 20 {
		t.Fatalf("right-drag drop should focus the drop target, got %v", env.raised)
	}
}
