package coordinator

import (
	"sync"
	"testing"
	"time"

	"github.com/mj1618/focusd/internal/config"
	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
)

func TestStartWiresEnvironment(t *testing.T) {
	c, env, _ := newTestCoordinator()
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	if !env.tapRunning || !env.screenWatching || !env.focusWatching {
		t.Fatalf("all watchers must be running: tap=%v screen=%v focus=%v",
			env.tapRunning, env.screenWatching, env.focusWatching)
	}
	for _, combo := range []string{"ctrl+alt+cmd+f", "ctrl+alt+cmd+r", "ctrl+alt+cmd+d", "ctrl+alt+cmd+x"} {
		if env.hotkeys[combo] == nil {
			t.Fatalf("hotkey %q not registered", combo)
		}
	}
	if st := c.Status(); !st.Enabled || st.State != "running" {
		t.Fatalf("unexpected status after start: %+v", st)
	}

	if err := c.Start(); err == nil {
		t.Fatal("double start must fail")
	}
}

func TestDisableCancelsPendingActivation(t *testing.T) {
	c, env, clk := newTestCoordinator()
	env.windows = []model.Window{win(20, 2)}
	startOnDisplay1(t, c, env)
	c.memory.Remember(1, win(10, 1))

	env.sendInput(platform.EventMove, model.Point{X: 2500, Y: 100}, clk.Now())
	c.Disable()
	clk.advance(5 * time.Second)

	if len(env.raised) != 0 {
		t.Fatalf("a pending activation must die with Disable, got %v", env.raised)
	}
	if env.tapRunning || env.screenWatching {
		t.Fatal("event tap and screen watcher must stop on Disable")
	}
	if c.memory.Len() != 1 {
		t.Fatalf("focus memory must survive Disable, got %d entries", c.memory.Len())
	}

	// Events delivered after Disable are ignored even if the backend
	// still flushes a stale callback.
	c.handleInput(platform.InputEvent{Kind: platform.EventMove, Pos: model.Point{X: 2600, Y: 100}})
	clk.advance(5 * time.Second)
	if len(env.raised) != 0 {
		t.Fatalf("stale callbacks must be ignored while disabled, got %v", env.raised)
	}
}

func TestDisableWithInputCallbackInFlight(t *testing.T) {
	// The tap delivers events from its own thread and its shutdown waits
	// for an in-flight callback to return. An event arriving just as the
	// toggle hotkey disables the coordinator must not deadlock: the
	// callback needs the coordinator lock, so Disable cannot hold it while
	// waiting on the tap.
	c, env, _ := newTestCoordinator()
	startOnDisplay1(t, c, env)

	var pending sync.WaitGroup
	pending.Add(1)
	env.tapStopWait = pending.Wait
	go func() {
		defer pending.Done()
		c.handleInput(platform.InputEvent{Kind: platform.EventMove, Pos: model.Point{X: 2500, Y: 100}})
	}()

	done := make(chan struct{})
	go func() {
		c.Disable()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Disable deadlocked against an in-flight input event")
	}
	if env.tapRunning {
		t.Fatal("event tap must be stopped")
	}
	if st := c.Status(); st.State != "disabled" {
		t.Fatalf("expected disabled state, got %s", st.State)
	}
}

func TestEnableResumesAfterDisable(t *testing.T) {
	c, env, clk := newTestCoordinator()
	w := win(20, 2)
	env.windows = []model.Window{w}
	startOnDisplay1(t, c, env)

	c.Disable()
	c.Enable()

	if !env.tapRunning || !env.screenWatching {
		t.Fatal("watchers must restart on Enable")
	}
	env.sendInput(platform.EventMove, model.Point{X: 2500, Y: 100}, clk.Now())
	clk.advance(100 * time.Millisecond)
	if len(env.raised) != 1 || env.raised[0] != 20 {
		t.Fatalf("coordinator must work again after Enable, got %v", env.raised)
	}
}

func TestToggleHotkey(t *testing.T) {
	c, env, _ := newTestCoordinator()
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	env.hotkeys["ctrl+alt+cmd+f"]()
	if st := c.Status(); st.State != "disabled" {
		t.Fatalf("toggle should disable, state %s", st.State)
	}
	env.hotkeys["ctrl+alt+cmd+f"]()
	if st := c.Status(); st.State != "running" {
		t.Fatalf("toggle should re-enable, state %s", st.State)
	}
}

func TestReloadClearsStateAndRestarts(t *testing.T) {
	c, env, _ := newTestCoordinator()
	startOnDisplay1(t, c, env)
	c.memory.Remember(2, win(20, 2))

	if err := c.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c.memory.Len() != 0 {
		t.Fatalf("reload must clear focus memory, got %d entries", c.memory.Len())
	}
	if st := c.Status(); st.State != "running" || st.LastDisplay != 0 {
		t.Fatalf("reload must restart from scratch, status %+v", st)
	}
	if !env.tapRunning {
		t.Fatal("event tap must run after reload")
	}
}

func TestClearMemoryHotkey(t *testing.T) {
	c, env, _ := newTestCoordinator()
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.memory.Remember(1, win(10, 1))
	c.memory.Remember(2, win(20, 2))

	env.hotkeys["ctrl+alt+cmd+x"]()
	if c.memory.Len() != 0 {
		t.Fatalf("clear-memory hotkey must empty the memory, got %d", c.memory.Len())
	}
}

func TestDebugDumpIsReadOnly(t *testing.T) {
	c, env, clk := newTestCoordinator()
	startOnDisplay1(t, c, env)
	c.memory.Remember(2, win(20, 2))
	env.pos = model.Point{X: 100, Y: 100}
	alertsBefore := len(env.alerts)

	env.hotkeys["ctrl+alt+cmd+d"]()

	st := c.Status()
	if st.MemoryEntries != 1 || st.DragActive || st.LastDisplay != 1 || st.CurrentDisplay != 1 {
		t.Fatalf("unexpected status: %+v", st)
	}
	if len(env.alerts) != alertsBefore+1 {
		t.Fatal("debug dump should surface an alert")
	}
	clk.advance(10 * time.Second)
	if got := c.Status(); got.MemoryEntries != 1 {
		t.Fatalf("debug dump must not mutate state, got %+v", got)
	}
}

func TestStopTearsEverythingDown(t *testing.T) {
	c, env, clk := newTestCoordinator()
	env.windows = []model.Window{win(20, 2)}
	startOnDisplay1(t, c, env)
	env.sendInput(platform.EventMove, model.Point{X: 2500, Y: 100}, clk.Now())

	c.Stop()

	if env.tapRunning || env.screenWatching || env.focusWatching {
		t.Fatal("all watchers must stop")
	}
	if len(env.hotkeys) != 0 {
		t.Fatalf("hotkeys must be unregistered, got %v", env.hotkeys)
	}
	clk.advance(time.Minute)
	if len(env.raised) != 0 {
		t.Fatalf("no timer may fire after Stop, got %v", env.raised)
	}
}

func TestHandlerPanicIsIsolated(t *testing.T) {
	c, env, clk := newTestCoordinator()
	w := win(20, 2)
	env.windows = []model.Window{w}
	startOnDisplay1(t, c, env)

	env.panicList = true
	env.sendInput(platform.EventMove, model.Point{X: 2500, Y: 100}, clk.Now())
	clk.advance(100 * time.Millisecond) // activation panics inside ListWindows

	// The coordinator must keep working after the fault.
	env.panicList = false
	env.sendInput(platform.EventMove, model.Point{X: 100, Y: 100}, clk.Now())
	clk.advance(100 * time.Millisecond)
	env.sendInput(platform.EventMove, model.Point{X: 2500, Y: 100}, clk.Now())
	clk.advance(100 * time.Millisecond)

	if len(env.raised) != 1 || env.raised[0] != 20 {
		t.Fatalf("handlers must survive a panic in a previous callback, got %v", env.raised)
	}
}

func TestAlertsCanBeDisabled(t *testing.T) {
	c, env, _ := newTestCoordinator(func(cfg *config.Config) {
		off := false
		cfg.Focus.Alerts = &off
	})
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	c.ClearMemory()
	if len(env.alerts) != 0 {
		t.Fatalf("alerts are disabled, got %v", env.alerts)
	}
}

func TestApplyConfigReboundsMemory(t *testing.T) {
	c, _, _ := newTestCoordinator()
	for i := 1; i <= 5; i++ {
		c.memory.Remember(i, win(i*10, i))
	}

	cfg := config.Default()
	cfg.Focus.MemoryCapacity = 2
	c.ApplyConfig(cfg)

	if c.memory.Len() != 2 {
		t.Fatalf("memory must shrink to the new bound, got %d", c.memory.Len())
	}
}
