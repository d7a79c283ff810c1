package coordinator

import (
	"fmt"
	"time"

	"github.com/mj1618/focusd/internal/config"
	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
)

// fakeClock drives timers deterministically. advance fires due timers in
// deadline order, so tests control exactly when debounce and poll callbacks
// run. Timers scheduled from within a firing callback (e.g. the poll
// re-arm) are picked up in the same advance if they come due.
type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	deadline time.Time
	fn       func()
	stopped  bool
	fired    bool
}

func (t *fakeTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{deadline: c.now.Add(d), fn: fn}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.fired || t.stopped || t.deadline.After(target) {
				continue
			}
			if next == nil || t.deadline.Before(next.deadline) {
				next = t
			}
		}
		if next == nil {
			break
		}
		c.now = next.deadline
		next.fired = true
		next.fn()
	}
	c.now = target
}

// fakeEnv implements every platform interface over in-memory state.
type fakeEnv struct {
	pos      model.Point
	posErr   error
	displays []model.Display

	windows   []model.Window // front-to-back
	focused   *model.Window
	listErr   error
	panicList bool
	raiseErr  map[int]error
	raised    []int

	alerts []string

	inputFn  func(platform.InputEvent)
	screenFn func()
	focusFn  func(model.Window)
	hotkeys  map[string]func()

	tapRunning     bool
	screenWatching bool
	focusWatching  bool

	// Invoked by the tap's Stop before it completes, mirroring the real
	// tap's wait for in-flight callbacks to return.
	tapStopWait func()
}

func newFakeEnv() *fakeEnv {
	return &fakeEnv{
		displays: []model.Display{
			{ID: 1, Bounds: model.Bounds{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true},
			{ID: 2, Bounds: model.Bounds{X: 1921, Y: 0, Width: 1920, Height: 1080}},
		},
		raiseErr: make(map[int]error),
		hotkeys:  make(map[string]func()),
	}
}

func (f *fakeEnv) provider() *platform.Provider {
	return &platform.Provider{
		Pointer:       f,
		Screens:       f,
		WindowManager: f,
		EventTap:      f,
		Hotkeys:       f,
		Notifier:      f,
	}
}

// Pointer

func (f *fakeEnv) Position() (model.Point, error) {
	if f.posErr != nil {
		return model.Point{}, f.posErr
	}
	return f.pos, nil
}

// Screens

func (f *fakeEnv) ListDisplays() ([]model.Display, error) {
	return f.displays, nil
}

func (f *fakeEnv) DisplayAt(p model.Point) (*model.Display, error) {
	for i := range f.displays {
		if f.displays[i].Bounds.Contains(p) {
			d := f.displays[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeEnv) WatchChanges(fn func()) error {
	f.screenFn = fn
	f.screenWatching = true
	return nil
}

func (f *fakeEnv) StopWatching() {
	f.screenFn = nil
	f.screenWatching = false
}

// WindowManager

func (f *fakeEnv) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	if f.panicList {
		panic("enumeration blew up")
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Window, 0, len(f.windows))
	for _, w := range f.windows {
		if opts.App != "" && w.App != opts.App {
			continue
		}
		if opts.PID != 0 && w.PID != opts.PID {
			continue
		}
		if opts.DisplayID != 0 && w.DisplayID != opts.DisplayID {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeEnv) FocusedWindow() (*model.Window, error) {
	return f.focused, nil
}

func (f *fakeEnv) RaiseAndFocus(windowID int) error {
	if err := f.raiseErr[windowID]; err != nil {
		return err
	}
	w := findWindow(f.windows, windowID)
	if w == nil {
		return fmt.Errorf("window %d no longer exists", windowID)
	}
	f.raised = append(f.raised, windowID)
	focused := *w
	f.focused = &focused
	return nil
}

func (f *fakeEnv) WatchFocus(fn func(model.Window)) error {
	f.focusFn = fn
	f.focusWatching = true
	return nil
}

func (f *fakeEnv) StopWatchingFocus() {
	f.focusFn = nil
	f.focusWatching = false
}

// EventTap

func (f *fakeEnv) Start(fn func(platform.InputEvent)) error {
	f.inputFn = fn
	f.tapRunning = true
	return nil
}

func (f *fakeEnv) Stop() {
	if f.tapStopWait != nil {
		f.tapStopWait()
	}
	f.inputFn = nil
	f.tapRunning = false
}

// Hotkeys

func (f *fakeEnv) Register(combo string, fn func()) error {
	f.hotkeys[combo] = fn
	return nil
}

func (f *fakeEnv) UnregisterAll() {
	f.hotkeys = make(map[string]func())
}

// Notifier

func (f *fakeEnv) Alert(message string) {
	f.alerts = append(f.alerts, message)
}

// sendInput delivers an event through the tap as the OS would.
func (f *fakeEnv) sendInput(kind platform.EventKind, pos model.Point, at time.Time) {
	f.pos = pos
	if f.inputFn != nil {
		f.inputFn(platform.InputEvent{Kind: kind, Pos: pos, Time: at})
	}
}

// newTestCoordinator builds a started coordinator over a fake environment
// and clock. Debounce is 60ms to match the documented scenarios.
func newTestCoordinator(mutate ...func(*config.Config)) (*Coordinator, *fakeEnv, *fakeClock) {
	cfg := config.Default()
	cfg.Timing.DebounceMs = 60
	for _, m := range mutate {
		m(cfg)
	}
	env := newFakeEnv()
	clk := newFakeClock()
	c := New(cfg, env.provider())
	c.clock = clk
	return c, env, clk
}
