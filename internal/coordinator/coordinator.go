// Package coordinator implements focus-follows-mouse: it watches pointer
// movement across displays and focuses an appropriate window on the display
// the pointer moved to.
//
// All event handlers (input events, timers, screen-configuration changes,
// window-focus notifications) are serialized by a single mutex, so each
// handler runs to completion before the next one starts. Timers carry a
// generation counter checked under that lock, which guarantees a cancelled
// timer never applies its effect even if the OS already fired it.
package coordinator

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mj1618/focusd/internal/config"
	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/sirupsen/logrus"
)

// State is the coordinator lifecycle state.
type State int

const (
	StateStopped State = iota
	StateRunning
	StateDisabled
)

// String returns the lifecycle state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Coordinator owns all focus-follows-mouse state. A single instance lives
// for the duration of the daemon process.
type Coordinator struct {
	mu    sync.Mutex
	cfg   *config.Config
	env   *platform.Provider
	clock Clock
	log   *logrus.Entry

	state       State
	startedAt   time.Time
	lastDisplay *model.Display
	memory      *FocusMemory
	dragActive  bool
	lastClick   time.Time

	// Pending focus activation. Scheduling a new one bumps focusSeq so the
	// previous timer becomes a no-op; at most one activation is ever pending.
	focusSeq   uint64
	focusTimer Timer

	// Pending drag-end decision after a button-up.
	dragEndSeq   uint64
	dragEndTimer Timer

	// Poll fallback, re-armed after every fire.
	pollSeq   uint64
	pollTimer Timer
}

// New creates a coordinator over the given environment. It does not start
// any watcher; call Start.
func New(cfg *config.Config, env *platform.Provider) *Coordinator {
	return &Coordinator{
		cfg:    cfg,
		env:    env,
		clock:  realClock{},
		log:    logrus.WithField("subsystem", "coordinator"),
		memory: NewFocusMemory(cfg.Focus.MemoryCapacity),
	}
}

// Start builds and starts the event tap, poll timer, screen watcher, focus
// watcher, and hotkeys, then enables focus-follows-mouse.
//
// Watcher start/stop calls run outside the coordinator lock. The event tap
// delivers callbacks from its own OS thread and its shutdown waits for any
// in-flight callback to return; holding the lock across that wait would
// deadlock against a callback blocked on the same lock. A handler that fires
// in the unlocked window sees a non-running state and drops the event.
func (c *Coordinator) Start() error {
	c.mu.Lock()
	if c.state != StateStopped {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("coordinator already started (state %s)", state)
	}
	cfg := c.cfg
	c.mu.Unlock()

	if err := c.registerHotkeys(cfg); err != nil {
		return err
	}
	if err := c.env.EventTap.Start(c.handleInput); err != nil {
		c.env.Hotkeys.UnregisterAll()
		return fmt.Errorf("start event tap: %w", err)
	}
	if err := c.env.Screens.WatchChanges(c.handleScreenConfigChange); err != nil {
		c.env.EventTap.Stop()
		c.env.Hotkeys.UnregisterAll()
		return fmt.Errorf("watch screen changes: %w", err)
	}
	if err := c.env.WindowManager.WatchFocus(c.handleFocusGained); err != nil {
		c.env.Screens.StopWatching()
		c.env.EventTap.Stop()
		c.env.Hotkeys.UnregisterAll()
		return fmt.Errorf("watch window focus: %w", err)
	}

	c.mu.Lock()
	c.armPollLocked()
	c.state = StateRunning
	c.startedAt = c.clock.Now()
	notify := c.alertsOnLocked()
	c.mu.Unlock()

	c.log.Info("focus follows mouse started")
	if notify {
		c.env.Notifier.Alert("Focus follows mouse: on")
	}
	return nil
}

// Stop tears everything down: watchers, subscriptions, hotkeys, and pending
// timers. Focus memory is left in place; a stopped coordinator no longer
// reads it.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.state == StateStopped {
		c.mu.Unlock()
		return
	}
	wasRunning := c.state == StateRunning
	c.cancelTimersLocked()
	c.dragActive = false
	c.state = StateStopped
	c.mu.Unlock()

	if wasRunning {
		c.env.EventTap.Stop()
		c.env.Screens.StopWatching()
	}
	c.env.WindowManager.StopWatchingFocus()
	c.env.Hotkeys.UnregisterAll()
	c.log.Info("focus follows mouse stopped")
}

// Disable pauses the coordinator: the event tap, poll timer, and screen
// watcher stop and pending timers are cancelled, but focus memory and the
// focus-gained subscription stay intact so memory keeps tracking manual
// focus changes.
func (c *Coordinator) Disable() {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}
	c.cancelTimersLocked()
	c.dragActive = false
	c.state = StateDisabled
	notify := c.alertsOnLocked()
	c.mu.Unlock()

	// The tap shutdown waits for in-flight callbacks, so it must run after
	// the lock is released.
	c.env.EventTap.Stop()
	c.env.Screens.StopWatching()
	c.log.Info("focus follows mouse disabled")
	if notify {
		c.env.Notifier.Alert("Focus follows mouse: off")
	}
}

// Enable restarts the watchers after a Disable. All other state is unchanged.
func (c *Coordinator) Enable() {
	c.mu.Lock()
	if c.state != StateDisabled {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	if err := c.env.EventTap.Start(c.handleInput); err != nil {
		c.log.WithError(err).Error("failed to restart event tap")
		return
	}
	if err := c.env.Screens.WatchChanges(c.handleScreenConfigChange); err != nil {
		c.log.WithError(err).Error("failed to restart screen watcher")
		c.env.EventTap.Stop()
		return
	}

	c.mu.Lock()
	c.armPollLocked()
	c.state = StateRunning
	notify := c.alertsOnLocked()
	c.mu.Unlock()

	c.log.Info("focus follows mouse enabled")
	if notify {
		c.env.Notifier.Alert("Focus follows mouse: on")
	}
}

// Toggle flips between Running and Disabled.
func (c *Coordinator) Toggle() {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	switch state {
	case StateRunning:
		c.Disable()
	case StateDisabled:
		c.Enable()
	}
}

// Reload tears the coordinator down completely, clears focus memory, and
// re-initializes from scratch.
func (c *Coordinator) Reload() error {
	c.Stop()
	c.mu.Lock()
	c.memory.Clear()
	c.lastDisplay = nil
	c.lastClick = time.Time{}
	c.mu.Unlock()
	return c.Start()
}

// ClearMemory empties the focus memory.
func (c *Coordinator) ClearMemory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.memory.Len()
	c.memory.Clear()
	c.log.WithField("entries", n).Info("focus memory cleared")
	c.alertLocked("Focus memory cleared")
}

// ApplyConfig swaps in a new configuration. Timings take effect on the next
// scheduled timer; the memory bound is applied immediately.
func (c *Coordinator) ApplyConfig(cfg *config.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
	c.memory.SetCapacity(cfg.Focus.MemoryCapacity)
	c.log.Info("configuration applied")
}

// Status is a read-only snapshot of coordinator state for debugging.
type Status struct {
	State          string `yaml:"state"                     json:"state"`
	Enabled        bool   `yaml:"enabled"                   json:"enabled"`
	CurrentDisplay int    `yaml:"current_display,omitempty" json:"current_display,omitempty"`
	LastDisplay    int    `yaml:"last_display,omitempty"    json:"last_display,omitempty"`
	MemoryEntries  int    `yaml:"memory_entries"            json:"memory_entries"`
	DragActive     bool   `yaml:"drag_active"               json:"drag_active"`
	Started        string `yaml:"started,omitempty"         json:"started,omitempty"`
}

// Status reports the current state without mutating anything.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{
		State:         c.state.String(),
		Enabled:       c.state == StateRunning,
		MemoryEntries: c.memory.Len(),
		DragActive:    c.dragActive,
	}
	if c.lastDisplay != nil {
		st.LastDisplay = c.lastDisplay.ID
	}
	if !c.startedAt.IsZero() {
		st.Started = humanize.Time(c.startedAt)
	}
	if p, err := c.env.Pointer.Position(); err == nil {
		if d, err := c.env.Screens.DisplayAt(p); err == nil && d != nil {
			st.CurrentDisplay = d.ID
		}
	}
	return st
}

// DebugDump logs the status and mirrors it as an alert.
func (c *Coordinator) DebugDump() {
	st := c.Status()
	c.log.WithFields(logrus.Fields{
		"state":           st.State,
		"current_display": st.CurrentDisplay,
		"last_display":    st.LastDisplay,
		"memory_entries":  st.MemoryEntries,
		"drag_active":     st.DragActive,
	}).Info("debug dump")

	c.mu.Lock()
	defer c.mu.Unlock()
	c.alertLocked(fmt.Sprintf("focusd %s | display %d (last %d) | %d remembered | drag=%v",
		st.State, st.CurrentDisplay, st.LastDisplay, st.MemoryEntries, st.DragActive))
}

func (c *Coordinator) registerHotkeys(cfg *config.Config) error {
	bindings := []struct {
		combo string
		name  string
		fn    func()
	}{
		{cfg.Hotkeys.Toggle, "toggle", c.Toggle},
		{cfg.Hotkeys.Reload, "reload", func() {
			if err := c.Reload(); err != nil {
				c.log.WithError(err).Error("reload failed")
			}
		}},
		{cfg.Hotkeys.Debug, "debug", c.DebugDump},
		{cfg.Hotkeys.ClearMemory, "clear-memory", c.ClearMemory},
	}
	for _, b := range bindings {
		if b.combo == "" {
			continue
		}
		if err := c.env.Hotkeys.Register(b.combo, b.fn); err != nil {
			c.env.Hotkeys.UnregisterAll()
			return fmt.Errorf("register %s hotkey %q: %w", b.name, b.combo, err)
		}
	}
	return nil
}

// cancelTimersLocked invalidates every pending timer. Bumping the sequence
// numbers makes an already-fired callback a no-op; Stop is best-effort.
func (c *Coordinator) cancelTimersLocked() {
	c.focusSeq++
	if c.focusTimer != nil {
		c.focusTimer.Stop()
		c.focusTimer = nil
	}
	c.dragEndSeq++
	if c.dragEndTimer != nil {
		c.dragEndTimer.Stop()
		c.dragEndTimer = nil
	}
	c.pollSeq++
	if c.pollTimer != nil {
		c.pollTimer.Stop()
		c.pollTimer = nil
	}
}

func (c *Coordinator) alertsOnLocked() bool {
	return c.cfg.AlertsEnabled() && c.env.Notifier != nil
}

func (c *Coordinator) alertLocked(msg string) {
	if c.alertsOnLocked() {
		c.env.Notifier.Alert(msg)
	}
}

// recoverHandler isolates a fault in one callback so it cannot take down the
// process or block subsequent callbacks.
func (c *Coordinator) recoverHandler(name string) {
	if r := recover(); r != nil {
		c.log.WithFields(logrus.Fields{
			"handler": name,
			"panic":   r,
			"stack":   string(debug.Stack()),
		}).Error("handler panicked")
	}
}
