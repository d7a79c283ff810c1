package coordinator

import (
	"fmt"
	"strings"

	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
	"github.com/sirupsen/logrus"
)

// activateLocked decides which window to focus on d and performs the
// activation. Returns true if some window was activated.
//
// Priority chain, first match wins:
//  1. with cursor priority (post-drag): topmost candidate under the pointer
//  2. the remembered window for d, if still a valid candidate on d
//  3. topmost candidate under the pointer
//  4. first candidate on d in enumeration order
//
// Every failure along the way is local: a vanished window is treated as
// absent and the chain falls through to the next tier.
func (c *Coordinator) activateLocked(d model.Display, prioritizeCursor bool) bool {
	log := c.log.WithFields(logrus.Fields{
		"display":         d.ID,
		"cursor_priority": prioritizeCursor,
	})

	if focused, err := c.env.WindowManager.FocusedWindow(); err == nil &&
		focused != nil && focused.Fullscreen && focused.DisplayID == d.ID {
		log.Debug("focused window is fullscreen on target display, not stealing focus")
		return false
	}

	windows, err := c.env.WindowManager.ListWindows(platform.ListOptions{})
	if err != nil {
		log.WithError(err).Warn("window enumeration failed")
		return false
	}

	var pointer *model.Point
	if p, err := c.env.Pointer.Position(); err == nil {
		pointer = &p
	}

	// 1. Post-drag: the drop target is the window under the cursor.
	if prioritizeCursor && pointer != nil {
		if w := c.topmostAtLocked(windows, d, *pointer); w != nil {
			if c.raiseAndRememberLocked(*w, d, "drop target") {
				return true
			}
		}
	}

	// 2. The window we remembered for this display, if it is still there.
	// Only a stale entry (window destroyed or now on another display) is
	// evicted; a window that is merely ineligible right now, e.g.
	// minimized, keeps its slot so it can be restored later.
	if remembered, ok := c.memory.Get(d.ID); ok {
		cur := findWindow(windows, remembered.ID)
		switch {
		case cur == nil || cur.DisplayID != d.ID:
			c.memory.Forget(d.ID)
			log.WithField("window", remembered.ID).Debug("evicted stale focus-memory entry")
		case !c.isCandidateLocked(*cur):
			// Keep the entry, fall through to the next tier.
		default:
			if err := c.env.WindowManager.RaiseAndFocus(cur.ID); err == nil {
				log.WithFields(logrus.Fields{
					"app": cur.App, "title": cur.Title, "via": "memory",
				}).Info("focused window")
				c.alertLocked(fmt.Sprintf("Focused %s", cur.App))
				return true
			}
			// Raced with window destruction; treat as gone.
			c.memory.Forget(d.ID)
			log.WithField("window", remembered.ID).Debug("evicted stale focus-memory entry")
		}
	}

	// 3. Topmost candidate under the pointer.
	if pointer != nil {
		if w := c.topmostAtLocked(windows, d, *pointer); w != nil {
			if c.raiseAndRememberLocked(*w, d, "under cursor") {
				return true
			}
		}
	}

	// 4. Nothing under the pointer (empty desktop): first candidate on d.
	for i := range windows {
		if windows[i].DisplayID == d.ID && c.isCandidateLocked(windows[i]) {
			if c.raiseAndRememberLocked(windows[i], d, "fallback") {
				return true
			}
		}
	}

	log.Info("no candidate window on display")
	return false
}

// isCandidateLocked reports whether w is eligible for auto-focus: visible,
// not minimized, an ordinary standard window, and not owned by an excluded
// application (system surfaces like Spotlight must never be auto-focused).
func (c *Coordinator) isCandidateLocked(w model.Window) bool {
	if !w.Visible || w.Minimized || !w.Standard {
		return false
	}
	for _, app := range c.cfg.Focus.ExcludedApps {
		if strings.EqualFold(app, w.App) {
			return false
		}
	}
	return true
}

// topmostAtLocked returns the topmost candidate window on d whose frame
// contains p. Windows are enumerated front-to-back, so the first hit wins.
func (c *Coordinator) topmostAtLocked(windows []model.Window, d model.Display, p model.Point) *model.Window {
	for i := range windows {
		w := &windows[i]
		if w.DisplayID != d.ID || !c.isCandidateLocked(*w) {
			continue
		}
		if w.Bounds.Contains(p) {
			return w
		}
	}
	return nil
}

func findWindow(windows []model.Window, id int) *model.Window {
	for i := range windows {
		if windows[i].ID == id {
			return &windows[i]
		}
	}
	return nil
}

// raiseAndRememberLocked raises and focuses w, recording it in focus memory
// on success. A failure means the window vanished since enumeration; the
// caller falls through to its next tier.
func (c *Coordinator) raiseAndRememberLocked(w model.Window, d model.Display, via string) bool {
	if err := c.env.WindowManager.RaiseAndFocus(w.ID); err != nil {
		c.log.WithError(err).WithField("window", w.ID).Debug("window vanished before focus")
		return false
	}
	if evictedID, evicted := c.memory.Remember(d.ID, w); evicted {
		c.log.WithField("display", evictedID).Debug("focus memory full, evicted oldest entry")
	}
	c.log.WithFields(logrus.Fields{
		"display": d.ID, "app": w.App, "title": w.Title, "via": via,
	}).Info("focused window")
	c.alertLocked(fmt.Sprintf("Focused %s", w.App))
	return true
}

// handleFocusGained keeps focus memory fresh for every focus change in the
// system, including ones the coordinator did not cause. It stays subscribed
// while the coordinator is disabled so memory reflects manual focusing.
func (c *Coordinator) handleFocusGained(w model.Window) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverHandler("focus-gained")

	if c.state == StateStopped {
		return
	}
	// A window whose center is off every display (mid-animation, spanning a
	// gap) resolves to display 0; no activation can ever read that slot.
	if w.DisplayID == 0 {
		return
	}
	if evictedID, evicted := c.memory.Remember(w.DisplayID, w); evicted {
		c.log.WithField("display", evictedID).Debug("focus memory full, evicted oldest entry")
	}
}
