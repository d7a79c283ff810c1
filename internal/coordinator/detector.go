package coordinator

import (
	"time"

	"github.com/mj1618/focusd/internal/model"
	"github.com/sirupsen/logrus"
)

// source identifies where a screen-change candidate came from.
type source int

const (
	sourceEvent source = iota
	sourcePoll
	sourceScreenConfig
)

func (s source) String() string {
	switch s {
	case sourceEvent:
		return "event"
	case sourcePoll:
		return "poll"
	case sourceScreenConfig:
		return "screen-config"
	default:
		return "unknown"
	}
}

// detectScreenChangeLocked decides whether the pointer genuinely moved to a
// new display and, if so, schedules a debounced focus activation.
//
// The click cooldown is checked before lastDisplay is updated, so a change
// suppressed by a recent click leaves lastDisplay untouched and will be
// re-detected by a later event or the poll fallback.
func (c *Coordinator) detectScreenChangeLocked(d model.Display, src source, isDrag bool) {
	now := c.clock.Now()
	if !c.lastClick.IsZero() && now.Sub(c.lastClick) < c.cfg.ClickCooldown() {
		c.log.WithFields(logrus.Fields{
			"display": d.ID,
			"source":  src.String(),
		}).Debug("screen change ignored within click cooldown")
		return
	}

	if c.lastDisplay != nil && c.lastDisplay.ID == d.ID {
		return
	}
	c.lastDisplay = &d

	if isDrag {
		// Focusing mid-drag would target the drag source's owner; defer
		// to drag-end, which focuses the drop target instead.
		c.dragActive = true
		c.log.WithField("display", d.ID).Debug("display change during drag, deferring focus")
		return
	}

	c.log.WithFields(logrus.Fields{
		"display": d.ID,
		"source":  src.String(),
	}).Info("pointer moved to display")
	c.scheduleFocusLocked(d, c.cfg.Debounce(), false)
}

// scheduleFocusLocked schedules a focus activation for d after delay,
// cancelling any previously pending activation. Rapid back-and-forth pointer
// motion near a display boundary therefore coalesces into a single
// activation for the last display reported.
func (c *Coordinator) scheduleFocusLocked(d model.Display, delay time.Duration, prioritizeCursor bool) {
	c.focusSeq++
	seq := c.focusSeq
	if c.focusTimer != nil {
		c.focusTimer.Stop()
	}
	c.focusTimer = c.clock.AfterFunc(delay, func() {
		c.onFocusTimer(seq, d, prioritizeCursor)
	})
}

func (c *Coordinator) onFocusTimer(seq uint64, d model.Display, prioritizeCursor bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverHandler("focus")

	if seq != c.focusSeq || c.state != StateRunning {
		return
	}
	c.focusTimer = nil
	c.activateLocked(d, prioritizeCursor)
}

// handleScreenConfigChange reacts to monitor connect/disconnect/sleep/wake
// by re-evaluating the pointer's display immediately.
func (c *Coordinator) handleScreenConfigChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverHandler("screen-config")

	if c.state != StateRunning {
		return
	}
	c.log.Info("display configuration changed")

	pos, err := c.env.Pointer.Position()
	if err != nil {
		c.log.WithError(err).Debug("pointer query failed after screen change")
		return
	}
	d, err := c.env.Screens.DisplayAt(pos)
	if err != nil || d == nil {
		return
	}

	// Immediate re-evaluation: cancel any pending debounce and act now.
	c.focusSeq++
	if c.focusTimer != nil {
		c.focusTimer.Stop()
		c.focusTimer = nil
	}
	c.lastDisplay = d
	c.activateLocked(*d, false)
}

// armPollLocked schedules the next poll fallback tick.
func (c *Coordinator) armPollLocked() {
	c.pollSeq++
	seq := c.pollSeq
	if c.pollTimer != nil {
		c.pollTimer.Stop()
	}
	c.pollTimer = c.clock.AfterFunc(c.cfg.PollInterval(), func() {
		c.onPollTimer(seq)
	})
}

// onPollTimer re-checks the pointer's display independent of event
// delivery. Event taps are not guaranteed reliable; this is pure
// redundancy, and re-detecting an already-seen display is a no-op.
func (c *Coordinator) onPollTimer(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverHandler("poll")

	if seq != c.pollSeq || c.state != StateRunning {
		return
	}
	c.armPollLocked()

	if c.dragActive {
		return
	}
	pos, err := c.env.Pointer.Position()
	if err != nil {
		c.log.WithError(err).Debug("pointer poll failed")
		return
	}
	d, err := c.env.Screens.DisplayAt(pos)
	if err != nil || d == nil {
		return
	}
	c.detectScreenChangeLocked(*d, sourcePoll, false)
}
