package coordinator

import (
	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
)

// handleInput is the event-tap callback. It classifies each low-level
// pointer event and feeds the screen-change detector. The tap is passive,
// so nothing here may block or consume the event.
func (c *Coordinator) handleInput(ev platform.InputEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverHandler("input")

	if c.state != StateRunning {
		return
	}

	switch {
	case ev.Kind.IsButtonDown():
		// A deliberate click; remember when, so the detector can avoid
		// stealing focus mid-interaction.
		c.lastClick = c.clock.Now()

	case ev.Kind.IsDrag():
		c.dragActive = true
		c.feedDetectorLocked(ev.Pos, sourceEvent, true)

	case ev.Kind.IsButtonUp():
		c.scheduleDragEndLocked()

	case ev.Kind == platform.EventMove:
		c.feedDetectorLocked(ev.Pos, sourceEvent, false)
	}
}

// feedDetectorLocked resolves the display under pos and hands it to the
// screen-change detector. An unresolvable position (pointer mid-transition,
// display just unplugged) is ignored.
func (c *Coordinator) feedDetectorLocked(pos model.Point, src source, isDrag bool) {
	d, err := c.env.Screens.DisplayAt(pos)
	if err != nil {
		c.log.WithError(err).Debug("display lookup failed")
		return
	}
	if d == nil {
		return
	}
	c.detectScreenChangeLocked(*d, src, isDrag)
}

// scheduleDragEndLocked starts the short button-up delay. Only when the
// delay expires with a drag still marked active does drag-end handling run;
// a plain click's button-up passes through without any focus action.
func (c *Coordinator) scheduleDragEndLocked() {
	c.dragEndSeq++
	seq := c.dragEndSeq
	if c.dragEndTimer != nil {
		c.dragEndTimer.Stop()
	}
	c.dragEndTimer = c.clock.AfterFunc(c.cfg.ButtonUpDelay(), func() {
		c.onDragEndTimer(seq)
	})
}

// onDragEndTimer fires after the button-up delay. If a drag was in
// progress it is now over: schedule an activation that prioritizes the
// window under the cursor (the drop target), with a settle delay longer
// than the normal debounce so the drop lands first.
func (c *Coordinator) onDragEndTimer(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.recoverHandler("drag-end")

	if seq != c.dragEndSeq || c.state != StateRunning {
		return
	}
	c.dragEndTimer = nil
	if !c.dragActive {
		return
	}
	c.dragActive = false

	pos, err := c.env.Pointer.Position()
	if err != nil {
		c.log.WithError(err).Debug("pointer query failed at drag end")
		return
	}
	d, err := c.env.Screens.DisplayAt(pos)
	if err != nil || d == nil {
		return
	}
	c.log.WithField("display", d.ID).Debug("drag ended, focusing drop target")
	c.scheduleFocusLocked(*d, c.cfg.DragSettle(), true)
}
