package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/focusd/internal/model"
)

// EventKind classifies a low-level pointer event.
type EventKind int

const (
	EventMove EventKind = iota
	EventLeftDrag
	EventRightDrag
	EventLeftDown
	EventLeftUp
	EventRightDown
	EventRightUp
)

// String returns a short human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventLeftDrag:
		return "left-drag"
	case EventRightDrag:
		return "right-drag"
	case EventLeftDown:
		return "left-down"
	case EventLeftUp:
		return "left-up"
	case EventRightDown:
		return "right-down"
	case EventRightUp:
		return "right-up"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// IsDrag reports whether the event is a drag-continue of either button.
func (k EventKind) IsDrag() bool {
	return k == EventLeftDrag || k == EventRightDrag
}

// IsButtonDown reports whether the event is a mouse-button press.
func (k EventKind) IsButtonDown() bool {
	return k == EventLeftDown || k == EventRightDown
}

// IsButtonUp reports whether the event is a mouse-button release.
func (k EventKind) IsButtonUp() bool {
	return k == EventLeftUp || k == EventRightUp
}

// InputEvent is a single low-level pointer event delivered by an EventTap.
type InputEvent struct {
	Kind EventKind
	Pos  model.Point
	Time time.Time
}

// ListOptions controls window enumeration.
type ListOptions struct {
	App       string // Filter by application name
	PID       int    // Filter by process ID (0 = unset)
	DisplayID int    // Filter by owning display (0 = unset)
}

// Hotkey is a parsed modifier-set + key combination.
type Hotkey struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Cmd   bool
	Key   string
}

// ParseHotkey parses a combo string such as "ctrl+alt+cmd+f". The final
// token is the key; every preceding token must be a modifier.
func ParseHotkey(combo string) (Hotkey, error) {
	var hk Hotkey
	parts := strings.Split(strings.ToLower(combo), "+")
	if len(parts) < 2 {
		return hk, fmt.Errorf("invalid hotkey %q: expected at least one modifier and a key", combo)
	}
	for _, mod := range parts[:len(parts)-1] {
		switch strings.TrimSpace(mod) {
		case "ctrl", "control":
			hk.Ctrl = true
		case "alt", "opt", "option":
			hk.Alt = true
		case "shift":
			hk.Shift = true
		case "cmd", "command", "super":
			hk.Cmd = true
		default:
			return hk, fmt.Errorf("invalid hotkey %q: unknown modifier %q", combo, mod)
		}
	}
	hk.Key = strings.TrimSpace(parts[len(parts)-1])
	if hk.Key == "" {
		return hk, fmt.Errorf("invalid hotkey %q: empty key", combo)
	}
	return hk, nil
}
