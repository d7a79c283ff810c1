package platform

import "github.com/mj1618/focusd/internal/model"

// Pointer queries the current pointer location in global screen coordinates.
type Pointer interface {
	Position() (model.Point, error)
}

// Screens enumerates displays and reports display-configuration changes.
type Screens interface {
	// ListDisplays returns all currently active displays.
	ListDisplays() ([]model.Display, error)

	// DisplayAt returns the display whose bounds contain p, or nil if the
	// point is outside every display.
	DisplayAt(p model.Point) (*model.Display, error)

	// WatchChanges invokes fn whenever the display configuration changes
	// (monitor connect/disconnect, sleep/wake). fn may be called from an
	// OS callback thread.
	WatchChanges(fn func()) error

	// StopWatching cancels a previous WatchChanges subscription.
	StopWatching()
}

// WindowManager enumerates windows and performs focus side effects.
type WindowManager interface {
	// ListWindows returns all known windows front-to-back, optionally
	// filtered. The first matching window in the slice is the topmost.
	ListWindows(opts ListOptions) ([]model.Window, error)

	// FocusedWindow returns the currently focused window, or nil if no
	// window has focus.
	FocusedWindow() (*model.Window, error)

	// RaiseAndFocus restores the window to the front of the z-order and
	// gives it keyboard focus. Returns an error if the window no longer
	// exists; callers treat that as "window is gone", not a fault.
	RaiseAndFocus(windowID int) error

	// WatchFocus invokes fn every time any window gains focus, by any
	// means, not only through RaiseAndFocus.
	WatchFocus(fn func(model.Window)) error

	// StopWatchingFocus cancels a previous WatchFocus subscription.
	StopWatchingFocus()
}

// EventTap delivers low-level pointer events. The tap is strictly passive:
// events are observed and passed through, never consumed or modified.
type EventTap interface {
	Start(fn func(InputEvent)) error
	Stop()
}

// Hotkeys registers global hotkeys.
type Hotkeys interface {
	// Register binds a combo such as "ctrl+alt+cmd+f" to fn.
	Register(combo string, fn func()) error

	// UnregisterAll removes every hotkey registered by this process.
	UnregisterAll()
}

// Notifier shows transient on-screen alerts to the user.
type Notifier interface {
	Alert(message string)
}
