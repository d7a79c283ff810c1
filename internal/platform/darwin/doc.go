// Package darwin implements the focusd platform interfaces for macOS using
// CoreGraphics (pointer, displays, event tap, window enumeration), the
// Accessibility API (raise/focus), Carbon (global hotkeys), and AppKit
// (activation notifications, alerts).
//
// Everything here requires cgo; the package registers itself with the
// platform package via init() so non-darwin builds simply report
// platform.ErrUnsupported.
package darwin
