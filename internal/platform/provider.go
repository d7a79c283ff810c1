package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Pointer       Pointer
	Screens       Screens
	WindowManager WindowManager
	EventTap      EventTap
	Hotkeys       Hotkeys
	Notifier      Notifier
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("focusd is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func() (*Provider, error)

// RequestPermissionsFunc is set by platform-specific packages via init().
// It triggers OS permission prompts (e.g. accessibility) at startup.
var RequestPermissionsFunc func()

// CheckPermissionsFunc is set by platform-specific packages via init().
// It reports an error describing any missing OS permission.
var CheckPermissionsFunc func() error

// RunEventLoopFunc and StopEventLoopFunc are set by platform-specific
// packages whose backends need a native event loop on the main thread
// (macOS delivers workspace notifications there). Both are optional.
var (
	RunEventLoopFunc  func()
	StopEventLoopFunc func()
)

// RunEventLoop blocks in the platform's native event loop when the backend
// needs one; otherwise it returns immediately.
func RunEventLoop() {
	if RunEventLoopFunc != nil {
		RunEventLoopFunc()
	}
}

// StopEventLoop unblocks a RunEventLoop call from another goroutine.
func StopEventLoop() {
	if StopEventLoopFunc != nil {
		StopEventLoopFunc()
	}
}

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
