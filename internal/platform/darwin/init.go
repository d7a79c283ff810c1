//go:build darwin && cgo

package darwin

import "github.com/mj1618/focusd/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		screens := NewScreens()
		return &platform.Provider{
			Pointer:       NewPointer(),
			Screens:       screens,
			WindowManager: NewWindowManager(screens),
			EventTap:      NewEventTap(),
			Hotkeys:       NewHotkeys(),
			Notifier:      NewNotifier(),
		}, nil
	}
	platform.RequestPermissionsFunc = RequestPermissions
	platform.CheckPermissionsFunc = CheckAccessibilityPermission
	platform.RunEventLoopFunc = RunMainLoop
	platform.StopEventLoopFunc = StopMainLoop
}
