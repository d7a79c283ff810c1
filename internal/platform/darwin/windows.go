//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework ApplicationServices -framework CoreFoundation -framework Foundation
#include <stdlib.h>
#include <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>

// Private but long-stable: maps an AX window element to its CGWindowID.
extern AXError _AXUIElementGetWindow(AXUIElementRef element, CGWindowID *out);

typedef struct {
    uint32_t id;
    int32_t pid;
    char app[256];
    char title[512];
    int x, y, width, height;
    int layer;
    int onscreen;
    double alpha;
} window_info;

static void copy_dict_string(CFDictionaryRef dict, CFStringRef key, char *out, size_t max) {
    out[0] = '\0';
    CFStringRef s = CFDictionaryGetValue(dict, key);
    if (s != NULL) {
        CFStringGetCString(s, out, max, kCFStringEncodingUTF8);
    }
}

static int list_windows(window_info *out, int max) {
    CFArrayRef list = CGWindowListCopyWindowInfo(
        kCGWindowListOptionOnScreenOnly | kCGWindowListExcludeDesktopElements,
        kCGNullWindowID);
    if (list == NULL) {
        return -1;
    }
    int n = 0;
    CFIndex count = CFArrayGetCount(list);
    for (CFIndex i = 0; i < count && n < max; i++) {
        CFDictionaryRef w = CFArrayGetValueAtIndex(list, i);

        int32_t wid = 0, pid = 0, layer = 0;
        double alpha = 1.0;
        CFNumberRef num;
        if ((num = CFDictionaryGetValue(w, kCGWindowNumber)) != NULL)
            CFNumberGetValue(num, kCFNumberSInt32Type, &wid);
        if ((num = CFDictionaryGetValue(w, kCGWindowOwnerPID)) != NULL)
            CFNumberGetValue(num, kCFNumberSInt32Type, &pid);
        if ((num = CFDictionaryGetValue(w, kCGWindowLayer)) != NULL)
            CFNumberGetValue(num, kCFNumberSInt32Type, &layer);
        if ((num = CFDictionaryGetValue(w, kCGWindowAlpha)) != NULL)
            CFNumberGetValue(num, kCFNumberDoubleType, &alpha);

        CGRect bounds = CGRectZero;
        CFDictionaryRef b = CFDictionaryGetValue(w, kCGWindowBounds);
        if (b != NULL) {
            CGRectMakeWithDictionaryRepresentation(b, &bounds);
        }

        out[n].id = (uint32_t)wid;
        out[n].pid = pid;
        out[n].layer = layer;
        out[n].alpha = alpha;
        out[n].onscreen = 1;
        out[n].x = (int)bounds.origin.x;
        out[n].y = (int)bounds.origin.y;
        out[n].width = (int)bounds.size.width;
        out[n].height = (int)bounds.size.height;
        copy_dict_string(w, kCGWindowOwnerName, out[n].app, sizeof(out[n].app));
        copy_dict_string(w, kCGWindowName, out[n].title, sizeof(out[n].title));
        n++;
    }
    CFRelease(list);
    return n;
}

// Finds the AX window element of pid matching window_id, raises it,
// makes it main, and activates the owning app.
static int ax_raise_window(pid_t pid, uint32_t window_id) {
    AXUIElementRef app = AXUIElementCreateApplication(pid);
    if (app == NULL) {
        return -1;
    }
    CFArrayRef windows = NULL;
    AXError err = AXUIElementCopyAttributeValue(app, kAXWindowsAttribute, (CFTypeRef *)&windows);
    if (err != kAXErrorSuccess || windows == NULL) {
        CFRelease(app);
        return -1;
    }

    int found = -1;
    CFIndex count = CFArrayGetCount(windows);
    for (CFIndex i = 0; i < count; i++) {
        AXUIElementRef win = (AXUIElementRef)CFArrayGetValueAtIndex(windows, i);
        CGWindowID wid = 0;
        if (_AXUIElementGetWindow(win, &wid) == kAXErrorSuccess && wid == window_id) {
            AXUIElementPerformAction(win, kAXRaiseAction);
            AXUIElementSetAttributeValue(win, kAXMainAttribute, kCFBooleanTrue);
            found = 0;
            break;
        }
    }
    CFRelease(windows);
    CFRelease(app);
    if (found != 0) {
        return -1;
    }

    NSRunningApplication *running = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
    if (running != nil) {
        [running activateWithOptions:0];
    }
    return 0;
}

static int frontmost_app_pid() {
    NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
    if (app == nil) {
        return -1;
    }
    return (int)app.processIdentifier;
}

// Returns the CGWindowID of pid's AX-focused window, or 0.
static uint32_t focused_window_id(pid_t pid) {
    AXUIElementRef app = AXUIElementCreateApplication(pid);
    if (app == NULL) {
        return 0;
    }
    AXUIElementRef win = NULL;
    AXError err = AXUIElementCopyAttributeValue(app, kAXFocusedWindowAttribute, (CFTypeRef *)&win);
    uint32_t wid = 0;
    if (err == kAXErrorSuccess && win != NULL) {
        CGWindowID raw = 0;
        if (_AXUIElementGetWindow(win, &raw) == kAXErrorSuccess) {
            wid = (uint32_t)raw;
        }
        CFRelease(win);
    }
    CFRelease(app);
    return wid;
}

extern void goAppActivated(int32_t pid);

static id focus_observer = nil;

static void watch_app_activation() {
    focus_observer = [[[NSWorkspace sharedWorkspace] notificationCenter]
        addObserverForName:NSWorkspaceDidActivateApplicationNotification
                    object:nil
                     queue:[NSOperationQueue mainQueue]
                usingBlock:^(NSNotification *note) {
                    NSRunningApplication *app = note.userInfo[NSWorkspaceApplicationKey];
                    if (app != nil) {
                        goAppActivated((int32_t)app.processIdentifier);
                    }
                }];
}

static void unwatch_app_activation() {
    if (focus_observer != nil) {
        [[[NSWorkspace sharedWorkspace] notificationCenter] removeObserver:focus_observer];
        focus_observer = nil;
    }
}
*/
import "C"

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
)

const maxWindows = 256

// WindowManager enumerates windows through the CGWindowList API and drives
// raise/focus through the Accessibility API. Enumeration order is
// front-to-back, which the focus resolver relies on.
type WindowManager struct {
	screens *Screens

	mu      sync.Mutex
	focusFn func(model.Window)
}

var (
	wmMu     sync.Mutex
	activeWM *WindowManager
)

func NewWindowManager(screens *Screens) *WindowManager {
	return &WindowManager{screens: screens}
}

func (wm *WindowManager) ListWindows(opts platform.ListOptions) ([]model.Window, error) {
	raw := make([]C.window_info, maxWindows)
	n := C.list_windows(&raw[0], maxWindows)
	if n < 0 {
		return nil, fmt.Errorf("CGWindowListCopyWindowInfo failed")
	}

	displays, err := wm.screens.ListDisplays()
	if err != nil {
		return nil, fmt.Errorf("listing displays: %w", err)
	}
	focusedID := wm.focusedWindowID()

	windows := make([]model.Window, 0, int(n))
	for i := 0; i < int(n); i++ {
		w := toWindow(&raw[i], displays, focusedID)
		if opts.App != "" && !strings.EqualFold(w.App, opts.App) {
			continue
		}
		if opts.PID != 0 && w.PID != opts.PID {
			continue
		}
		if opts.DisplayID != 0 && w.DisplayID != opts.DisplayID {
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func (wm *WindowManager) FocusedWindow() (*model.Window, error) {
	focusedID := wm.focusedWindowID()
	if focusedID == 0 {
		return nil, nil
	}
	windows, err := wm.ListWindows(platform.ListOptions{})
	if err != nil {
		return nil, err
	}
	for i := range windows {
		if windows[i].ID == focusedID {
			return &windows[i], nil
		}
	}
	return nil, nil
}

func (wm *WindowManager) RaiseAndFocus(windowID int) error {
	if err := CheckAccessibilityPermission(); err != nil {
		return err
	}
	windows, err := wm.ListWindows(platform.ListOptions{})
	if err != nil {
		return err
	}
	var pid int
	for _, w := range windows {
		if w.ID == windowID {
			pid = w.PID
			break
		}
	}
	if pid == 0 {
		return fmt.Errorf("no window found with ID %d", windowID)
	}
	if C.ax_raise_window(C.pid_t(pid), C.uint32_t(windowID)) != 0 {
		return fmt.Errorf("failed to raise window %d (PID %d)", windowID, pid)
	}
	return nil
}

func (wm *WindowManager) WatchFocus(fn func(model.Window)) error {
	wmMu.Lock()
	defer wmMu.Unlock()
	if activeWM != nil {
		return fmt.Errorf("focus watcher already running")
	}
	wm.mu.Lock()
	wm.focusFn = fn
	wm.mu.Unlock()
	activeWM = wm
	C.watch_app_activation()
	return nil
}

func (wm *WindowManager) StopWatchingFocus() {
	wmMu.Lock()
	defer wmMu.Unlock()
	if activeWM != wm {
		return
	}
	C.unwatch_app_activation()
	activeWM = nil
	wm.mu.Lock()
	wm.focusFn = nil
	wm.mu.Unlock()
}

func (wm *WindowManager) focusedWindowID() int {
	pid := C.frontmost_app_pid()
	if pid < 0 {
		return 0
	}
	return int(C.focused_window_id(C.pid_t(pid)))
}

func toWindow(raw *C.window_info, displays []model.Display, focusedID int) model.Window {
	bounds := model.Bounds{
		X:      int(raw.x),
		Y:      int(raw.y),
		Width:  int(raw.width),
		Height: int(raw.height),
	}
	center := model.Point{X: bounds.X + bounds.Width/2, Y: bounds.Y + bounds.Height/2}

	var displayID int
	var fullscreen bool
	for _, d := range displays {
		if d.Bounds.Contains(center) {
			displayID = d.ID
			fullscreen = bounds == d.Bounds
			break
		}
	}

	return model.Window{
		ID:         int(raw.id),
		PID:        int(raw.pid),
		App:        C.GoString(&raw.app[0]),
		Title:      C.GoString(&raw.title[0]),
		Bounds:     bounds,
		DisplayID:  displayID,
		Visible:    raw.onscreen != 0 && raw.alpha > 0,
		Minimized:  false,
		Standard:   int(raw.layer) == 0,
		Fullscreen: fullscreen,
		Focused:    int(raw.id) == focusedID,
	}
}

func dispatchAppActivated(pid int) {
	wmMu.Lock()
	wm := activeWM
	wmMu.Unlock()
	if wm == nil {
		return
	}
	wm.mu.Lock()
	fn := wm.focusFn
	wm.mu.Unlock()
	if fn == nil {
		return
	}

	// The activated app's focused window is what gained focus.
	wid := int(C.focused_window_id(C.pid_t(pid)))
	if wid == 0 {
		return
	}
	windows, err := wm.ListWindows(platform.ListOptions{PID: pid})
	if err != nil {
		return
	}
	for _, w := range windows {
		if w.ID == wid {
			fn(w)
			return
		}
	}
}
