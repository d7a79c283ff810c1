//go:build darwin

package darwin

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

#define MAX_DISPLAYS 16

typedef struct {
    uint32_t id;
    int x, y, width, height;
    int primary;
} display_info;

static int list_displays(display_info *out, int max) {
    CGDirectDisplayID ids[MAX_DISPLAYS];
    uint32_t count = 0;
    if (CGGetActiveDisplayList(MAX_DISPLAYS, ids, &count) != kCGErrorSuccess) {
        return -1;
    }
    CGDirectDisplayID main = CGMainDisplayID();
    int n = 0;
    for (uint32_t i = 0; i < count && n < max; i++) {
        CGRect r = CGDisplayBounds(ids[i]);
        out[n].id = ids[i];
        out[n].x = (int)r.origin.x;
        out[n].y = (int)r.origin.y;
        out[n].width = (int)r.size.width;
        out[n].height = (int)r.size.height;
        out[n].primary = ids[i] == main;
        n++;
    }
    return n;
}

extern void goScreenConfigChanged();

static void reconfig_callback(CGDirectDisplayID display, CGDisplayChangeSummaryFlags flags, void *userInfo) {
    // Reconfiguration fires twice per change (begin and end); only the
    // completed pass matters here.
    if (flags & kCGDisplayBeginConfigurationFlag) {
        return;
    }
    goScreenConfigChanged();
}

static void watch_display_changes() {
    CGDisplayRegisterReconfigurationCallback(reconfig_callback, NULL);
}

static void unwatch_display_changes() {
    CGDisplayRemoveReconfigurationCallback(reconfig_callback, NULL);
}
*/
import "C"

import (
	"fmt"
	"sync"

	"github.com/mj1618/focusd/internal/model"
)

// Screens enumerates displays via CoreGraphics and surfaces display
// reconfiguration events (monitor plugged/unplugged, resolution change).
type Screens struct {
	mu sync.Mutex
	fn func()
}

// The reconfiguration callback is registered process-wide, so there is a
// single delivery point for it.
var (
	screenMu       sync.Mutex
	activeScreens  *Screens
)

func NewScreens() *Screens {
	return &Screens{}
}

func (s *Screens) ListDisplays() ([]model.Display, error) {
	var raw [16]C.display_info
	n := C.list_displays(&raw[0], 16)
	if n < 0 {
		return nil, fmt.Errorf("CGGetActiveDisplayList failed")
	}
	displays := make([]model.Display, 0, int(n))
	for i := 0; i < int(n); i++ {
		d := raw[i]
		displays = append(displays, model.Display{
			ID: int(d.id),
			Bounds: model.Bounds{
				X:      int(d.x),
				Y:      int(d.y),
				Width:  int(d.width),
				Height: int(d.height),
			},
			Primary: d.primary != 0,
		})
	}
	return displays, nil
}

func (s *Screens) DisplayAt(p model.Point) (*model.Display, error) {
	displays, err := s.ListDisplays()
	if err != nil {
		return nil, err
	}
	for i := range displays {
		if displays[i].Bounds.Contains(p) {
			return &displays[i], nil
		}
	}
	return nil, nil
}

func (s *Screens) WatchChanges(fn func()) error {
	screenMu.Lock()
	defer screenMu.Unlock()
	if activeScreens != nil {
		return fmt.Errorf("display watcher already running")
	}
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()
	activeScreens = s
	C.watch_display_changes()
	return nil
}

func (s *Screens) StopWatching() {
	screenMu.Lock()
	defer screenMu.Unlock()
	if activeScreens != s {
		return
	}
	C.unwatch_display_changes()
	activeScreens = nil
	s.mu.Lock()
	s.fn = nil
	s.mu.Unlock()
}

func dispatchScreenConfigChanged() {
	screenMu.Lock()
	s := activeScreens
	screenMu.Unlock()
	if s == nil {
		return
	}
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
