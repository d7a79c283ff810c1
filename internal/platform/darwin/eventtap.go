//go:build darwin

package darwin

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation
#include <stdlib.h>
#include <ApplicationServices/ApplicationServices.h>

extern void goInputEvent(int kind, double x, double y);

typedef struct {
    CFMachPortRef tap;
    CFRunLoopSourceRef source;
    CFRunLoopRef loop;
} tap_state;

static CGEventRef tap_callback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *userInfo) {
    tap_state *st = (tap_state *)userInfo;
    if (type == kCGEventTapDisabledByTimeout || type == kCGEventTapDisabledByUserInput) {
        CGEventTapEnable(st->tap, true);
        return event;
    }
    CGPoint p = CGEventGetLocation(event);
    goInputEvent((int)type, p.x, p.y);
    return event;
}

// Creates the listen-only tap and blocks in CFRunLoopRun until
// tap_stop is called from another thread.
static int tap_run(tap_state *st) {
    CGEventMask mask =
        CGEventMaskBit(kCGEventMouseMoved) |
        CGEventMaskBit(kCGEventLeftMouseDragged) |
        CGEventMaskBit(kCGEventRightMouseDragged) |
        CGEventMaskBit(kCGEventLeftMouseDown) |
        CGEventMaskBit(kCGEventLeftMouseUp) |
        CGEventMaskBit(kCGEventRightMouseDown) |
        CGEventMaskBit(kCGEventRightMouseUp);

    st->tap = CGEventTapCreate(kCGSessionEventTap, kCGHeadInsertEventTap,
        kCGEventTapOptionListenOnly, mask, tap_callback, st);
    if (st->tap == NULL) {
        return -1;
    }
    st->source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, st->tap, 0);
    st->loop = CFRunLoopGetCurrent();
    CFRunLoopAddSource(st->loop, st->source, kCFRunLoopCommonModes);
    CGEventTapEnable(st->tap, true);
    CFRunLoopRun();
    return 0;
}

static void tap_stop(tap_state *st) {
    if (st->tap != NULL) {
        CGEventTapEnable(st->tap, false);
    }
    if (st->loop != NULL) {
        CFRunLoopStop(st->loop);
    }
}

static void tap_free(tap_state *st) {
    if (st->source != NULL) {
        CFRelease(st->source);
        st->source = NULL;
    }
    if (st->tap != NULL) {
        CFRelease(st->tap);
        st->tap = NULL;
    }
    st->loop = NULL;
}
*/
import "C"

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/mj1618/focusd/internal/model"
	"github.com/mj1618/focusd/internal/platform"
)

// EventTap observes mouse events through a listen-only CGEventTap on a
// dedicated OS thread running its own CFRunLoop. Listen-only taps never
// delay or modify event delivery to the foreground app.
type EventTap struct {
	mu      sync.Mutex
	fn      func(platform.InputEvent)
	state   *C.tap_state
	done    chan struct{}
	running bool
}

var (
	tapMu     sync.Mutex
	activeTap *EventTap
)

func NewEventTap() *EventTap {
	return &EventTap{}
}

func (t *EventTap) Start(fn func(platform.InputEvent)) error {
	tapMu.Lock()
	defer tapMu.Unlock()
	if activeTap != nil {
		return fmt.Errorf("event tap already running")
	}

	t.mu.Lock()
	t.fn = fn
	t.state = (*C.tap_state)(C.calloc(1, C.sizeof_tap_state))
	t.done = make(chan struct{})
	t.running = true
	t.mu.Unlock()
	activeTap = t

	errCh := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if C.tap_run(t.state) != 0 {
			errCh <- fmt.Errorf("CGEventTapCreate failed (is accessibility permission granted?)")
		} else {
			errCh <- nil
		}
		close(t.done)
	}()

	// tap_run reports creation failure immediately; success blocks in the
	// run loop, so a short grace period distinguishes the two.
	select {
	case err := <-errCh:
		if err != nil {
			activeTap = nil
			t.teardown()
			return err
		}
	case <-time.After(200 * time.Millisecond):
	}
	return nil
}

// Stop detaches the tap and waits for the tap thread to exit. The wait must
// happen outside tapMu: an in-flight tap_callback may be sitting in
// dispatchInputEvent waiting on that same lock, and the run loop cannot
// return until the callback does.
func (t *EventTap) Stop() {
	tapMu.Lock()
	if activeTap != t {
		tapMu.Unlock()
		return
	}
	activeTap = nil
	t.mu.Lock()
	running := t.running
	state := t.state
	done := t.done
	t.mu.Unlock()
	tapMu.Unlock()

	if running {
		C.tap_stop(state)
		<-done
	}
	t.teardown()
}

// teardown frees the native tap state. The caller must have detached t from
// activeTap first so no new dispatch can reach it.
func (t *EventTap) teardown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != nil {
		C.tap_free(t.state)
		C.free(unsafe.Pointer(t.state))
		t.state = nil
	}
	t.fn = nil
	t.running = false
}

func dispatchInputEvent(rawType int, x, y float64) {
	tapMu.Lock()
	t := activeTap
	tapMu.Unlock()
	if t == nil {
		return
	}
	t.mu.Lock()
	fn := t.fn
	t.mu.Unlock()
	if fn == nil {
		return
	}

	var kind platform.EventKind
	switch C.CGEventType(rawType) {
	case C.kCGEventMouseMoved:
		kind = platform.EventMove
	case C.kCGEventLeftMouseDragged:
		kind = platform.EventLeftDrag
	case C.kCGEventRightMouseDragged:
		kind = platform.EventRightDrag
	case C.kCGEventLeftMouseDown:
		kind = platform.EventLeftDown
	case C.kCGEventLeftMouseUp:
		kind = platform.EventLeftUp
	case C.kCGEventRightMouseDown:
		kind = platform.EventRightDown
	case C.kCGEventRightMouseUp:
		kind = platform.EventRightUp
	default:
		return
	}
	fn(platform.InputEvent{
		Kind: kind,
		Pos:  model.Point{X: int(x), Y: int(y)},
		Time: time.Now(),
	})
}
