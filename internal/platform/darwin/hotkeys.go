//go:build darwin

package darwin

/*
#cgo LDFLAGS: -framework Carbon
#include <Carbon/Carbon.h>

extern void goHotkeyPressed(uint32_t id);

static OSStatus hotkey_handler(EventHandlerCallRef next, EventRef event, void *userData) {
    EventHotKeyID hkid;
    GetEventParameter(event, kEventParamDirectObject, typeEventHotKeyID,
        NULL, sizeof(hkid), NULL, &hkid);
    goHotkeyPressed(hkid.id);
    return noErr;
}

static EventHandlerRef hotkey_handler_ref = NULL;

static void install_hotkey_handler() {
    if (hotkey_handler_ref != NULL) {
        return;
    }
    EventTypeSpec spec = { kEventClassKeyboard, kEventHotKeyPressed };
    InstallEventHandler(GetEventDispatcherTarget(), hotkey_handler, 1, &spec,
        NULL, &hotkey_handler_ref);
}

static EventHotKeyRef register_hotkey(uint32_t keycode, uint32_t modifiers, uint32_t id) {
    EventHotKeyID hkid = { 'fcsd', id };
    EventHotKeyRef ref = NULL;
    if (RegisterEventHotKey(keycode, modifiers, hkid,
            GetEventDispatcherTarget(), 0, &ref) != noErr) {
        return NULL;
    }
    return ref;
}

static void unregister_hotkey(EventHotKeyRef ref) {
    UnregisterEventHotKey(ref);
}
*/
import "C"

import (
	"fmt"
	"sync"

	"github.com/mj1618/focusd/internal/platform"
)

// Carbon virtual keycodes for the ANSI layout.
var keycodes = map[string]uint32{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15, "5": 0x17,
	"6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	"space": 0x31, "escape": 0x35, "tab": 0x30, "return": 0x24,
}

const (
	carbonCmd   = 0x0100
	carbonShift = 0x0200
	carbonAlt   = 0x0800
	carbonCtrl  = 0x1000
)

// Hotkeys registers system-wide shortcuts through Carbon's RegisterEventHotKey.
// Pressed events are dispatched on the main run loop, so the daemon must be
// parked in RunMainLoop for callbacks to fire.
type Hotkeys struct {
	mu     sync.Mutex
	nextID uint32
	bound  map[uint32]hotkeyBinding
}

type hotkeyBinding struct {
	ref C.EventHotKeyRef
	fn  func()
}

var (
	hkMu          sync.Mutex
	activeHotkeys *Hotkeys
)

func NewHotkeys() *Hotkeys {
	return &Hotkeys{bound: make(map[uint32]hotkeyBinding)}
}

func (h *Hotkeys) Register(combo string, fn func()) error {
	hk, err := platform.ParseHotkey(combo)
	if err != nil {
		return err
	}
	keycode, ok := keycodes[hk.Key]
	if !ok {
		return fmt.Errorf("unsupported hotkey key %q", hk.Key)
	}
	var mods uint32
	if hk.Cmd {
		mods |= carbonCmd
	}
	if hk.Shift {
		mods |= carbonShift
	}
	if hk.Alt {
		mods |= carbonAlt
	}
	if hk.Ctrl {
		mods |= carbonCtrl
	}

	hkMu.Lock()
	activeHotkeys = h
	hkMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()
	C.install_hotkey_handler()
	h.nextID++
	id := h.nextID
	ref := C.register_hotkey(C.uint32_t(keycode), C.uint32_t(mods), C.uint32_t(id))
	if ref == nil {
		return fmt.Errorf("RegisterEventHotKey failed for %q (already taken by another app?)", combo)
	}
	h.bound[id] = hotkeyBinding{ref: ref, fn: fn}
	return nil
}

func (h *Hotkeys) UnregisterAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, b := range h.bound {
		C.unregister_hotkey(b.ref)
		delete(h.bound, id)
	}
}

func dispatchHotkey(id uint32) {
	hkMu.Lock()
	h := activeHotkeys
	hkMu.Unlock()
	if h == nil {
		return
	}
	h.mu.Lock()
	b, ok := h.bound[id]
	h.mu.Unlock()
	if ok && b.fn != nil {
		b.fn()
	}
}
