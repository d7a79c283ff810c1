//go:build darwin

package darwin

// Exported entry points for the C callbacks. Per cgo rules a file with
// //export directives must keep its preamble declaration-only, so the C glue
// lives next to the Go type it serves in the other files.

/*
#include <stdint.h>
*/
import "C"

//export goScreenConfigChanged
func goScreenConfigChanged() {
	dispatchScreenConfigChanged()
}

//export goInputEvent
func goInputEvent(kind C.int, x C.double, y C.double) {
	dispatchInputEvent(int(kind), float64(x), float64(y))
}

//export goHotkeyPressed
func goHotkeyPressed(id C.uint32_t) {
	dispatchHotkey(uint32(id))
}

//export goAppActivated
func goAppActivated(pid C.int32_t) {
	dispatchAppActivated(int(pid))
}
