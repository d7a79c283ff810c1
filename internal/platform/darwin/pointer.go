//go:build darwin

package darwin

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static CGPoint pointer_position() {
    CGEventRef event = CGEventCreate(NULL);
    CGPoint p = CGEventGetLocation(event);
    CFRelease(event);
    return p;
}
*/
import "C"

import "github.com/mj1618/focusd/internal/model"

// Pointer reads the global cursor position from a throwaway CGEvent.
type Pointer struct{}

func NewPointer() *Pointer {
	return &Pointer{}
}

func (p *Pointer) Position() (model.Point, error) {
	cp := C.pointer_position()
	return model.Point{X: int(cp.x), Y: int(cp.y)}, nil
}
