//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework CoreFoundation -framework Foundation
#include <CoreFoundation/CoreFoundation.h>
#import <AppKit/AppKit.h>

static void run_main_loop() {
    // NSApplicationLoad connects the process to the window server so
    // workspace notifications reach the main run loop.
    NSApplicationLoad();
    CFRunLoopRun();
}

static void stop_main_loop() {
    CFRunLoopStop(CFRunLoopGetMain());
}
*/
import "C"

// RunMainLoop blocks the calling thread in the Cocoa main run loop.
// Workspace activation notifications are only delivered while it runs, so
// the daemon parks its main goroutine here.
func RunMainLoop() {
	C.run_main_loop()
}

// StopMainLoop unblocks RunMainLoop from another goroutine.
func StopMainLoop() {
	C.stop_main_loop()
}
