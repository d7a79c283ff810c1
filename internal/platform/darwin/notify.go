//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#include <stdlib.h>
#import <AppKit/AppKit.h>

static void post_notification(const char *message) {
    NSString *text = [NSString stringWithUTF8String:message];
    dispatch_async(dispatch_get_main_queue(), ^{
        NSUserNotification *note = [[NSUserNotification alloc] init];
        note.title = @"focusd";
        note.informativeText = text;
        [[NSUserNotificationCenter defaultUserNotificationCenter] deliverNotification:note];
    });
}
*/
import "C"

import "unsafe"

// Notifier posts transient banner notifications through the user
// notification center.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Alert(message string) {
	cMsg := C.CString(message)
	defer C.free(unsafe.Pointer(cMsg))
	C.post_notification(cMsg)
}
