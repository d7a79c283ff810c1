package main

import (
	"runtime"

	"github.com/mj1618/focusd/cmd"
	_ "github.com/mj1618/focusd/internal/platform/darwin"
)

func init() {
	// The Cocoa run loop used by `focusd run` must live on the main thread.
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
