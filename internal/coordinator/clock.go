package coordinator

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the timer from firing. It cannot unwind a callback
	// that already started, which is why every timer callback in this
	// package also checks a generation counter under the coordinator lock.
	Stop() bool
}

// Clock abstracts time for the coordinator so tests can drive timers
// deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
