package unlock

import "time"

// Loop is the single cooperative event loop a Controller runs on. Every
// callback it delivers (done, fn, timer functions) runs on the loop, one at a
// time, which is why Controller needs no locking.
type Loop interface {
	// Go runs work off the loop and later delivers its result to done on
	// the loop.
	Go(work func() error, done func(error))
	// Post runs fn on the loop. Safe to call from any goroutine.
	Post(fn func())
	// AfterFunc runs fn on the loop once d has elapsed, unless stopped.
	AfterFunc(d time.Duration, fn func()) Timer
	// Now reads the loop's monotonic clock.
	Now() time.Time
}

// Timer is a cancellable handle to a callback scheduled with AfterFunc.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped the timer, false if it had already fired or been stopped.
	Stop() bool
}
