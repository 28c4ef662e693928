package unlock

import (
	"fmt"
	"math"
	"time"
)

// lockoutMinutesThreshold is the remaining time above which the lockout
// message counts minutes instead of saying "a few seconds".
const lockoutMinutesThreshold = 30

// FormatLockoutMessage renders the cooldown message for secondsLeft. Above
// 30 seconds it shows whole minutes rounded up, otherwise a generic message
// so a countdown never reads "0" or goes negative near expiry.
func FormatLockoutMessage(secondsLeft int64) string {
	if secondsLeft <= lockoutMinutesThreshold {
		return "Try again in a few seconds"
	}
	minutes := (secondsLeft + 59) / 60
	if minutes == 1 {
		return "Try again in 1 minute"
	}
	return fmt.Sprintf("Try again in %d minutes", minutes)
}

// maxDelaySeconds is the largest whole-second count a time.Duration holds.
const maxDelaySeconds = math.MaxInt64 / int64(time.Second)

// LockoutDelay is the recovery timer delay: max(1, secondsLeft) seconds, so
// the timer can never fire before the state change that scheduled it. A
// deadline too far out for time.Duration saturates at the largest delay.
func LockoutDelay(secondsLeft int64) time.Duration {
	secondsLeft = min(max(secondsLeft, 1), maxDelaySeconds)
	return time.Duration(secondsLeft) * time.Second
}

// secondsUntil is end-now in whole seconds, rounded up so the recovery timer
// never fires ahead of the manager's deadline.
func secondsUntil(end, now time.Time) int64 {
	return int64(math.Ceil(end.Sub(now).Seconds()))
}
