package unlock

// Status is the UI-facing state of one unlock session.
type Status int

const (
	StatusNotVerifying Status = iota
	StatusVerifying
	StatusFailed
	StatusTooManyAttempts
	StatusSucceeded
)

func (s Status) String() string {
	switch s {
	case StatusNotVerifying:
		return "not-verifying"
	case StatusVerifying:
		return "verifying"
	case StatusFailed:
		return "failed"
	case StatusTooManyAttempts:
		return "too-many-attempts"
	case StatusSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// accepting reports whether the code entry and submit affordances may be
// enabled in this state.
func (s Status) accepting() bool {
	switch s {
	case StatusVerifying, StatusSucceeded, StatusTooManyAttempts:
		return false
	default:
		return true
	}
}
