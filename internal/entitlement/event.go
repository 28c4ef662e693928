package entitlement

// Event is a notification emitted by Manager to its subscribers.
type Event int

const (
	// EventInitialized fires exactly once, after persisted state is loaded.
	EventInitialized Event = iota + 1
	// EventExpiryTimeChanged fires whenever an accepted code extends credit.
	EventExpiryTimeChanged
)

func (e Event) String() string {
	switch e {
	case EventInitialized:
		return "initialized"
	case EventExpiryTimeChanged:
		return "expiry-time-changed"
	default:
		return "unknown"
	}
}
