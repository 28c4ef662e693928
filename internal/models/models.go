package models

import "time"

// AttemptOutcome enumerates how a single code verification ended.
type AttemptOutcome string

const (
	OutcomeAccepted       AttemptOutcome = "accepted"
	OutcomeInvalid        AttemptOutcome = "invalid"
	OutcomeAlreadyUsed    AttemptOutcome = "already_used"
	OutcomeRateLimited    AttemptOutcome = "rate_limited"
	OutcomeTimedOut       AttemptOutcome = "timed_out"
	OutcomeStorageFailure AttemptOutcome = "storage_failure"
)

// EntitlementState is the persisted view of a device's pay-as-you-go credit
// and brute-force counters.
type EntitlementState struct {
	DeviceID       string
	ExpiresAt      time.Time // zero means no credit yet
	FailedAttempts int       // consecutive failures since the last lockout or success
	Lockouts       int       // lockouts since the last accepted code
	LockoutUntil   time.Time // wall clock; zero when not locked out
	HighestCounter int64     // highest HOTP counter accepted, -1 when none
}

// UsedCode records an HOTP counter that has already been redeemed.
type UsedCode struct {
	Counter int64
	UsedAt  time.Time
}

// Attempt is one row of the verification audit trail.
type Attempt struct {
	ID        int64
	Outcome   AttemptOutcome
	Counter   *int64 // matched HOTP counter, nil when no code matched
	CreatedAt time.Time
}

// Code is a generated unlock code and the HOTP counter it encodes.
type Code struct {
	Counter int64
	Value   string
}
