package testutil

import (
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/models"
	"github.com/akyairhashvil/payg-unlock/internal/util"
)

// StateBuilder provides fluent API for creating test entitlement states.
type StateBuilder struct {
	state models.EntitlementState
}

// NewState starts from a fresh device: no credit, no redeemed codes.
func NewState() *StateBuilder {
	return &StateBuilder{
		state: models.EntitlementState{
			DeviceID:       "device-1",
			HighestCounter: -1,
		},
	}
}

func (b *StateBuilder) WithDeviceID(id string) *StateBuilder {
	b.state.DeviceID = id
	return b
}

func (b *StateBuilder) WithExpiry(t time.Time) *StateBuilder {
	b.state.ExpiresAt = t
	return b
}

func (b *StateBuilder) WithFailedAttempts(n int) *StateBuilder {
	b.state.FailedAttempts = n
	return b
}

// WithLockout records the lockouts so far and when the latest one ends.
func (b *StateBuilder) WithLockout(until time.Time, lockouts int) *StateBuilder {
	b.state.LockoutUntil = until
	b.state.Lockouts = lockouts
	return b
}

func (b *StateBuilder) WithHighestCounter(n int64) *StateBuilder {
	b.state.HighestCounter = n
	return b
}

func (b *StateBuilder) Build() models.EntitlementState {
	return b.state
}

// AttemptBuilder provides fluent API for creating audit entries.
type AttemptBuilder struct {
	attempt models.Attempt
}

func NewAttempt() *AttemptBuilder {
	return &AttemptBuilder{
		attempt: models.Attempt{
			Outcome:   models.OutcomeInvalid,
			CreatedAt: time.Now(),
		},
	}
}

func (b *AttemptBuilder) WithOutcome(o models.AttemptOutcome) *AttemptBuilder {
	b.attempt.Outcome = o
	return b
}

func (b *AttemptBuilder) WithCounter(c int64) *AttemptBuilder {
	b.attempt.Counter = util.Ptr(c)
	return b
}

func (b *AttemptBuilder) At(t time.Time) *AttemptBuilder {
	b.attempt.CreatedAt = t
	return b
}

func (b *AttemptBuilder) Build() models.Attempt {
	return b.attempt
}
