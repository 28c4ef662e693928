package entitlement

import (
	"context"
	"errors"
	"fmt"
)

// Verification failures reported by Manager.Verify. Callers match them with
// errors.Is; anything else is a storage or internal failure.
var (
	ErrInvalidCode     = errors.New("invalid code")
	ErrCodeAlreadyUsed = errors.New("code already used")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrTimedOut        = errors.New("verification timed out")
	ErrNotInitialized  = errors.New("entitlement manager not initialized")
)

// timeoutErr folds context errors into ErrTimedOut, keeping the cause.
func timeoutErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ErrTimedOut, err)
	}
	return err
}
