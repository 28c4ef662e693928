package unlock

import (
	"context"
	"errors"

	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
)

// VerifyError classifies a failed verification. The set is closed: any
// manager error that is not recognised becomes VerifyErrorUnclassified.
type VerifyError int

const (
	VerifyErrorUnclassified VerifyError = iota
	VerifyErrorInvalidCode
	VerifyErrorCodeAlreadyUsed
	VerifyErrorTimeout
	VerifyErrorTooManyAttempts
)

// User-facing failure messages.
const (
	MessageInvalidCode     = "Invalid code. Please try again."
	MessageCodeAlreadyUsed = "Code already used."
	MessageTimeout         = "Time exceeded while verifying the code."
	MessageUnknownError    = "Unknown error."
)

func (e VerifyError) String() string {
	switch e {
	case VerifyErrorInvalidCode:
		return "invalid-code"
	case VerifyErrorCodeAlreadyUsed:
		return "code-already-used"
	case VerifyErrorTimeout:
		return "timeout"
	case VerifyErrorTooManyAttempts:
		return "too-many-attempts"
	default:
		return "unclassified"
	}
}

// Classify maps an error returned by Manager.Verify onto VerifyError.
// TooManyAttempts is checked first so a lockout that also wraps another
// sentinel always starts the cooldown.
func Classify(err error) VerifyError {
	switch {
	case errors.Is(err, entitlement.ErrTooManyAttempts):
		return VerifyErrorTooManyAttempts
	case errors.Is(err, entitlement.ErrInvalidCode):
		return VerifyErrorInvalidCode
	case errors.Is(err, entitlement.ErrCodeAlreadyUsed):
		return VerifyErrorCodeAlreadyUsed
	case errors.Is(err, entitlement.ErrTimedOut), errors.Is(err, context.DeadlineExceeded):
		return VerifyErrorTimeout
	default:
		return VerifyErrorUnclassified
	}
}

// failureMessage is the text shown for every class except TooManyAttempts,
// whose message depends on the remaining lockout.
func failureMessage(kind VerifyError) string {
	switch kind {
	case VerifyErrorInvalidCode:
		return MessageInvalidCode
	case VerifyErrorCodeAlreadyUsed:
		return MessageCodeAlreadyUsed
	case VerifyErrorTimeout:
		return MessageTimeout
	default:
		return MessageUnknownError
	}
}
