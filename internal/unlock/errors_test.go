package unlock

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want VerifyError
	}{
		{entitlement.ErrInvalidCode, VerifyErrorInvalidCode},
		{entitlement.ErrCodeAlreadyUsed, VerifyErrorCodeAlreadyUsed},
		{entitlement.ErrTimedOut, VerifyErrorTimeout},
		{context.DeadlineExceeded, VerifyErrorTimeout},
		{entitlement.ErrTooManyAttempts, VerifyErrorTooManyAttempts},
		{fmt.Errorf("%w: %w", entitlement.ErrTooManyAttempts, entitlement.ErrInvalidCode), VerifyErrorTooManyAttempts},
		{errors.New("boom"), VerifyErrorUnclassified},
		{entitlement.ErrNotInitialized, VerifyErrorUnclassified},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Fatalf("Classify(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestStatusAccepting(t *testing.T) {
	for status, want := range map[Status]bool{
		StatusNotVerifying:    true,
		StatusFailed:          true,
		StatusVerifying:       false,
		StatusTooManyAttempts: false,
		StatusSucceeded:       false,
	} {
		if got := status.accepting(); got != want {
			t.Fatalf("%s.accepting() = %v, want %v", status, got, want)
		}
	}
}
