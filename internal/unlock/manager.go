package unlock

import (
	"context"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/entitlement"
)

// Manager is the entitlement manager as seen by the unlock controller.
//
//go:generate mockgen -source=manager.go -destination=mock_manager_test.go -package=unlock
type Manager interface {
	Initialized() bool
	Enabled() bool
	ValidateFormat(code string) bool
	Verify(ctx context.Context, code string) error
	LockoutEndTime() time.Time
	TimeRemaining() time.Duration
	Subscribe(fn func(entitlement.Event)) (unsubscribe func())
}

var _ Manager = (*entitlement.Manager)(nil)
