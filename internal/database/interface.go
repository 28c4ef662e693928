package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/models"
)

// EntitlementRepository defines the persistence the entitlement manager needs.
type EntitlementRepository interface {
	LoadEntitlementState(ctx context.Context) (models.EntitlementState, error)
	SaveEntitlementState(ctx context.Context, state models.EntitlementState) error
	RedeemCode(ctx context.Context, counter int64, usedAt time.Time, state models.EntitlementState) error
	UsedCounters(ctx context.Context) (map[int64]bool, error)
	RecordAttempt(ctx context.Context, outcome models.AttemptOutcome, counter *int64, at time.Time) error
}

var _ EntitlementRepository = (*Database)(nil)
