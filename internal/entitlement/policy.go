package entitlement

import (
	"time"

	"github.com/akyairhashvil/payg-unlock/internal/config"
)

// Policy controls credit and brute-force limits.
type Policy struct {
	Enabled       bool
	MaxAttempts   int
	LockoutBase   time.Duration
	LockoutMax    time.Duration
	CreditPerCode time.Duration
	LookAhead     int
}

func DefaultPolicy() Policy {
	return Policy{
		Enabled:       true,
		MaxAttempts:   config.MaxAttempts,
		LockoutBase:   config.LockoutBase,
		LockoutMax:    config.LockoutMax,
		CreditPerCode: config.CreditPerCode,
		LookAhead:     config.LookAhead,
	}
}

func PolicyFromConfig(cfg config.PAYGConfig) Policy {
	return Policy{
		Enabled:       cfg.Enabled,
		MaxAttempts:   cfg.MaxAttempts,
		LockoutBase:   cfg.LockoutBase,
		LockoutMax:    cfg.LockoutMax,
		CreditPerCode: cfg.CreditPerCode,
		LookAhead:     cfg.LookAhead,
	}
}

// LockoutDuration returns the length of the n-th consecutive lockout:
// LockoutBase doubled n-1 times, capped at LockoutMax.
func (p Policy) LockoutDuration(n int) time.Duration {
	d := p.LockoutBase
	for i := 1; i < n && d < p.LockoutMax; i++ {
		d *= 2
	}
	if d > p.LockoutMax {
		d = p.LockoutMax
	}
	return d
}
