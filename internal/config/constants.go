package config

import "time"

// Application settings.
const (
	AppName     = "payg-unlock"
	DBFileName  = "payg.db"
	LogFileName = "payg-unlock.log"
	EnvPrefix   = "PAYG"
)

// Entitlement defaults.
const (
	MaxAttempts   = 5
	LockoutBase   = time.Minute
	LockoutMax    = time.Hour
	CreditPerCode = 24 * time.Hour
	LookAhead     = 20
	VerifyTimeout = 30 * time.Second
)

// Unlock code format.
const (
	CodeDigits = 8
)
