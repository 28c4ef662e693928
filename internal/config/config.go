package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds the runtime configuration for both binaries.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	PAYG     PAYGConfig     `mapstructure:"payg"`
	Theme    string         `mapstructure:"theme"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type PAYGConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Secret        string        `mapstructure:"secret"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
	LockoutBase   time.Duration `mapstructure:"lockout_base"`
	LockoutMax    time.Duration `mapstructure:"lockout_max"`
	CreditPerCode time.Duration `mapstructure:"credit_per_code"`
	LookAhead     int           `mapstructure:"look_ahead"`
	VerifyTimeout time.Duration `mapstructure:"verify_timeout"`
}

var ErrMissingSecret = errors.New("payg.secret is required when payg is enabled")

// Validate rejects limits that would disable rate limiting or credit.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database.path must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	p := c.PAYG
	if p.MaxAttempts <= 0 {
		return fmt.Errorf("payg.max_attempts must be positive, got %d", p.MaxAttempts)
	}
	if p.LockoutBase <= 0 || p.LockoutMax <= 0 {
		return fmt.Errorf("payg lockout durations must be positive")
	}
	if p.LockoutMax < p.LockoutBase {
		return fmt.Errorf("payg.lockout_max (%s) is shorter than payg.lockout_base (%s)", p.LockoutMax, p.LockoutBase)
	}
	if p.CreditPerCode <= 0 {
		return fmt.Errorf("payg.credit_per_code must be positive")
	}
	if p.LookAhead <= 0 {
		return fmt.Errorf("payg.look_ahead must be positive, got %d", p.LookAhead)
	}
	if p.VerifyTimeout <= 0 {
		return fmt.Errorf("payg.verify_timeout must be positive")
	}
	return nil
}
