package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads config.yaml from /etc/payg-unlock, dataDir and the working
// directory (first found wins), then applies PAYG_* environment overrides.
func Load(dataDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir, DBFileName))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(dataDir, LogFileName))
	v.SetDefault("theme", "default")
	v.SetDefault("payg.enabled", true)
	v.SetDefault("payg.secret", "")
	v.SetDefault("payg.max_attempts", MaxAttempts)
	v.SetDefault("payg.lockout_base", LockoutBase)
	v.SetDefault("payg.lockout_max", LockoutMax)
	v.SetDefault("payg.credit_per_code", CreditPerCode)
	v.SetDefault("payg.look_ahead", LookAhead)
	v.SetDefault("payg.verify_timeout", VerifyTimeout)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/" + AppName + "/")
	if dataDir != "" {
		v.AddConfigPath(dataDir)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
