package module

import (
	"time"

	"gracewell/internal/platform/config"
)

// Options holds configuration settings for the generate module
type Options struct {
	Model             string
	MaxTokens         int
	Temperature       float64
	WeeklyTemperature float64
	Timeout           time.Duration
	LeaseTTL          time.Duration
	LockTimeout       time.Duration
	CronSecret        string
	AdminToken        string
}

// FromConfig reads CORE_GENERATE_* plus the shared tokens from CORE_API_
// zero model settings defer to the policy's generation block
func FromConfig(cfg config.Conf) Options {
	gc := cfg.Prefix("CORE_GENERATE_")
	api := cfg.Prefix("CORE_API_")
	return Options{
		Model:             gc.MayString("MODEL", ""),
		MaxTokens:         gc.MayInt("MAX_TOKENS", 0),
		Temperature:       gc.MayFloat64("TEMPERATURE", 0),
		WeeklyTemperature: gc.MayFloat64("WEEKLY_TEMPERATURE", 0),
		Timeout:           gc.MayDuration("TIMEOUT", 90*time.Second),
		LeaseTTL:          gc.MayDuration("LEASE_TTL", 30*time.Minute),
		LockTimeout:       gc.MayDuration("LOCK_TIMEOUT", 2*time.Second),
		CronSecret:        api.MayString("CRON_SECRET", ""),
		AdminToken:        api.MayString("ADMIN_TOKEN", ""),
	}
}
