package module

import (
	"time"

	"gracewell/internal/platform/config"
	"gracewell/internal/services/moderation/repo"
)

// Options holds configuration settings for the moderation module
type Options struct {
	RemoteTimeout time.Duration
	PolicyFile    string
	Audit         bool
	Events        bool
	Subject       string
	AdminToken    string
}

// FromConfig reads CORE_MODERATION_* plus the shared admin token from CORE_API_
func FromConfig(cfg config.Conf) Options {
	mc := cfg.Prefix("CORE_MODERATION_")
	return Options{
		RemoteTimeout: mc.MayDuration("REMOTE_TIMEOUT", 20*time.Second),
		PolicyFile:    mc.MayString("POLICY_FILE", ""),
		Audit:         mc.MayBool("AUDIT", true),
		Events:        mc.MayBool("EVENTS", true),
		Subject:       mc.MayString("SUBJECT", repo.DefaultSubject),
		AdminToken:    cfg.Prefix("CORE_API_").MayString("ADMIN_TOKEN", ""),
	}
}
