// Package module wires content generation and draft review into the API using modkit
package module

import (
	"gracewell/internal/modkit"
	"gracewell/internal/modkit/httpkit"
	"gracewell/internal/modkit/repokit"

	"gracewell/internal/services/generate/domain"
	"gracewell/internal/services/generate/guardrails"
	ghttp "gracewell/internal/services/generate/http"
	"gracewell/internal/services/generate/repo"
	"gracewell/internal/services/generate/service"
)

// Ports exported by the generate module
type Ports struct {
	Generator domain.GeneratorPort
	Review    domain.ReviewPort
}

// Upstream is what this module needs from the moderation module; inject it with modkit.WithPorts
type Upstream = service.Clients

// Module implements the generate module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	opts  Options
	svc   *service.Service
	ports Ports
}

// New constructs the module; a missing moderator is a wiring bug and panics
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("generate"),
		modkit.WithPrefix("/content"),
	}, opts...)...)
	deps = deps.Named(b.Name)
	o := FromConfig(deps.Cfg)

	up, ok := b.Ports.(Upstream)
	if !ok || up.Moderator == nil || up.Policy == nil {
		panic("generate module requires moderation ports (policy and moderator)")
	}

	var (
		tx    repokit.TxRunner
		lease domain.LeaseFunc
	)
	if deps.PG != nil {
		tx = repokit.WithBeginHooks(deps.PG, repokit.LockTimeout(o.LockTimeout))
		lease = guardrails.MakeRunLease(deps.PG, "weekly", o.LeaseTTL)
	}

	svc := service.New(tx, repo.NewPG(), up, service.Config{
		Model:             o.Model,
		MaxTokens:         o.MaxTokens,
		Temperature:       float32(o.Temperature),
		WeeklyTemperature: float32(o.WeeklyTemperature),
		Timeout:           o.Timeout,
	}, lease)

	deps.Log.Info().
		Bool("completer", up.Completer != nil).
		Bool("drafts", tx != nil).
		Dur("lease_ttl", o.LeaseTTL).
		Msg("generate module ready")

	return &Module{
		deps:  deps,
		built: b,
		opts:  o,
		svc:   svc,
		ports: Ports{Generator: svc, Review: svc},
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix returns the route prefix
func (m *Module) Prefix() string { return m.built.Prefix }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		ghttp.Register(rr, m.svc, m.svc, ghttp.Auth{
			Cron:  httpkit.StaticTokens(map[string]string{"cron": m.opts.CronSecret}),
			Admin: httpkit.StaticTokens(map[string]string{"admin": m.opts.AdminToken}),
		})
	})
}
