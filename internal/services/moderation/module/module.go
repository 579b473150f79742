// Package module wires the moderation pipeline into the API using modkit
package module

import (
	"context"
	"errors"
	"time"

	"gracewell/internal/adapters/openai"
	"gracewell/internal/core/policy"
	"gracewell/internal/modkit"
	"gracewell/internal/modkit/httpkit"

	"gracewell/internal/services/moderation/domain"
	mhttp "gracewell/internal/services/moderation/http"
	"gracewell/internal/services/moderation/repo"
	"gracewell/internal/services/moderation/service"
)

// Ports exposed by the moderation module
// Completer is shared so the content module talks to the same model client
type Ports struct {
	Moderator domain.ModeratorPort
	Completer domain.CompleterPort
	Policy    *policy.Policy
}

// Remote injects the external model clients; tests and the cli pass fakes or prebuilt clients here
type Remote struct {
	Classifier domain.ClassifierPort
	Completer  domain.CompleterPort
}

// Module implements the moderation module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	opts  Options
	ports Ports
	svc   *service.Service
	audit domain.AuditReader
}

// New constructs the module; policy load failures are wiring bugs and panic
// without injected Remote ports the OpenAI client is built from SERVICE_OPENAI_*
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("moderation")}, opts...)...)
	deps = deps.Named(b.Name)
	o := FromConfig(deps.Cfg)

	pol, err := loadPolicy(o.PolicyFile)
	if err != nil {
		deps.Log.Panic().Err(err).Str("file", o.PolicyFile).Msg("moderation: policy load failed")
	}

	remote, ok := b.Ports.(Remote)
	if !ok {
		remote = remoteFromConfig(deps)
	}

	svc := service.New(pol, remote.Classifier, remote.Completer, service.Config{RemoteTimeout: o.RemoteTimeout})

	m := &Module{deps: deps, built: b, opts: o, svc: svc}

	var audit domain.AuditPort
	if o.Audit && deps.PG != nil {
		a := repo.NewAudits(deps.PG)
		audit, m.audit = a, a
	}
	var events domain.EventSink
	if o.Events {
		if ev := repo.NewEvents(deps.CH, deps.Bus, o.Subject); ev != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := ev.EnsureSchema(ctx); err != nil {
				deps.Log.Warn().Err(err).Msg("moderation: decisions table not ensured")
			}
			cancel()
			events = ev
		}
	}
	svc.WithRecorders(audit, events)

	deps.Log.Info().
		Bool("classifier", remote.Classifier != nil).
		Bool("review", remote.Completer != nil).
		Bool("audit", audit != nil).
		Bool("events", events != nil).
		Int("keywords", len(pol.Keywords.Terms())).
		Int("themes", len(pol.Themes.Terms())).
		Msg("moderation module ready")

	m.ports = Ports{Moderator: svc, Completer: remote.Completer, Policy: pol}
	return m
}

func loadPolicy(path string) (*policy.Policy, error) {
	if path == "" {
		return policy.Default()
	}
	return policy.Load(path)
}

// remoteFromConfig leaves both ports nil when no key is set so the remote checks fail closed
func remoteFromConfig(deps modkit.Deps) Remote {
	client, err := openai.New(openai.FromConfig(deps.Cfg))
	if err != nil {
		if errors.Is(err, openai.ErrNoAPIKey) {
			deps.Log.Warn().Msg("moderation: SERVICE_OPENAI_API_KEY unset; classifier and review will reject")
		} else {
			deps.Log.Error().Err(err).Msg("moderation: openai client")
		}
		return Remote{}
	}
	return Remote{Classifier: client, Completer: client}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.built.Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix returns the route prefix
func (m *Module) Prefix() string { return m.built.Prefix }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	admin := httpkit.StaticTokens(map[string]string{"admin": m.opts.AdminToken})
	m.built.Mount(r, func(rr httpkit.Router) {
		mhttp.Register(rr, m.svc, m.audit, admin)
	})
}
