// Package module wires meta endpoints into the API using modkit
package module

import (
	"time"

	"gracewell/internal/modkit"
	"gracewell/internal/modkit/httpkit"
	"gracewell/internal/modkit/repokit"

	metahttp "gracewell/internal/services/api/meta/http"
)

// Options for the meta module
type Options struct {
	ServiceName string
	DisplayName string
	Pingers     map[string]repokit.Pinger
}

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	opts      Options
	startedAt time.Time
}

// New constructs a meta module; Options come in through modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	o, _ := b.Ports.(Options)
	if o.ServiceName == "" {
		o.ServiceName = "gracewell-api"
	}
	if o.DisplayName == "" {
		o.DisplayName = "Holistic Wellness API"
	}
	deps = deps.Named(b.Name)
	deps.Log.Debug().Int("pingers", len(o.Pingers)).Msg("meta module ready")

	return &Module{built: b, opts: o, startedAt: time.Now()}
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the mount prefix
func (m *Module) Prefix() string { return m.built.Prefix }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: m.opts.ServiceName,
			DisplayName: m.opts.DisplayName,
			StartedAt:   m.startedAt,
			Pingers:     m.opts.Pingers,
		})
	})
}
