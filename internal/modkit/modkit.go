// Package modkit provides module wiring and core deps
package modkit

import (
	"net/http"

	"gracewell/internal/modkit/module"
	phttp "gracewell/internal/platform/net/http"
	pstrings "gracewell/internal/platform/strings"
)

// Module is the contract every gracewell module satisfies
type Module = module.Module

// Built is the resolved module shape after applying options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build resolves opts; a module without a name is a wiring bug
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.name == "" {
		panic("modkit: module name required")
	}
	prefix := c.prefix
	if prefix == "" {
		prefix = c.name
	}
	return Built{Name: c.name, Prefix: pstrings.MustPrefix(prefix), Mw: c.mw, Ports: c.ports}
}

// Mount registers fn's routes under the module prefix with its middlewares
func (b Built) Mount(r phttp.Router, fn func(phttp.Router)) {
	r.Route(b.Prefix, func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		fn(sub)
	})
}

// MountAll mounts each module and registers its ports under its name
func MountAll(r phttp.Router, mods ...Module) {
	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}
}
