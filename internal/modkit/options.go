package modkit

import "net/http"

type buildCfg struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	ports  any
}

// Option configures a module build
type Option func(*buildCfg)

// WithName sets the module name used for logs and the port registry
func WithName(name string) Option { return func(c *buildCfg) { c.name = name } }

// WithPrefix overrides the default "/<name>" route prefix
func WithPrefix(p string) Option { return func(c *buildCfg) { c.prefix = p } }

// WithMiddlewares appends module scoped middlewares
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(c *buildCfg) { c.mw = append(c.mw, mw...) }
}

// WithPorts sets the port bundle other modules may consume
func WithPorts[T any](p T) Option { return func(c *buildCfg) { c.ports = p } }
