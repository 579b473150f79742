// Package api assembles the HTTP API from the service modules
package api

import (
	"time"

	"gracewell/internal/core/version"
	"gracewell/internal/platform/config"
	"gracewell/internal/platform/logger"
	phttp "gracewell/internal/platform/net/http"
	"gracewell/internal/platform/net/middleware"
	"gracewell/internal/platform/store"

	"gracewell/internal/modkit"
	"gracewell/internal/modkit/httpkit"
	"gracewell/internal/modkit/module"
	"gracewell/internal/modkit/repokit"
	"gracewell/internal/modkit/swaggerkit"

	metamod "gracewell/internal/services/api/meta/module"
	genmod "gracewell/internal/services/generate/module"
	modmod "gracewell/internal/services/moderation/module"
)

// Options are the API options
// Config is the root config; modules pick their own prefixes from it
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Moderation overrides the remote model clients, mostly for tests
	Moderation *modmod.Remote
}

// Mount mounts the API service onto the given router and returns the mounted modules
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := modkit.FromStore(opt.Store, opt.Config)
	if opt.Logger != nil && opt.Store == nil {
		deps.Log = *opt.Logger
	}
	apiCfg := opt.Config.Prefix("CORE_API_")

	var modOpts []modkit.Option
	if opt.Moderation != nil {
		modOpts = append(modOpts, modkit.WithPorts(*opt.Moderation))
	}
	moderation := modmod.New(deps, modOpts...)

	// the content module drafts with the moderation module's model client and policy
	mp := module.MustPortsOf[modmod.Ports](moderation)
	generate := genmod.New(deps, modkit.WithPorts(genmod.Upstream{
		Policy:    mp.Policy,
		Moderator: mp.Moderator,
		Completer: mp.Completer,
	}))

	pingers := map[string]repokit.Pinger{}
	for name, p := range opt.Store.Pingers() {
		pingers[name] = p
	}
	meta := metamod.New(deps, modkit.WithPorts(metamod.Options{Pingers: pingers}))

	mods := []module.Module{meta, moderation, generate}

	stack := httpkit.CommonStack(
		apiCfg.MayDuration("TIMEOUT", 100*time.Second),
		middleware.CORSOptions{
			AllowedOrigins:   apiCfg.MayCSV("CORS_ORIGINS", nil),
			AllowCredentials: apiCfg.MayBool("CORS_CREDENTIALS", true),
		},
		apiCfg.MayDuration("SLOW", 2*time.Second),
	)
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		if opt.EnableSwagger {
			swaggerkit.Register(stampVersion)
		}
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		// registers each module's ports under its name, then mounts it under its prefix
		modkit.MountAll(api, mods...)
	})
	return mods
}

// stampVersion reports the running build in the served document
func stampVersion(spec map[string]any) {
	info, ok := spec["info"].(map[string]any)
	if !ok {
		return
	}
	if bi := version.Info("gracewell-api"); bi.Version != "dev" {
		info["version"] = bi.Version
	}
}
