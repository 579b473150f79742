// @title         Gracewell API
// @version       0.3.0
// @description   Content moderation and drafting for a faith based wellness site

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gracewell/internal/platform/config"
	"gracewell/internal/platform/logger"
	phttp "gracewell/internal/platform/net/http"
	"gracewell/internal/platform/store"
	"gracewell/internal/platform/store/migrate"

	"gracewell/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	logger.Init(logger.FromEnv())
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// postgres, clickhouse and nats are each optional; without postgres the api runs stateless
	stCfg := store.FromEnv(root, "api", false)
	if stCfg.PG.Enabled && apiCfg.MayBool("MIGRATE", true) {
		if err := migrate.Up(ctx, stCfg.PG.URL); err != nil {
			l.Panic().Err(err).Msg("migrate.Up failed")
		}
	}

	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT and timeouts)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
