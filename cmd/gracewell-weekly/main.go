// Command gracewell-weekly drafts one piece per section for an external scheduler
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"gracewell/internal/modkit"
	"gracewell/internal/modkit/module"
	"gracewell/internal/platform/config"
	"gracewell/internal/platform/logger"
	"gracewell/internal/platform/store"

	gendom "gracewell/internal/services/generate/domain"
	genmod "gracewell/internal/services/generate/module"
	modmod "gracewell/internal/services/moderation/module"
)

func main() {
	fDryRun := flag.Bool("dry-run", false, "generate and moderate without saving drafts or taking the weekly lease")
	flag.Parse()

	root := config.New()
	// stdout carries the json output
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	logger.Init(lo)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// a real run needs postgres for the lease and the drafts table
	st, err := store.Open(ctx, store.FromEnv(root, "weekly", !*fDryRun), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.FromStore(st, root)
	moderation := modmod.New(deps)
	mp := module.MustPortsOf[modmod.Ports](moderation)
	generate := genmod.New(deps, modkit.WithPorts(genmod.Upstream{
		Policy:    mp.Policy,
		Moderator: mp.Moderator,
		Completer: mp.Completer,
	}))

	gen := module.MustPortsOf[gendom.GeneratorPort](generate)
	rep, err := gen.RunWeekly(ctx, gendom.WeeklyOptions{DryRun: *fDryRun})
	if err != nil {
		l.Panic().Err(err).Msg("weekly run failed")
	}

	var tally gendom.Tally
	for _, it := range rep.Results {
		tally.Add(it)
	}
	l.Info().
		Str("week", rep.Week).
		Bool("skipped", rep.Skipped).
		Bool("dry_run", rep.DryRun).
		Int("saved", tally.Saved).
		Int("rejected", tally.Rejected).
		Int("failed", tally.Failed).
		Msg("weekly run done")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		l.Error().Err(err).Msg("write report")
	}
}
