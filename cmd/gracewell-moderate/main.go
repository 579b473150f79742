// Command gracewell-moderate runs the moderation pipeline over a file or stdin
// exits 1 when the content is rejected and 2 on usage errors
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gracewell/internal/modkit"
	"gracewell/internal/modkit/module"
	"gracewell/internal/platform/config"
	"gracewell/internal/platform/logger"
	"gracewell/internal/platform/net/http/bind"

	"gracewell/internal/services/moderation/domain"
	modmod "gracewell/internal/services/moderation/module"
)

func main() {
	var (
		fSection = flag.String("section", string(domain.SectionCommunity), "site section the content is destined for")
		fFile    = flag.String("file", "-", "file to moderate, - for stdin")
	)
	flag.Parse()

	// stdout carries the json output
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	logger.Init(lo)
	l := logger.Get()

	raw, err := readInput(*fFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	req := domain.Request{Content: string(raw), Section: domain.Section(*fSection)}
	if err := bind.Validate(req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// no store: the cli moderates without auditing
	m := modmod.New(modkit.FromStore(nil, config.New()))
	mod := module.MustPortsOf[modmod.Ports](m).Moderator
	res := mod.Moderate(ctx, req)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		l.Error().Err(err).Msg("write result")
	}
	if !res.IsApproved {
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
