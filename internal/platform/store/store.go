// Package store opens the optional storage and messaging backends behind small seams
package store

import (
	"context"
	"errors"
	"fmt"

	"gracewell/internal/platform/logger"
)

// Store holds whichever backends were enabled; nil fields are disabled backends
type Store struct {
	Log logger.Logger

	// PG is the postgres seam
	PG TxRunner

	// CH is the clickhouse seam
	CH Clickhouse

	// Bus is the nats seam
	Bus Bus
}

// Row is the scan contract of a single row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports a write result
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the sql surface repos use
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner adds transactions to RowQuerier
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar write seam
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Close() error
}

// Bus publishes raw messages to a subject
type Bus interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Close() error
}

// Pinger reports readiness
type Pinger interface{ Ping(context.Context) error }

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger handed to the backends
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// Open connects every enabled backend; on failure the ones already opened are closed
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	fail := func(err error) (*Store, error) {
		_ = s.Close(context.Background())
		return nil, err
	}

	if cfg.PG.Enabled {
		p, err := openPG(ctx, cfg, s)
		if err != nil {
			return fail(fmt.Errorf("pg: %w", err))
		}
		s.PG = p
	}
	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg)
		if err != nil {
			return fail(fmt.Errorf("clickhouse: %w", err))
		}
		s.CH = c
	}
	if cfg.NATS.Enabled {
		b, err := openBus(ctx, cfg, s)
		if err != nil {
			return fail(fmt.Errorf("nats: %w", err))
		}
		s.Bus = b
	}

	s.Log.Info().
		Bool("pg", s.PG != nil).
		Bool("clickhouse", s.CH != nil).
		Bool("nats", s.Bus != nil).
		Msg("store open")
	return s, nil
}

// Pingers lists the enabled backends that can report readiness, keyed by name
func (s *Store) Pingers() map[string]Pinger {
	out := map[string]Pinger{}
	if s == nil {
		return out
	}
	if p, ok := s.PG.(Pinger); ok {
		out["pg"] = p
	}
	if p, ok := s.CH.(Pinger); ok {
		out["clickhouse"] = p
	}
	if p, ok := s.Bus.(Pinger); ok {
		out["nats"] = p
	}
	return out
}

// Guard pings every enabled backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for name, p := range s.Pingers() {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes the enabled backends, bus first so in flight publishes drain before the databases go
func (s *Store) Close(_ context.Context) error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.Bus != nil {
		errs = append(errs, s.Bus.Close())
	}
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
