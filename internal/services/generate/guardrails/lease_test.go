package guardrails

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	perr "gracewell/internal/platform/errors"
	"gracewell/internal/platform/store"
	"gracewell/internal/services/generate/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type boolRow struct {
	claimed bool
	err     error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if !r.claimed {
		return pgx.ErrNoRows
	}
	*(dest[0].(*bool)) = true
	return nil
}

type leaseTx struct {
	claimed bool
	scanErr error
	execs   []string
	args    [][]any
}

func (l *leaseTx) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	l.execs = append(l.execs, sql)
	l.args = append(l.args, args)
	return nil, nil
}
func (l *leaseTx) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (l *leaseTx) QueryRow(context.Context, string, ...any) store.Row {
	return boolRow{claimed: l.claimed, err: l.scanErr}
}
func (l *leaseTx) Tx(_ context.Context, fn func(store.RowQuerier) error) error {
	return fn(l)
}

func TestRunLease(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		claimed  bool
		tally    domain.Tally
		runErr   error
		ran      bool
		finished bool
		wantErr  error
	}{
		{"held", false, domain.Tally{}, nil, false, false, domain.ErrLeaseHeld},
		{"finished", true, domain.Tally{Saved: 5, Rejected: 1}, nil, true, true, nil},
		{"all failed releases", true, domain.Tally{Failed: 6}, nil, true, false, nil},
		{"run error releases", true, domain.Tally{Saved: 1}, context.Canceled, true, false, context.Canceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tx := &leaseTx{claimed: tc.claimed}
			lease := MakeRunLease(tx, "weekly", time.Minute)

			ran := false
			err := lease(context.Background(), "weekly:2026-W42", func(context.Context) (domain.Tally, error) {
				ran = true
				return tc.tally, tc.runErr
			})
			if !errors.Is(err, tc.wantErr) || (tc.wantErr == nil && err != nil) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if ran != tc.ran {
				t.Fatalf("ran = %v", ran)
			}
			if !tc.ran {
				if len(tx.execs) != 0 {
					t.Fatalf("held lease must not touch the row")
				}
				return
			}
			if len(tx.execs) != 1 {
				t.Fatalf("want one bookkeeping statement, got %d", len(tx.execs))
			}
			if got := strings.Contains(tx.execs[0], "finished_at = now()"); got != tc.finished {
				t.Fatalf("finished = %v, statement %q", got, tx.execs[0])
			}
			if owner, _ := tx.args[0][1].(string); !strings.HasPrefix(owner, "weekly:") {
				t.Fatalf("owner = %q", owner)
			}
		})
	}
}

func TestRunLease_ClaimFailureSurfaces(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		err  error
		code perr.ErrorCode
	}{
		{"missing table", &pgconn.PgError{Code: "42P01", Message: `relation "generation_runs" does not exist`}, perr.ErrorCodeDB},
		{"connection lost", errors.New("conn closed"), perr.ErrorCodeDB},
		{"server starting", &pgconn.PgError{Code: "57P03"}, perr.ErrorCodeUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tx := &leaseTx{claimed: true, scanErr: tc.err}
			lease := MakeRunLease(tx, "weekly", time.Minute)

			ran := false
			err := lease(context.Background(), "weekly:2026-W42", func(context.Context) (domain.Tally, error) {
				ran = true
				return domain.Tally{}, nil
			})
			if err == nil || errors.Is(err, domain.ErrLeaseHeld) {
				t.Fatalf("err = %v, want the claim failure", err)
			}
			if !errors.Is(err, tc.err) || !perr.IsCode(err, tc.code) {
				t.Fatalf("err = %v, want code %d wrapping %v", err, tc.code, tc.err)
			}
			if ran || len(tx.execs) != 0 {
				t.Fatalf("a failed claim must not run or touch the row")
			}
		})
	}
}
