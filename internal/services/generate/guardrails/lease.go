// Package guardrails provides the weekly run lease so two schedulers never draft the same week
package guardrails

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gracewell/internal/modkit/repokit"
	perr "gracewell/internal/platform/errors"
	"gracewell/internal/platform/logger"
	"gracewell/internal/services/generate/domain"

	"github.com/jackc/pgx/v5"
)

// MakeRunLease claims a generation_runs row keyed by run key (auto reclaim via lease_expires_at)
// a finished row is never reclaimed; a run that saved nothing and failed somewhere releases
// the lease instead so the next scheduler tick retries the week
func MakeRunLease(tx repokit.TxRunner, owner string, ttl time.Duration) domain.LeaseFunc {
	owner = fmt.Sprintf("%s:%d", owner, os.Getpid())

	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	toInterval := func(d time.Duration) string { return fmt.Sprintf("%d seconds", int64(d/time.Second)) }

	return func(ctx context.Context, key string, do func(context.Context) (domain.Tally, error)) error {
		var claimed bool
		if err := tx.Tx(ctx, func(q repokit.Queryer) error {
			row := q.QueryRow(ctx, `
				INSERT INTO generation_runs (run_key, lease_owner, lease_claimed_at, lease_expires_at)
				VALUES ($1, $2, now(), now() + ($3)::interval)
				ON CONFLICT (run_key) DO UPDATE
				   SET lease_owner = EXCLUDED.lease_owner,
				       lease_claimed_at = now(),
				       lease_expires_at = EXCLUDED.lease_expires_at
				 WHERE generation_runs.finished_at IS NULL
				   AND generation_runs.lease_expires_at <= now()
				RETURNING true
			`, key, owner, toInterval(ttl))
			err := row.Scan(&claimed)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil // held by another owner or already finished
			}
			return perr.FromPostgres(err, "claim weekly lease")
		}); err != nil {
			return err
		}
		if !claimed {
			return fmt.Errorf("%w: %s", domain.ErrLeaseHeld, key)
		}

		tally, runErr := do(ctx)

		// bookkeeping must land even when the run's ctx was cancelled
		bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()

		var err error
		if runErr != nil || (tally.Saved == 0 && tally.Failed > 0) {
			_, err = tx.Exec(bctx, `
				UPDATE generation_runs SET lease_expires_at = now()
				 WHERE run_key = $1 AND lease_owner = $2`, key, owner)
		} else {
			_, err = tx.Exec(bctx, `
				UPDATE generation_runs
				   SET finished_at = now(), lease_expires_at = now(), saved = $3, rejected = $4, failed = $5
				 WHERE run_key = $1 AND lease_owner = $2`,
				key, owner, tally.Saved, tally.Rejected, tally.Failed)
		}
		if err != nil {
			logger.C(ctx).Error().Err(err).Str("run_key", key).Msg("generate: lease bookkeeping failed")
		}
		return runErr
	}
}
