// Package repo stores moderation audits in postgres and fans decision events out to analytics
package repo

import (
	"context"
	"encoding/json"

	"gracewell/internal/core/normalize"
	"gracewell/internal/modkit/repokit"
	perr "gracewell/internal/platform/errors"
	"gracewell/internal/platform/store"
	"gracewell/internal/services/moderation/domain"
)

// Audits is the postgres audit trail; rows are append only
type Audits struct {
	q repokit.Queryer
}

// NewAudits binds the audit trail to q
func NewAudits(q repokit.Queryer) *Audits { return &Audits{q: q} }

// Binder lets callers bind the audit trail inside a tx
func Binder() repokit.Binder[*Audits] { return repokit.BindFunc[*Audits](NewAudits) }

// Record inserts one audit
func (a *Audits) Record(ctx context.Context, rec domain.Audit) error {
	checks, err := json.Marshal(rec.Result.Checks)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode checks")
	}
	suggestions := rec.Result.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	reasons := rec.Result.FlaggedReasons
	if reasons == nil {
		reasons = []string{}
	}
	err = store.ExecOne(ctx, a.q, `
		INSERT INTO moderation_audits
		  (id, request_id, source, section, content, is_approved, flagged_reasons, suggestions, confidence, checks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11)`,
		rec.ID, rec.RequestID, rec.Source, string(rec.Request.Section), normalize.Sanitize(rec.Request.Content),
		rec.Result.IsApproved, reasons, suggestions, rec.Result.Confidence, string(checks), rec.At,
	)
	return perr.FromPostgres(err, "insert moderation audit")
}

// Recent lists audits newest first, optionally only rejected ones
func (a *Audits) Recent(ctx context.Context, q domain.AuditQuery) ([]domain.AuditRow, int, error) {
	rejectedOnly, limit, offset := q.RejectedOnly, q.Limit, q.Offset
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	total, err := store.Scalar[int](ctx, a.q,
		`SELECT count(*)::int FROM moderation_audits WHERE ($1 = false OR is_approved = false)`, rejectedOnly)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "count moderation audits")
	}
	rows, err := store.Many(ctx, a.q, scanAudit, `
		SELECT id, request_id, source, section, content, is_approved, flagged_reasons, suggestions, confidence, checks, created_at
		  FROM moderation_audits
		 WHERE ($1 = false OR is_approved = false)
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`, rejectedOnly, limit, offset)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "list moderation audits")
	}
	return rows, total, nil
}

func scanAudit(r store.Row) (domain.AuditRow, error) {
	var (
		out    domain.AuditRow
		checks []byte
	)
	if err := r.Scan(&out.ID, &out.RequestID, &out.Source, &out.Section, &out.Content, &out.IsApproved,
		&out.FlaggedReasons, &out.Suggestions, &out.Confidence, &checks, &out.CreatedAt); err != nil {
		return domain.AuditRow{}, err
	}
	if len(checks) > 0 {
		if err := json.Unmarshal(checks, &out.Checks); err != nil {
			return domain.AuditRow{}, err
		}
	}
	return out, nil
}
