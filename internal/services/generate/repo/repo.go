// Package repo provides the generated content repository
package repo

import (
	"context"

	"gracewell/internal/core/normalize"
	"gracewell/internal/modkit/repokit"
	perr "gracewell/internal/platform/errors"
	"gracewell/internal/platform/store"
	"gracewell/internal/services/generate/domain"

	"github.com/google/uuid"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[domain.DraftStore] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.DraftStore { return &pg{q: q} }

const draftCols = `id, section, content_type, content, moderation_score, flagged_reasons, generated_at, is_published, published_at`

// Save implements domain.DraftStore
func (s *pg) Save(ctx context.Context, d domain.Draft) error {
	reasons := d.FlaggedReasons
	if reasons == nil {
		reasons = []string{}
	}
	err := store.ExecOne(ctx, s.q, `
		INSERT INTO generated_content (`+draftCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, NULL)`,
		d.ID, d.Section, d.ContentType, normalize.Sanitize(d.Content), d.ModerationScore, reasons, d.GeneratedAt,
	)
	return perr.FromPostgres(err, "insert draft")
}

// List implements domain.DraftStore; newest first
func (s *pg) List(ctx context.Context, q domain.DraftQuery) ([]domain.Draft, int, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	const where = `
		 WHERE ($1 = '' OR section = $1)
		   AND ($2::boolean IS NULL OR is_published = $2::boolean)`

	total, err := store.Scalar[int](ctx, s.q, `SELECT count(*)::int FROM generated_content`+where, q.Section, q.Published)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "count drafts")
	}
	rows, err := store.Many(ctx, s.q, scanDraft,
		`SELECT `+draftCols+` FROM generated_content`+where+`
		 ORDER BY generated_at DESC, id
		 LIMIT $3 OFFSET $4`, q.Section, q.Published, limit, q.Offset)
	if err != nil {
		return nil, 0, perr.FromPostgres(err, "list drafts")
	}
	return rows, total, nil
}

// Publish implements domain.DraftStore; publishing twice keeps the first published_at
func (s *pg) Publish(ctx context.Context, id uuid.UUID) (domain.Draft, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE generated_content
		   SET is_published = true, published_at = coalesce(published_at, now())
		 WHERE id = $1
		RETURNING `+draftCols, id)
	d, err := scanDraft(row)
	if err != nil {
		return domain.Draft{}, perr.FromPostgres(err, "publish draft")
	}
	return d, nil
}

func scanDraft(r store.Row) (domain.Draft, error) {
	var d domain.Draft
	err := r.Scan(&d.ID, &d.Section, &d.ContentType, &d.Content, &d.ModerationScore, &d.FlaggedReasons,
		&d.GeneratedAt, &d.IsPublished, &d.PublishedAt)
	return d, err
}
