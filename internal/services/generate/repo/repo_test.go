package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	perr "gracewell/internal/platform/errors"
	"gracewell/internal/platform/store"
	"gracewell/internal/services/generate/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type tag int64

func (t tag) String() string      { return "INSERT 0 1" }
func (t tag) RowsAffected() int64 { return int64(t) }

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type captureQ struct {
	sql  string
	args []any
	row  store.Row
}

func (c *captureQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	c.sql, c.args = sql, args
	return tag(1), nil
}
func (c *captureQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (c *captureQ) QueryRow(_ context.Context, sql string, args ...any) store.Row {
	c.sql, c.args = sql, args
	return c.row
}

func TestSave(t *testing.T) {
	t.Parallel()
	q := &captureQ{}
	d := domain.Draft{
		ID:              uuid.New(),
		Section:         "nutrition",
		ContentType:     "tips",
		Content:         "Eat\x00 bread with thanks",
		ModerationScore: 0.95,
		GeneratedAt:     time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}
	if err := NewPG().Bind(q).Save(context.Background(), d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.Contains(q.sql, "INSERT INTO generated_content") || len(q.args) != 7 {
		t.Fatalf("unexpected statement %q with %d args", q.sql, len(q.args))
	}
	if q.args[3] != "Eat bread with thanks" {
		t.Fatalf("content not sanitized: %q", q.args[3])
	}
	if reasons, ok := q.args[5].([]string); !ok || reasons == nil {
		t.Fatalf("nil reasons must be stored as an empty array, got %#v", q.args[5])
	}
}

func TestPublish_Missing(t *testing.T) {
	t.Parallel()
	q := &captureQ{row: errRow{err: pgx.ErrNoRows}}
	_, err := NewPG().Bind(q).Publish(context.Background(), uuid.New())
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
	if !strings.Contains(q.sql, "coalesce(published_at, now())") {
		t.Fatalf("publish should keep the first published_at: %q", q.sql)
	}
}
