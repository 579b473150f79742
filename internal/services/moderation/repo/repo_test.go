package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gracewell/internal/platform/store"
	"gracewell/internal/services/moderation/domain"

	"github.com/google/uuid"
)

type tag int64

func (t tag) String() string      { return "INSERT 0 1" }
func (t tag) RowsAffected() int64 { return int64(t) }

type captureQ struct {
	sql  string
	args []any
	n    int64
}

func (c *captureQ) Exec(_ context.Context, sql string, args ...any) (store.CommandTag, error) {
	c.sql, c.args = sql, args
	return tag(c.n), nil
}
func (c *captureQ) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (c *captureQ) QueryRow(context.Context, string, ...any) store.Row        { return nil }

func sampleAudit() domain.Audit {
	return domain.Audit{
		ID:        uuid.New(),
		RequestID: "req-1",
		Source:    "api",
		Request:   domain.Request{Content: "Trust God\x00 always", Section: domain.SectionNutrition},
		Result: domain.Result{
			IsApproved:     true,
			FlaggedReasons: []string{},
			Confidence:     0.95,
			Checks:         []domain.CheckVerdict{{Check: domain.CheckKeywords, Approved: true, Confidence: 0.1}},
		},
		At: time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC),
	}
}

func TestAudits_Record(t *testing.T) {
	t.Parallel()

	q := &captureQ{n: 1}
	a := sampleAudit()
	if err := Binder().Bind(q).Record(context.Background(), a); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !strings.Contains(q.sql, "INSERT INTO moderation_audits") || len(q.args) != 11 {
		t.Fatalf("unexpected statement %q with %d args", q.sql, len(q.args))
	}
	if q.args[4] != "Trust God always" {
		t.Fatalf("content should be sanitized, got %q", q.args[4])
	}
	if s, ok := q.args[7].([]string); !ok || s == nil {
		t.Fatalf("suggestions must bind as an empty array, got %#v", q.args[7])
	}
	var checks []domain.CheckVerdict
	if err := json.Unmarshal([]byte(q.args[9].(string)), &checks); err != nil || len(checks) != 1 {
		t.Fatalf("checks json = %v (%v)", q.args[9], err)
	}
}

func TestAudits_RecordNoRows(t *testing.T) {
	t.Parallel()

	if err := NewAudits(&captureQ{n: 0}).Record(context.Background(), sampleAudit()); err == nil {
		t.Fatalf("zero rows affected should error")
	}
}

type fakeCH struct {
	table string
	rows  [][]any
	ddl   string
	err   error
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table, f.rows = table, rows
	return f.err
}
func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error { f.ddl = sql; return nil }
func (f *fakeCH) Close() error                                       { return nil }

type fakeBus struct {
	subject string
	data    []byte
	err     error
}

func (f *fakeBus) Publish(_ context.Context, subject string, data []byte) error {
	f.subject, f.data = subject, data
	return f.err
}
func (f *fakeBus) Close() error { return nil }

func TestNewEvents_NilWithoutBackends(t *testing.T) {
	t.Parallel()

	if NewEvents(nil, nil, "") != nil {
		t.Fatalf("no backends should yield a nil sink")
	}
	var e *Events
	if err := e.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("nil sink schema: %v", err)
	}
}

func TestEvents_PublishBoth(t *testing.T) {
	t.Parallel()

	ch, bus := &fakeCH{}, &fakeBus{}
	e := NewEvents(ch, bus, "")
	if err := e.EnsureSchema(context.Background()); err != nil || !strings.Contains(ch.ddl, "CREATE TABLE IF NOT EXISTS moderation_decisions") {
		t.Fatalf("schema not ensured: %v", err)
	}

	ev := domain.EventFrom(sampleAudit())
	if err := e.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if ch.table != DecisionsTable || len(ch.rows) != 1 || len(ch.rows[0]) != 10 {
		t.Fatalf("unexpected insert %s %v", ch.table, ch.rows)
	}
	if ch.rows[0][8] != uint32(len([]rune("Trust God\x00 always"))) {
		t.Fatalf("content_len = %v", ch.rows[0][8])
	}
	if bus.subject != DefaultSubject {
		t.Fatalf("subject = %q", bus.subject)
	}
	var got domain.Event
	if err := json.Unmarshal(bus.data, &got); err != nil || got.ID != ev.ID || got.Source != "api" {
		t.Fatalf("bus payload = %s (%v)", bus.data, err)
	}
}

func TestEvents_JoinsFailures(t *testing.T) {
	t.Parallel()

	chErr, busErr := errors.New("ch down"), errors.New("nats down")
	e := NewEvents(&fakeCH{err: chErr}, &fakeBus{err: busErr}, "custom.subject")
	err := e.Publish(context.Background(), domain.EventFrom(sampleAudit()))
	if !errors.Is(err, chErr) || !errors.Is(err, busErr) {
		t.Fatalf("want both failures joined, got %v", err)
	}
}
