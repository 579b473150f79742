package repo

import (
	"context"
	"encoding/json"
	"errors"

	"gracewell/internal/platform/store"
	"gracewell/internal/services/moderation/domain"
)

// DecisionsTable is the clickhouse table decisions land in
const DecisionsTable = "moderation_decisions"

// DefaultSubject is the nats subject decisions are published on
const DefaultSubject = "gracewell.moderation.decided"

const decisionsDDL = `
CREATE TABLE IF NOT EXISTS ` + DecisionsTable + ` (
    id          UUID,
    request_id  String,
    source      LowCardinality(String),
    section     LowCardinality(String),
    approved    Bool,
    confidence  Float64,
    reasons     Array(String),
    checks      String,
    content_len UInt32,
    at          DateTime64(3, 'UTC')
) ENGINE = MergeTree
ORDER BY (section, at)`

// Events writes decisions to clickhouse and nats; either backend may be nil
type Events struct {
	ch      store.Clickhouse
	bus     store.Bus
	subject string
}

// NewEvents returns nil when neither backend is configured so callers can skip the sink
func NewEvents(ch store.Clickhouse, bus store.Bus, subject string) *Events {
	if ch == nil && bus == nil {
		return nil
	}
	if subject == "" {
		subject = DefaultSubject
	}
	return &Events{ch: ch, bus: bus, subject: subject}
}

// EnsureSchema creates the decisions table when clickhouse is configured
func (e *Events) EnsureSchema(ctx context.Context) error {
	if e == nil || e.ch == nil {
		return nil
	}
	return e.ch.Exec(ctx, decisionsDDL)
}

// Publish sends ev to every configured backend and joins their failures
func (e *Events) Publish(ctx context.Context, ev domain.Event) error {
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	var errs []error
	if e.ch != nil {
		checks, err := json.Marshal(ev.Checks)
		if err != nil {
			return err
		}
		reasons := ev.Reasons
		if reasons == nil {
			reasons = []string{}
		}
		row := []any{
			ev.ID, ev.RequestID, ev.Source, string(ev.Section), ev.Approved, ev.Confidence,
			reasons, string(checks), uint32(ev.ContentLen), ev.At,
		}
		if err := e.ch.Insert(ctx, DecisionsTable, [][]any{row}); err != nil {
			errs = append(errs, err)
		}
	}
	if e.bus != nil {
		if err := e.bus.Publish(ctx, e.subject, raw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
