package domain

import "context"

// ClassifierPort is a general purpose safety classifier
type ClassifierPort interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// CompleterPort is a chat completion model
type CompleterPort interface {
	Complete(ctx context.Context, c Completion) (string, error)
}

// AuditPort stores audit records
type AuditPort interface {
	Record(ctx context.Context, a Audit) error
}

// AuditReader lists stored audits newest first with the total match count
type AuditReader interface {
	Recent(ctx context.Context, q AuditQuery) ([]AuditRow, int, error)
}

// EventSink publishes decision events for analytics
type EventSink interface {
	Publish(ctx context.Context, e Event) error
}

// ModeratorPort is what other modules use to moderate text
// Moderate is pure; Check also records the decision under source
type ModeratorPort interface {
	Moderate(ctx context.Context, req Request) Result
	Check(ctx context.Context, req Request, source string) Result
}
