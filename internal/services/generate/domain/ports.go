package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrLeaseHeld signals another scheduler owns the week already
var ErrLeaseHeld = errors.New("generate: weekly lease already held")

// DraftStore persists generated drafts for review
type DraftStore interface {
	Save(ctx context.Context, d Draft) error
	List(ctx context.Context, q DraftQuery) ([]Draft, int, error)
	Publish(ctx context.Context, id uuid.UUID) (Draft, error)
}

// LeaseFunc runs do only when this process owns key
// implementations return an error wrapping ErrLeaseHeld when another owner has it
type LeaseFunc func(ctx context.Context, key string, do func(context.Context) (Tally, error)) error

// GeneratorPort is the module's public surface
type GeneratorPort interface {
	Generate(ctx context.Context, in GenerateInput) (Generated, error)
	RunWeekly(ctx context.Context, opt WeeklyOptions) (WeeklyReport, error)
}

// ReviewPort is the draft review surface
type ReviewPort interface {
	ListDrafts(ctx context.Context, q DraftQuery) ([]Draft, int, error)
	Publish(ctx context.Context, id uuid.UUID) (Draft, error)
}
