// Package domain defines content generation types and ports
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GeneralContentType is reported when a request names no content type
const GeneralContentType = "general"

// GenerateInput asks for one draft; CustomPrompt replaces the content type instruction
type GenerateInput struct {
	Section      string `json:"section" validate:"required,nonblank,max=64" example:"nutrition"`
	ContentType  string `json:"content_type,omitempty" validate:"max=32" example:"tips"`
	CustomPrompt string `json:"custom_prompt,omitempty" validate:"max=2000" example:"Focus on seasonal autumn foods"`
}

// Generated is the outcome of one generate call
// a rejected draft carries the reasons and suggestions, never the text
type Generated struct {
	Approved         bool      `json:"approved"`
	Content          string    `json:"content,omitempty"`
	Section          string    `json:"section"`
	ContentType      string    `json:"content_type"`
	ModerationScore  float64   `json:"moderation_score"`
	FlaggedReasons   []string  `json:"flagged_reasons,omitempty"`
	Suggestions      []string  `json:"suggestions,omitempty"`
	RetryRecommended bool      `json:"retry_recommended,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// Draft is stored generated content awaiting or past review
type Draft struct {
	ID              uuid.UUID  `json:"id"`
	Section         string     `json:"section"`
	ContentType     string     `json:"content_type"`
	Content         string     `json:"content"`
	ModerationScore float64    `json:"moderation_score"`
	FlaggedReasons  []string   `json:"flagged_reasons"`
	GeneratedAt     time.Time  `json:"generated_at"`
	IsPublished     bool       `json:"is_published"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
}

// DefaultPageSize is the draft page length used when a query leaves limit unset
const DefaultPageSize = 50

// DraftQuery filters the review queue; nil Published lists both states
type DraftQuery struct {
	Section   string `json:"section,omitempty" validate:"max=64" example:"community"`
	Published *bool  `json:"published,omitempty" example:"false"`
	Limit     int    `json:"limit" validate:"min=0,max=200" example:"50"`
	Offset    int    `json:"offset" validate:"min=0" example:"0"`
}

// WeeklyOptions tunes one weekly run
type WeeklyOptions struct {
	// DryRun generates and moderates but neither saves drafts nor takes the lease
	DryRun bool
}

// WeeklyItem is the per section outcome of a weekly run
type WeeklyItem struct {
	Section         string     `json:"section"`
	ContentType     string     `json:"content_type"`
	Success         bool       `json:"success"`
	DraftID         *uuid.UUID `json:"draft_id,omitempty"`
	ModerationScore float64    `json:"moderation_score,omitempty"`
	FlaggedReasons  []string   `json:"flagged_reasons,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// WeeklyReport summarizes a weekly run; Skipped means another scheduler already owns the week
type WeeklyReport struct {
	Week      string       `json:"week"`
	Skipped   bool         `json:"skipped"`
	DryRun    bool         `json:"dry_run,omitempty"`
	Results   []WeeklyItem `json:"results"`
	Timestamp time.Time    `json:"timestamp"`
}

// Tally counts weekly outcomes
type Tally struct {
	Saved    int
	Rejected int
	Failed   int
}

// Add folds one item into the tally
func (t *Tally) Add(it WeeklyItem) {
	switch {
	case it.Success:
		t.Saved++
	case len(it.FlaggedReasons) > 0:
		t.Rejected++
	default:
		t.Failed++
	}
}

// WeekKey names the lease row for the ISO week containing t
func WeekKey(t time.Time) string {
	y, w := t.UTC().ISOWeek()
	return fmt.Sprintf("weekly:%04d-W%02d", y, w)
}
