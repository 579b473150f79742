// Package domain defines moderation types and ports
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Section is a site content section; unknown values are accepted
type Section string

// Known sections
const (
	SectionBiblicalWellness Section = "biblical-wellness"
	SectionNutrition        Section = "nutrition"
	SectionExercise         Section = "exercise"
	SectionMentalHealth     Section = "mental-health"
	SectionCommunity        Section = "community"
	SectionResources        Section = "resources"
)

// Request is one candidate text and its target section
type Request struct {
	Content string  `json:"content" validate:"required,max=50000" example:"Rest in the Lord and pray without ceasing."`
	Section Section `json:"section" validate:"required,max=64" example:"biblical-wellness"`
}

// CheckName identifies one of the five checks
type CheckName string

// Checks in execution and merge order
const (
	CheckClassifier CheckName = "classifier"
	CheckKeywords   CheckName = "keywords"
	CheckThemes     CheckName = "themes"
	CheckMedical    CheckName = "medical"
	CheckReview     CheckName = "review"
)

// CheckOrder is the fixed order verdicts are merged in
var CheckOrder = []CheckName{CheckClassifier, CheckKeywords, CheckThemes, CheckMedical, CheckReview}

// CheckVerdict is the outcome of one check
// Confidence is the check's certainty of a problem; it never feeds the aggregate
type CheckVerdict struct {
	Check      CheckName `json:"check"`
	Approved   bool      `json:"approved"`
	Reasons    []string  `json:"reasons,omitempty"`
	Confidence float64   `json:"confidence"`
	Detail     []string  `json:"detail,omitempty"`
}

// Result is the aggregate decision
type Result struct {
	IsApproved     bool     `json:"is_approved" example:"false"`
	FlaggedReasons []string `json:"flagged_reasons"`
	Confidence     float64  `json:"confidence" example:"0.7"`
	Suggestions    []string `json:"suggestions,omitempty"`

	Checks []CheckVerdict `json:"-"`
}

// AggregateConfidence maps the number of flagged reasons to the aggregate score
// it counts reasons, not failing checks, and ignores per check confidence
func AggregateConfidence(flags int) float64 {
	switch {
	case flags <= 0:
		return 0.95
	case flags == 1:
		return 0.70
	case flags == 2:
		return 0.40
	default:
		return 0.10
	}
}

// Classification is the external classifier's answer
// Categories holds the flagged categories in the order the classifier reported them
type Classification struct {
	Flagged    bool
	Categories []string
}

// Completion is one chat completion request
type Completion struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Audit is the append only record of one moderation call
type Audit struct {
	ID        uuid.UUID
	RequestID string
	Source    string
	Request   Request
	Result    Result
	At        time.Time
}

// Event is the analytics form of a decision; it carries no content
type Event struct {
	ID         uuid.UUID      `json:"id"`
	RequestID  string         `json:"request_id,omitempty"`
	Source     string         `json:"source"`
	Section    Section        `json:"section"`
	Approved   bool           `json:"approved"`
	Confidence float64        `json:"confidence"`
	Reasons    []string       `json:"reasons"`
	Checks     []CheckVerdict `json:"checks"`
	ContentLen int            `json:"content_len"`
	At         time.Time      `json:"at"`
}

// EventFrom builds the analytics event for an audit record
func EventFrom(a Audit) Event {
	return Event{
		ID:         a.ID,
		RequestID:  a.RequestID,
		Source:     a.Source,
		Section:    a.Request.Section,
		Approved:   a.Result.IsApproved,
		Confidence: a.Result.Confidence,
		Reasons:    a.Result.FlaggedReasons,
		Checks:     a.Result.Checks,
		ContentLen: len([]rune(a.Request.Content)),
		At:         a.At,
	}
}

// AuditRow is one stored audit as listed to reviewers
type AuditRow struct {
	ID             uuid.UUID      `json:"id"`
	RequestID      string         `json:"request_id,omitempty"`
	Source         string         `json:"source"`
	Section        string         `json:"section"`
	Content        string         `json:"content"`
	IsApproved     bool           `json:"is_approved"`
	FlaggedReasons []string       `json:"flagged_reasons"`
	Suggestions    []string       `json:"suggestions"`
	Confidence     float64        `json:"confidence"`
	Checks         []CheckVerdict `json:"checks"`
	CreatedAt      time.Time      `json:"created_at"`
}

// DefaultPageSize is the page length used when a query leaves limit unset
const DefaultPageSize = 50

// AuditQuery pages the audit trail; a zero limit means the default page
type AuditQuery struct {
	RejectedOnly bool `json:"rejected_only" example:"true"`
	Limit        int  `json:"limit" validate:"min=0,max=200" example:"50"`
	Offset       int  `json:"offset" validate:"min=0" example:"0"`
}
