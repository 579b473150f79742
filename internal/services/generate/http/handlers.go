// Package http provides http transport for content generation and draft review
package http

import (
	stdhttp "net/http"

	"gracewell/internal/modkit/httpkit"
	perr "gracewell/internal/platform/errors"
	"gracewell/internal/platform/net/middleware"
	"gracewell/internal/services/generate/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Auth holds the bearer ports guarding the scheduler and reviewer routes
type Auth struct {
	Cron  middleware.AuthPort
	Admin middleware.AuthPort
}

// Register mounts generate endpoints on the given router
func Register(r httpkit.Router, gen domain.GeneratorPort, review domain.ReviewPort, auth Auth) {
	h := &handlers{gen: gen, review: review}

	httpkit.PostJSON[domain.GenerateInput](r, "/generate", h.generate)

	// scheduler trigger
	httpkit.Protected(r, auth.Cron, func(pr httpkit.Router) {
		httpkit.Post(pr, "/weekly", h.weekly)
	})

	// reviewer queue
	httpkit.Protected(r, auth.Admin, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.DraftQuery](pr, "/drafts", h.drafts)
		httpkit.Post(pr, "/drafts/{id}/publish", h.publish)
	})
}

type handlers struct {
	gen    domain.GeneratorPort
	review domain.ReviewPort
}

// swagger:route POST /content/generate Content contentGenerate
// @Summary Draft content for a section and moderate it
// @Description custom_prompt replaces the content type instruction. A draft refused by moderation comes back as 422 with reasons and suggestions.
// @Tags Content
// @Accept json
// @Produce json
// @Param payload body domain.GenerateInput true "Draft request"
// @Success 200 {object} domain.Generated "approved draft"
// @Failure 422 {object} domain.Generated "draft failed moderation"
// @Failure 503 {object} httpkit.Envelope "model unavailable"
// @Router /content/generate [post]
func (h *handlers) generate(r *stdhttp.Request, in domain.GenerateInput) (any, error) {
	out, err := h.gen.Generate(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if !out.Approved {
		return httpkit.Status(stdhttp.StatusUnprocessableEntity, out), nil
	}
	return out, nil
}

// swagger:route POST /content/weekly Content contentWeekly
// @Summary Run the weekly drafting job
// @Description Drafts one piece per section, moderates it and saves approved drafts unpublished. Skipped is true when another scheduler owns the week.
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.WeeklyReport "report"
// @Failure 401 {object} httpkit.Envelope "missing or bad cron secret"
// @Router /content/weekly [post]
func (h *handlers) weekly(r *stdhttp.Request) (any, error) {
	return h.gen.RunWeekly(r.Context(), domain.WeeklyOptions{})
}

// swagger:route POST /content/drafts Content contentDrafts
// @Summary List stored drafts, newest first
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.DraftQuery true "Query"
// @Success 200 {array} domain.Draft "page of drafts"
// @Failure 401 {object} httpkit.Envelope "missing or bad admin token"
// @Router /content/drafts [post]
func (h *handlers) drafts(r *stdhttp.Request, in domain.DraftQuery) (any, error) {
	if in.Limit == 0 {
		in.Limit = domain.DefaultPageSize
	}
	items, total, err := h.review.ListDrafts(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Draft{}
	}
	return httpkit.List(items, total, in.Limit, in.Offset), nil
}

// swagger:route POST /content/drafts/{id}/publish Content contentPublish
// @Summary Publish a reviewed draft
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Draft id"
// @Success 200 {object} domain.Draft "published draft"
// @Failure 404 {object} httpkit.Envelope "no such draft"
// @Router /content/drafts/{id}/publish [post]
func (h *handlers) publish(r *stdhttp.Request) (any, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, perr.WithField(perr.New(perr.ErrorCodeValidation, "id must be a uuid"), "id")
	}
	return h.review.Publish(r.Context(), id)
}
