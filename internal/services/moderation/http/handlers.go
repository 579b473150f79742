// Package http provides http transport for moderation
package http

import (
	stdhttp "net/http"

	"gracewell/internal/modkit/httpkit"
	perr "gracewell/internal/platform/errors"
	"gracewell/internal/platform/net/middleware"
	"gracewell/internal/services/moderation/domain"
)

// Register mounts moderation endpoints; audits is nil when postgres is off
func Register(r httpkit.Router, mod domain.ModeratorPort, audits domain.AuditReader, admin middleware.AuthPort) {
	h := &handlers{mod: mod, audits: audits}

	httpkit.PostJSON[domain.Request](r, "/check", h.check)

	httpkit.Protected(r, admin, func(pr httpkit.Router) {
		httpkit.PostJSON[domain.AuditQuery](pr, "/audits", h.recent)
	})
}

type handlers struct {
	mod    domain.ModeratorPort
	audits domain.AuditReader
}

// swagger:route POST /moderation/check Moderation moderationCheck
// @Summary Moderate a piece of content for a site section
// @Description Runs the classifier, keyword, theme, medical claim and AI review checks and returns one decision.
// @Description A rejection is still a 200; inspect is_approved.
// @Tags Moderation
// @Accept json
// @Produce json
// @Param payload body domain.Request true "Content and section"
// @Success 200 {object} domain.Result "decision"
// @Router /moderation/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.Request) (any, error) {
	return h.mod.Check(r.Context(), in, "api"), nil
}

type auditPage struct {
	Items []domain.AuditRow `json:"items"`
	Page  httpkit.Page      `json:"page"`
}

// swagger:route POST /moderation/audits Moderation moderationAudits
// @Summary List stored moderation decisions, newest first
// @Tags Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body domain.AuditQuery true "Query"
// @Success 200 {object} auditPage "page of audits"
// @Failure 401 {object} httpkit.Envelope "missing or bad admin token"
// @Failure 503 {object} httpkit.Envelope "audit storage not configured"
// @Router /moderation/audits [post]
func (h *handlers) recent(r *stdhttp.Request, in domain.AuditQuery) (any, error) {
	if h.audits == nil {
		return nil, perr.Unavailablef("audit storage not configured")
	}
	if in.Limit == 0 {
		in.Limit = domain.DefaultPageSize
	}
	rows, total, err := h.audits.Recent(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.AuditRow{}
	}
	return httpkit.List(rows, total, in.Limit, in.Offset), nil
}
