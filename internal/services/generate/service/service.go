// Package service drafts section content with the completion model and gates it through moderation
package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"gracewell/internal/core/policy"
	"gracewell/internal/modkit/repokit"
	perr "gracewell/internal/platform/errors"
	"gracewell/internal/platform/logger"
	pstrings "gracewell/internal/platform/strings"
	"gracewell/internal/services/generate/domain"
	mdom "gracewell/internal/services/moderation/domain"

	"github.com/google/uuid"
)

// Config tunes drafting; zero values fall back to the policy's generation block
type Config struct {
	Model             string
	MaxTokens         int
	Temperature       float32
	WeeklyTemperature float32
	Timeout           time.Duration
}

// Clients bundles what drafting needs from the moderation module
type Clients struct {
	Policy    *policy.Policy
	Moderator mdom.ModeratorPort
	Completer mdom.CompleterPort
}

// Service implements domain.GeneratorPort and domain.ReviewPort
type Service struct {
	tx     repokit.TxRunner
	drafts repokit.Binder[domain.DraftStore]
	pol    *policy.Policy
	mod    mdom.ModeratorPort
	llm    mdom.CompleterPort
	cfg    Config
	lease  domain.LeaseFunc

	now  func() time.Time
	pick func(n int) int
}

var (
	_ domain.GeneratorPort = (*Service)(nil)
	_ domain.ReviewPort    = (*Service)(nil)
)

// New constructs the service
// tx and lease may be nil when postgres is off; drafts are then reported unsaved
func New(tx repokit.TxRunner, drafts repokit.Binder[domain.DraftStore], c Clients, cfg Config, lease domain.LeaseFunc) *Service {
	if c.Policy == nil || c.Moderator == nil {
		panic("generate.Service requires a policy and a moderator")
	}
	g := c.Policy.Generation
	if cfg.Model == "" {
		cfg.Model = g.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = g.MaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = g.Temperature
	}
	if cfg.WeeklyTemperature <= 0 {
		cfg.WeeklyTemperature = g.WeeklyTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	return &Service{
		tx:     tx,
		drafts: drafts,
		pol:    c.Policy,
		mod:    c.Moderator,
		llm:    c.Completer,
		cfg:    cfg,
		lease:  lease,
		now:    time.Now,
		pick:   rand.IntN,
	}
}

// Generate drafts one piece of content and moderates it
// a rejected draft is a normal outcome, reported with Approved false and no error
func (s *Service) Generate(ctx context.Context, in domain.GenerateInput) (domain.Generated, error) {
	section := strings.TrimSpace(in.Section)
	contentType := strings.TrimSpace(in.ContentType)

	text, err := s.draft(ctx, s.pol.Generation.System, s.prompt(section, contentType, in.CustomPrompt), s.cfg.Temperature)
	if err != nil {
		return domain.Generated{}, err
	}

	res := s.mod.Check(ctx, mdom.Request{Content: text, Section: mdom.Section(section)}, "generate")
	out := domain.Generated{
		Section:         section,
		ContentType:     contentType,
		ModerationScore: res.Confidence,
		Timestamp:       s.now().UTC(),
	}
	if out.ContentType == "" {
		out.ContentType = domain.GeneralContentType
	}
	if !res.IsApproved {
		logger.C(ctx).Info().
			Str("section", section).
			Strs("reasons", res.FlaggedReasons).
			Float64("confidence", res.Confidence).
			Msg("generate: draft rejected by moderation")
		out.FlaggedReasons = res.FlaggedReasons
		out.Suggestions = res.Suggestions
		out.RetryRecommended = true
		return out, nil
	}
	out.Approved = true
	out.Content = text
	return out, nil
}

// prompt appends the content type instruction, or the custom request which replaces it
func (s *Service) prompt(section, contentType, custom string) string {
	base := s.pol.SectionPrompt(section)
	if c := strings.TrimSpace(custom); c != "" {
		return base + "\n\nSpecific request: " + c
	}
	return base + "\n\n" + s.pol.ContentInstruction(contentType)
}

func (s *Service) draft(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	if s.llm == nil {
		return "", perr.Unavailablef("content generation not configured")
	}
	cctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.llm.Complete(cctx, mdom.Completion{
		System:      system,
		Prompt:      prompt,
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		if _, ok := perr.As(err); ok {
			return "", err
		}
		return "", perr.Wrap(err, perr.ErrorCodeUnavailable, "generate draft")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", perr.Unavailablef("model returned no content")
	}
	return text, nil
}

// RunWeekly drafts one piece per known section and saves the approved ones for review
// per section failures are reported in the items, never returned
func (s *Service) RunWeekly(ctx context.Context, opt domain.WeeklyOptions) (domain.WeeklyReport, error) {
	now := s.now().UTC()
	rep := domain.WeeklyReport{
		Week:      domain.WeekKey(now),
		DryRun:    opt.DryRun,
		Results:   []domain.WeeklyItem{},
		Timestamp: now,
	}
	log := logger.C(ctx).With().Str("week", rep.Week).Bool("dry_run", opt.DryRun).Logger()

	run := func(ctx context.Context) (domain.Tally, error) {
		var tally domain.Tally
		for _, section := range s.pol.SectionNames() {
			if err := ctx.Err(); err != nil {
				return tally, err
			}
			it := s.weeklyItem(ctx, section, opt.DryRun)
			tally.Add(it)
			rep.Results = append(rep.Results, it)
		}
		log.Info().
			Int("saved", tally.Saved).
			Int("rejected", tally.Rejected).
			Int("failed", tally.Failed).
			Msg("generate: weekly run done")
		return tally, nil
	}

	if opt.DryRun || s.lease == nil {
		_, err := run(ctx)
		return rep, err
	}
	err := s.lease(ctx, rep.Week, run)
	if errors.Is(err, domain.ErrLeaseHeld) {
		log.Info().Msg("generate: weekly run skipped, lease held")
		rep.Skipped = true
		return rep, nil
	}
	return rep, err
}

func (s *Service) weeklyItem(ctx context.Context, section string, dryRun bool) domain.WeeklyItem {
	types := s.pol.ContentTypeNames()
	it := domain.WeeklyItem{Section: section, ContentType: domain.GeneralContentType}
	if len(types) > 0 {
		it.ContentType = types[s.pick(len(types))]
	}
	log := logger.C(ctx).With().Str("section", section).Str("content_type", it.ContentType).Logger()

	text, err := s.draft(ctx, s.pol.Generation.WeeklySystem, s.prompt(section, it.ContentType, ""), s.cfg.WeeklyTemperature)
	if err != nil {
		log.Warn().Err(err).Msg("generate: weekly draft failed")
		it.Error = err.Error()
		return it
	}

	res := s.mod.Check(ctx, mdom.Request{Content: text, Section: mdom.Section(section)}, "weekly")
	if !res.IsApproved {
		log.Info().Strs("reasons", res.FlaggedReasons).Msg("generate: weekly draft rejected")
		it.Error = "content failed moderation"
		it.FlaggedReasons = res.FlaggedReasons
		return it
	}
	it.ModerationScore = res.Confidence

	if dryRun {
		log.Debug().Str("preview", pstrings.Truncate(text, 120)).Msg("generate: dry run draft")
		it.Success = true
		return it
	}
	if s.tx == nil || s.drafts == nil {
		it.Error = "database not configured"
		return it
	}

	d := domain.Draft{
		ID:              uuid.New(),
		Section:         section,
		ContentType:     it.ContentType,
		Content:         text,
		ModerationScore: res.Confidence,
		FlaggedReasons:  res.FlaggedReasons,
		GeneratedAt:     s.now().UTC(),
	}
	if err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		return s.drafts.Bind(q).Save(ctx, d)
	}); err != nil {
		log.Error().Err(err).Msg("generate: save draft failed")
		it.Error = err.Error()
		return it
	}
	it.Success = true
	it.DraftID = &d.ID
	return it
}

// ListDrafts implements domain.ReviewPort
func (s *Service) ListDrafts(ctx context.Context, q domain.DraftQuery) ([]domain.Draft, int, error) {
	if s.tx == nil || s.drafts == nil {
		return nil, 0, perr.Unavailablef("draft storage not configured")
	}
	if q.Limit <= 0 {
		q.Limit = domain.DefaultPageSize
	}
	return s.drafts.Bind(s.tx).List(ctx, q)
}

// Publish implements domain.ReviewPort
func (s *Service) Publish(ctx context.Context, id uuid.UUID) (domain.Draft, error) {
	if s.tx == nil || s.drafts == nil {
		return domain.Draft{}, perr.Unavailablef("draft storage not configured")
	}
	var out domain.Draft
	err := repokit.WithTx(ctx, s.tx, func(q repokit.Queryer) error {
		d, err := s.drafts.Bind(q).Publish(ctx, id)
		out = d
		return err
	})
	if err != nil {
		return domain.Draft{}, err
	}
	logger.C(ctx).Info().Str("draft_id", id.String()).Str("section", out.Section).Msg("generate: draft published")
	return out, nil
}
