// Package service runs the five moderation checks and folds them into one decision
package service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"gracewell/internal/core/policy"
	"gracewell/internal/platform/logger"
	pnet "gracewell/internal/platform/net"
	"gracewell/internal/services/moderation/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config tunes the pipeline
type Config struct {
	// RemoteTimeout bounds each classifier and review call; a timeout is a remote failure
	RemoteTimeout time.Duration
}

// Service is stateless per call; it holds read only policy and injected clients
type Service struct {
	pol        *policy.Policy
	classifier domain.ClassifierPort
	completer  domain.CompleterPort
	audit      domain.AuditPort
	events     domain.EventSink
	cfg        Config
	now        func() time.Time
}

// New constructs the service; nil remote ports behave as unavailable and fail closed
func New(pol *policy.Policy, classifier domain.ClassifierPort, completer domain.CompleterPort, cfg Config) *Service {
	if pol == nil {
		panic("moderation.Service requires a non nil policy")
	}
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = 20 * time.Second
	}
	return &Service{pol: pol, classifier: classifier, completer: completer, cfg: cfg, now: time.Now}
}

// WithRecorders attaches the optional audit store and event sink used by Check
func (s *Service) WithRecorders(audit domain.AuditPort, events domain.EventSink) *Service {
	s.audit = audit
	s.events = events
	return s
}

type check func(ctx context.Context, req domain.Request) domain.CheckVerdict

func (s *Service) checks() []check {
	return []check{s.classify, s.keywords, s.themes, s.medical, s.review}
}

// Moderate runs every check and aggregates; it never errors and never returns a partial result
func (s *Service) Moderate(ctx context.Context, req domain.Request) (res domain.Result) {
	log := logger.C(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("moderation: aggregate panicked")
			res = s.systemError(req.Section)
		}
	}()

	checks := s.checks()
	verdicts := make([]domain.CheckVerdict, len(checks))
	panics := make([]any, len(checks))

	g, gctx := errgroup.WithContext(ctx)
	for i, run := range checks {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					panics[i] = r
					log.Error().Interface("panic", r).Str("check", string(domain.CheckOrder[i])).
						Bytes("stack", debug.Stack()).Msg("moderation: check panicked")
				}
			}()
			verdicts[i] = run(gctx, req)
			return nil
		})
	}
	_ = g.Wait()

	for _, p := range panics {
		if p != nil {
			return s.systemError(req.Section)
		}
	}
	for _, v := range verdicts {
		log.Debug().
			Str("check", string(v.Check)).
			Bool("approved", v.Approved).
			Float64("confidence", v.Confidence).
			Strs("reasons", v.Reasons).
			Strs("detail", v.Detail).
			Msg("moderation: check verdict")
	}
	return s.aggregate(req.Section, verdicts)
}

// aggregate merges verdicts in check order
func (s *Service) aggregate(section domain.Section, verdicts []domain.CheckVerdict) domain.Result {
	res := domain.Result{IsApproved: true, FlaggedReasons: []string{}, Checks: verdicts}
	for _, v := range verdicts {
		if v.Approved {
			continue
		}
		res.IsApproved = false
		res.FlaggedReasons = append(res.FlaggedReasons, v.Reasons...)
	}
	// a check that refuses without saying why would break approval == no reasons
	if !res.IsApproved && len(res.FlaggedReasons) == 0 {
		panic("moderation: rejecting check produced no reason")
	}
	res.Confidence = domain.AggregateConfidence(len(res.FlaggedReasons))
	if !res.IsApproved {
		res.Suggestions = s.suggest(res.FlaggedReasons, section)
	}
	return res
}

func (s *Service) systemError(section domain.Section) domain.Result {
	reasons := []string{s.pol.Reasons.SystemError}
	return domain.Result{
		IsApproved:     false,
		FlaggedReasons: reasons,
		Confidence:     0,
		Suggestions:    s.suggest(reasons, section),
	}
}

// Check moderates req and records the decision; recording failures are logged, never returned
func (s *Service) Check(ctx context.Context, req domain.Request, source string) domain.Result {
	res := s.Moderate(ctx, req)
	if s.audit == nil && s.events == nil {
		return res
	}

	a := domain.Audit{
		ID:        uuid.New(),
		RequestID: pnet.RequestID(ctx),
		Source:    source,
		Request:   req,
		Result:    res,
		At:        s.now().UTC(),
	}
	log := logger.C(ctx).With().Str("audit_id", a.ID.String()).Str("source", source).Logger()
	if s.audit != nil {
		if err := s.audit.Record(ctx, a); err != nil {
			log.Error().Err(err).Msg("moderation: audit record failed")
		}
	}
	if s.events != nil {
		if err := s.events.Publish(ctx, domain.EventFrom(a)); err != nil {
			log.Warn().Err(err).Msg("moderation: event publish failed")
		}
	}
	log.Info().
		Bool("approved", res.IsApproved).
		Int("flags", len(res.FlaggedReasons)).
		Float64("confidence", res.Confidence).
		Msg("moderation: decision")
	return res
}

func (s *Service) remoteCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.RemoteTimeout)
}

func errUnconfigured(port string) error { return fmt.Errorf("%s not configured", port) }
