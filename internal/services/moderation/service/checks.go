package service

import (
	"context"
	"fmt"
	"strings"

	"gracewell/internal/core/normalize"
	"gracewell/internal/platform/logger"
	pstrings "gracewell/internal/platform/strings"
	"gracewell/internal/services/moderation/domain"
)

// classify delegates to the external classifier and fails closed on any error
func (s *Service) classify(ctx context.Context, req domain.Request) domain.CheckVerdict {
	v := domain.CheckVerdict{Check: domain.CheckClassifier}
	if s.classifier == nil {
		return s.classifierDown(ctx, v, errUnconfigured("classifier"))
	}

	cctx, cancel := s.remoteCtx(ctx)
	defer cancel()
	c, err := s.classifier.Classify(cctx, req.Content)
	if err != nil {
		return s.classifierDown(ctx, v, err)
	}

	if !c.Flagged {
		v.Approved, v.Confidence = true, 0.1
		return v
	}
	v.Confidence = 0.9
	cats := c.Categories
	if len(cats) == 0 {
		cats = []string{s.pol.Reasons.ClassifierUnspecified}
	}
	for _, cat := range cats {
		v.Reasons = append(v.Reasons, fmt.Sprintf(s.pol.Reasons.ClassifierFlagged, cat))
	}
	return v
}

func (s *Service) classifierDown(ctx context.Context, v domain.CheckVerdict, err error) domain.CheckVerdict {
	logger.C(ctx).Warn().Err(err).Msg("moderation: classifier unavailable, failing closed")
	v.Reasons = []string{s.pol.Reasons.ClassifierUnavailable}
	v.Detail = []string{err.Error()}
	return v
}

// keywords reports every denylisted term present, in denylist order
func (s *Service) keywords(_ context.Context, req domain.Request) domain.CheckVerdict {
	v := domain.CheckVerdict{Check: domain.CheckKeywords, Approved: true, Confidence: 0.1}
	found := s.pol.Keywords.Find(req.Content)
	if len(found) == 0 {
		return v
	}
	v.Approved, v.Confidence = false, 0.8
	for _, kw := range found {
		v.Reasons = append(v.Reasons, fmt.Sprintf(s.pol.Reasons.Keyword, kw))
	}
	return v
}

// themes counts distinct theme words against the section minimum
func (s *Service) themes(_ context.Context, req domain.Request) domain.CheckVerdict {
	section := string(req.Section)
	found := s.pol.Themes.Find(req.Content)
	count, need := len(found), s.pol.MinThemes(section)

	v := domain.CheckVerdict{Check: domain.CheckThemes, Detail: found, Confidence: 0.7}
	if count > 0 {
		v.Confidence = 0.2
	}
	if count == 0 {
		v.Reasons = append(v.Reasons, s.pol.Reasons.NoThemes)
	}
	if s.pol.Strict(section) && count < need {
		v.Reasons = append(v.Reasons, s.pol.Reasons.WeakThemes)
	}
	v.Approved = count > 0 && count >= need
	if !v.Approved && len(v.Reasons) == 0 {
		// only reachable when an override raises min_themes above 1 for every section
		v.Reasons = append(v.Reasons, s.pol.Reasons.WeakThemes)
	}
	return v
}

// medical runs the claim patterns on the original text, spaces unified, and emits one aggregated reason
func (s *Service) medical(_ context.Context, req domain.Request) domain.CheckVerdict {
	v := domain.CheckVerdict{Check: domain.CheckMedical, Approved: true, Confidence: 0.1}
	// \s in the patterns is ASCII only
	text := normalize.Spaces(req.Content)
	for i, re := range s.pol.Medical {
		if re.MatchString(text) {
			v.Detail = append(v.Detail, s.pol.MedicalClaims[i].Reason)
		}
	}
	v.Detail = pstrings.Dedupe(v.Detail)
	if len(v.Detail) > 0 {
		v.Approved, v.Confidence = false, 0.9
		v.Reasons = []string{s.pol.Reasons.Medical}
	}
	return v
}

// review asks the completion model for a verdict; approval is the token APPROVED anywhere in the reply
// "NOT APPROVED" therefore approves, which is the long standing behavior callers rely on
func (s *Service) review(ctx context.Context, req domain.Request) domain.CheckVerdict {
	v := domain.CheckVerdict{Check: domain.CheckReview}
	if s.completer == nil {
		return s.reviewDown(ctx, v, errUnconfigured("reviewer"))
	}

	rc := s.pol.Review
	cctx, cancel := s.remoteCtx(ctx)
	defer cancel()
	reply, err := s.completer.Complete(cctx, domain.Completion{
		System:      rc.System,
		Prompt:      s.pol.ReviewPrompt(string(req.Section), req.Content),
		Model:       rc.Model,
		MaxTokens:   rc.MaxTokens,
		Temperature: rc.Temperature,
	})
	if err != nil {
		return s.reviewDown(ctx, v, err)
	}

	if strings.Contains(strings.ToUpper(reply), "APPROVED") {
		v.Approved, v.Confidence = true, 0.2
		return v
	}
	v.Confidence = 0.8
	v.Reasons = []string{fmt.Sprintf(s.pol.Reasons.Review, reply)}
	return v
}

func (s *Service) reviewDown(ctx context.Context, v domain.CheckVerdict, err error) domain.CheckVerdict {
	logger.C(ctx).Warn().Err(err).Msg("moderation: review unavailable, failing closed")
	v.Confidence = 0.5
	v.Reasons = []string{s.pol.Reasons.ReviewUnavailable}
	v.Detail = []string{err.Error()}
	return v
}
