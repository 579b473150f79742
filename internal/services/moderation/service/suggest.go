package service

import (
	"strings"

	"gracewell/internal/services/moderation/domain"
)

// suggest applies the policy rules in order; every matching rule fires once
// the fallback keeps a rejection from ever arriving without advice
func (s *Service) suggest(reasons []string, section domain.Section) []string {
	var out []string
	for _, rule := range s.pol.Suggestions {
		switch {
		case rule.ReasonContains != "" && anyContains(reasons, rule.ReasonContains):
			out = append(out, rule.Text)
		case rule.Section != "" && rule.Section == string(section):
			out = append(out, rule.Text)
		}
	}
	if len(out) == 0 {
		out = append(out, s.pol.FallbackSuggestion)
	}
	return out
}

func anyContains(reasons []string, sub string) bool {
	for _, r := range reasons {
		if strings.Contains(r, sub) {
			return true
		}
	}
	return false
}
