// Package policy loads the moderation and generation policy held as data
// The embedded policy.json is the default; an operator file may override any top level block
package policy

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gracewell/internal/core/matcher"

	"gopkg.in/yaml.v3"
)

//go:embed policy.json
var embedded []byte

// Reasons are the reason templates checks emit; %s marks the variable part
type Reasons struct {
	ClassifierFlagged     string `json:"classifier_flagged" yaml:"classifier_flagged"`
	ClassifierUnspecified string `json:"classifier_unspecified" yaml:"classifier_unspecified"`
	ClassifierUnavailable string `json:"classifier_unavailable" yaml:"classifier_unavailable"`
	Keyword               string `json:"keyword" yaml:"keyword"`
	NoThemes              string `json:"no_themes" yaml:"no_themes"`
	WeakThemes            string `json:"weak_themes" yaml:"weak_themes"`
	Medical               string `json:"medical" yaml:"medical"`
	Review                string `json:"review" yaml:"review"`
	ReviewUnavailable     string `json:"review_unavailable" yaml:"review_unavailable"`
	SystemError           string `json:"system_error" yaml:"system_error"`
}

// MedicalClaim is one claim pattern and the label recorded when it matches
type MedicalClaim struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Reason  string `json:"reason" yaml:"reason"`
}

// SuggestionRule fires when any reason contains ReasonContains, or when the section equals Section
type SuggestionRule struct {
	ReasonContains string `json:"reason_contains,omitempty" yaml:"reason_contains,omitempty"`
	Section        string `json:"section,omitempty" yaml:"section,omitempty"`
	Text           string `json:"text" yaml:"text"`
}

// Review configures the secondary model review
type Review struct {
	Model       string  `json:"model" yaml:"model"`
	MaxTokens   int     `json:"max_tokens" yaml:"max_tokens"`
	Temperature float32 `json:"temperature" yaml:"temperature"`
	System      string  `json:"system" yaml:"system"`
	Prompt      string  `json:"prompt" yaml:"prompt"`
}

// Named is a name with its prompt text
type Named struct {
	Name        string `json:"name" yaml:"name"`
	Prompt      string `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Instruction string `json:"instruction,omitempty" yaml:"instruction,omitempty"`
}

// Generation configures drafting
type Generation struct {
	Model              string  `json:"model" yaml:"model"`
	MaxTokens          int     `json:"max_tokens" yaml:"max_tokens"`
	Temperature        float32 `json:"temperature" yaml:"temperature"`
	WeeklyTemperature  float32 `json:"weekly_temperature" yaml:"weekly_temperature"`
	Sections           []Named `json:"sections" yaml:"sections"`
	FallbackPrompt     string  `json:"fallback_prompt" yaml:"fallback_prompt"`
	ContentTypes       []Named `json:"content_types" yaml:"content_types"`
	DefaultInstruction string  `json:"default_instruction" yaml:"default_instruction"`
	System             string  `json:"system" yaml:"system"`
	WeeklySystem       string  `json:"weekly_system" yaml:"weekly_system"`
}

// Document is the policy as written on disk
type Document struct {
	Version            int              `json:"version" yaml:"version"`
	Reasons            Reasons          `json:"reasons" yaml:"reasons"`
	Keywords           []string         `json:"keywords" yaml:"keywords"`
	Themes             []string         `json:"themes" yaml:"themes"`
	MinThemes          int              `json:"min_themes" yaml:"min_themes"`
	StrictSections     map[string]int   `json:"strict_sections" yaml:"strict_sections"`
	MedicalClaims      []MedicalClaim   `json:"medical_claims" yaml:"medical_claims"`
	Suggestions        []SuggestionRule `json:"suggestions" yaml:"suggestions"`
	FallbackSuggestion string           `json:"fallback_suggestion" yaml:"fallback_suggestion"`
	Review             Review           `json:"review" yaml:"review"`
	Generation         Generation       `json:"generation" yaml:"generation"`
}

// Policy is a compiled Document, read only and shared across requests
type Policy struct {
	Document

	Keywords *matcher.Matcher
	Themes   *matcher.Matcher
	Medical  []*regexp.Regexp
}

// Default compiles the embedded policy
func Default() (*Policy, error) {
	doc, err := decodeEmbedded()
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}

// MustDefault is Default for init paths and tests
func MustDefault() *Policy {
	p, err := Default()
	if err != nil {
		panic(err)
	}
	return p
}

// Load compiles the embedded policy overlaid with the file at path
// the file may be yaml or json; blocks it sets replace the embedded ones
func Load(path string) (*Policy, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	doc, err := decodeEmbedded()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("policy: read %s: %w", path, err)
	}
	if err := overlay(&doc, raw); err != nil {
		return nil, fmt.Errorf("policy: parse %s: %w", path, err)
	}
	return Compile(doc)
}

func decodeEmbedded() (Document, error) {
	var doc Document
	if err := json.Unmarshal(embedded, &doc); err != nil {
		return Document{}, fmt.Errorf("policy: parse embedded policy.json: %w", err)
	}
	return doc, nil
}

// overlay decodes raw onto doc; yaml.v3 reads json documents too
func overlay(doc *Document, raw []byte) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(doc)
}

// Compile validates doc and builds the matchers and claim patterns
func Compile(doc Document) (*Policy, error) {
	if doc.Version != 1 {
		return nil, fmt.Errorf("policy: unsupported version %d (want 1)", doc.Version)
	}
	if len(doc.Themes) == 0 {
		return nil, fmt.Errorf("policy: themes must not be empty")
	}
	if doc.MinThemes < 1 {
		doc.MinThemes = 1
	}
	for name, tmpl := range map[string]string{
		"classifier_flagged": doc.Reasons.ClassifierFlagged,
		"keyword":            doc.Reasons.Keyword,
		"review":             doc.Reasons.Review,
	} {
		if strings.Count(tmpl, "%s") != 1 {
			return nil, fmt.Errorf("policy: reason %s needs exactly one %%s", name)
		}
	}
	for _, s := range []string{"{section}", "{content}"} {
		if !strings.Contains(doc.Review.Prompt, s) {
			return nil, fmt.Errorf("policy: review prompt missing %s", s)
		}
	}

	p := &Policy{
		Document: doc,
		Keywords: matcher.New(doc.Keywords),
		Themes:   matcher.New(doc.Themes),
	}
	for _, mc := range doc.MedicalClaims {
		re, err := regexp.Compile(mc.Pattern)
		if err != nil {
			return nil, fmt.Errorf("policy: medical claim %q: %w", mc.Reason, err)
		}
		p.Medical = append(p.Medical, re)
	}
	return p, nil
}

// MinThemes returns how many distinct theme words section requires
func (p *Policy) MinThemes(section string) int {
	if n, ok := p.StrictSections[section]; ok && n > p.Document.MinThemes {
		return n
	}
	return p.Document.MinThemes
}

// Strict reports whether section has a raised theme minimum
func (p *Policy) Strict(section string) bool {
	_, ok := p.StrictSections[section]
	return ok
}

// ReviewPrompt renders the review prompt for one candidate
func (p *Policy) ReviewPrompt(section, content string) string {
	return strings.NewReplacer("{section}", section, "{content}", content).Replace(p.Review.Prompt)
}

// SectionNames lists the known sections in policy order
func (p *Policy) SectionNames() []string {
	out := make([]string, 0, len(p.Generation.Sections))
	for _, s := range p.Generation.Sections {
		out = append(out, s.Name)
	}
	return out
}

// KnownSection reports whether section is one of the configured sections
func (p *Policy) KnownSection(section string) bool {
	for _, s := range p.Generation.Sections {
		if s.Name == section {
			return true
		}
	}
	return false
}

// SectionPrompt returns the drafting prompt for section or the generic fallback
func (p *Policy) SectionPrompt(section string) string {
	for _, s := range p.Generation.Sections {
		if s.Name == section {
			return s.Prompt
		}
	}
	return p.Generation.FallbackPrompt
}

// ContentTypeNames lists the configured content types in policy order
func (p *Policy) ContentTypeNames() []string {
	out := make([]string, 0, len(p.Generation.ContentTypes))
	for _, c := range p.Generation.ContentTypes {
		out = append(out, c.Name)
	}
	return out
}

// ContentInstruction returns the instruction for a content type or the default one
func (p *Policy) ContentInstruction(contentType string) string {
	for _, c := range p.Generation.ContentTypes {
		if c.Name == contentType {
			return c.Instruction
		}
	}
	return p.Generation.DefaultInstruction
}
