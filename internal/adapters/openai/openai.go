// Package openai adapts the OpenAI moderation and chat completion endpoints to the moderation ports
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gracewell/internal/platform/config"
	perr "gracewell/internal/platform/errors"
	"gracewell/internal/services/moderation/domain"

	goopenai "github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey means the adapter was asked for without credentials
var ErrNoAPIKey = errors.New("openai: api key not configured")

// Config holds client settings
type Config struct {
	APIKey          string
	BaseURL         string
	ModerationModel string
	Timeout         time.Duration
}

// FromConfig reads SERVICE_OPENAI_*
// API_KEY is required for remote checks; without it they fail closed
// BASE_URL points at a compatible gateway; MODERATION_MODEL empty uses the server default
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("SERVICE_OPENAI_")
	return Config{
		APIKey:          c.MayString("API_KEY", ""),
		BaseURL:         c.MayString("BASE_URL", ""),
		ModerationModel: c.MayString("MODERATION_MODEL", ""),
		Timeout:         c.MayDuration("TIMEOUT", 60*time.Second),
	}
}

// Client implements domain.ClassifierPort and domain.CompleterPort
type Client struct {
	api        *goopenai.Client
	modelModer string
}

var (
	_ domain.ClassifierPort = (*Client)(nil)
	_ domain.CompleterPort  = (*Client)(nil)
)

// New builds a client; the http client carries the overall timeout, callers add tighter ones per call
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	oc := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Client{api: goopenai.NewClientWithConfig(oc), modelModer: cfg.ModerationModel}, nil
}

// Classify runs the moderation endpoint
// flagged categories come back in the order of the category schema
func (c *Client) Classify(ctx context.Context, text string) (domain.Classification, error) {
	resp, err := c.api.Moderations(ctx, goopenai.ModerationRequest{Input: text, Model: c.modelModer})
	if err != nil {
		return domain.Classification{}, remote(err, "moderation request")
	}
	if len(resp.Results) == 0 {
		return domain.Classification{}, perr.Unavailablef("moderation response had no results")
	}
	res := resp.Results[0]
	cats, err := flaggedCategories(res.Categories)
	if err != nil {
		return domain.Classification{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "decode moderation categories")
	}
	return domain.Classification{Flagged: res.Flagged, Categories: cats}, nil
}

// Complete runs one system plus user chat completion and returns the first choice
func (c *Client) Complete(ctx context.Context, in domain.Completion) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       in.Model,
		MaxTokens:   in.MaxTokens,
		Temperature: in.Temperature,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: in.System},
			{Role: goopenai.ChatMessageRoleUser, Content: in.Prompt},
		},
	}
	if req.Model == "" {
		req.Model = goopenai.GPT4
	}
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", remote(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// flaggedCategories walks the category object in field order and keeps the true ones
func flaggedCategories(categories any) ([]string, error) {
	raw, err := json.Marshal(categories)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, fmt.Errorf("categories: want object, got %v (%v)", tok, err)
	}
	var out []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var flagged bool
		if err := dec.Decode(&flagged); err != nil {
			return nil, fmt.Errorf("categories: %s: %w", key, err)
		}
		if flagged {
			out = append(out, key)
		}
	}
	return out, nil
}

// remote maps client errors to project errors; auth failures are not transient
func remote(err error, msg string) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return perr.Wrap(err, perr.ErrorCodeUnauthorized, "openai rejected credentials")
		case http.StatusTooManyRequests:
			return perr.Wrap(err, perr.ErrorCodeTooManyRequests, msg)
		}
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, msg)
}
