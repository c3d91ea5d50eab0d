// Package genai is a small REST client for the Gemini generateContent endpoint.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"geniemetrics/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 90 * time.Second
	maxBodyBytes   = 64 << 20
)

var (
	ErrMissingAPIKey = fmt.Errorf("%w: gemini api key is not configured", domain.ErrProviderFailure)
	ErrEmptyResponse = fmt.Errorf("%w: gemini returned no content", domain.ErrProviderFailure)
)

// APIError is a non-2xx reply from the API.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini: http %d", e.StatusCode)
	}
	return fmt.Sprintf("gemini: http %d %s: %s", e.StatusCode, e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return domain.ErrProviderFailure }

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
	HTTPClient   *http.Client
	Timeout      time.Duration
	Logger       zerolog.Logger
}

// Client issues one generateContent call per Generate. It never retries.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  zerolog.Logger
}

func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(opts.DefaultModel)
	if model == "" {
		model = defaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		baseURL: baseURL,
		model:   model,
		client:  client,
		logger:  opts.Logger.With().Str("component", "genai").Logger(),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Generate sends req and flattens the first candidate.
func (c *Client) Generate(ctx context.Context, req Request) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = c.model
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildWireRequest(req)); err != nil {
		return nil, fmt.Errorf("gemini: encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(model), &buf)
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrProviderFailure, err)
	}
	c.logger.Debug().
		Str("model", model).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("generateContent")

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var we wireError
		if json.Unmarshal(body, &we) == nil {
			apiErr.Status = we.Error.Status
			apiErr.Message = we.Error.Message
		}
		return nil, apiErr
	}

	var out wireResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrProviderFailure, err)
	}
	return flatten(out)
}

func (c *Client) endpoint(model string) string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(model))
}

func flatten(out wireResponse) (*Response, error) {
	if len(out.Candidates) == 0 {
		if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w (blocked: %s)", ErrEmptyResponse, out.PromptFeedback.BlockReason)
		}
		return nil, ErrEmptyResponse
	}
	cand := out.Candidates[0]
	res := &Response{FinishReason: cand.FinishReason}
	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if part.Thought {
			continue
		}
		if part.InlineData != nil && part.InlineData.Data != "" {
			res.Inline = append(res.Inline, InlineData{MIMEType: part.InlineData.MIMEType, Data: part.InlineData.Data})
			continue
		}
		text.WriteString(part.Text)
	}
	res.Text = text.String()
	if gm := cand.GroundingMetadata; gm != nil {
		seen := map[string]struct{}{}
		for _, chunk := range gm.GroundingChunks {
			if chunk.Web != nil {
				res.Sources = appendSource(res.Sources, seen, *chunk.Web)
			}
			if chunk.Maps != nil {
				res.Places = appendSource(res.Places, seen, *chunk.Maps)
			}
		}
	}
	if strings.TrimSpace(res.Text) == "" && len(res.Inline) == 0 {
		return nil, ErrEmptyResponse
	}
	return res, nil
}

func appendSource(list []Source, seen map[string]struct{}, chunk wireChunk) []Source {
	if chunk.URI == "" {
		return list
	}
	if _, ok := seen[chunk.URI]; ok {
		return list
	}
	seen[chunk.URI] = struct{}{}
	title := chunk.Title
	if title == "" {
		title = chunk.URI
	}
	return append(list, Source{Title: title, URI: chunk.URI})
}
