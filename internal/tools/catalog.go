// Package tools is the catalog of metered SEO tools: their identifiers,
// costs, prompts, response schemas, parsers and safe-empty results.
package tools

import (
	"errors"
	"fmt"
	"sort"

	"geniemetrics/internal/domain"
	"geniemetrics/internal/providers/genai"
)

var ErrUnknownTool = errors.New("unknown tool")

// ID identifies a tool. The set is closed; see the catalog for members.
type ID string

const (
	KeywordResearch  ID = "keyword_research"
	KeywordVisuals   ID = "keyword_visuals"
	KeywordClusters  ID = "keyword_clusters"
	SerpAnalysis     ID = "serp_analysis"
	RankTracker      ID = "rank_tracker"
	DomainOverview   ID = "domain_overview"
	DomainComparison ID = "domain_comparison"
	KeywordGap       ID = "keyword_gap"
	Backlinks        ID = "backlinks"
	PPCExplorer      ID = "ppc_explorer"
	Trends           ID = "trends"
	MarketInsights   ID = "market_insights"
	LocalSEO         ID = "local_seo"
	GoogleEssentials ID = "google_essentials"
	BrokenLinks      ID = "broken_links"
	GMBInsights      ID = "gmb_insights"

	SerpVolatilityID ID = "serp_volatility"
	SiteAudit        ID = "site_audit"
	ContentAudit     ID = "content_audit"
	ContentRewrite   ID = "content_rewrite"
	SocialPost       ID = "social_post"
	SchemaMarkup     ID = "schema_markup"
	RobotsTxt        ID = "robots_txt"
	Hreflang         ID = "hreflang"
	ContentOutline   ID = "content_outline"
	ContentArticle   ID = "content_article"
	ContentEditor    ID = "content_editor"
	SocialContent    ID = "social_content"
	MetaTags         ID = "meta_tags"
	TextToSpeech     ID = "text_to_speech"
	ImageGenerate    ID = "image_generate"
	ImageAnalyze     ID = "image_analyze"
	AudioTranscribe  ID = "audio_transcribe"
	VideoAnalyze     ID = "video_analyze"
	Chat             ID = "chat"
	ChatThinking     ID = "chat_thinking"
)

// Tier selects which configured model serves a tool.
type Tier string

const (
	TierFlash Tier = "flash"
	TierLite  Tier = "lite"
	TierPro   Tier = "pro"
	TierTTS   Tier = "tts"
	TierImage Tier = "image"
)

// Models maps each tier to a concrete model name.
type Models struct {
	Flash string
	Lite  string
	Pro   string
	TTS   string
	Image string
}

func (m Models) forTier(t Tier) string {
	switch t {
	case TierLite:
		return m.Lite
	case TierPro:
		return m.Pro
	case TierTTS:
		return m.TTS
	case TierImage:
		return m.Image
	}
	return m.Flash
}

// Tool is one catalog entry. Meter and Cost are the only inputs the
// entitlement gate ever sees for the tool.
type Tool struct {
	ID    ID               `json:"id"`
	Name  string           `json:"name"`
	Meter domain.MeterKind `json:"meter"`
	Cost  int              `json:"cost"`
	Tier  Tier             `json:"tier"`

	localized bool
	defaults  func(*Input)
	validate  func(Input) error
	build     func(Input) genai.Request
	parse     func(*genai.Response, Input) (any, error)
	fallback  func(Input) any
}

// Consumption is the gate request for one invocation.
func (t Tool) Consumption() domain.ConsumptionRequest {
	return domain.ConsumptionRequest{Kind: t.Meter, Amount: t.Cost}
}

// Prepare trims the input, applies defaults and validates it.
func (t Tool) Prepare(in Input) (Input, error) {
	in = in.normalized()
	if t.defaults != nil {
		t.defaults(&in)
	}
	if t.validate != nil {
		if err := t.validate(in); err != nil {
			return in, invalidInput(err)
		}
	}
	return in, nil
}

// Parse turns a model response into the tool's result value.
func (t Tool) Parse(resp *genai.Response, in Input) (any, error) {
	if resp == nil {
		return nil, genai.ErrEmptyResponse
	}
	return t.parse(resp, in)
}

// Fallback is the safe-empty result shown when the call fails.
func (t Tool) Fallback(in Input) any {
	if t.fallback == nil {
		return nil
	}
	return t.fallback(in)
}

// Catalog is the single cost table. It is immutable after construction.
type Catalog struct {
	tools  map[ID]Tool
	models Models
}

func NewCatalog(models Models) *Catalog {
	c := &Catalog{tools: make(map[ID]Tool), models: models}
	for _, group := range [][]Tool{seoTools(), groundedTools(), contentTools(), mediaTools(), chatTools()} {
		for _, tool := range group {
			if _, dup := c.tools[tool.ID]; dup {
				panic(fmt.Sprintf("tools: duplicate id %q", tool.ID))
			}
			c.tools[tool.ID] = tool
		}
	}
	return c
}

func (c *Catalog) Lookup(id ID) (Tool, error) {
	tool, ok := c.tools[id]
	if !ok {
		return Tool{}, fmt.Errorf("%w: %q", ErrUnknownTool, id)
	}
	return tool, nil
}

// List returns every tool ordered by meter then id.
func (c *Catalog) List() []Tool {
	out := make([]Tool, 0, len(c.tools))
	for _, tool := range c.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Meter != out[j].Meter {
			return out[i].Meter > out[j].Meter
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Request builds the generateContent call for a prepared input.
func (c *Catalog) Request(tool Tool, in Input) genai.Request {
	req := tool.build(in)
	req.Model = c.models.forTier(tool.Tier)
	if tool.localized && len(req.Parts) > 0 {
		last := len(req.Parts) - 1
		if req.Parts[last].Data == "" {
			req.Parts[last].Text = withLocale(req.Parts[last].Text, in.Locale)
		}
	}
	return req
}

func search(id ID, name string) Tool {
	return Tool{ID: id, Name: name, Meter: domain.MeterSearch, Cost: 1, Tier: TierFlash, localized: true}
}

func credits(id ID, name string, cost int) Tool {
	return Tool{ID: id, Name: name, Meter: domain.MeterAICredit, Cost: cost, Tier: TierFlash, localized: true}
}

func (t Tool) on(tier Tier) Tool {
	t.Tier = tier
	return t
}

func (t Tool) verbatim() Tool {
	t.localized = false
	return t
}

func (t Tool) defaulted(fn func(*Input)) Tool {
	t.defaults = fn
	return t
}

func (t Tool) validated(fn func(Input) error) Tool {
	t.validate = fn
	return t
}

func (t Tool) builds(fn func(Input) genai.Request) Tool {
	t.build = fn
	return t
}

func (t Tool) parses(fn func(*genai.Response, Input) (any, error)) Tool {
	t.parse = fn
	return t
}

func (t Tool) orElse(fn func(Input) any) Tool {
	t.fallback = fn
	return t
}

func jsonRequest(prompt string, schema *genai.Schema) genai.Request {
	return genai.Request{
		Parts:            []genai.Part{genai.TextPart(prompt)},
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

func textRequest(prompt string) genai.Request {
	return genai.Request{Parts: []genai.Part{genai.TextPart(prompt)}}
}

func decodeAs[T any](resp *genai.Response, _ Input) (any, error) {
	v, err := genai.DecodeJSON[T](resp.Text)
	if err != nil {
		return nil, fmt.Errorf("%w: decode model json: %v", domain.ErrProviderFailure, err)
	}
	return v, nil
}

func plainText(resp *genai.Response, _ Input) (any, error) {
	return resp.Text, nil
}

func always(v any) func(Input) any {
	return func(Input) any { return v }
}
