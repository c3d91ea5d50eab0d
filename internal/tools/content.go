package tools

import (
	"errors"
	"fmt"
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"

	"geniemetrics/internal/providers/genai"
)

const contentFailed = "Error generating content."

var (
	volatilitySchema = genai.Object(map[string]*genai.Schema{
		"score":  genai.Number(),
		"status": genai.Enum("Quiet", "Normal", "High", "Very High"),
		"date":   genai.String(),
	})

	siteAuditSchema = genai.Object(map[string]*genai.Schema{
		"health_score":     genai.Integer(),
		"dr":               genai.Integer(),
		"ur":               genai.Integer(),
		"backlinks":        genai.Integer(),
		"ref_domains":      genai.Integer(),
		"organic_keywords": genai.Integer(),
		"organic_traffic":  genai.Integer(),
		"crawled_pages":    genai.Integer(),
		"errors":           genai.Integer(),
		"warnings":         genai.Integer(),
		"notices":          genai.Integer(),
		"indexability":     objectOf("canonical", "robots_txt", "sitemap", "meta_robots", "hreflang"),
		"social_tags":      objectOf("og_title", "og_image", "twitter_card", "schema_types:strs"),
		"http_headers":     objectOf("status_code:int", "content_type", "server", "x_frame_options"),
		"images":           objectOf("total:int", "missing_alt:int", "large_files:int"),
		"outgoing_links":   objectOf("internal:int", "external:int", "broken:int"),
		"core_web_vitals": genai.ArrayOf(genai.Object(map[string]*genai.Schema{
			"metric": genai.String(),
			"value":  genai.String(),
			"status": genai.Enum("Good", "Needs Improvement", "Poor"),
		})),
		"top_issues": genai.ArrayOf(genai.Object(map[string]*genai.Schema{
			"issue":          genai.String(),
			"priority":       genai.Enum("High", "Medium", "Low"),
			"count":          genai.Integer(),
			"fix_suggestion": genai.String(),
		}, "fix_suggestion")),
	})

	contentAuditSchema = objectOf("score:int", "readability", "tone", "freshness_score:int", "suggestions:strs", "keywords_detected:strs")

	semanticSchema = genai.ArrayOf(genai.Object(map[string]*genai.Schema{
		"keyword":           genai.String(),
		"importance":        genai.Enum("High", "Medium", "Low"),
		"recommended_count": genai.Integer(),
		"current_count":     genai.Integer(),
	}))

	socialContentSchema = objectOf("content:strs")

	metaTagSchema = genai.Object(scalarProps("title", "description", "preview_url"), "preview_url")
)

func languageTagRule(value any) error {
	s, _ := value.(string)
	if _, err := language.Parse(s); err != nil {
		return errors.New("must be a BCP 47 language tag")
	}
	return nil
}

func keywordHint(keywords []string) string {
	if len(keywords) == 0 {
		return ""
	}
	return " Keywords: " + strings.Join(keywords, ", ") + "."
}

// contentTools spend AI credits on audits and generated copy.
func contentTools() []Tool {
	return []Tool{
		credits(SerpVolatilityID, "SERP Volatility", 0).
			builds(func(Input) genai.Request {
				return jsonRequest("Simulate the current Google SERP volatility (sensor) score between 0 and 10 for today, with a status label.", volatilitySchema)
			}).
			parses(decodeAs[SerpVolatility]),

		credits(SiteAudit, "Site Audit", 20).
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf(`Perform a technical SEO site audit for %q.
Report health score, Ahrefs-style DR/UR, crawl counts, indexability, social tags, HTTP headers,
image and link statistics, core web vitals and the top issues with a fix suggestion for each.`, in.Query), siteAuditSchema)
			}).
			parses(decodeAs[SiteAuditData]),

		credits(ContentAudit, "Content Audit", 5).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Text, validation.Required, notBlank, minTrimmedLength(minAuditLength)),
				)
			}).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Audit this content for SEO quality, readability, tone and freshness:\n\n%s", truncate(in.Text, maxPromptText)), contentAuditSchema)
			}).
			parses(decodeAs[ContentAuditResult]),

		credits(ContentRewrite, "Content Rewriter", 10).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Text, textRules...),
					validation.Field(&in.Instruction, validation.Required, validation.Length(1, maxQueryLength)),
				)
			}).
			builds(func(in Input) genai.Request {
				return textRequest(fmt.Sprintf("Rewrite the following text. Instruction: %s\n\nText:\n%s\n\nReturn only the rewritten text.", in.Instruction, truncate(in.Text, maxPromptText)))
			}).
			parses(plainText).
			orElse(func(in Input) any { return in.Text }),

		credits(SocialPost, "Social Post Generator", 3).
			on(TierLite).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Platform, validation.Required, validation.In(postPlatforms...)),
					validation.Field(&in.Text, textRules...),
					validation.Field(&in.Query, validation.Length(0, maxQueryLength)),
				)
			}).
			builds(func(in Input) genai.Request {
				prompt := fmt.Sprintf("Write an engaging %s post based on this content:\n%s", in.Platform, truncate(in.Text, maxPromptText))
				if in.Query != "" {
					prompt += fmt.Sprintf("\nFocus on: %s.", in.Query)
				}
				return textRequest(prompt + "\nInclude relevant hashtags.")
			}).
			parses(plainText).
			orElse(always("Failed to generate post.")),

		credits(SchemaMarkup, "Schema Generator", 5).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Type, validation.Required, validation.Length(1, 100)),
					validation.Field(&in.Text, textRules...),
				)
			}).
			builds(func(in Input) genai.Request {
				return genai.Request{
					Parts: []genai.Part{genai.TextPart(fmt.Sprintf(
						"Generate valid JSON-LD schema markup of type %q for the following details:\n%s\nReturn only the JSON.",
						in.Type, truncate(in.Text, maxPromptText)))},
					ResponseMIMEType: "application/json",
				}
			}).
			parses(func(resp *genai.Response, _ Input) (any, error) {
				return strings.TrimSpace(genai.StripCodeFence(resp.Text)), nil
			}).
			orElse(always("{}")),

		credits(RobotsTxt, "Robots.txt Generator", 2).
			on(TierLite).
			defaulted(func(in *Input) {
				if in.Type == "" {
					in.Type = defaultRobots
				}
			}).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Query, queryRules...),
					validation.Field(&in.Type, validation.Length(1, 100)),
				)
			}).
			builds(func(in Input) genai.Request {
				return textRequest(fmt.Sprintf("Generate a %s robots.txt file for %s. Return only the file contents.", in.Type, in.Query))
			}).
			parses(func(resp *genai.Response, _ Input) (any, error) {
				return genai.StripCodeFence(resp.Text), nil
			}).
			orElse(always("")),

		credits(Hreflang, "Hreflang Generator", 2).
			on(TierLite).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Query, queryRules...),
					validation.Field(&in.Languages, validation.Required, validation.Each(validation.By(languageTagRule))),
				)
			}).
			builds(func(in Input) genai.Request {
				return textRequest(fmt.Sprintf("Generate hreflang link tags for %s in these languages: %s. Include x-default. Return only the HTML tags.",
					in.Query, strings.Join(in.Languages, ", ")))
			}).
			parses(func(resp *genai.Response, _ Input) (any, error) {
				return genai.StripCodeFence(resp.Text), nil
			}).
			orElse(always("")),

		credits(ContentOutline, "Content Outline", 5).
			on(TierPro).
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return textRequest(fmt.Sprintf("Create a detailed SEO content outline in Markdown for the topic %q.%s Include H2/H3 headings, talking points and an FAQ section.",
					in.Query, keywordHint(in.Keywords)))
			}).
			parses(plainText).
			orElse(always(contentFailed)),

		credits(ContentArticle, "Article Writer", 15).
			on(TierPro).
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return textRequest(fmt.Sprintf("Write a comprehensive, SEO-optimized article in Markdown about %q.%s Use headings, short paragraphs and a conclusion.",
					in.Query, keywordHint(in.Keywords)))
			}).
			parses(plainText).
			orElse(always(contentFailed)),

		credits(ContentEditor, "SEO Content Editor", 10).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Query, queryRules...),
					validation.Field(&in.Text, validation.Length(0, maxPromptText*4)),
				)
			}).
			builds(func(in Input) genai.Request {
				draft := strings.TrimSpace(in.Text)
				if draft == "" {
					return jsonRequest(fmt.Sprintf("For the target keyword %q, list semantically related terms the content should use, with importance and recommended count. The draft is empty, so every current count is 0.",
						in.Query), semanticSchema)
				}
				return jsonRequest(fmt.Sprintf("For the target keyword %q, list semantically related terms the content should use, with importance, recommended count and the count found in this draft:\n\n%s",
					in.Query, truncate(draft, maxPromptText)), semanticSchema)
			}).
			parses(func(resp *genai.Response, in Input) (any, error) {
				v, err := decodeAs[[]SemanticKeyword](resp, in)
				if err != nil {
					return nil, err
				}
				keywords := v.([]SemanticKeyword)
				if keywords == nil {
					keywords = []SemanticKeyword{}
				}
				return ContentEditorResult{Keywords: keywords, Score: coverageScore(keywords)}, nil
			}).
			orElse(always(ContentEditorResult{Keywords: []SemanticKeyword{}})),

		credits(SocialContent, "Social Content Studio", 3).
			on(TierLite).
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Platform, validation.Required, validation.In(socialFormats...)),
					validation.Field(&in.Query, queryRules...),
				)
			}).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Generate 5 %s ideas for the topic %q.", in.Platform, in.Query), socialContentSchema)
			}).
			parses(func(resp *genai.Response, in Input) (any, error) {
				v, err := decodeAs[SocialContentResult](resp, in)
				if err != nil {
					return nil, err
				}
				out := v.(SocialContentResult)
				out.Type = strings.ToLower(in.Platform)
				if out.Content == nil {
					out.Content = []string{}
				}
				return out, nil
			}).
			orElse(func(in Input) any {
				return SocialContentResult{Type: strings.ToLower(in.Platform), Content: []string{}}
			}),

		credits(MetaTags, "Meta Tag Generator", 2).
			on(TierLite).
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Write an SEO title (max 60 chars) and meta description (max 160 chars) for %q.%s", in.Query, keywordHint(in.Keywords)), metaTagSchema)
			}).
			parses(decodeAs[MetaTagResult]),
	}
}

// coverageScore is the percentage of suggested terms the draft already uses.
func coverageScore(keywords []SemanticKeyword) int {
	if len(keywords) == 0 {
		return 0
	}
	used := 0
	for _, k := range keywords {
		if k.CurrentCount > 0 {
			used++
		}
	}
	return int(math.Round(float64(used) / float64(len(keywords)) * 100))
}
