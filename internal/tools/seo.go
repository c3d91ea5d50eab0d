package tools

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"geniemetrics/internal/providers/genai"
)

func requireQuery(in Input) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Query, queryRules...),
	)
}

// scalarProps builds a property map from "name:kind" pairs; kind defaults to string.
func scalarProps(props ...string) map[string]*genai.Schema {
	out := make(map[string]*genai.Schema, len(props))
	for _, p := range props {
		name, kind, _ := strings.Cut(p, ":")
		switch kind {
		case "int":
			out[name] = genai.Integer()
		case "num":
			out[name] = genai.Number()
		case "bool":
			out[name] = genai.Boolean()
		case "strs":
			out[name] = genai.ArrayOf(genai.String())
		default:
			out[name] = genai.String()
		}
	}
	return out
}

func objectOf(props ...string) *genai.Schema {
	return genai.Object(scalarProps(props...))
}

func listOf(props ...string) *genai.Schema {
	return genai.ArrayOf(objectOf(props...))
}

var (
	keywordSchema = genai.ArrayOf(genai.Object(map[string]*genai.Schema{
		"keyword":      genai.String(),
		"volume":       genai.Integer(),
		"difficulty":   genai.Integer(),
		"cpc":          genai.Number(),
		"intent":       genai.Enum("Informational", "Commercial", "Transactional", "Navigational"),
		"topic":        genai.String(),
		"is_long_tail": genai.Boolean(),
		"trend":        genai.ArrayOf(genai.Integer()),
	}))

	keywordVisualSchema = objectOf("questions:strs", "prepositions:strs", "comparisons:strs", "related:strs")

	clusterSchema = listOf("cluster", "keywords:strs")

	serpSchema = genai.Object(map[string]*genai.Schema{
		"keyword":    genai.String(),
		"difficulty": genai.Integer(),
		"volume":     genai.Integer(),
		"results":    listOf("rank:int", "title", "url", "domain_authority:int", "backlinks:int", "word_count:int"),
	})

	rankSchema = genai.Object(map[string]*genai.Schema{
		"visibility":   genai.Number(),
		"avg_position": genai.Number(),
		"keywords":     listOf("keyword", "position:int", "previous_position:int", "volume:int", "serp_features:strs"),
	})

	domainSchema = genai.Object(map[string]*genai.Schema{
		"authority_score": genai.Integer(),
		"organic_traffic": genai.Integer(),
		"backlinks":       genai.Integer(),
		"top_keywords":    listOf("keyword", "position:int"),
		"competitors":     listOf("domain", "authority_score:int", "organic_traffic:int"),
		"traffic_trend":   listOf("month", "value:int"),
		"weekly_trend":    listOf("date", "value:int"),
		"serp_snapshots":  listOf("keyword", "title", "url", "snippet", "position:int"),
	}, "weekly_trend", "serp_snapshots")

	comparisonSchema = genai.Object(map[string]*genai.Schema{
		"domains": listOf("domain", "authority_score:int", "organic_traffic:int", "paid_traffic:int", "keywords:int", "backlinks:int"),
		"winner":  genai.String(),
		"insight": genai.String(),
	})

	gapSchema = genai.Object(map[string]*genai.Schema{
		"missing": listOf("keyword", "volume:int", "kd:int", "competitor_pos:int"),
		"shared":  listOf("keyword", "volume:int", "my_pos:int", "competitor_pos:int"),
		"weak":    listOf("keyword", "volume:int", "my_pos:int", "competitor_pos:int"),
	})

	backlinkSchema = genai.Object(map[string]*genai.Schema{
		"spam_score":        genai.Integer(),
		"total_backlinks":   genai.Integer(),
		"referring_domains": genai.Integer(),
		"domain_authority":  genai.Integer(),
		"top_anchors":       listOf("anchor", "percent:num"),
		"new_lost":          listOf("date", "new:int", "lost:int"),
		"backlink_types":    listOf("type", "count:int"),
	})

	ppcSchema = genai.Object(map[string]*genai.Schema{
		"estimated_budget": genai.Number(),
		"paid_keywords":    genai.Integer(),
		"top_ad_keywords":  listOf("keyword", "cpc:num", "volume:int", "competition:num"),
		"sample_ads":       listOf("headline", "description", "url"),
	})

	trendSchema = genai.Object(map[string]*genai.Schema{
		"query":              genai.String(),
		"interest_over_time": listOf("date", "value:int"),
		"related_topics":     genai.ArrayOf(genai.String()),
		"regional_interest":  listOf("region", "value:int"),
	})

	essentialsSchema = objectOf("mobile_friendly:bool", "performance_score:int", "lcp", "fid", "cls", "screenshot")

	brokenLinkSchema = genai.Object(map[string]*genai.Schema{
		"total_links":  genai.Integer(),
		"broken_count": genai.Integer(),
		"links":        listOf("url", "status_code:int", "source_page", "anchor_text"),
	})

	gmbSchema = objectOf("name", "address", "rating:num", "reviews:int", "views:int", "calls:int")
)

// seoTools are the search-metered research tools. Each costs one search.
func seoTools() []Tool {
	return []Tool{
		search(KeywordResearch, "Keyword Magic Tool").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf(`Act as a Senior SEO Strategist. Generate 20 high-potential keywords for: %q.
Prioritize finding "hidden gems" (good volume, low difficulty).
For each keyword, simulate a SERP analysis to calculate:
- difficulty (0-100): based on domain authority of the top 10 results, backlink profiles and content quality.
- intent: Informational, Commercial, Transactional or Navigational.
- topic: the parent topic cluster.
- trend: 12 monthly relative interest values.
Return JSON.`, in.Query), keywordSchema)
			}).
			parses(decodeAs[[]KeywordData]).
			orElse(always([]KeywordData{})),

		search(KeywordVisuals, "Keyword Visualization").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf(`Generate AnswerThePublic style data for %q.
Lists of Questions (who, what, where...), Prepositions (with, for, to...), Comparisons (vs, or, like...) and Related searches.`, in.Query), keywordVisualSchema)
			}).
			parses(decodeAs[KeywordVisualResult]),

		search(KeywordClusters, "Keyword Clustering").
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Keywords, validation.Required, validation.Length(2, 500)),
				)
			}).
			builds(func(in Input) genai.Request {
				return jsonRequest("Cluster these keywords into topic groups: "+strings.Join(in.Keywords, ", "), clusterSchema)
			}).
			parses(decodeAs[[]KeywordCluster]).
			orElse(always([]KeywordCluster{})),

		search(SerpAnalysis, "SERP Checker").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Analyze the Google SERP for %q. Top 10 results with domain authority, backlinks and word count.", in.Query), serpSchema)
			}).
			parses(decodeAs[SerpAnalysisResult]),

		search(RankTracker, "Rank Tracker").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Track rankings for %q. Estimate visibility and position changes.", in.Query), rankSchema)
			}).
			parses(decodeAs[RankData]),

		search(DomainOverview, "Domain Overview").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf(`Analyze domain: %q.
Provide realistic SEO metrics (authority 0-100, traffic, backlinks).
Identify 3 organic competitors.
Generate simulated SERP snapshots for the top 3 keywords.
Provide 6-month and 8-week traffic trends.`, in.Query), domainSchema)
			}).
			parses(decodeAs[DomainMetrics]),

		search(DomainComparison, "Domain vs Domain").
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Domains, validation.Required, validation.Length(2, 5)),
				)
			}).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Compare domains: %s. Stats and winner.", strings.Join(in.Domains, ", ")), comparisonSchema)
			}).
			parses(decodeAs[DomainComparisonResult]),

		search(KeywordGap, "Keyword Gap").
			validated(func(in Input) error {
				return validation.ValidateStruct(&in,
					validation.Field(&in.Query, queryRules...),
					validation.Field(&in.Competitor, queryRules...),
				)
			}).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Keyword gap analysis between %q and %q. Identify missing, shared and weak keywords.", in.Query, in.Competitor), gapSchema)
			}).
			parses(decodeAs[KeywordGapResult]),

		search(Backlinks, "Backlink Analytics").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Analyze backlinks for %q. Estimate spam score, domain authority and counts.", in.Query), backlinkSchema)
			}).
			parses(decodeAs[BacklinkData]),

		search(PPCExplorer, "PPC Keyword Explorer").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Analyze PPC for %q. Budget, keywords and sample ads.", in.Query), ppcSchema)
			}).
			parses(decodeAs[PPCDataResult]),

		search(Trends, "Trends Explorer").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Simulate Google Trends data for %q. Return interest over time (12 months), related topics and regional interest.", in.Query), trendSchema)
			}).
			parses(decodeAs[TrendData]),

		search(GoogleEssentials, "Google Essentials").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Simulate Google Mobile-Friendly and PageSpeed insights for %q.", in.Query), essentialsSchema)
			}).
			parses(decodeAs[GoogleEssentialResult]),

		search(BrokenLinks, "Broken Link Checker").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Simulate a broken link check for %q. Return 3-5 simulated 404s.", in.Query), brokenLinkSchema)
			}).
			parses(decodeAs[BrokenLinkResult]),

		search(GMBInsights, "Google Business Profile").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				return jsonRequest(fmt.Sprintf("Simulate Google Business Profile insights for %q.", in.Query), gmbSchema)
			}).
			parses(decodeAs[GmbLocation]),
	}
}
