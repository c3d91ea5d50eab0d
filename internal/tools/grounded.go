package tools

import (
	"fmt"

	"geniemetrics/internal/providers/genai"
)

const (
	marketInsightsFailed = "Failed to retrieve market insights."
	localSEOFailed       = "Failed to retrieve local SEO data."
)

// groundedTools answer from live Google Search or Maps results rather than
// a response schema; their citations travel with the text.
func groundedTools() []Tool {
	return []Tool{
		search(MarketInsights, "Market Insights").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				req := textRequest(fmt.Sprintf("What are the latest SEO trends and news regarding %q? Summarize key points for a marketer.", in.Query))
				req.Grounding = genai.GroundingSearch
				return req
			}).
			parses(func(resp *genai.Response, _ Input) (any, error) {
				sources := make([]GroundingSource, 0, len(resp.Sources))
				for _, s := range resp.Sources {
					sources = append(sources, GroundingSource{Title: s.Title, URI: s.URI})
				}
				return MarketInsightResult{Text: resp.Text, Sources: sources}, nil
			}).
			orElse(always(MarketInsightResult{Text: marketInsightsFailed, Sources: []GroundingSource{}})),

		search(LocalSEO, "Local SEO").
			validated(requireQuery).
			builds(func(in Input) genai.Request {
				req := textRequest(fmt.Sprintf("Find top rated businesses for %q. Provide a summary of the local landscape and list the top places.", in.Query))
				req.Grounding = genai.GroundingMaps
				return req
			}).
			parses(func(resp *genai.Response, _ Input) (any, error) {
				places := make([]LocalPlace, 0, len(resp.Places))
				for _, p := range resp.Places {
					places = append(places, LocalPlace{Title: p.Title, GoogleMapsURI: p.URI})
				}
				return LocalSeoResult{Text: resp.Text, Places: places}, nil
			}).
			orElse(always(LocalSeoResult{Text: localSEOFailed, Places: []LocalPlace{}})),
	}
}
