package tools

type KeywordData struct {
	Keyword    string  `json:"keyword"`
	Volume     int     `json:"volume"`
	Difficulty int     `json:"difficulty"`
	CPC        float64 `json:"cpc"`
	Intent     string  `json:"intent"`
	Trend      []int   `json:"trend"`
	Topic      string  `json:"topic"`
	IsLongTail bool    `json:"is_long_tail"`
}

type KeywordVisualResult struct {
	Questions    []string `json:"questions"`
	Prepositions []string `json:"prepositions"`
	Comparisons  []string `json:"comparisons"`
	Related      []string `json:"related"`
}

type KeywordCluster struct {
	Cluster  string   `json:"cluster"`
	Keywords []string `json:"keywords"`
}

type SerpAnalysisResult struct {
	Keyword    string `json:"keyword"`
	Difficulty int    `json:"difficulty"`
	Volume     int    `json:"volume"`
	Results    []struct {
		Rank            int    `json:"rank"`
		Title           string `json:"title"`
		URL             string `json:"url"`
		DomainAuthority int    `json:"domain_authority"`
		Backlinks       int    `json:"backlinks"`
		WordCount       int    `json:"word_count"`
	} `json:"results"`
}

type RankData struct {
	Visibility  float64 `json:"visibility"`
	AvgPosition float64 `json:"avg_position"`
	Keywords    []struct {
		Keyword          string   `json:"keyword"`
		Position         int      `json:"position"`
		PreviousPosition int      `json:"previous_position"`
		Volume           int      `json:"volume"`
		SerpFeatures     []string `json:"serp_features"`
	} `json:"keywords"`
}

type DomainMetrics struct {
	AuthorityScore int `json:"authority_score"`
	OrganicTraffic int `json:"organic_traffic"`
	Backlinks      int `json:"backlinks"`
	TopKeywords    []struct {
		Keyword  string `json:"keyword"`
		Position int    `json:"position"`
	} `json:"top_keywords"`
	Competitors []struct {
		Domain         string `json:"domain"`
		AuthorityScore int    `json:"authority_score"`
		OrganicTraffic int    `json:"organic_traffic"`
	} `json:"competitors"`
	TrafficTrend []struct {
		Month string `json:"month"`
		Value int    `json:"value"`
	} `json:"traffic_trend"`
	WeeklyTrend []struct {
		Date  string `json:"date"`
		Value int    `json:"value"`
	} `json:"weekly_trend"`
	SerpSnapshots []struct {
		Keyword  string `json:"keyword"`
		Title    string `json:"title"`
		URL      string `json:"url"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"serp_snapshots"`
}

type DomainComparisonResult struct {
	Domains []struct {
		Domain         string `json:"domain"`
		AuthorityScore int    `json:"authority_score"`
		OrganicTraffic int    `json:"organic_traffic"`
		PaidTraffic    int    `json:"paid_traffic"`
		Keywords       int    `json:"keywords"`
		Backlinks      int    `json:"backlinks"`
	} `json:"domains"`
	Winner  string `json:"winner"`
	Insight string `json:"insight"`
}

type GapKeyword struct {
	Keyword       string `json:"keyword"`
	Volume        int    `json:"volume"`
	KD            int    `json:"kd,omitempty"`
	MyPos         int    `json:"my_pos,omitempty"`
	CompetitorPos int    `json:"competitor_pos"`
}

type KeywordGapResult struct {
	Missing []GapKeyword `json:"missing"`
	Shared  []GapKeyword `json:"shared"`
	Weak    []GapKeyword `json:"weak"`
}

type BacklinkData struct {
	SpamScore        int `json:"spam_score"`
	TotalBacklinks   int `json:"total_backlinks"`
	ReferringDomains int `json:"referring_domains"`
	DomainAuthority  int `json:"domain_authority"`
	TopAnchors       []struct {
		Anchor  string  `json:"anchor"`
		Percent float64 `json:"percent"`
	} `json:"top_anchors"`
	NewLost []struct {
		Date string `json:"date"`
		New  int    `json:"new"`
		Lost int    `json:"lost"`
	} `json:"new_lost"`
	BacklinkTypes []struct {
		Type  string `json:"type"`
		Count int    `json:"count"`
	} `json:"backlink_types"`
}

type PPCDataResult struct {
	EstimatedBudget float64 `json:"estimated_budget"`
	PaidKeywords    int     `json:"paid_keywords"`
	TopAdKeywords   []struct {
		Keyword     string  `json:"keyword"`
		CPC         float64 `json:"cpc"`
		Volume      int     `json:"volume"`
		Competition float64 `json:"competition"`
	} `json:"top_ad_keywords"`
	SampleAds []struct {
		Headline    string `json:"headline"`
		Description string `json:"description"`
		URL         string `json:"url"`
	} `json:"sample_ads"`
}

type TrendData struct {
	Query            string `json:"query"`
	InterestOverTime []struct {
		Date  string `json:"date"`
		Value int    `json:"value"`
	} `json:"interest_over_time"`
	RelatedTopics    []string `json:"related_topics"`
	RegionalInterest []struct {
		Region string `json:"region"`
		Value  int    `json:"value"`
	} `json:"regional_interest"`
}

type GoogleEssentialResult struct {
	MobileFriendly   bool   `json:"mobile_friendly"`
	PerformanceScore int    `json:"performance_score"`
	LCP              string `json:"lcp"`
	FID              string `json:"fid"`
	CLS              string `json:"cls"`
	Screenshot       string `json:"screenshot"`
}

type BrokenLinkResult struct {
	TotalLinks  int `json:"total_links"`
	BrokenCount int `json:"broken_count"`
	Links       []struct {
		URL        string `json:"url"`
		StatusCode int    `json:"status_code"`
		SourcePage string `json:"source_page"`
		AnchorText string `json:"anchor_text"`
	} `json:"links"`
}

type GmbLocation struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
	Reviews int     `json:"reviews"`
	Views   int     `json:"views"`
	Calls   int     `json:"calls"`
}

type SerpVolatility struct {
	Score  float64 `json:"score"`
	Status string  `json:"status"`
	Date   string  `json:"date"`
}

type SiteAuditData struct {
	HealthScore     int `json:"health_score"`
	DR              int `json:"dr"`
	UR              int `json:"ur"`
	Backlinks       int `json:"backlinks"`
	RefDomains      int `json:"ref_domains"`
	OrganicKeywords int `json:"organic_keywords"`
	OrganicTraffic  int `json:"organic_traffic"`
	CrawledPages    int `json:"crawled_pages"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Notices         int `json:"notices"`
	Indexability    struct {
		Canonical  string `json:"canonical"`
		RobotsTxt  string `json:"robots_txt"`
		Sitemap    string `json:"sitemap"`
		MetaRobots string `json:"meta_robots"`
		Hreflang   string `json:"hreflang"`
	} `json:"indexability"`
	SocialTags struct {
		OGTitle     string   `json:"og_title"`
		OGImage     string   `json:"og_image"`
		TwitterCard string   `json:"twitter_card"`
		SchemaTypes []string `json:"schema_types"`
	} `json:"social_tags"`
	HTTPHeaders struct {
		StatusCode    int    `json:"status_code"`
		ContentType   string `json:"content_type"`
		Server        string `json:"server"`
		XFrameOptions string `json:"x_frame_options"`
	} `json:"http_headers"`
	Images struct {
		Total      int `json:"total"`
		MissingAlt int `json:"missing_alt"`
		LargeFiles int `json:"large_files"`
	} `json:"images"`
	OutgoingLinks struct {
		Internal int `json:"internal"`
		External int `json:"external"`
		Broken   int `json:"broken"`
	} `json:"outgoing_links"`
	CoreWebVitals []struct {
		Metric string `json:"metric"`
		Value  string `json:"value"`
		Status string `json:"status"`
	} `json:"core_web_vitals"`
	TopIssues []struct {
		Issue         string `json:"issue"`
		Priority      string `json:"priority"`
		Count         int    `json:"count"`
		FixSuggestion string `json:"fix_suggestion,omitempty"`
	} `json:"top_issues"`
}

type ContentAuditResult struct {
	Score            int      `json:"score"`
	Readability      string   `json:"readability"`
	Tone             string   `json:"tone"`
	FreshnessScore   int      `json:"freshness_score"`
	Suggestions      []string `json:"suggestions"`
	KeywordsDetected []string `json:"keywords_detected"`
}

type SemanticKeyword struct {
	Keyword          string `json:"keyword"`
	Importance       string `json:"importance"`
	RecommendedCount int    `json:"recommended_count"`
	CurrentCount     int    `json:"current_count"`
}

// ContentEditorResult pairs the suggested terms with how many of them the
// draft covers, as a 0-100 score.
type ContentEditorResult struct {
	Keywords []SemanticKeyword `json:"keywords"`
	Score    int               `json:"score"`
}

type SocialContentResult struct {
	Type    string   `json:"type"`
	Content []string `json:"content"`
}

type MetaTagResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PreviewURL  string `json:"preview_url"`
}

type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type MarketInsightResult struct {
	Text    string            `json:"text"`
	Sources []GroundingSource `json:"sources"`
}

type LocalPlace struct {
	Title         string `json:"title"`
	GoogleMapsURI string `json:"google_maps_uri,omitempty"`
}

type LocalSeoResult struct {
	Text   string       `json:"text"`
	Places []LocalPlace `json:"places"`
}

type SpeechResult struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type ImageResult struct {
	DataURI string `json:"data_uri"`
}
