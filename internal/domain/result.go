package domain

// DorkQuery is one generated query string, tagged with the platform it is
// scoped to and the pattern category it came from. Generated, never persisted.
type DorkQuery struct {
	Text     string `json:"text"`
	Platform string `json:"platform"`
	Category string `json:"category"`
}

// SearchResultRecord is one ranked record from the search gateway. Opaque
// beyond these three fields.
type SearchResultRecord struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// LeadGenerationResult is the final output of one run. Leads are ordered by
// descending score.
type LeadGenerationResult struct {
	Leads             []CandidateLead `json:"leads"`
	TotalCount        int             `json:"totalCount"`
	Criteria          SearchCriteria  `json:"criteria"`
	GeneratedAt       string          `json:"generatedAt"`
	QueriesUsed       []string        `json:"queriesUsed"`
	PerPlatformCounts map[string]int  `json:"perPlatformCounts"`
}
