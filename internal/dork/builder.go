package dork

import (
	"fmt"
	"strings"

	"leadgen-engine/internal/domain"
)

// platformSites maps recognized platform names to their site: filter. Any
// other platform string containing a dot is used verbatim as a domain.
var platformSites = map[string]string{
	"linkedin": "linkedin.com/in",
	"reddit":   "reddit.com",
	"twitter":  "twitter.com",
	"github":   "github.com",
}

// recencyFilters is the timeRange -> search-engine recency suffix table.
// Unknown values map to no filter.
var recencyFilters = map[domain.TimeRange]string{
	domain.TimeRangeHour:   "qdr:h",
	domain.TimeRangeHour10: "qdr:h",
	domain.TimeRangeDay:    "qdr:d",
	domain.TimeRangeDay3:   "qdr:d3",
	domain.TimeRangeWeek:   "qdr:w",
	domain.TimeRangeMonth:  "qdr:m",
	domain.TimeRangeYear:   "qdr:y",
}

// RecencyFilter returns the qdr suffix for a criteria time range, or "" when
// unset or unrecognized.
func RecencyFilter(tr domain.TimeRange) string {
	return recencyFilters[tr]
}

// SiteFor resolves a platform name to the domain used in site: filters.
func SiteFor(platform string) string {
	p := strings.ToLower(strings.TrimSpace(platform))
	if site, ok := platformSites[p]; ok {
		return site
	}
	if strings.Contains(p, ".") {
		return p
	}
	return p + ".com"
}

// Builder generates platform-scoped dork queries from criteria. Pure: no
// network, no I/O, no state beyond configuration.
type Builder struct {
	Policy UnresolvedPolicy
}

// BuildQueries combines the available criteria fields pairwise into up to
// four site-scoped contact queries for one platform. When no pair of fields
// is available it falls back to a single generic query over every non-empty
// term; with no terms at all it returns nothing and the caller must treat
// the platform as unsearchable.
func (b Builder) BuildQueries(c domain.SearchCriteria, platform string) []string {
	site := SiteFor(platform)
	industry := c.PrimaryIndustry()
	role := strings.TrimSpace(c.JobTitle)
	loc := c.Location.String()
	var keyword string
	if len(c.Keywords) > 0 {
		keyword = strings.TrimSpace(c.Keywords[0])
	}

	pairs := [][2]string{
		{industry, loc},
		{role, loc},
		{industry, role},
		{keyword, loc},
	}

	var out []string
	seen := map[string]bool{}
	for _, p := range pairs {
		if p[0] == "" || p[1] == "" {
			continue
		}
		q := fmt.Sprintf(`site:%s "%s" "%s" (email OR contact OR @)`, site, p[0], p[1])
		q = b.withRequirements(c, q)
		if !seen[q] {
			seen[q] = true
			out = append(out, q)
		}
	}

	if len(out) > 0 {
		return out
	}

	// Generic fallback: every non-empty term, space-joined.
	terms := c.Terms()
	if len(terms) == 0 {
		return nil
	}
	q := fmt.Sprintf(`site:%s %s (email OR contact)`, site, strings.Join(terms, " "))
	return []string{b.withRequirements(c, q)}
}

// withRequirements appends hard contact filters when the criteria demand a
// specific contact channel.
func (b Builder) withRequirements(c domain.SearchCriteria, q string) string {
	if c.RequireEmail {
		q += ` intext:"@"`
	}
	if c.RequirePhone {
		q += ` intext:phone`
	}
	return q
}

// BuildCategoryQueries expands the built-in pattern catalog against the
// criteria, returning the human-readable breakdown used by dork preview.
func (b Builder) BuildCategoryQueries(c domain.SearchCriteria) []domain.DorkQuery {
	var out []domain.DorkQuery
	for _, p := range Catalog {
		text, err := Expand(p, c, b.Policy)
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, domain.DorkQuery{Text: text, Platform: "", Category: p.Category})
	}
	return out
}

// Preview builds every query a run would issue, per platform, without
// touching the search gateway.
func (b Builder) Preview(c domain.SearchCriteria) []domain.DorkQuery {
	c = c.Normalized()
	var out []domain.DorkQuery
	for _, platform := range c.TargetPlatforms {
		for _, q := range b.BuildQueries(c, platform) {
			out = append(out, domain.DorkQuery{Text: q, Platform: platform, Category: CategoryProfessional})
		}
	}
	out = append(out, b.BuildCategoryQueries(c)...)
	return out
}
