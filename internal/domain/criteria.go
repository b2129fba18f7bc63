package domain

import "strings"

// TimeRange maps to a search-engine recency filter (qdr:*).
type TimeRange string

const (
	TimeRangeHour    TimeRange = "h"
	TimeRangeHour10  TimeRange = "h10"
	TimeRangeDay     TimeRange = "d"
	TimeRangeDay3    TimeRange = "d3"
	TimeRangeWeek    TimeRange = "w"
	TimeRangeMonth   TimeRange = "m"
	TimeRangeYear    TimeRange = "y"
)

type Location struct {
	City    string `json:"city,omitempty" yaml:"city,omitempty"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Country string `json:"country,omitempty" yaml:"country,omitempty"`
}

// ParseLocation splits a comma-separated "City, State, Country" string.
// A single segment is treated as a city, two segments as city and state.
func ParseLocation(s string) Location {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	var l Location
	switch len(parts) {
	case 0:
	case 1:
		l.City = parts[0]
	case 2:
		l.City, l.State = parts[0], parts[1]
	default:
		l.City, l.State, l.Country = parts[0], parts[1], parts[2]
	}
	return l
}

func (l Location) String() string {
	var parts []string
	for _, p := range []string{l.City, l.State, l.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// SearchCriteria is the read-only input to a generation run. Nothing
// downstream mutates it; Normalized returns an adjusted copy instead.
type SearchCriteria struct {
	Industries       []string  `json:"industries" yaml:"industries"`
	Location         Location  `json:"location" yaml:"location"`
	JobTitle         string    `json:"jobTitle,omitempty" yaml:"job_title,omitempty"`
	Keywords         []string  `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	CompanySize      string    `json:"companySize,omitempty" yaml:"company_size,omitempty"`
	TargetPlatforms  []string  `json:"targetPlatforms,omitempty" yaml:"target_platforms,omitempty"`
	TimeRange        TimeRange `json:"timeRange,omitempty" yaml:"time_range,omitempty"`
	MaxPagesPerQuery int       `json:"maxPagesPerQuery,omitempty" yaml:"max_pages_per_query,omitempty"`
	RequireEmail     bool      `json:"requireEmail,omitempty" yaml:"require_email,omitempty"`
	RequirePhone     bool      `json:"requirePhone,omitempty" yaml:"require_phone,omitempty"`
}

// DefaultPlatforms is used when the caller names none.
var DefaultPlatforms = []string{"linkedin", "reddit", "twitter"}

const DefaultMaxPagesPerQuery = 3

// Normalized returns a copy with defaults filled in and list entries trimmed.
// The receiver is never modified.
func (c SearchCriteria) Normalized() SearchCriteria {
	out := c
	out.Industries = trimList(c.Industries)
	out.Keywords = trimList(c.Keywords)
	out.TargetPlatforms = trimList(c.TargetPlatforms)
	if len(out.TargetPlatforms) == 0 {
		out.TargetPlatforms = append([]string(nil), DefaultPlatforms...)
	}
	if out.MaxPagesPerQuery < 1 {
		out.MaxPagesPerQuery = DefaultMaxPagesPerQuery
	}
	return out
}

// PrimaryIndustry is the first listed industry; insertion order is meaningful.
func (c SearchCriteria) PrimaryIndustry() string {
	if len(c.Industries) == 0 {
		return ""
	}
	return strings.TrimSpace(c.Industries[0])
}

// Terms collects every non-empty targeted field, in a stable order. Used for
// the generic fallback query and for "is there anything to search" checks.
func (c SearchCriteria) Terms() []string {
	var out []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	for _, ind := range c.Industries {
		add(ind)
	}
	add(c.JobTitle)
	add(c.Location.City)
	add(c.Location.State)
	add(c.Location.Country)
	for _, kw := range c.Keywords {
		add(kw)
	}
	return out
}

func trimList(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		key := strings.ToLower(x)
		if seen[key] {
			continue
		}
		seen[key] = true
		ys = append(ys, x)
	}
	return ys
}
