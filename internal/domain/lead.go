package domain

import "strings"

// Sentinel values written when a field could not be extracted. Kept exported
// so scoring and tests can assert on them directly.
const (
	CompanyNotSpecified  = "Company Not Specified"
	LocationNotSpecified = "Location Not Specified"
	GenericJobTitle      = "Professional"
)

// CandidateLead is built incrementally by the extractor, scored by the
// ranker, and frozen once the aggregator emits its final list.
type CandidateLead struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Company         string `json:"company"`
	JobTitle        string `json:"jobTitle"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Location        string `json:"location"`
	Industry        string `json:"industry"`
	LinkedInURL     string `json:"linkedinUrl,omitempty"`
	CompanySizeBand string `json:"companySizeBand,omitempty"`
	Score           int    `json:"score"`
	SourcePlatform  string `json:"sourcePlatform"`
	SourceURL       string `json:"sourceUrl"`

	// NameIsFallback marks a name taken from the fixed fallback list rather
	// than the result text. Bookkeeping for scoring, not output.
	NameIsFallback bool `json:"-"`
}

// HasRealName reports whether the name was extracted from the result text
// rather than synthesized from the fallback list.
func (l CandidateLead) HasRealName() bool {
	return strings.TrimSpace(l.Name) != "" && !l.NameIsFallback
}

func (l CandidateLead) HasCompany() bool {
	c := strings.TrimSpace(l.Company)
	return c != "" && c != CompanyNotSpecified
}

// DedupeKey is email when present, otherwise name+company.
func (l CandidateLead) DedupeKey() string {
	if e := strings.ToLower(strings.TrimSpace(l.Email)); e != "" {
		return e
	}
	return strings.ToLower(strings.TrimSpace(l.Name)) + "-" + strings.ToLower(strings.TrimSpace(l.Company))
}
