package extract

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	mrand "math/rand"
	"net/url"
	"strings"

	"leadgen-engine/internal/domain"
)

// socialDomains never yield a derived contact address or a company name;
// "contact@linkedin.com" is noise, not a lead.
var socialDomains = []string{
	"linkedin.com",
	"reddit.com",
	"twitter.com",
	"facebook.com",
}

// Extractor turns one search result record into at most one candidate lead.
// The random source only drives fallback-name selection; inject a seeded one
// in tests to pin the outcome.
type Extractor struct {
	Rand *mrand.Rand
}

func New(r *mrand.Rand) *Extractor {
	return &Extractor{Rand: r}
}

// Extract applies the pattern cascade to title+snippet. It never fails on
// malformed input; a pattern mismatch just leaves fewer fields populated.
// ok is false when nothing non-trivial was recovered and the record should
// produce no lead.
func (e *Extractor) Extract(rec domain.SearchResultRecord, criteria domain.SearchCriteria, platform string) (lead domain.CandidateLead, ok bool) {
	combined := strings.TrimSpace(rec.Title + " " + rec.Snippet)
	lower := strings.ToLower(combined)
	host := hostOf(rec.URL)

	lead = domain.CandidateLead{
		ID:              newLeadID(),
		Industry:        criteria.PrimaryIndustry(),
		CompanySizeBand: criteria.CompanySize,
		SourcePlatform:  platform,
		SourceURL:       rec.URL,
	}
	if strings.Contains(host, "linkedin.com") {
		lead.LinkedInURL = rec.URL
	}

	// 1. Email: all regex matches on the lowered text, first kept.
	emailFound := false
	if emails := dedupe(emailRe.FindAllString(lower, -1)); len(emails) > 0 {
		lead.Email = emails[0]
		emailFound = true
	} else if host != "" && !isSocialDomain(host) {
		lead.Email = "contact@" + host
	}

	// 2. Phone: first North-American-style match, formatting preserved.
	if phones := dedupe(phoneRe.FindAllString(combined, -1)); len(phones) > 0 {
		lead.Phone = strings.TrimSpace(phones[0])
	}

	// 3. Name cascade; the random fallback is last.
	nameFound := false
	if name, found := runStrategies(NameStrategies(rec.Title), combined); found {
		lead.Name = name
		nameFound = true
	} else {
		lead.Name = FallbackNames[e.pick(len(FallbackNames))]
		lead.NameIsFallback = true
	}

	// 4. Company cascade, then industry synthesis, then URL domain.
	companyFound := false
	if company, found := runStrategies(CompanyStrategies, combined); found {
		lead.Company = company
		companyFound = true
	} else if ind := criteria.PrimaryIndustry(); ind != "" {
		lead.Company = ind + " Solutions"
	} else if host != "" && !isSocialDomain(host) {
		lead.Company = companyFromHost(host)
	} else {
		lead.Company = domain.CompanyNotSpecified
	}

	// 5. Job title.
	if title, found := runStrategies(TitleStrategies, combined); found {
		lead.JobTitle = title
	} else {
		lead.JobTitle = domain.GenericJobTitle
	}

	// 6. Location; criteria city wins when set.
	if city := strings.TrimSpace(criteria.Location.City); city != "" {
		lead.Location = criteria.Location.String()
	} else if loc, found := runStrategies(LocationStrategies, combined); found {
		lead.Location = loc
	} else {
		lead.Location = domain.LocationNotSpecified
	}

	// 7. Emit only when at least one of name/email/company came out of the
	// text itself. Derived values (contact@domain, "<industry> Solutions",
	// fallback names) do not count.
	if !emailFound && !nameFound && !companyFound {
		return domain.CandidateLead{}, false
	}
	return lead, true
}

func (e *Extractor) pick(n int) int {
	if e.Rand != nil {
		return e.Rand.Intn(n)
	}
	// crypto fallback keeps the zero-value Extractor usable
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

func newLeadID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "lead_" + hex.EncodeToString(b[:])
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(u.Host, "www."))
}

func isSocialDomain(host string) bool {
	for _, d := range socialDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// companyFromHost turns "acme-corp.io" into "Acme Corp".
func companyFromHost(host string) string {
	base := host
	if i := strings.IndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return domain.CompanyNotSpecified
	}
	return strings.Join(words, " ")
}
