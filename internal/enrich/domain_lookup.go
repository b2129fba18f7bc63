package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Hosts that can never be a company's own site.
var domainBlocklist = []string{
	"linkedin.com",
	"facebook.com",
	"twitter.com",
	"x.com",
	"instagram.com",
	"reddit.com",
	"youtube.com",
	"wikipedia.org",
	"crunchbase.com",
	"yelp.com",
	"bbb.org",
	"glassdoor.com",
	"indeed.com",
	"ziprecruiter.com",
	"yellowpages.com",
	"mapquest.com",
	"bloomberg.com",
}

// Lookup resolves a company name to its website domain via a web search.
type Lookup struct {
	hc       *http.Client
	endpoint string
}

func NewLookup() *Lookup {
	return &Lookup{
		hc:       &http.Client{Timeout: 12 * time.Second},
		endpoint: "https://duckduckgo.com/html/",
	}
}

// WithEndpoint overrides the search endpoint (tests).
func (l *Lookup) WithEndpoint(u string) *Lookup {
	l.endpoint = u
	return l
}

// FindDomain returns the first non-blocked result host, or "". Network and
// parse failures return "" rather than an error; enrichment is best effort.
func (l *Lookup) FindDomain(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", nil
	}

	// Make query less noisy
	q := sanitizeCompanyForSearch(company)
	query := fmt.Sprintf("%s official website", q)

	u := l.endpoint + "?q=" + url.QueryEscape(query)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := l.hc.Do(req)
	if err != nil {
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", nil
	}

	var best string

	// DDG HTML results: <a class="result__a" href="...">
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		target := decodeRedirect(href)
		host := hostFromURL(target)
		if host == "" {
			return true
		}

		host = strings.ToLower(strings.TrimPrefix(host, "www."))
		if isBlockedDomain(host) {
			return true
		}

		best = host
		return false // stop at first good domain
	})

	return best, nil
}

func decodeRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	// DDG sometimes uses /l/?uddg=<urlencoded>
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if u.Host == "" {
		return ""
	}
	return u.Host
}

func isBlockedDomain(host string) bool {
	for _, b := range domainBlocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}

func sanitizeCompanyForSearch(s string) string {
	s = strings.TrimSpace(s)
	// remove common suffixes that confuse search
	repls := []string{
		", Inc.", "", " Inc.", "", " Inc", "",
		", LLC", "", " LLC", "",
		", Ltd.", "", " Ltd.", "", " Ltd", "",
		", Corp.", "", " Corp.", "", " Corp", "",
	}
	r := strings.NewReplacer(repls...)
	s = r.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
