package pipeline

import (
	"context"
	"errors"
	mrand "math/rand"
	"strings"
	"testing"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/extract"
	"leadgen-engine/internal/rank"
	"leadgen-engine/internal/search"
)

// stubGateway replays canned pages keyed by start index and records calls.
type stubGateway struct {
	pages map[int][]domain.SearchResultRecord
	err   error
	calls []search.Request
}

func (s *stubGateway) Search(ctx context.Context, req search.Request) ([]domain.SearchResultRecord, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.pages[req.Start], nil
}

func newRunner(gw search.Gateway) *Runner {
	return &Runner{
		Gateway:   gw,
		Extractor: extract.New(mrand.New(mrand.NewSource(1))),
		Scorer:    rank.NewWeightScorer(rank.DefaultWeights()),
	}
}

func austinTech() domain.SearchCriteria {
	return domain.SearchCriteria{
		Industries:      []string{"Technology"},
		Location:        domain.Location{City: "Austin"},
		TargetPlatforms: []string{"linkedin"},
	}
}

func TestRun_SingleRichRecord(t *testing.T) {
	gw := &stubGateway{pages: map[int][]domain.SearchResultRecord{
		1: {{
			Title:   "Jane Smith - Senior Engineer at Acme Inc",
			Snippet: "Contact: jane.smith@acme.com, (512) 555-0134",
			URL:     "https://linkedin.com/in/janesmith",
		}},
	}}

	res, err := newRunner(gw).Run(context.Background(), austinTech())
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 1 || len(res.Leads) != 1 {
		t.Fatalf("got %d leads, want exactly 1", len(res.Leads))
	}

	lead := res.Leads[0]
	if lead.Name != "Jane Smith" {
		t.Errorf("name = %q", lead.Name)
	}
	if lead.Email != "jane.smith@acme.com" {
		t.Errorf("email = %q", lead.Email)
	}
	if lead.Phone != "(512) 555-0134" {
		t.Errorf("phone = %q", lead.Phone)
	}
	if !strings.Contains(lead.Company, "Acme") {
		t.Errorf("company = %q", lead.Company)
	}
	if lead.Score < 85 {
		t.Errorf("score = %d, want >= 85", lead.Score)
	}
	if res.PerPlatformCounts["linkedin"] != 1 {
		t.Errorf("perPlatformCounts = %v", res.PerPlatformCounts)
	}
	if len(res.QueriesUsed) == 0 {
		t.Error("queriesUsed should record issued queries")
	}
}

func TestRun_GenericRecordYieldsNoLeads(t *testing.T) {
	gw := &stubGateway{pages: map[int][]domain.SearchResultRecord{
		1: {{
			Title:   "Jobs in Austin",
			Snippet: "browse thousands of listings updated daily",
			URL:     "https://linkedin.com/jobs",
		}},
	}}

	res, err := newRunner(gw).Run(context.Background(), austinTech())
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 0 || len(res.Leads) != 0 {
		t.Errorf("generic record should yield no leads, got %v", res.Leads)
	}
}

func TestRun_PaginationStopsOnEmptyPage(t *testing.T) {
	// Page 1 full, page 2 empty: exactly two calls, never a page 3.
	full := make([]domain.SearchResultRecord, 10)
	for i := range full {
		full[i] = domain.SearchResultRecord{Title: "Jobs in Austin", Snippet: "listings", URL: "https://linkedin.com/jobs"}
	}
	gw := &stubGateway{pages: map[int][]domain.SearchResultRecord{1: full}}

	c := austinTech()
	c.MaxPagesPerQuery = 2

	r := newRunner(gw)
	r.MaxQueriesPerPlatform = 1
	if _, err := r.Run(context.Background(), c); err != nil {
		t.Fatal(err)
	}

	if len(gw.calls) != 2 {
		t.Fatalf("gateway called %d times, want 2 (page 1 + empty page 2)", len(gw.calls))
	}
	if gw.calls[0].Start != 1 || gw.calls[1].Start != 11 {
		t.Errorf("start indexes = %d, %d; want 1, 11", gw.calls[0].Start, gw.calls[1].Start)
	}
}

func TestRun_PageErrorAbortsOnlyThatQuery(t *testing.T) {
	gw := &stubGateway{err: errors.New("quota exceeded")}

	c := austinTech()
	c.TargetPlatforms = []string{"linkedin", "reddit"}

	res, err := newRunner(gw).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("transient page errors must not fail the run: %v", err)
	}
	if res.TotalCount != 0 {
		t.Errorf("expected empty result, got %d", res.TotalCount)
	}
	// one failed call per executed query (pagination aborted after each),
	// and both platforms were still attempted
	platforms := map[string]bool{}
	for _, call := range gw.calls {
		if strings.Contains(call.Query, "linkedin") {
			platforms["linkedin"] = true
		}
		if strings.Contains(call.Query, "reddit") {
			platforms["reddit"] = true
		}
	}
	if !platforms["linkedin"] || !platforms["reddit"] {
		t.Errorf("both platforms should be attempted after page errors, got calls %v", gw.calls)
	}
}

func TestRun_DedupesAcrossPlatforms(t *testing.T) {
	rec := domain.SearchResultRecord{
		Title:   "Jane Smith - Senior Engineer at Acme Inc",
		Snippet: "jane.smith@acme.com",
		URL:     "https://linkedin.com/in/janesmith",
	}
	gw := &stubGateway{pages: map[int][]domain.SearchResultRecord{1: {rec}}}

	c := austinTech()
	c.TargetPlatforms = []string{"linkedin", "twitter"}

	res, err := newRunner(gw).Run(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 1 {
		t.Errorf("same email from two platforms should merge to one lead, got %d", res.TotalCount)
	}
}

func TestRun_SortedByScoreDescending(t *testing.T) {
	gw := &stubGateway{pages: map[int][]domain.SearchResultRecord{
		1: {
			{
				Title:   "Pat Jones - Analyst at Initech Inc",
				Snippet: "no direct contact listed",
				URL:     "https://linkedin.com/in/pjones",
			},
			{
				Title:   "Jane Smith - Senior Engineer at Acme Inc",
				Snippet: "jane.smith@acme.com (512) 555-0134",
				URL:     "https://linkedin.com/in/janesmith",
			},
		},
	}}

	res, err := newRunner(gw).Run(context.Background(), austinTech())
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(res.Leads); i++ {
		if res.Leads[i-1].Score < res.Leads[i].Score {
			t.Errorf("leads not sorted by descending score: %v", res.Leads)
		}
	}
}

func TestRun_RequireEmailFilters(t *testing.T) {
	gw := &stubGateway{pages: map[int][]domain.SearchResultRecord{
		1: {{
			Title:   "Sam Rivers - Director of Marketing at Globex Corp",
			Snippet: "call (737) 555-0100",
			URL:     "https://linkedin.com/in/samrivers",
		}},
	}}

	c := austinTech()
	c.RequireEmail = true

	res, err := newRunner(gw).Run(context.Background(), c)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalCount != 0 {
		t.Errorf("lead without email should be dropped under requireEmail, got %v", res.Leads)
	}
}

func TestRun_MissingGatewayIsFatal(t *testing.T) {
	r := &Runner{Extractor: extract.New(nil), Scorer: rank.NewWeightScorer(rank.DefaultWeights())}
	if _, err := r.Run(context.Background(), austinTech()); err == nil {
		t.Fatal("nil gateway must be a configuration error")
	}
}

func TestPreview_NoGatewayCalls(t *testing.T) {
	gw := &stubGateway{}
	r := newRunner(gw)

	qs := r.Preview(austinTech())
	if len(qs) == 0 {
		t.Fatal("preview should produce queries")
	}
	if len(gw.calls) != 0 {
		t.Errorf("preview must not touch the gateway, made %d calls", len(gw.calls))
	}
	found := false
	for _, q := range qs {
		if q.Platform == "linkedin" && strings.Contains(q.Text, "site:linkedin.com/in") {
			found = true
		}
	}
	if !found {
		t.Errorf("preview missing linkedin site-scoped query: %v", qs)
	}
}
