package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"leadgen-engine/internal/domain"
)

func ddgPage(hrefs ...string) string {
	out := "<html><body>"
	for _, h := range hrefs {
		out += fmt.Sprintf(`<a class="result__a" href=%q>result</a>`, h)
	}
	return out + "</body></html>"
}

func TestFindDomainSkipsBlockedHosts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ddgPage(
			"https://www.linkedin.com/company/acme",
			"https://www.yelp.com/biz/acme",
			"https://www.acme.com/about",
		))
	}))
	defer srv.Close()

	l := NewLookup().WithEndpoint(srv.URL)
	got, err := l.FindDomain(context.Background(), "Acme Inc")
	if err != nil {
		t.Fatal(err)
	}
	if got != "acme.com" {
		t.Errorf("domain = %q, want acme.com", got)
	}
}

func TestFindDomainDecodesRedirect(t *testing.T) {
	target := url.QueryEscape("https://www.brightsmile.com/")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ddgPage("/l/?uddg="+target))
	}))
	defer srv.Close()

	l := NewLookup().WithEndpoint(srv.URL)
	got, err := l.FindDomain(context.Background(), "Bright Smile Dental")
	if err != nil {
		t.Fatal(err)
	}
	if got != "brightsmile.com" {
		t.Errorf("domain = %q, want brightsmile.com", got)
	}
}

func TestFindDomainToleratesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	l := NewLookup().WithEndpoint(srv.URL)
	got, err := l.FindDomain(context.Background(), "Acme")
	if err != nil || got != "" {
		t.Errorf("got (%q, %v), want empty and nil", got, err)
	}
}

func TestSanitizeCompanyForSearch(t *testing.T) {
	cases := map[string]string{
		"Acme, Inc.":     "Acme",
		"Beta LLC":       "Beta",
		"Gamma  Corp":    "Gamma",
		"Plain Name":     "Plain Name",
		"  Spaced   Co ": "Spaced Co",
	}
	for in, want := range cases {
		if got := sanitizeCompanyForSearch(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnrichFillsMissingEmailOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ddgPage("https://www.acme.com/"))
	}))
	defer srv.Close()

	e := &Enricher{Lookup: NewLookup().WithEndpoint(srv.URL)}
	leads := []domain.CandidateLead{
		{ID: "a", Company: "Acme Inc"},
		{ID: "b", Company: "Acme Inc", Email: "owner@acme.com"},
		{ID: "c", Company: domain.CompanyNotSpecified},
	}
	out := e.Enrich(context.Background(), leads)

	if out[0].Email != "contact@acme.com" {
		t.Errorf("lead a email = %q", out[0].Email)
	}
	if out[1].Email != "owner@acme.com" {
		t.Errorf("existing email overwritten: %q", out[1].Email)
	}
	if out[2].Email != "" {
		t.Errorf("sentinel company got email: %q", out[2].Email)
	}
}
