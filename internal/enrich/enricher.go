package enrich

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/store"
)

// Enricher fills contact emails for leads whose company resolves to a real
// website. Lookups are cached in the company_domains table.
type Enricher struct {
	DB     *sql.DB
	Lookup *Lookup
}

func New(db *sql.DB) *Enricher {
	return &Enricher{DB: db, Lookup: NewLookup()}
}

func (e *Enricher) Enrich(ctx context.Context, leads []domain.CandidateLead) []domain.CandidateLead {
	if e == nil || e.Lookup == nil {
		return leads
	}
	for i := range leads {
		if leads[i].Email != "" {
			continue
		}
		if !leads[i].HasCompany() {
			continue
		}
		d, err := e.domainFor(ctx, leads[i].Company)
		if err != nil {
			log.Printf("[enrich] domain lookup for %q error: %v", leads[i].Company, err)
			continue
		}
		if d == "" {
			continue
		}
		leads[i].Email = "contact@" + d
	}
	return leads
}

func (e *Enricher) domainFor(ctx context.Context, company string) (string, error) {
	// 1) cached?
	if e.DB != nil {
		d, err := store.GetCompanyDomain(ctx, e.DB, company)
		if err != nil {
			return "", err
		}
		if d != "" {
			return d, nil
		}
	}

	// 2) search
	found, err := e.Lookup.FindDomain(ctx, company)
	if err != nil {
		return "", err
	}
	found = strings.ToLower(strings.TrimSpace(found))
	if found == "" || isBlockedDomain(found) {
		return "", nil
	}

	// 3) store
	if e.DB != nil {
		if err := store.UpsertCompanyDomain(ctx, e.DB, company, found); err != nil {
			return "", err
		}
	}
	return found, nil
}
