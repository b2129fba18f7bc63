// Package pipeline orchestrates one lead-generation run: build dork queries
// per platform, page through the search gateway, extract and validate
// candidate leads, dedupe across platforms, and rank the survivors.
package pipeline

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"leadgen-engine/internal/dedupe"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/dork"
	"leadgen-engine/internal/enhance"
	"leadgen-engine/internal/extract"
	"leadgen-engine/internal/rank"
	"leadgen-engine/internal/search"
)

// DefaultMaxQueriesPerPlatform bounds how many of a platform's generated
// queries are actually executed, to keep API cost predictable.
const DefaultMaxQueriesPerPlatform = 2

// Enricher is an optional post-dedupe hook (company-domain lookup etc).
type Enricher interface {
	Enrich(ctx context.Context, leads []domain.CandidateLead) []domain.CandidateLead
}

// Runner owns one pipeline's collaborators. Cheap to construct, so callers
// may build one per run; each Run owns its own accumulating state.
type Runner struct {
	Builder   dork.Builder
	Gateway   search.Gateway
	Extractor *extract.Extractor
	Scorer    rank.Scorer
	Enhancer  *enhance.Enhancer // optional
	Enricher  Enricher          // optional
	Pacer     *search.Pacer     // spaces gateway calls

	MaxQueriesPerPlatform int

	// OnLead, when set, is called for every validated lead as it is found.
	OnLead func(domain.CandidateLead)
}

type pending struct {
	lead    domain.CandidateLead
	snippet string
}

// Run executes the full pipeline for one set of criteria. Platforms, queries
// and pages are processed strictly in sequence; a failed page aborts only the
// current query's remaining pages. Only configuration errors are fatal.
func (r *Runner) Run(ctx context.Context, criteria domain.SearchCriteria) (domain.LeadGenerationResult, error) {
	if r.Gateway == nil {
		return domain.LeadGenerationResult{}, errors.New("search gateway is not configured")
	}
	criteria = criteria.Normalized()

	maxQueries := r.MaxQueriesPerPlatform
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueriesPerPlatform
	}
	recency := dork.RecencyFilter(criteria.TimeRange)

	var (
		collected   []pending
		queriesUsed []string
	)

	for _, platform := range criteria.TargetPlatforms {
		queries := r.Builder.BuildQueries(criteria, platform)
		if len(queries) == 0 {
			log.Printf("[run] platform=%s nothing to search", platform)
			continue
		}
		if len(queries) > maxQueries {
			queries = queries[:maxQueries]
		}

		for _, query := range queries {
			queriesUsed = append(queriesUsed, query)

			for page := 0; page < criteria.MaxPagesPerQuery; page++ {
				if err := r.wait(ctx); err != nil {
					return domain.LeadGenerationResult{}, err
				}

				recs, err := r.Gateway.Search(ctx, search.Request{
					Query:   query,
					Start:   page*search.PageSize + 1,
					Recency: recency,
				})
				if err != nil {
					// transient: abort this query's remaining pages only
					log.Printf("[run] platform=%s page=%d error: %v", platform, page+1, err)
					break
				}
				if len(recs) == 0 {
					break
				}

				for _, rec := range recs {
					lead, ok := r.Extractor.Extract(rec, criteria, platform)
					if !ok {
						continue
					}
					collected = append(collected, pending{lead: lead, snippet: rec.Snippet})
				}
			}
		}
		log.Printf("[run] platform=%s done queries=%d collected=%d", platform, len(queries), len(collected))
	}

	// Optional AI enhancement over the raw candidates, capped per batch.
	if r.Enhancer != nil {
		leads := make([]domain.CandidateLead, len(collected))
		snippets := make([]string, len(collected))
		for i, p := range collected {
			leads[i] = p.lead
			snippets[i] = p.snippet
		}
		r.Enhancer.EnhanceBatch(ctx, leads, snippets)
		for i := range collected {
			collected[i].lead = leads[i]
		}
	}

	var kept []domain.CandidateLead
	for _, p := range collected {
		lead := p.lead
		lead.Score = r.Scorer.Score(lead, criteria)
		if ok, reason := rank.Keep(lead, criteria); !ok {
			log.Printf("[run] skipped (%s) name=%q company=%q url=%q", reason, lead.Name, lead.Company, lead.SourceURL)
			continue
		}
		kept = append(kept, lead)
		if r.OnLead != nil {
			r.OnLead(lead)
		}
	}

	merged := dedupe.Dedupe(kept)

	if r.Enricher != nil {
		merged = r.Enricher.Enrich(ctx, merged)
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })

	counts := make(map[string]int, len(criteria.TargetPlatforms))
	for _, lead := range merged {
		counts[lead.SourcePlatform]++
	}

	return domain.LeadGenerationResult{
		Leads:             merged,
		TotalCount:        len(merged),
		Criteria:          criteria,
		GeneratedAt:       time.Now().UTC().Format(time.RFC3339),
		QueriesUsed:       queriesUsed,
		PerPlatformCounts: counts,
	}, nil
}

// Preview builds every query a run would issue without touching the gateway.
func (r *Runner) Preview(criteria domain.SearchCriteria) []domain.DorkQuery {
	return r.Builder.Preview(criteria)
}

func (r *Runner) wait(ctx context.Context) error {
	if r.Pacer == nil {
		return ctx.Err()
	}
	return r.Pacer.Wait(ctx)
}
