package config

import (
	"fmt"
	"strings"

	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/dork"
	"leadgen-engine/internal/rank"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy alongside the findings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
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

	// ---- Normalization ----

	if out.Search.PageDelayMS <= 0 {
		out.Search.PageDelayMS = 1000
	}
	if out.Search.MaxPagesPerQuery <= 0 {
		out.Search.MaxPagesPerQuery = domain.DefaultMaxPagesPerQuery
	}
	if out.Search.MaxQueriesPerPlatform <= 0 {
		out.Search.MaxQueriesPerPlatform = 2
	}
	if strings.TrimSpace(out.Dorks.Unresolved) == "" {
		out.Dorks.Unresolved = "drop"
	}
	if out.Scoring.Weights == (rank.Weights{}) {
		out.Scoring.Weights = rank.DefaultWeights()
	}
	if out.Enhance.MaxPerBatch <= 0 {
		out.Enhance.MaxPerBatch = 1
	}
	if out.Watcher.IntervalMinutes <= 0 {
		out.Watcher.IntervalMinutes = 60
	}
	for i := range out.Watcher.Watches {
		w := &out.Watcher.Watches[i]
		w.Industries = trimList(w.Industries)
		w.Keywords = trimList(w.Keywords)
		w.TargetPlatforms = trimList(w.TargetPlatforms)
	}

	// ---- Validation rules ----

	if _, err := dork.ParseUnresolvedPolicy(out.Dorks.Unresolved); err != nil {
		res.addErr("dorks.unresolved: %v", err)
	}

	if strings.TrimSpace(out.Search.EngineID) == "" {
		res.addWarn("search.engine_id is empty; runs will fail until it is set.")
	}
	if out.Search.PageDelayMS < 200 {
		res.addWarn("search.page_delay_ms is very low (%d) and may cause rate limits.", out.Search.PageDelayMS)
	}
	if out.Search.MaxPagesPerQuery > 10 {
		res.addWarn("search.max_pages_per_query is %d; deep result pages rarely contain leads.", out.Search.MaxPagesPerQuery)
	}

	if out.Enhance.Enabled {
		if strings.TrimSpace(out.Enhance.Endpoint) == "" {
			res.addErr("enhance.endpoint is required when enhance.enabled=true")
		}
		if strings.TrimSpace(out.Enhance.Model) == "" {
			res.addErr("enhance.model is required when enhance.enabled=true")
		}
	}

	if out.Watcher.Enabled && len(out.Watcher.Watches) == 0 {
		res.addWarn("watcher.enabled is true but no watches are configured.")
	}
	for i, w := range out.Watcher.Watches {
		if strings.TrimSpace(w.Name) == "" {
			res.addErr("watcher.watches[%d].name is required", i)
		}
		if len(w.Industries) == 0 && strings.TrimSpace(w.JobTitle) == "" && len(w.Keywords) == 0 {
			res.addWarn("watcher.watches[%d] has no industries, job_title, or keywords; it will search nothing.", i)
		}
		if w.TimeRange != "" && dork.RecencyFilter(domain.TimeRange(w.TimeRange)) == "" {
			res.addWarn("watcher.watches[%d].time_range %q is not recognized; recency will be ignored.", i, w.TimeRange)
		}
	}

	return out, res
}

// Criteria converts a watch into runnable search criteria.
func (w Watch) Criteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Industries:      w.Industries,
		Location:        domain.ParseLocation(w.Location),
		JobTitle:        w.JobTitle,
		Keywords:        w.Keywords,
		TargetPlatforms: w.TargetPlatforms,
		TimeRange:       domain.TimeRange(w.TimeRange),
	}
}
