package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"leadgen-engine/internal/rank"
)

func baseConfig() Config {
	var cfg Config
	cfg.App.Port = 8787
	return cfg
}

func TestNormalizeFillsDefaults(t *testing.T) {
	out, res := NormalizeAndValidate(baseConfig())
	if !res.OK() {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if out.Search.PageDelayMS != 1000 {
		t.Errorf("page_delay_ms = %d, want 1000", out.Search.PageDelayMS)
	}
	if out.Search.MaxPagesPerQuery != 3 {
		t.Errorf("max_pages_per_query = %d, want 3", out.Search.MaxPagesPerQuery)
	}
	if out.Search.MaxQueriesPerPlatform != 2 {
		t.Errorf("max_queries_per_platform = %d, want 2", out.Search.MaxQueriesPerPlatform)
	}
	if out.Dorks.Unresolved != "drop" {
		t.Errorf("dorks.unresolved = %q, want drop", out.Dorks.Unresolved)
	}
	if out.Scoring.Weights != rank.DefaultWeights() {
		t.Errorf("weights not defaulted: %+v", out.Scoring.Weights)
	}
	if out.Enhance.MaxPerBatch != 1 {
		t.Errorf("enhance.max_per_batch = %d, want 1", out.Enhance.MaxPerBatch)
	}
}

func TestNormalizeBadUnresolvedPolicy(t *testing.T) {
	cfg := baseConfig()
	cfg.Dorks.Unresolved = "explode"
	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("expected an error for unknown unresolved policy")
	}
}

func TestNormalizeEnhanceRequiresEndpoint(t *testing.T) {
	cfg := baseConfig()
	cfg.Enhance.Enabled = true
	_, res := NormalizeAndValidate(cfg)
	if res.OK() {
		t.Fatal("expected errors when enhance.enabled without endpoint/model")
	}
	joined := strings.Join(res.Errors, "\n")
	if !strings.Contains(joined, "enhance.endpoint") || !strings.Contains(joined, "enhance.model") {
		t.Errorf("missing expected errors, got: %v", res.Errors)
	}
}

func TestWatchCriteria(t *testing.T) {
	w := Watch{
		Name:       "dental",
		Industries: []string{"dental"},
		Location:   "Austin, TX",
		TimeRange:  "w",
	}
	c := w.Criteria()
	if c.Location.City != "Austin" || c.Location.State != "TX" {
		t.Errorf("location = %+v", c.Location)
	}
	if string(c.TimeRange) != "w" {
		t.Errorf("time range = %q", c.TimeRange)
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg, _ := NormalizeAndValidate(baseConfig())
	cfg.Search.EngineID = "abc123"
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Search.EngineID != "abc123" {
		t.Errorf("engine_id = %q", got.Search.EngineID)
	}

	// Second save keeps a .bak of the previous file.
	cfg.Search.EngineID = "def456"
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("save twice: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("missing backup: %v", err)
	}
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := baseConfig()
	cfg.App.Port = 0
	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg); err == nil {
		t.Fatal("expected validation failure")
	}
}
