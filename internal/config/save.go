package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"leadgen-engine/internal/dork"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Search.PageDelayMS < 0 {
		errs = append(errs, "search.page_delay_ms must be >= 0")
	}
	if cfg.Search.MaxPagesPerQuery < 0 {
		errs = append(errs, "search.max_pages_per_query must be >= 0")
	}
	if cfg.Search.MaxQueriesPerPlatform < 0 {
		errs = append(errs, "search.max_queries_per_platform must be >= 0")
	}
	if cfg.Dorks.Unresolved != "" {
		if _, err := dork.ParseUnresolvedPolicy(cfg.Dorks.Unresolved); err != nil {
			errs = append(errs, fmt.Sprintf("dorks.unresolved: %v", err))
		}
	}
	if cfg.Enhance.MaxPerBatch < 0 {
		errs = append(errs, "enhance.max_per_batch must be >= 0")
	}
	if cfg.Watcher.IntervalMinutes < 0 {
		errs = append(errs, "watcher.interval_minutes must be >= 0")
	}
	for i, w := range cfg.Watcher.Watches {
		if strings.TrimSpace(w.Name) == "" {
			errs = append(errs, fmt.Sprintf("watcher.watches[%d].name is required", i))
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n-"
		}
		out += s
	}
	return out
}
