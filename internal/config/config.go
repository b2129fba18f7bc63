// engine/internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"leadgen-engine/internal/rank"
)

// Watch is a saved search the scheduler re-runs on an interval.
type Watch struct {
	Name            string   `yaml:"name"`
	Industries      []string `yaml:"industries"`
	Location        string   `yaml:"location"`
	JobTitle        string   `yaml:"job_title"`
	Keywords        []string `yaml:"keywords"`
	TargetPlatforms []string `yaml:"target_platforms"`
	TimeRange       string   `yaml:"time_range"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Search struct {
		EngineID              string `yaml:"engine_id"`
		PageDelayMS           int    `yaml:"page_delay_ms"`
		MaxPagesPerQuery      int    `yaml:"max_pages_per_query"`
		MaxQueriesPerPlatform int    `yaml:"max_queries_per_platform"`
	} `yaml:"search"`

	Dorks struct {
		Unresolved string `yaml:"unresolved"` // drop | leave | error
	} `yaml:"dorks"`

	Scoring struct {
		Weights rank.Weights `yaml:"weights"`
	} `yaml:"scoring"`

	Enhance struct {
		Enabled     bool   `yaml:"enabled"`
		Endpoint    string `yaml:"endpoint"`
		Model       string `yaml:"model"`
		MaxPerBatch int    `yaml:"max_per_batch"`
	} `yaml:"enhance"`

	Enrich struct {
		CompanyDomains bool `yaml:"company_domains"`
	} `yaml:"enrich"`

	Watcher struct {
		Enabled         bool    `yaml:"enabled"`
		IntervalMinutes int     `yaml:"interval_minutes"`
		Watches         []Watch `yaml:"watches"`
	} `yaml:"watcher"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
