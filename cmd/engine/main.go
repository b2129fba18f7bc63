package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	mrand "math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/dork"
	"leadgen-engine/internal/enhance"
	"leadgen-engine/internal/enrich"
	"leadgen-engine/internal/events"
	"leadgen-engine/internal/extract"
	"leadgen-engine/internal/httpapi"
	"leadgen-engine/internal/pipeline"
	"leadgen-engine/internal/rank"
	"leadgen-engine/internal/scheduler"
	"leadgen-engine/internal/search"
	"leadgen-engine/internal/secrets"
	"leadgen-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("LEADGEN_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable.
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		norm, vr := config.NormalizeAndValidate(cfg)
		for _, wmsg := range vr.Warnings {
			log.Printf("[config] warning: %s", wmsg)
		}
		if !vr.OK() {
			return cfg, fmt.Errorf("invalid config: %s", strings.Join(vr.Errors, "; "))
		}
		return norm, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "leadgen.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()
	extractor := extract.New(mrand.New(mrand.NewSource(time.Now().UnixNano())))

	// Built fresh per run so config edits (weights, delays, enhancement)
	// apply without a restart.
	newRunner := func(cfg config.Config, onLead func(domain.CandidateLead)) (*pipeline.Runner, error) {
		apiKey, err := secrets.Get(secrets.SearchAPIAccount)
		if err != nil {
			return nil, fmt.Errorf("search API key: %w", err)
		}
		gw, err := search.NewGoogle(apiKey, cfg.Search.EngineID)
		if err != nil {
			return nil, err
		}
		policy, err := dork.ParseUnresolvedPolicy(cfg.Dorks.Unresolved)
		if err != nil {
			return nil, err
		}

		r := &pipeline.Runner{
			Builder:               dork.Builder{Policy: policy},
			Gateway:               gw,
			Extractor:             extractor,
			Scorer:                rank.NewWeightScorer(cfg.Scoring.Weights),
			Pacer:                 search.NewPacer(time.Duration(cfg.Search.PageDelayMS) * time.Millisecond),
			MaxQueriesPerPlatform: cfg.Search.MaxQueriesPerPlatform,
			OnLead:                onLead,
		}

		if cfg.Enhance.Enabled {
			key, err := secrets.Get(secrets.CompletionAPIAccount)
			if err != nil {
				log.Printf("[enhance] disabled: %v", err)
			} else {
				comp, err := enhance.NewHTTPCompleter(cfg.Enhance.Endpoint, key, cfg.Enhance.Model)
				if err != nil {
					log.Printf("[enhance] disabled: %v", err)
				} else {
					r.Enhancer = enhance.New(comp, cfg.Enhance.MaxPerBatch)
				}
			}
		}
		if cfg.Enrich.CompanyDomains {
			r.Enricher = enrich.New(db.Pool)
		}
		return r, nil
	}

	runLeadGen := func(ctx context.Context, criteria domain.SearchCriteria, onLead func(domain.CandidateLead)) (domain.LeadGenerationResult, error) {
		cfg := cfgVal.Load().(config.Config)
		if criteria.MaxPagesPerQuery == 0 {
			criteria.MaxPagesPerQuery = cfg.Search.MaxPagesPerQuery
		}
		runner, err := newRunner(cfg, onLead)
		if err != nil {
			return domain.LeadGenerationResult{}, err
		}
		return runner.Run(ctx, criteria)
	}

	preview := func(criteria domain.SearchCriteria) []domain.DorkQuery {
		cfg := cfgVal.Load().(config.Config)
		policy, err := dork.ParseUnresolvedPolicy(cfg.Dorks.Unresolved)
		if err != nil {
			policy = dork.DropUnresolved
		}
		return dork.Builder{Policy: policy}.Preview(criteria)
	}

	var runStatus atomic.Value
	runStatus.Store(httpapi.RunStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		RunStatus:   &runStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		RunLeadGen:  runLeadGen,
		Preview:     preview,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.Cors, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	tokenPath := filepath.Join(dataDir, "engine.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		log.Fatal(err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Runs triggered by the watcher persist the same way API runs do.
	runWatch := func(ctx context.Context, name string, criteria domain.SearchCriteria) error {
		runID := store.NewRunID()
		if err := store.InsertRun(ctx, db.Pool, runID, criteria); err != nil {
			return err
		}
		result, err := runLeadGen(ctx, criteria, nil)
		if err != nil {
			_ = store.FinishRun(ctx, db.Pool, runID, nil, 0, err.Error())
			return err
		}
		if err := store.InsertLeads(ctx, db.Pool, runID, result.Leads); err != nil {
			_ = store.FinishRun(ctx, db.Pool, runID, result.QueriesUsed, 0, err.Error())
			return err
		}
		if err := store.FinishRun(ctx, db.Pool, runID, result.QueriesUsed, result.TotalCount, ""); err != nil {
			return err
		}
		hub.PublishTyped("", runID, events.TypeWatchFired, map[string]any{
			"watch":      name,
			"lead_count": result.TotalCount,
		})
		log.Printf("[watch] %s run=%s leads=%d", name, runID, result.TotalCount)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	g.Go(func() error {
		interval := time.Duration(cfg.Watcher.IntervalMinutes) * time.Minute
		scheduler.Every(gctx, interval, "watch", scheduler.WatchTask(&cfgVal, runWatch))
		return nil
	})

	g.Go(func() error {
		scheduler.Every(gctx, 24*time.Hour, "cleanup", func(ctx context.Context) error {
			n, err := store.CleanupOldLeads(db.Pool)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Printf("[cleanup] removed %d stale leads", n)
			}
			return nil
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Printf("engine stopped")
}
