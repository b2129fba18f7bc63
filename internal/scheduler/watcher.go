package scheduler

import (
	"context"
	"log"
	"sync/atomic"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
)

// WatchTask builds a Task that runs every configured watch in order. A
// failing watch is logged and does not stop the remaining ones.
func WatchTask(cfgVal *atomic.Value, run func(ctx context.Context, name string, criteria domain.SearchCriteria) error) Task {
	return func(ctx context.Context) error {
		cfg := cfgVal.Load().(config.Config)
		if !cfg.Watcher.Enabled {
			return nil
		}
		for _, w := range cfg.Watcher.Watches {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := run(ctx, w.Name, w.Criteria()); err != nil {
				log.Printf("[watch] %s error: %v", w.Name, err)
			}
		}
		return nil
	}
}
