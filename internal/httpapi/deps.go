package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"leadgen-engine/internal/config"
	"leadgen-engine/internal/domain"
	"leadgen-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal    *atomic.Value // stores config.Config
	RunStatus *atomic.Value // stores httpapi.RunStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Pipeline entrypoints (inject for testability)
	RunLeadGen func(ctx context.Context, criteria domain.SearchCriteria, onLead func(domain.CandidateLead)) (domain.LeadGenerationResult, error)
	Preview    func(criteria domain.SearchCriteria) []domain.DorkQuery
}
