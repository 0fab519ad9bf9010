package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"remotejobs-engine/internal/config"
	"remotejobs-engine/internal/events"
	"remotejobs-engine/internal/store"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Alert entrypoints (injected for testability)
	RunAlerts     func(ctx context.Context) (sent int, err error)
	NotifyListing func(ctx context.Context, l store.Listing) (sent int, err error)
}
