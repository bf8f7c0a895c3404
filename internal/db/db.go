// Package db opens the connection pool for the configured dialect, ensures
// the items table exists and implements items.Store on top of it.
package db

import (
	"context"
	"fmt"
	"time"

	"items-crud/backend/internal/config"
	"items-crud/backend/internal/items"
)

// bootstrapTimeout bounds pool creation, ping and schema setup.
const bootstrapTimeout = 10 * time.Second

// Connect opens a pool of config.PoolSize connections, creates the items
// table when missing and returns a ready store.
func Connect(ctx context.Context, cfg config.Config) (items.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	switch cfg.Driver {
	case config.DriverMySQL:
		return connectMySQL(ctx, cfg)
	case config.DriverPostgres:
		return connectPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}
