// Package db opens the key-value backend selected by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/bug-tracker/internal/core/ports"
	"github.com/99minutos/bug-tracker/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/bug-tracker/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/bug-tracker/internal/infrastructure/db/redis"
	"github.com/99minutos/bug-tracker/internal/infrastructure/db/sqlstore"
	"github.com/99minutos/bug-tracker/internal/pkg/config"
)

// Backend bundles the store and the submission ledger that live on it.
type Backend struct {
	Store  ports.KVStore
	Ledger ports.SubmissionLedger
	Driver string
}

// Close releases the underlying connection.
func (b *Backend) Close() error {
	return b.Store.Close()
}

// Open connects to the backend named by cfg.Storage.Driver. Redis keeps the
// submission ledger next to the data, with native key expiry. The other
// drivers use an in-process ledger.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	driver := cfg.Storage.Driver
	b := &Backend{Driver: driver, Ledger: memory.NewLedger()}

	switch driver {
	case config.DriverMemory:
		b.Store = memory.NewStore()

	case config.DriverSQLite:
		s, err := sqlstore.Open(ctx, sqlstore.SQLite, sqlstore.SQLiteDSN(cfg.Storage.SQLitePath))
		if err != nil {
			return nil, err
		}
		b.Store = s

	case config.DriverPostgres:
		s, err := sqlstore.Open(ctx, sqlstore.Postgres, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, err
		}
		b.Store = s

	case config.DriverRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		b.Store = redisstore.NewStore(client, cfg.Redis.Prefix)
		b.Ledger = redisstore.NewLedger(client, cfg.Redis.Prefix)

	case config.DriverMongo:
		client, database, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		b.Store = mongostore.NewStore(client, database, cfg.Mongo.Collection)

	default:
		return nil, fmt.Errorf("db: unknown storage driver %q", driver)
	}

	log.Info().Str("driver", driver).Msg("storage backend ready")
	return b, nil
}
