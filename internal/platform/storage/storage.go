// Package storage opens the key-value medium selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/class_fund_app/internal/adapters/database/pgsql"
	badgerkv "github.com/SscSPs/class_fund_app/internal/adapters/kv/badger"
	memorykv "github.com/SscSPs/class_fund_app/internal/adapters/kv/memory"
	rediskv "github.com/SscSPs/class_fund_app/internal/adapters/kv/redis"
	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
	"github.com/SscSPs/class_fund_app/internal/platform/config"
	"github.com/SscSPs/class_fund_app/pkg/database"
)

// OpenKeyValueStore opens the medium named by cfg.StoreDriver.
// For postgres, pending migrations are applied first.
// The caller owns the returned store and must Close it.
func OpenKeyValueStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.KeyValueStore, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverBadger:
		store, err := badgerkv.Open(badgerkv.Config{
			Path:       cfg.BadgerPath,
			SyncWrites: true,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Using BadgerDB box storage", slog.String("path", cfg.BadgerPath))
		return store, nil

	case config.StoreDriverPostgres:
		logger.Info("Running database migrations...")
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, err
		}
		db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		return pgsql.NewKeyValueRepository(db), nil

	case config.StoreDriverRedis:
		store, err := rediskv.Open(ctx, rediskv.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Using Redis box storage", slog.String("addr", cfg.RedisAddr))
		return store, nil

	case config.StoreDriverMemory:
		logger.Warn("Using in-memory box storage; boxes will not survive a restart")
		return memorykv.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
