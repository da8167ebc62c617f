package api

import (
	"context"
	"log/slog"

	"github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/memory"
	reminderspostgres "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/persistence/postgres"
	reminderssqlite "github.com/Apurer/petcare-reminders/internal/domains/reminders/adapters/persistence/sqlite"
	"github.com/Apurer/petcare-reminders/internal/domains/reminders/ports"
	"github.com/Apurer/petcare-reminders/internal/platform/migrations"
	platformpostgres "github.com/Apurer/petcare-reminders/internal/platform/postgres"
	platformsqlite "github.com/Apurer/petcare-reminders/internal/platform/sqlite"
)

// BuildDocumentStore selects the document store for cfg. In auto mode it tries PostgreSQL, then
// SQLite, then memory, logging a warning at each fallback. An explicit backend that cannot be
// opened also falls back to memory so the process stays up.
func BuildDocumentStore(ctx context.Context, cfg StorageConfig, logger *slog.Logger) (ports.DocumentStore, string, func()) {
	tryPostgres := cfg.Backend == BackendPostgres || (cfg.Backend == BackendAuto && cfg.PostgresDSN != "")
	trySQLite := cfg.Backend == BackendSQLite || (cfg.Backend == BackendAuto && cfg.SQLitePath != "")

	if cfg.Backend == BackendAuto && cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, skipping postgres document store")
	}
	if tryPostgres {
		if store, cleanup, err := openPostgres(ctx, cfg.PostgresDSN); err != nil {
			logger.Warn("failed to open postgres document store, falling back", slog.String("error", err.Error()))
		} else {
			logger.Info("reminder storage configured with postgres")
			return store, BackendPostgres, cleanup
		}
	}
	if trySQLite {
		if store, cleanup, err := openSQLite(ctx, cfg.SQLitePath); err != nil {
			logger.Warn("failed to open sqlite document store, falling back", slog.String("path", cfg.SQLitePath), slog.String("error", err.Error()))
		} else {
			logger.Info("reminder storage configured with sqlite", slog.String("path", cfg.SQLitePath))
			return store, BackendSQLite, cleanup
		}
	}
	if cfg.Backend != BackendMemory {
		logger.Warn("falling back to in-memory reminder storage, data is lost on restart")
	}
	return memory.NewDocumentStore(), BackendMemory, func() {}
}

func openPostgres(ctx context.Context, dsn string) (ports.DocumentStore, func(), error) {
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return reminderspostgres.NewDocumentStore(db), func() { _ = sqlDB.Close() }, nil
}

func openSQLite(ctx context.Context, path string) (ports.DocumentStore, func(), error) {
	db, err := platformsqlite.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	store, err := reminderssqlite.NewDocumentStore(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store, func() { _ = db.Close() }, nil
}
