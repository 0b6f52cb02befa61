package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/pintwise/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/pintwise/internal/adapter/repository/postgres"
	"github.com/iho/pintwise/internal/adapter/repository/postgrest"
	"github.com/iho/pintwise/internal/adapter/repository/sqldb"
	"github.com/iho/pintwise/internal/infrastructure/config"
	"github.com/iho/pintwise/internal/infrastructure/postgres"
	"github.com/iho/pintwise/internal/usecase"
)

// openStore builds the entry store selected by cfg.StoreBackend. The returned
// close function releases the backend's resources.
func openStore(ctx context.Context, cfg *config.Config, idGen usecase.IDGenerator, logger zerolog.Logger) (usecase.EntryStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres, config.BackendSQL:
		if cfg.RunMigrations {
			if err := postgres.RunMigrations(cfg.MigrationDatabaseURL(), cfg.MigrationsPath, logger); err != nil {
				return nil, nil, err
			}
		}
	}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
			DatabaseURL:     cfg.DatabaseURL,
			MaxConns:        cfg.DatabaseMaxConns,
			MinConns:        cfg.DatabaseMinConns,
			MaxConnLifetime: cfg.DatabaseConnMaxLifetime,
			ConnectTimeout:  cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("connected to postgres")

		retrier := postgresRepo.NewRetrier().WithLogger(logger)
		return postgresRepo.NewEntryRepository(pool, idGen, retrier), pool.Close, nil

	case config.BackendSQL:
		db, err := postgres.OpenSQL(ctx, postgres.SQLConfig{
			DatabaseURL:     cfg.SQLDatabaseURL(),
			MaxConns:        cfg.DatabaseMaxConns,
			ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
			ConnectTimeout:  cfg.DatabaseTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("connected to database via database/sql")

		return sqldb.NewEntryRepository(db, idGen), func() { _ = db.Close() }, nil

	case config.BackendPostgREST:
		client := postgrest.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		logger.Info().Str("url", cfg.SupabaseURL).Msg("using postgrest store")

		return postgrest.NewEntryRepository(client, idGen), func() {}, nil

	case config.BackendMemory:
		if cfg.MemoryJournalDir == "" {
			logger.Warn().Msg("using in-memory store, entries are lost on restart")
			return memory.NewEntryRepository(idGen), func() {}, nil
		}

		journal, err := memory.OpenJournal(cfg.MemoryJournalDir)
		if err != nil {
			return nil, nil, err
		}
		repo, err := memory.NewJournaledEntryRepository(idGen, journal)
		if err != nil {
			_ = journal.Close()
			return nil, nil, err
		}
		logger.Info().Str("dir", cfg.MemoryJournalDir).Msg("using journaled in-memory store")

		return repo, func() { _ = repo.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
