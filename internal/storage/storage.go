// Package storage connects the configured translation backend.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"voci/internal/config"
	"voci/internal/repository"
	"voci/internal/repository/memory"
	"voci/internal/repository/mongodb"
	"voci/internal/repository/postgres"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Connection retry settings
var (
	maxRetries = 30
	retryDelay = 2 * time.Second
)

// Backend is an opened translation store
type Backend struct {
	Translations repository.TranslationRepository

	cfg     *config.Config
	logger  *zap.Logger
	db      *sql.DB
	closers []func(context.Context) error
}

// Open connects the backend named by cfg.StorageBackend
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	b := &Backend{cfg: cfg, logger: logger}

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := b.Postgres(ctx)
		if err != nil {
			return nil, err
		}
		b.Translations = postgres.NewTranslationRepo(db)

	case config.BackendMongo:
		client, repo, err := OpenMongo(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Disconnect)
		b.Translations = repo

	case config.BackendMemory:
		logger.Warn("Using in-memory storage, records are lost on exit")
		b.Translations = memory.NewTranslationRepo()

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	logger.Info("Storage backend ready", zap.String("backend", cfg.StorageBackend))
	return b, nil
}

// Postgres returns the backend's migrated database, connecting on first use.
// The bot keeps its users there even when translations live elsewhere.
func (b *Backend) Postgres(ctx context.Context) (*sql.DB, error) {
	if b.db != nil {
		return b.db, nil
	}

	db, err := OpenPostgres(ctx, b.cfg.DSN(), b.logger)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db, b.cfg.Database.MigrationsPath, b.logger); err != nil {
		db.Close()
		return nil, err
	}

	b.db = db
	b.closers = append(b.closers, func(context.Context) error {
		return db.Close()
	})
	return db, nil
}

// Close releases every connection the backend opened
func (b *Backend) Close(ctx context.Context) error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	b.db = nil
	return errors.Join(errs...)
}

// OpenPostgres connects to PostgreSQL with retries
func OpenPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	var err error

	for i := 0; i < maxRetries; i++ {
		var db *sql.DB
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			// Test connection
			if err = db.PingContext(ctx); err == nil {
				db.SetMaxOpenConns(25)
				db.SetMaxIdleConns(5)
				db.SetConnMaxLifetime(5 * time.Minute)
				return db, nil
			}
			db.Close()
		}

		logger.Warn("Failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database connection aborted: %w", ctx.Err())
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// RunMigrations applies the migrations found at sourceURL
func RunMigrations(db *sql.DB, sourceURL string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// OpenMongo connects to MongoDB and prepares the translations collection
func OpenMongo(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*mongo.Client, *mongodb.TranslationRepo, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	repo := mongodb.NewTranslationRepo(coll)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	logger.Info("MongoDB connection established",
		zap.String("database", cfg.Mongo.Database),
		zap.String("collection", cfg.Mongo.Collection),
	)
	return client, repo, nil
}
