package pg

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	migrationsTable = "schema_migrations"
	schemaName      = "public"
	migrationsPath  = "./migrations"

	maxAttempts = 3
)

type Repository struct {
	db         *sql.DB
	pool       *pgxpool.Pool
	classifier *PostgresErrorClassifier

	attemptDelay func(attempt int) time.Duration
}

func New(databaseURI string) (*Repository, error) {
	pool, err := pgxpool.New(context.Background(), databaseURI)
	if err != nil {
		return nil, err
	}

	return openRepository(stdlib.OpenDBFromPool(pool), pool, applyMigrations)
}

// openRepository закрывает db и pool, если миграции не применились.
func openRepository(db *sql.DB, pool *pgxpool.Pool, migrateUp func(*sql.DB) error) (*Repository, error) {
	if err := migrateUp(db); err != nil {
		db.Close()
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}

	repo := newRepository(db)
	repo.pool = pool
	return repo, nil
}

func applyMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: migrationsTable,
		SchemaName:      schemaName,
	})
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func newRepository(db *sql.DB) *Repository {
	return &Repository{
		db:           db,
		classifier:   NewPostgresErrorClassifier(),
		attemptDelay: getAttemptDelay,
	}
}

func (r *Repository) Ping() error {
	return r.db.Ping()
}

// Shutdown: закрытие *sql.DB не закрывает pgxpool, его закрываем отдельно.
func (r *Repository) Shutdown() error {
	err := r.db.Close()
	if r.pool != nil {
		r.pool.Close()
	}
	return err
}

// executeWithRetryConnection повторяет fn, пока ошибка классифицируется как Retriable.
func (r *Repository) executeWithRetryConnection(ctx context.Context, fn func(db *sql.DB) error) error {
	var err error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn(r.db)
		if err == nil {
			return nil
		}

		if r.classifier.Classify(err) != Retriable || attempt == maxAttempts-1 {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.attemptDelay(attempt)):
		}
	}

	return err
}

// getAttemptDelay - 1s, 3s, 5s, дальше 5s
func getAttemptDelay(attempt int) time.Duration {
	switch attempt {
	case 0:
		return 1 * time.Second
	case 1:
		return 3 * time.Second
	default:
		return 5 * time.Second
	}
}
