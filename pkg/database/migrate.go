package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"fortstats/pkg/config"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all pending migrations to the database.
func RunMigrations(cfg *config.Config, db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cfg.Database.MigrationsPath),
		cfg.Database.Database,
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	// Advisory locks are held by a session, so lock and unlock on the same connection.
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("could not get a migration connection: %w", err)
	}
	defer conn.Close()

	// Acquire an advisory lock to prevent concurrent migrations between services.
	var lockAcquired bool
	lockKey := "fortstats_migrations_lock"
	err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock(hashtext($1))", lockKey).Scan(&lockAcquired)
	if err != nil {
		return err
	}

	if !lockAcquired {
		log.Println("Another process is already running migrations, skipping...")
		return nil
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return releaseMigrationLock(ctx, conn, lockKey)
}

// releaseMigrationLock releases the advisory lock held by the session.
func releaseMigrationLock(ctx context.Context, conn *sql.Conn, lockKey string) error {
	var lockReleased bool
	err := conn.QueryRowContext(ctx, "SELECT pg_advisory_unlock(hashtext($1))", lockKey).Scan(&lockReleased)
	if err != nil {
		return fmt.Errorf("could not release advisory lock: %w", err)
	}
	if !lockReleased {
		return fmt.Errorf("could not release advisory lock: %s is not held by this session", lockKey)
	}

	return nil
}
