// Command migrate applies the PostgreSQL schema used by the postgres store backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"bookshelf/internal/config"
	"bookshelf/internal/platform/logging"
	"bookshelf/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()

	logger, err := logging.New(os.Getenv("APP_ENV"), "info")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dir := migrationsDir()
	if *command == "create" {
		if *name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		logger.Info("migration created", zap.String("name", *name), zap.String("dir", dir))
		return nil
	}

	dsn, err := postgresDSN()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	logger.Info("running migrations",
		zap.String("command", *command),
		zap.String("dir", dir),
		zap.String("dsn", store.Redact(dsn)),
	)

	switch *command {
	case "up":
		if err := goose.Up(db, dir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	case "down":
		if err := goose.Down(db, dir); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		logger.Info("migration rolled back")
	case "status":
		if err := goose.Status(db, dir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, create", *command)
	}
	return nil
}
