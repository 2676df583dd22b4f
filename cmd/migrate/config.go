package main

import (
	"errors"
	"os"
	"strings"
)

var errNoPostgresDSN = errors.New("migrate: set DB_DSN or a postgres MONGO_URI")

func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

// postgresDSN prefers DB_DSN and falls back to the service store URI
// when that already points at PostgreSQL.
func postgresDSN() (string, error) {
	if v := os.Getenv("DB_DSN"); v != "" {
		return v, nil
	}
	uri := os.Getenv("MONGO_URI")
	if strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://") {
		return uri, nil
	}
	return "", errNoPostgresDSN
}
