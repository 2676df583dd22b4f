package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Open creates a Store based on the URI scheme.
//
// Supported schemes:
//
//	mongodb://, mongodb+srv://  - MongoDB, database taken from the URI path
//	postgres://, postgresql://  - PostgreSQL (run cmd/migrate first)
//	sqlite:///path/to/books.db  - SQLite file, schema created on open
//	memory://                   - in-memory (ephemeral, for local runs and tests)
func Open(ctx context.Context, uri string, timeout time.Duration) (Store, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse store uri: %w", err)
	}

	var s Store
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		s, err = OpenMongo(ctx, uri, timeout)
	case "postgres", "postgresql":
		s, err = OpenPG(ctx, uri, timeout)
	case "sqlite", "sqlite3":
		path := u.Host + u.Path
		if path == "" {
			return nil, fmt.Errorf("sqlite store uri needs a file path: %q", uri)
		}
		s, err = OpenSQLite(ctx, path, timeout)
	case "memory":
		s = NewBookMemory()
	default:
		return nil, fmt.Errorf("unknown store scheme %q (supported: mongodb, mongodb+srv, postgres, sqlite, memory)", u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Redact hides credentials in a connection URI so it can be logged.
func Redact(uri string) string {
	const marker = "://"
	start := strings.Index(uri, marker)
	if start < 0 {
		return uri
	}
	start += len(marker)
	end := strings.Index(uri[start:], "@")
	if end < 0 {
		return uri
	}
	return uri[:start] + "***" + uri[start+end:]
}
