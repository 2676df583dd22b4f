package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/book"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS books (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	author     TEXT NOT NULL,
	year       INTEGER,
	genre      TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// BookSQLite stores books in a single-file SQLite database.
type BookSQLite struct {
	db      *sql.DB
	timeout time.Duration
}

func NewBookSQLite(db *sql.DB, timeout time.Duration) *BookSQLite {
	return &BookSQLite{db: db, timeout: timeout}
}

// OpenSQLite opens (or creates) the database at path and ensures the schema exists.
func OpenSQLite(ctx context.Context, path string, timeout time.Duration) (*BookSQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	initCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	if _, err := db.ExecContext(initCtx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}
	return NewBookSQLite(db, timeout), nil
}

func (r *BookSQLite) List(ctx context.Context) ([]book.Book, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, title, author, year, genre FROM books ORDER BY rowid`)
	if err != nil {
		return nil, unavailable("list books", err)
	}
	defer rows.Close()

	out := []book.Book{}
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre); err != nil {
			return nil, unavailable("scan book", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list books", err)
	}
	return out, nil
}

func (r *BookSQLite) GetByID(ctx context.Context, id string) (book.Book, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var b book.Book
	err := r.db.QueryRowContext(ctx, `SELECT id, title, author, year, genre FROM books WHERE id = ?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, unavailable("get book", err)
	}
	return b, nil
}

func (r *BookSQLite) Insert(ctx context.Context, b book.Book) (book.Book, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	b.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO books (id, title, author, year, genre) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Title, b.Author, b.Year, b.Genre,
	)
	if err != nil {
		return book.Book{}, unavailable("insert book", err)
	}
	return b, nil
}

func (r *BookSQLite) UpdateByID(ctx context.Context, id string, p book.Patch) (book.Book, error) {
	assignments := patchAssignments(p)
	if len(assignments) == 0 {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)+1)
	for _, a := range assignments {
		sets = append(sets, a.column+" = ?")
		args = append(args, a.value)
	}
	args = append(args, id)
	query := `UPDATE books SET ` + strings.Join(sets, ", ") + `
		WHERE id = ?
		RETURNING id, title, author, year, genre`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var b book.Book
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, unavailable("update book", err)
	}
	return b, nil
}

func (r *BookSQLite) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return unavailable("delete book", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("delete book", err)
	}
	if n == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (r *BookSQLite) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.PingContext(ctx)
}

func (r *BookSQLite) Close(context.Context) error {
	return r.db.Close()
}
