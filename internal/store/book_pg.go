package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/book"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookPG stores books in the PostgreSQL table created by db/migrations.
type BookPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewBookPG(db *pgxpool.Pool, timeout time.Duration) *BookPG {
	return &BookPG{db: db, timeout: timeout}
}

// OpenPG creates a pool for dsn and pings it.
func OpenPG(ctx context.Context, dsn string, timeout time.Duration) (*BookPG, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pg pool: %w", err)
	}
	pingCtx, cancel := withTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pg: %w", err)
	}
	return NewBookPG(pool, timeout), nil
}

func (r *BookPG) List(ctx context.Context) ([]book.Book, error) {
	const query = `
		SELECT id, title, author, year, genre
		FROM books
		ORDER BY created_at, id`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
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

func (r *BookPG) GetByID(ctx context.Context, id string) (book.Book, error) {
	const query = `
		SELECT id, title, author, year, genre
		FROM books
		WHERE id = $1`

	if _, err := uuid.Parse(id); err != nil {
		return book.Book{}, book.ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var b book.Book
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, unavailable("get book", err)
	}
	return b, nil
}

func (r *BookPG) Insert(ctx context.Context, b book.Book) (book.Book, error) {
	const query = `
		INSERT INTO books (id, title, author, year, genre)
		VALUES ($1, $2, $3, $4, $5)`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	b.ID = uuid.NewString()
	if _, err := r.db.Exec(ctx, query, b.ID, b.Title, b.Author, b.Year, b.Genre); err != nil {
		return book.Book{}, unavailable("insert book", err)
	}
	return b, nil
}

func (r *BookPG) UpdateByID(ctx context.Context, id string, p book.Patch) (book.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return book.Book{}, book.ErrNotFound
	}

	assignments := patchAssignments(p)
	if len(assignments) == 0 {
		return r.GetByID(ctx, id)
	}

	args := []any{id}
	sets := make([]string, 0, len(assignments)+1)
	for _, a := range assignments {
		args = append(args, a.value)
		sets = append(sets, fmt.Sprintf("%s = $%d", a.column, len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	query := `UPDATE books SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1
		RETURNING id, title, author, year, genre`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var b book.Book
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.Genre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, unavailable("update book", err)
	}
	return b, nil
}

func (r *BookPG) DeleteByID(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return book.ErrNotFound
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return unavailable("delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}

func (r *BookPG) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return r.db.Ping(ctx)
}

func (r *BookPG) Close(context.Context) error {
	r.db.Close()
	return nil
}
