package store

import (
	"context"
	"sync"

	"bookshelf/internal/book"

	"github.com/google/uuid"
)

// BookMemory keeps books in memory. Data is lost on restart.
// Safe for concurrent use.
type BookMemory struct {
	mu    sync.RWMutex
	books map[string]book.Book
	order []string
}

func NewBookMemory() *BookMemory {
	return &BookMemory{books: make(map[string]book.Book)}
}

// List returns all books in insertion order.
func (m *BookMemory) List(_ context.Context) ([]book.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]book.Book, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, cloneBook(m.books[id]))
	}
	return out, nil
}

func (m *BookMemory) GetByID(_ context.Context, id string) (book.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return cloneBook(b), nil
}

func (m *BookMemory) Insert(_ context.Context, b book.Book) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b.ID = uuid.NewString()
	m.books[b.ID] = cloneBook(b)
	m.order = append(m.order, b.ID)
	return b, nil
}

func (m *BookMemory) UpdateByID(_ context.Context, id string, p book.Patch) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	b = p.Apply(b)
	m.books[id] = b
	return cloneBook(b), nil
}

func (m *BookMemory) DeleteByID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return book.ErrNotFound
	}
	delete(m.books, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *BookMemory) Ping(context.Context) error  { return nil }
func (m *BookMemory) Close(context.Context) error { return nil }

// cloneBook copies the optional fields so callers never share pointers with the map.
func cloneBook(b book.Book) book.Book {
	if b.Year != nil {
		y := *b.Year
		b.Year = &y
	}
	if b.Genre != nil {
		g := *b.Genre
		b.Genre = &g
	}
	return b
}
