package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	// List returns every stored book.
	List(ctx context.Context) ([]Book, error)
	// GetByID returns ErrNotFound when the id does not exist.
	GetByID(ctx context.Context, id string) (Book, error)
	// Insert stores b and returns it with its assigned id.
	Insert(ctx context.Context, b Book) (Book, error)
	// UpdateByID merges p into the stored book and returns the result.
	UpdateByID(ctx context.Context, id string, p Patch) (Book, error)
	// DeleteByID returns ErrNotFound when the id does not exist.
	DeleteByID(ctx context.Context, id string) error
}
