package book

import (
	"context"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all books.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Get returns a single book by id.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the input and persists a new book.
func (s *Service) Create(ctx context.Context, in CreateInput) (Book, error) {
	if err := ValidateForCreate(in); err != nil {
		return Book{}, err
	}
	return s.repo.Insert(ctx, in.ToBook())
}

// Update merges p into the stored book. Updates are not validated, so a
// caller may blank out title or author.
func (s *Service) Update(ctx context.Context, id string, p Patch) (Book, error) {
	if p.IsEmpty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.UpdateByID(ctx, id, p)
}

// Delete removes a book permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}
