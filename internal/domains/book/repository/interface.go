package repository

import (
	"context"

	"library-backend/internal/domains/book/model"
)

// RepositoryInterface defines the contract for catalog data access.
// Not-found and duplicate cases are reported with the storage sentinel errors.
type RepositoryInterface interface {
	GetBookByID(ctx context.Context, id int64) (*model.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*model.Book, error)

	// GetAllBooks returns the catalog ordered by title
	GetAllBooks(ctx context.Context) ([]model.Book, error)

	// InsertBook assigns ID and CreatedAt on success
	// Returns ErrDuplicateISBN if the ISBN is taken
	InsertBook(ctx context.Context, book *model.Book) error

	// UpdateBookAvailability adds delta to available copies
	// Returns ErrAvailabilityOutOfRange if the result leaves [0, total]
	UpdateBookAvailability(ctx context.Context, bookID int64, delta int) error
}
