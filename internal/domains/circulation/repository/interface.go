package repository

import (
	"context"
	"time"

	"library-backend/internal/domains/circulation/model"
)

// RepositoryInterface defines the contract for borrow record data access.
type RepositoryInterface interface {
	// InsertBorrowRecord assigns ID on success
	InsertBorrowRecord(ctx context.Context, record *model.BorrowRecord) error

	// UpdateBorrowRecordReturnDate closes an active record
	// Returns ErrNoActiveRecord if it is already closed or missing
	UpdateBorrowRecordReturnDate(ctx context.Context, recordID int64, returnDate time.Time) error

	// GetPatronBorrowedBooks returns every record of the patron, active and returned,
	// newest first, with book title and author filled in
	GetPatronBorrowedBooks(ctx context.Context, patronID string) ([]model.BorrowRecord, error)

	// GetPatronBorrowCount counts active records only
	GetPatronBorrowCount(ctx context.Context, patronID string) (int, error)
}
