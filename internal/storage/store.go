package storage

import (
	"context"

	bookRepository "library-backend/internal/domains/book/repository"
	circulationRepository "library-backend/internal/domains/circulation/repository"
)

// =====================================================
// STORAGE PORT
// =====================================================

// Store is one backend serving both domain repositories. Borrow and return
// change books and borrow_records in the same transaction, so a single
// adapter implements both.
type Store interface {
	bookRepository.RepositoryInterface
	circulationRepository.RepositoryInterface

	// WithinTx runs fn against a transactional view of the store. Any error
	// returned by fn discards every write made through that view.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error

	Ping(ctx context.Context) error
	Close()
}
