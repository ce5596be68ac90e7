package memory

import (
	"context"
	"errors"
	"time"

	bookModel "library-backend/internal/domains/book/model"
	circulationModel "library-backend/internal/domains/circulation/model"
	"library-backend/internal/storage"
)

var ErrNestedTx = errors.New("nested transactions are not supported")

// txStore works on the state directly; the parent Store already holds the lock.
type txStore struct {
	st  *state
	now func() time.Time
}

var _ storage.Store = (*txStore)(nil)

func (t *txStore) GetBookByID(ctx context.Context, id int64) (*bookModel.Book, error) {
	return t.st.getBook(id)
}

func (t *txStore) GetBookByISBN(ctx context.Context, isbn string) (*bookModel.Book, error) {
	return t.st.getBookByISBN(isbn)
}

func (t *txStore) GetAllBooks(ctx context.Context) ([]bookModel.Book, error) {
	return t.st.allBooks(), nil
}

func (t *txStore) InsertBook(ctx context.Context, book *bookModel.Book) error {
	return t.st.insertBook(book, t.now())
}

func (t *txStore) UpdateBookAvailability(ctx context.Context, bookID int64, delta int) error {
	return t.st.updateAvailability(bookID, delta)
}

func (t *txStore) InsertBorrowRecord(ctx context.Context, record *circulationModel.BorrowRecord) error {
	return t.st.insertRecord(record)
}

func (t *txStore) UpdateBorrowRecordReturnDate(ctx context.Context, recordID int64, returnDate time.Time) error {
	return t.st.closeRecord(recordID, returnDate)
}

func (t *txStore) GetPatronBorrowedBooks(ctx context.Context, patronID string) ([]circulationModel.BorrowRecord, error) {
	return t.st.patronRecords(patronID), nil
}

func (t *txStore) GetPatronBorrowCount(ctx context.Context, patronID string) (int, error) {
	return t.st.activeCount(patronID), nil
}

func (t *txStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx storage.Store) error) error {
	return ErrNestedTx
}

func (t *txStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (t *txStore) Close() {}
