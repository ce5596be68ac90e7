package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	bookModel "library-backend/internal/domains/book/model"
	circulationModel "library-backend/internal/domains/circulation/model"
	"library-backend/internal/storage"
)

// Store is a testify mock of storage.Store. WithinTx runs fn against the
// mock itself unless an error is registered for it.
type Store struct {
	mock.Mock
}

var _ storage.Store = (*Store)(nil)

func (m *Store) GetBookByID(ctx context.Context, id int64) (*bookModel.Book, error) {
	args := m.Called(ctx, id)
	var book *bookModel.Book
	if v := args.Get(0); v != nil {
		book = v.(*bookModel.Book)
	}
	return book, args.Error(1)
}

func (m *Store) GetBookByISBN(ctx context.Context, isbn string) (*bookModel.Book, error) {
	args := m.Called(ctx, isbn)
	var book *bookModel.Book
	if v := args.Get(0); v != nil {
		book = v.(*bookModel.Book)
	}
	return book, args.Error(1)
}

func (m *Store) GetAllBooks(ctx context.Context) ([]bookModel.Book, error) {
	args := m.Called(ctx)
	var books []bookModel.Book
	if v := args.Get(0); v != nil {
		books = v.([]bookModel.Book)
	}
	return books, args.Error(1)
}

func (m *Store) InsertBook(ctx context.Context, book *bookModel.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *Store) UpdateBookAvailability(ctx context.Context, bookID int64, delta int) error {
	args := m.Called(ctx, bookID, delta)
	return args.Error(0)
}

func (m *Store) InsertBorrowRecord(ctx context.Context, record *circulationModel.BorrowRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *Store) UpdateBorrowRecordReturnDate(ctx context.Context, recordID int64, returnDate time.Time) error {
	args := m.Called(ctx, recordID, returnDate)
	return args.Error(0)
}

func (m *Store) GetPatronBorrowedBooks(ctx context.Context, patronID string) ([]circulationModel.BorrowRecord, error) {
	args := m.Called(ctx, patronID)
	var records []circulationModel.BorrowRecord
	if v := args.Get(0); v != nil {
		records = v.([]circulationModel.BorrowRecord)
	}
	return records, args.Error(1)
}

func (m *Store) GetPatronBorrowCount(ctx context.Context, patronID string) (int, error) {
	args := m.Called(ctx, patronID)
	return args.Int(0), args.Error(1)
}

func (m *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx storage.Store) error) error {
	args := m.Called(ctx, mock.Anything)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *Store) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Store) Close() {
	m.Called()
}
