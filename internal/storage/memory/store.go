package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	bookModel "library-backend/internal/domains/book/model"
	circulationModel "library-backend/internal/domains/circulation/model"
	"library-backend/internal/storage"
)

type state struct {
	books        map[int64]bookModel.Book
	records      map[int64]circulationModel.BorrowRecord
	nextBookID   int64
	nextRecordID int64
}

func (s *state) clone() *state {
	c := &state{
		books:        make(map[int64]bookModel.Book, len(s.books)),
		records:      make(map[int64]circulationModel.BorrowRecord, len(s.records)),
		nextBookID:   s.nextBookID,
		nextRecordID: s.nextRecordID,
	}
	for id, b := range s.books {
		c.books[id] = b
	}
	for id, r := range s.records {
		if r.ReturnDate != nil {
			rd := *r.ReturnDate
			r.ReturnDate = &rd
		}
		c.records[id] = r
	}
	return c
}

// Store keeps the catalog and loan history in process memory.
// Used in development and tests.
type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

var _ storage.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		st: &state{
			books:   make(map[int64]bookModel.Book),
			records: make(map[int64]circulationModel.BorrowRecord),
		},
		now: time.Now,
	}
}

// =====================================================
// BOOKS
// =====================================================

func (s *Store) GetBookByID(ctx context.Context, id int64) (*bookModel.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.getBook(id)
}

func (s *Store) GetBookByISBN(ctx context.Context, isbn string) (*bookModel.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.getBookByISBN(isbn)
}

func (s *Store) GetAllBooks(ctx context.Context) ([]bookModel.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.allBooks(), nil
}

func (s *Store) InsertBook(ctx context.Context, book *bookModel.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.insertBook(book, s.now())
}

func (s *Store) UpdateBookAvailability(ctx context.Context, bookID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.updateAvailability(bookID, delta)
}

// =====================================================
// BORROW RECORDS
// =====================================================

func (s *Store) InsertBorrowRecord(ctx context.Context, record *circulationModel.BorrowRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.insertRecord(record)
}

func (s *Store) UpdateBorrowRecordReturnDate(ctx context.Context, recordID int64, returnDate time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.closeRecord(recordID, returnDate)
}

func (s *Store) GetPatronBorrowedBooks(ctx context.Context, patronID string) ([]circulationModel.BorrowRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.patronRecords(patronID), nil
}

func (s *Store) GetPatronBorrowCount(ctx context.Context, patronID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.activeCount(patronID), nil
}

// =====================================================
// LIFECYCLE
// =====================================================

// WithinTx holds the write lock for the whole of fn and restores the
// previous state if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx storage.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	tx := &txStore{st: s.st, now: s.now}

	if err := fn(ctx, tx); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() {}

// =====================================================
// STATE OPERATIONS
// =====================================================

func (st *state) getBook(id int64) (*bookModel.Book, error) {
	b, ok := st.books[id]
	if !ok {
		return nil, storage.ErrBookNotFound
	}
	return &b, nil
}

func (st *state) getBookByISBN(isbn string) (*bookModel.Book, error) {
	for _, b := range st.books {
		if b.ISBN == isbn {
			b := b
			return &b, nil
		}
	}
	return nil, storage.ErrBookNotFound
}

func (st *state) allBooks() []bookModel.Book {
	books := make([]bookModel.Book, 0, len(st.books))
	for _, b := range st.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool {
		if books[i].Title != books[j].Title {
			return books[i].Title < books[j].Title
		}
		return books[i].ID < books[j].ID
	})
	return books
}

func (st *state) insertBook(book *bookModel.Book, now time.Time) error {
	if _, err := st.getBookByISBN(book.ISBN); err == nil {
		return storage.ErrDuplicateISBN
	}
	if book.AvailableCopies < 0 || book.AvailableCopies > book.TotalCopies {
		return storage.ErrAvailabilityOutOfRange
	}
	st.nextBookID++
	book.ID = st.nextBookID
	book.CreatedAt = now
	st.books[book.ID] = *book
	return nil
}

func (st *state) updateAvailability(bookID int64, delta int) error {
	b, ok := st.books[bookID]
	if !ok {
		return storage.ErrBookNotFound
	}
	next := b.AvailableCopies + delta
	if next < 0 || next > b.TotalCopies {
		return fmt.Errorf("%w: book %d would have %d of %d", storage.ErrAvailabilityOutOfRange, bookID, next, b.TotalCopies)
	}
	b.AvailableCopies = next
	st.books[bookID] = b
	return nil
}

func (st *state) insertRecord(record *circulationModel.BorrowRecord) error {
	if _, ok := st.books[record.BookID]; !ok {
		return storage.ErrBookNotFound
	}
	st.nextRecordID++
	record.ID = st.nextRecordID
	stored := *record
	stored.Title, stored.Author = "", ""
	st.records[record.ID] = stored
	return nil
}

func (st *state) closeRecord(recordID int64, returnDate time.Time) error {
	r, ok := st.records[recordID]
	if !ok || r.ReturnDate != nil {
		return storage.ErrNoActiveRecord
	}
	rd := returnDate
	r.ReturnDate = &rd
	st.records[recordID] = r
	return nil
}

func (st *state) patronRecords(patronID string) []circulationModel.BorrowRecord {
	records := make([]circulationModel.BorrowRecord, 0)
	for _, r := range st.records {
		if r.PatronID != patronID {
			continue
		}
		if b, ok := st.books[r.BookID]; ok {
			r.Title, r.Author = b.Title, b.Author
		}
		if r.ReturnDate != nil {
			rd := *r.ReturnDate
			r.ReturnDate = &rd
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].BorrowDate.Equal(records[j].BorrowDate) {
			return records[i].BorrowDate.After(records[j].BorrowDate)
		}
		return records[i].ID > records[j].ID
	})
	return records
}

func (st *state) activeCount(patronID string) int {
	n := 0
	for _, r := range st.records {
		if r.PatronID == patronID && r.ReturnDate == nil {
			n++
		}
	}
	return n
}
