package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	bookModel "library-backend/internal/domains/book/model"
	circulationModel "library-backend/internal/domains/circulation/model"
	"library-backend/internal/storage"
	"library-backend/pkg/database"
)

//go:embed schema.sql
var schema string

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements storage.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	db   querier
	inTx bool
}

var _ storage.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// EnsureSchema creates the tables and indexes if they are missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// =====================================================
// BOOKS
// =====================================================

const bookColumns = `id, title, author, isbn, total_copies, available_copies, created_at`

func scanBook(row pgx.Row) (*bookModel.Book, error) {
	var b bookModel.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}
	return &b, nil
}

// GetBookByID locks the row when called inside WithinTx so the
// availability check and the update see the same value.
func (s *Store) GetBookByID(ctx context.Context, id int64) (*bookModel.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	if s.inTx {
		query += ` FOR UPDATE`
	}
	return scanBook(s.db.QueryRow(ctx, query, id))
}

func (s *Store) GetBookByISBN(ctx context.Context, isbn string) (*bookModel.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE isbn = $1`
	return scanBook(s.db.QueryRow(ctx, query, isbn))
}

func (s *Store) GetAllBooks(ctx context.Context) ([]bookModel.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY title, id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books := make([]bookModel.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}
	return books, nil
}

func (s *Store) InsertBook(ctx context.Context, book *bookModel.Book) error {
	query := `
		INSERT INTO books (title, author, isbn, total_copies, available_copies)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRow(ctx, query,
		book.Title,
		book.Author,
		book.ISBN,
		book.TotalCopies,
		book.AvailableCopies,
	).Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return storage.ErrDuplicateISBN
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

func (s *Store) UpdateBookAvailability(ctx context.Context, bookID int64, delta int) error {
	query := `
		UPDATE books
		SET available_copies = available_copies + $2
		WHERE id = $1
		  AND available_copies + $2 BETWEEN 0 AND total_copies
	`

	tag, err := s.db.Exec(ctx, query, bookID, delta)
	if err != nil {
		return fmt.Errorf("failed to update availability: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Distinguish a missing book from a bounds failure.
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return storage.ErrBookNotFound
	}
	return fmt.Errorf("%w: book %d delta %d", storage.ErrAvailabilityOutOfRange, bookID, delta)
}

// =====================================================
// BORROW RECORDS
// =====================================================

func (s *Store) InsertBorrowRecord(ctx context.Context, record *circulationModel.BorrowRecord) error {
	query := `
		INSERT INTO borrow_records (patron_id, book_id, borrow_date, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRow(ctx, query,
		record.PatronID,
		record.BookID,
		record.BorrowDate,
		record.DueDate,
	).Scan(&record.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return storage.ErrBookNotFound
		}
		return fmt.Errorf("failed to insert borrow record: %w", err)
	}
	return nil
}

func (s *Store) UpdateBorrowRecordReturnDate(ctx context.Context, recordID int64, returnDate time.Time) error {
	query := `
		UPDATE borrow_records
		SET return_date = $2
		WHERE id = $1 AND return_date IS NULL
	`

	tag, err := s.db.Exec(ctx, query, recordID, returnDate)
	if err != nil {
		return fmt.Errorf("failed to update return date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNoActiveRecord
	}
	return nil
}

func (s *Store) GetPatronBorrowedBooks(ctx context.Context, patronID string) ([]circulationModel.BorrowRecord, error) {
	query := `
		SELECT br.id, br.patron_id, br.book_id, br.borrow_date, br.due_date, br.return_date,
		       COALESCE(b.title, ''), COALESCE(b.author, '')
		FROM borrow_records br
		LEFT JOIN books b ON b.id = br.book_id
		WHERE br.patron_id = $1
		ORDER BY br.borrow_date DESC, br.id DESC
	`

	rows, err := s.db.Query(ctx, query, patronID)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrow records: %w", err)
	}
	defer rows.Close()

	records := make([]circulationModel.BorrowRecord, 0)
	for rows.Next() {
		var r circulationModel.BorrowRecord
		if err := rows.Scan(
			&r.ID,
			&r.PatronID,
			&r.BookID,
			&r.BorrowDate,
			&r.DueDate,
			&r.ReturnDate,
			&r.Title,
			&r.Author,
		); err != nil {
			return nil, fmt.Errorf("failed to scan borrow record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate borrow records: %w", err)
	}
	return records, nil
}

func (s *Store) GetPatronBorrowCount(ctx context.Context, patronID string) (int, error) {
	query := `SELECT COUNT(*) FROM borrow_records WHERE patron_id = $1 AND return_date IS NULL`

	var count int
	if err := s.db.QueryRow(ctx, query, patronID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count borrow records: %w", err)
	}
	return count, nil
}

// =====================================================
// LIFECYCLE
// =====================================================

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx storage.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return database.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, &Store{pool: s.pool, db: tx, inTx: true})
	})
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close is a no-op; the pool belongs to the database wrapper that opened it.
func (s *Store) Close() {}
