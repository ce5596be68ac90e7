package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/storage"
	"library-backend/internal/storage/memory"
	"library-backend/internal/storage/mocks"
)

func seed(t *testing.T, svc *BookService, title, author, isbn string) {
	t.Helper()
	_, err := svc.AddBook(context.Background(), model.AddBookRequest{Title: title, Author: author, ISBN: isbn, TotalCopies: 2})
	require.NoError(t, err)
}

func TestAddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("adds with all copies available", func(t *testing.T) {
		svc := NewService(memory.NewStore())

		res, err := svc.AddBook(ctx, model.AddBookRequest{Title: " Dune ", Author: "Frank Herbert", ISBN: "1234567890123", TotalCopies: 5})

		require.NoError(t, err)
		assert.Equal(t, `Book "Dune" has been successfully added to the catalog.`, res.Message)
		assert.Equal(t, 5, res.Book.AvailableCopies)
		assert.NotZero(t, res.Book.ID)
	})

	t.Run("duplicate isbn", func(t *testing.T) {
		svc := NewService(memory.NewStore())
		seed(t, svc, "Dune", "Frank Herbert", "1234567890123")

		_, err := svc.AddBook(ctx, model.AddBookRequest{Title: "Other", Author: "Someone", ISBN: "1234567890123", TotalCopies: 1})

		assert.Equal(t, apperror.KindState, apperror.KindOf(err))
		assert.Contains(t, apperror.Message(err), "ISBN already exists")
	})

	t.Run("invalid request", func(t *testing.T) {
		svc := NewService(memory.NewStore())

		_, err := svc.AddBook(ctx, model.AddBookRequest{Title: "Dune", Author: "Frank Herbert", ISBN: "12", TotalCopies: 1})

		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, "ISBN must be exactly 13 digits.", apperror.Message(err))
	})

	t.Run("insert race on isbn", func(t *testing.T) {
		store := new(mocks.Store)
		ctx := context.Background()
		store.On("GetBookByISBN", ctx, "1234567890123").Return(nil, storage.ErrBookNotFound)
		store.On("InsertBook", ctx, mockBook()).Return(storage.ErrDuplicateISBN)
		svc := NewService(store)

		_, err := svc.AddBook(ctx, model.AddBookRequest{Title: "Dune", Author: "Frank Herbert", ISBN: "1234567890123", TotalCopies: 1})

		assert.Equal(t, model.MsgDuplicateISBN, apperror.Message(err))
	})
}

func mockBook() interface{} {
	return &model.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "1234567890123", TotalCopies: 1, AvailableCopies: 1}
}

func TestGetBook(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())
	seed(t, svc, "Dune", "Frank Herbert", "1234567890123")

	book, err := svc.GetBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Title)

	_, err = svc.GetBook(ctx, 2)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListBooks_StorageError(t *testing.T) {
	store := new(mocks.Store)
	store.On("GetAllBooks", context.Background()).Return(nil, errors.New("down"))

	_, err := NewService(store).ListBooks(context.Background())

	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
}

func TestSearchBooks(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())
	seed(t, svc, "The Great Gatsby", "F. Scott Fitzgerald", "9780743273565")
	seed(t, svc, "Great Expectations", "Charles Dickens", "9780141439563")
	seed(t, svc, "Great", "Anon", "1111111111111")
	seed(t, svc, "1984", "George Orwell", "9780451524935")

	titles := func(books []model.Book) []string {
		out := make([]string, len(books))
		for i, b := range books {
			out[i] = b.Title
		}
		return out
	}

	t.Run("title substring, exact match first", func(t *testing.T) {
		got, err := svc.SearchBooks(ctx, model.SearchBooksRequest{Query: "great", Type: model.SearchByTitle})

		require.NoError(t, err)
		assert.Equal(t, []string{"Great", "Great Expectations", "The Great Gatsby"}, titles(got))
	})

	t.Run("author is case insensitive", func(t *testing.T) {
		got, err := svc.SearchBooks(ctx, model.SearchBooksRequest{Query: "ORWELL", Type: model.SearchByAuthor})

		require.NoError(t, err)
		assert.Equal(t, []string{"1984"}, titles(got))
	})

	t.Run("isbn must match exactly", func(t *testing.T) {
		got, err := svc.SearchBooks(ctx, model.SearchBooksRequest{Query: "9780451524935", Type: model.SearchByISBN})
		require.NoError(t, err)
		assert.Equal(t, []string{"1984"}, titles(got))

		got, err = svc.SearchBooks(ctx, model.SearchBooksRequest{Query: "978045152", Type: model.SearchByISBN})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("blank term or unknown type", func(t *testing.T) {
		got, err := svc.SearchBooks(ctx, model.SearchBooksRequest{Query: "   ", Type: model.SearchByTitle})
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = svc.SearchBooks(ctx, model.SearchBooksRequest{Query: "Great", Type: "publisher"})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestExportCatalog(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore())
	seed(t, svc, "Dune", "Frank Herbert", "1234567890123")
	seed(t, svc, "Emma", "Jane Austen", "3210987654321")

	f, err := svc.ExportCatalog(ctx)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(catalogSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Title", header)

	title, err := f.GetCellValue(catalogSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "Emma", title)

	isbn, err := f.GetCellValue(catalogSheet, "D2")
	require.NoError(t, err)
	assert.Equal(t, "1234567890123", isbn)

	status, err := f.GetCellValue(catalogSheet, "G2")
	require.NoError(t, err)
	assert.Equal(t, "Available", status)
}
