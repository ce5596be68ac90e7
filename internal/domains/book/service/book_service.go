package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/storage"
)

type BookService struct {
	store repository.RepositoryInterface
}

var _ ServiceInterface = (*BookService)(nil)

func NewService(store repository.RepositoryInterface) *BookService {
	return &BookService{store: store}
}

// AddBook validates and inserts a new title with every copy available.
func (s *BookService) AddBook(ctx context.Context, req model.AddBookRequest) (*model.AddBookResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if _, err := s.store.GetBookByISBN(ctx, req.ISBN); err == nil {
		return nil, apperror.State(model.MsgDuplicateISBN, nil)
	} else if !errors.Is(err, storage.ErrBookNotFound) {
		return nil, apperror.Persistence(model.MsgAddDBError, err)
	}

	book := &model.Book{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
	}
	if err := s.store.InsertBook(ctx, book); err != nil {
		// Lost a race with a concurrent insert of the same ISBN.
		if errors.Is(err, storage.ErrDuplicateISBN) {
			return nil, apperror.State(model.MsgDuplicateISBN, err)
		}
		return nil, apperror.Persistence(model.MsgAddDBError, err)
	}

	log.Info().Int64("book_id", book.ID).Str("isbn", book.ISBN).Int("copies", book.TotalCopies).Msg("book added")

	return &model.AddBookResponse{
		Message: fmt.Sprintf(model.MsgAddSuccess, book.Title),
		Book:    book,
	}, nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	books, err := s.store.GetAllBooks(ctx)
	if err != nil {
		return nil, apperror.Persistence(model.MsgListDBError, err)
	}
	return books, nil
}

func (s *BookService) GetBook(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookNotFound) {
			return nil, apperror.NotFound(model.MsgBookNotFound)
		}
		return nil, apperror.Persistence(model.MsgListDBError, err)
	}
	return book, nil
}

// SearchBooks matches title and author by case-insensitive substring and
// ISBN exactly. Exact field matches come first, then the rest by title.
func (s *BookService) SearchBooks(ctx context.Context, req model.SearchBooksRequest) ([]model.Book, error) {
	term := strings.TrimSpace(req.Query)
	results := make([]model.Book, 0)
	if term == "" {
		return results, nil
	}

	var field func(b *model.Book) string
	switch req.Type {
	case model.SearchByTitle:
		if len([]rune(term)) > model.MaxTitleLength {
			return results, nil
		}
		field = func(b *model.Book) string { return b.Title }
	case model.SearchByAuthor:
		if len([]rune(term)) > model.MaxAuthorLength {
			return results, nil
		}
		field = func(b *model.Book) string { return b.Author }
	case model.SearchByISBN:
		if !model.IsValidISBN(term) {
			return results, nil
		}
		book, err := s.store.GetBookByISBN(ctx, term)
		if err != nil {
			if errors.Is(err, storage.ErrBookNotFound) {
				return results, nil
			}
			return nil, apperror.Persistence(model.MsgListDBError, err)
		}
		return append(results, *book), nil
	default:
		return results, nil
	}

	books, err := s.store.GetAllBooks(ctx)
	if err != nil {
		return nil, apperror.Persistence(model.MsgListDBError, err)
	}

	needle := strings.ToLower(term)
	for i := range books {
		if strings.Contains(strings.ToLower(field(&books[i])), needle) {
			results = append(results, books[i])
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		ei := strings.EqualFold(field(&results[i]), term)
		ej := strings.EqualFold(field(&results[j]), term)
		if ei != ej {
			return ei
		}
		return strings.ToLower(results[i].Title) < strings.ToLower(results[j].Title)
	})
	return results, nil
}
