package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/book/model"
)

// ServiceInterface is the catalog surface used by the HTTP layer.
type ServiceInterface interface {
	AddBook(ctx context.Context, req model.AddBookRequest) (*model.AddBookResponse, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id int64) (*model.Book, error)
	SearchBooks(ctx context.Context, req model.SearchBooksRequest) ([]model.Book, error)
	ExportCatalog(ctx context.Context) (*excelize.File, error)
}
