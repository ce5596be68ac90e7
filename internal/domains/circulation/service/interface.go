package service

import (
	"context"

	"library-backend/internal/domains/circulation/model"
)

// ServiceInterface is the borrow lifecycle and patron reporting surface.
type ServiceInterface interface {
	BorrowBook(ctx context.Context, patronID string, bookID int64) (*model.BorrowResult, error)
	ReturnBook(ctx context.Context, patronID string, bookID int64) (*model.ReturnResult, error)
	CalculateLateFee(ctx context.Context, patronID string, bookID int64) (*model.FeeAssessment, error)
	GetPatronStatus(ctx context.Context, patronID string) *model.StatusReport
}
