package service

import (
	"context"

	"github.com/shopspring/decimal"

	circulationModel "library-backend/internal/domains/circulation/model"
	"library-backend/internal/domains/payment/model"
)

// =====================================================
// PAYMENT SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// PayLateFees charges the fee currently owed on the patron's loan of bookID.
	// The returned transaction is non-nil whenever validation passed, so callers
	// can show the attempted amount alongside a failure.
	PayLateFees(ctx context.Context, patronID string, bookID int64) (*model.PaymentTransaction, error)

	// RefundLateFeePayment refunds part or all of an earlier late-fee charge
	RefundLateFeePayment(ctx context.Context, transactionID string, amount decimal.Decimal) (*model.RefundResult, error)
}

// FeeCalculator supplies the fee owed on a loan.
type FeeCalculator interface {
	CalculateLateFee(ctx context.Context, patronID string, bookID int64) (*circulationModel.FeeAssessment, error)
}
