package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// =====================================================
// GATEWAY INTERFACE
// =====================================================

// Gateway is the external card processor that owns payment transactions.
// A returned error means the call itself failed; a declined charge is a
// response with Success false.
type Gateway interface {
	// ProcessPayment charges the patron and returns the gateway's transaction ID on success
	ProcessPayment(ctx context.Context, req ChargeRequest) (*ChargeResponse, error)

	// RefundPayment refunds part or all of an earlier charge
	RefundPayment(ctx context.Context, req RefundRequest) (*RefundResponse, error)
}

// =====================================================
// REQUEST/RESPONSE TYPES
// =====================================================

// ChargeRequest carries the loan being settled so the gateway can reconcile
// the charge against it.
type ChargeRequest struct {
	PatronID    string
	BookID      int64
	Amount      decimal.Decimal
	Description string
}

type ChargeResponse struct {
	Success       bool
	TransactionID string
	Message       string
}

type RefundRequest struct {
	TransactionID string
	Amount        decimal.Decimal
}

type RefundResponse struct {
	Success  bool
	RefundID string
	Message  string
}
