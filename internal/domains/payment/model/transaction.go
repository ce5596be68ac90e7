package model

import "github.com/shopspring/decimal"

// PaymentTransaction is the outcome of charging a patron's late fee.
// The gateway owns the transaction; nothing here is persisted.
type PaymentTransaction struct {
	TransactionID string          `json:"transaction_id,omitempty"`
	PatronID      string          `json:"patron_id"`
	BookID        int64           `json:"book_id"`
	Amount        decimal.Decimal `json:"amount"`
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
}

type RefundResult struct {
	TransactionID string          `json:"transaction_id"`
	RefundID      string          `json:"refund_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
}
