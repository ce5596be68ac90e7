package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// =====================================================
// PAY LATE FEES
// =====================================================

type PayLateFeesRequest struct {
	PatronID string `json:"patron_id"`
	BookID   int64  `json:"book_id"`
}

// =====================================================
// REFUND
// =====================================================

type RefundRequest struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// Validate checks the transaction id shape and the amount bounds, in that order.
func (r RefundRequest) Validate() error {
	if err := ValidateTransactionID(r.TransactionID); err != nil {
		return err
	}
	if !r.Amount.IsPositive() {
		return validation.NewError("refund_amount_not_positive", MsgRefundNotPositive)
	}
	if r.Amount.GreaterThan(MaxRefundAmount) {
		return validation.NewError("refund_amount_too_large", MsgRefundExceedsMax)
	}
	return nil
}

// ValidateTransactionID accepts identifiers issued by the gateway.
func ValidateTransactionID(id string) error {
	return validation.Validate(id,
		validation.Required.Error(MsgInvalidTransaction),
		validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if !strings.HasPrefix(s, TransactionIDPrefix) || len(s) == len(TransactionIDPrefix) {
				return validation.NewError("invalid_transaction_id", MsgInvalidTransaction)
			}
			return nil
		}),
	)
}
