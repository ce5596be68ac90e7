package model

import circulationModel "library-backend/internal/domains/circulation/model"

const (
	// TransactionIDPrefix marks identifiers issued by the payment gateway.
	TransactionIDPrefix = "txn_"

	PaymentDescription = "Late fees for '%s'"
)

// MaxRefundAmount is the largest late fee a single loan can accrue.
var MaxRefundAmount = circulationModel.MaxFeePerLoan

// =====================================================
// USER-FACING MESSAGES
// =====================================================

const (
	MsgNoLateFees         = "No late fees to pay for this book."
	MsgPaymentError       = "Payment processing error: %v"
	MsgPaymentFailed      = "Payment failed: %s"
	MsgPaymentNoTxnID     = "Payment processing error: gateway returned no transaction ID."
	MsgPaymentSuccess     = "Payment successful! $%s charged for '%s'. Transaction ID: %s"
	MsgInvalidTransaction = "Invalid transaction ID."
	MsgRefundNotPositive  = "Refund amount must be greater than 0."
	MsgRefundExceedsMax   = "Refund amount exceeds maximum late fee."
	MsgRefundError        = "Refund processing error: %v"
	MsgRefundFailed       = "Refund failed: %s"
	MsgRefundSuccess      = "%s. Transaction ID: %s"
)
