package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// =====================================================
// REQUESTS
// =====================================================

type PatronRequest struct {
	PatronID string `json:"patron_id" form:"patron_id"`
}

// =====================================================
// RESULTS
// =====================================================

type BorrowResult struct {
	Message string        `json:"message"`
	Record  *BorrowRecord `json:"record"`
}

type ReturnResult struct {
	Message     string          `json:"message"`
	RecordID    int64           `json:"record_id"`
	DaysOverdue int             `json:"days_overdue"`
	LateFee     decimal.Decimal `json:"late_fee"`
	ReturnedAt  time.Time       `json:"returned_at"`
}
