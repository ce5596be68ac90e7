package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusReport is served verbatim by the patron status endpoint.
// Error is set only when the report could not be built.
type StatusReport struct {
	Error             string          `json:"error,omitempty"`
	PatronID          string          `json:"patron_id"`
	CurrentlyBorrowed []BorrowedBook  `json:"currently_borrowed"`
	TotalFeesDue      decimal.Decimal `json:"total_fees_due"`
	BooksOverdue      int             `json:"books_overdue"`
	History           []HistoryEntry  `json:"history"`
}

type BorrowedBook struct {
	BookID      int64           `json:"book_id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	BorrowDate  time.Time       `json:"borrow_date"`
	DueDate     time.Time       `json:"due_date"`
	DaysOverdue int             `json:"days_overdue"`
	LateFee     decimal.Decimal `json:"late_fee"`
	IsOverdue   bool            `json:"is_overdue"`
}

type HistoryEntry struct {
	BookID     int64      `json:"book_id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Status     string     `json:"status"`
}

// NewErrorReport returns a report carrying only msg, with empty lists and zero totals.
func NewErrorReport(patronID, msg string) *StatusReport {
	return &StatusReport{
		Error:             msg,
		PatronID:          patronID,
		CurrentlyBorrowed: []BorrowedBook{},
		TotalFeesDue:      decimal.Zero,
		History:           []HistoryEntry{},
	}
}
