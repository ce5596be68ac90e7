package model

import "time"

// BorrowRecord is one loan of one book to one patron.
// ReturnDate is nil while the loan is active and is set exactly once.
type BorrowRecord struct {
	ID         int64      `json:"id"`
	PatronID   string     `json:"patron_id"`
	BookID     int64      `json:"book_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`

	// Filled from the books table on read.
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
}

func (r *BorrowRecord) IsActive() bool {
	return r.ReturnDate == nil
}

// HistoryStatus returns the label shown in a patron's borrowing history.
func (r *BorrowRecord) HistoryStatus() string {
	if r.IsActive() {
		return HistoryBorrowed
	}
	return HistoryReturned
}
