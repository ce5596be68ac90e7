package model

import "time"

// Book is a catalog entry and its copy counts.
// AvailableCopies stays within [0, TotalCopies].
type Book struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	TotalCopies     int       `json:"total_copies"`
	AvailableCopies int       `json:"available_copies"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsAvailable reports whether at least one copy can be lent out.
func (b *Book) IsAvailable() bool {
	return b.AvailableCopies > 0
}

// CanAcceptReturn reports whether one more copy fits under TotalCopies.
func (b *Book) CanAcceptReturn() bool {
	return b.AvailableCopies+1 <= b.TotalCopies
}
