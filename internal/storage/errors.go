package storage

import "errors"

var (
	ErrBookNotFound           = errors.New("book not found")
	ErrDuplicateISBN          = errors.New("isbn already exists")
	ErrNoActiveRecord         = errors.New("no active borrow record")
	ErrAvailabilityOutOfRange = errors.New("available copies out of range")
)
