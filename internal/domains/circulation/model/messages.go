package model

const (
	MsgBookNotFound         = "Book not found."
	MsgBookUnavailable      = "This book is currently not available."
	MsgBorrowLimitReached   = "You have reached the maximum borrowing limit of 5 books."
	MsgNotBorrowed          = "This book was not borrowed."
	MsgAvailabilityOverflow = "Database error: Available copies exceed total copies after return."

	MsgBorrowDBError = "Database error occurred while creating borrow record."
	MsgUpdateDBError = "Database error occurred while updating book availability."
	MsgReturnDBError = "Database error occurred while updating return date."
	MsgLoadDBError   = "Database error occurred while loading patron records."
	MsgLookupDBError = "Database error occurred while loading book."

	MsgBorrowSuccess   = "Successfully borrowed \"%s\". Due date: %s."
	MsgReturnSuccess   = "Successfully returned book '%s'. "
	MsgReturnLateFee   = "Book is %d days overdue. Late fee charged: $%s"
	MsgReturnNoLateFee = "No late fees charged."
)
