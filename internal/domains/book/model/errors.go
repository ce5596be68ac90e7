package model

const (
	MsgBookNotFound  = "Book not found."
	MsgDuplicateISBN = "A book with this ISBN already exists."
	MsgAddDBError    = "Database error occurred while adding the book."
	MsgListDBError   = "Database error occurred while loading the catalog."
	MsgAddSuccess    = "Book \"%s\" has been successfully added to the catalog."
)
