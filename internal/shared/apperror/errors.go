package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers and callers can react without string matching.
type Kind string

const (
	KindValidation  Kind = "VALIDATION_ERROR"
	KindNotFound    Kind = "NOT_FOUND"
	KindState       Kind = "STATE_ERROR"
	KindLimit       Kind = "LIMIT_EXCEEDED"
	KindDeclined    Kind = "PAYMENT_DECLINED"
	KindGateway     Kind = "GATEWAY_ERROR"
	KindPersistence Kind = "PERSISTENCE_ERROR"
	KindInternal    Kind = "INTERNAL_ERROR"
)

// =====================================================
// APPLICATION ERROR
// =====================================================

// Error carries a user-facing message next to the underlying cause.
// Message is what staff sees; Err is for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an application error
func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// =====================================================
// CONSTRUCTORS
// =====================================================

func Validation(message string) *Error {
	return New(KindValidation, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

func State(message string, err error) *Error {
	return New(KindState, message, err)
}

func Limit(message string) *Error {
	return New(KindLimit, message, nil)
}

func Declined(message string) *Error {
	return New(KindDeclined, message, nil)
}

func Gateway(message string, err error) *Error {
	return New(KindGateway, message, err)
}

func Persistence(message string, err error) *Error {
	return New(KindPersistence, message, err)
}

// =====================================================
// HELPERS
// =====================================================

// KindOf returns the kind of the first *Error in the chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the user-facing message of err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}

// Outcome flattens an error into the (success, message) pair shown to staff.
func Outcome(err error) (bool, string) {
	if err == nil {
		return true, ""
	}
	return false, Message(err)
}

var kindStatusMap = map[Kind]int{
	KindValidation:  http.StatusBadRequest,
	KindNotFound:    http.StatusNotFound,
	KindState:       http.StatusConflict,
	KindLimit:       http.StatusConflict,
	KindDeclined:    http.StatusPaymentRequired,
	KindGateway:     http.StatusBadGateway,
	KindPersistence: http.StatusInternalServerError,
	KindInternal:    http.StatusInternalServerError,
}

// HTTPStatus maps an error kind to a response status code.
func HTTPStatus(kind Kind) int {
	if status, ok := kindStatusMap[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
