package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a domain failure so callers can branch on it.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindDuplicate
	KindCapacity
	KindInsufficientFunds
	KindInvalidInput
	KindConflict
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate")
	ErrCapacity          = errors.New("capacity reached")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict")
	ErrInternal          = errors.New("internal error")
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindDuplicate:
		return "DUPLICATE"
	case KindCapacity:
		return "CAPACITY"
	case KindInsufficientFunds:
		return "INSUFFICIENT_FUNDS"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindDuplicate:
		return ErrDuplicate
	case KindCapacity:
		return ErrCapacity
	case KindInsufficientFunds:
		return ErrInsufficientFunds
	case KindInvalidInput:
		return ErrInvalidInput
	case KindConflict:
		return ErrConflict
	default:
		return ErrInternal
	}
}

// AppError is a structured domain error. Code is a stable machine-readable
// identifier, Message is safe to show to a caller.
type AppError struct {
	Kind     Kind
	Code     string
	Message  string
	Internal error
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Internal)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is lets errors.Is(err, apperrors.ErrNotFound) match any NotFound AppError.
func (e *AppError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func New(kind Kind, code, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code, message string, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Internal: err}
}

func NotFound(code, format string, args ...any) *AppError {
	return New(KindNotFound, code, fmt.Sprintf(format, args...))
}

func Duplicate(code, format string, args ...any) *AppError {
	return New(KindDuplicate, code, fmt.Sprintf(format, args...))
}

func Capacity(code, format string, args ...any) *AppError {
	return New(KindCapacity, code, fmt.Sprintf(format, args...))
}

func InsufficientFunds(code, format string, args ...any) *AppError {
	return New(KindInsufficientFunds, code, fmt.Sprintf(format, args...))
}

func InvalidInput(code, format string, args ...any) *AppError {
	return New(KindInvalidInput, code, fmt.Sprintf(format, args...))
}

func Conflict(code, format string, args ...any) *AppError {
	return New(KindConflict, code, fmt.Sprintf(format, args...))
}

// KindOf reports the Kind of err, or KindInternal for anything that is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the status code the HTTP layer should return.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicate, KindCapacity, KindConflict:
		return http.StatusConflict
	case KindInsufficientFunds:
		return http.StatusPaymentRequired
	case KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-safe message for err.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
