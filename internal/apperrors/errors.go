package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("resource conflict")

// ErrInternal indicates an infrastructure failure (storage unavailable, broken invariant).
var ErrInternal = errors.New("internal error")

// Point-of-sale domain errors. All of them are surfaced to callers verbatim.
var (
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrEmptyCart            = errors.New("sale has no items")
	ErrDebtRequiresCustomer = errors.New("debt sales require a customer")
	ErrNoOpenSession        = errors.New("branch has no open cash session")
	ErrSessionAlreadyOpen   = errors.New("branch already has an open cash session")
	ErrSessionClosed        = errors.New("cash session is closed")
	ErrSaleNotVoidable      = errors.New("sale cannot be voided")
	// ErrConcurrencyConflict is lock or version contention. Safe to retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// InsufficientStockError carries the context needed to explain a stock shortfall.
type InsufficientStockError struct {
	BranchID  string
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s in branch %s requested %d, available %d",
		ErrInsufficientStock.Error(), e.ProductID, e.BranchID, e.Requested, e.Available)
}

// Is makes errors.Is(err, ErrInsufficientStock) match.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewInsufficientStock builds an InsufficientStockError.
func NewInsufficientStock(branchID, productID string, requested, available int) error {
	return &InsufficientStockError{
		BranchID:  branchID,
		ProductID: productID,
		Requested: requested,
		Available: available,
	}
}

// AppError wraps an underlying error with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets infrastructure AppErrors match ErrInternal.
func (e *AppError) Is(target error) bool {
	return target == ErrInternal && e.Code >= 500
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsRetryable reports whether err is a transient conflict worth retrying.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict)
}
