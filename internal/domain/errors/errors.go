package errors

import (
	"errors"
	"net/http"
)

// Domain errors. All of these are client-facing, recoverable conditions; none
// indicate ledger corruption.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientBonus     = errors.New("insufficient bonus funds")
	ErrInvalidCredential     = errors.New("invalid credential")
	ErrBelowMinimumAmount    = errors.New("amount below minimum")
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrBonusNotFound         = errors.New("bonus not found")
	ErrBonusAlreadyClaimed   = errors.New("bonus already claimed")
	ErrBonusNotCompleted     = errors.New("bonus wagering not completed")
	ErrBonusAlreadyWithdrawn = errors.New("bonus already withdrawn")
)

// Stable error codes surfaced to clients.
const (
	CodeNotFound           = "ERR_NOT_FOUND"
	CodeInvalidInput       = "ERR_INVALID_INPUT"
	CodeUnauthorized       = "ERR_UNAUTHORIZED"
	CodeInternalError      = "ERR_INTERNAL"
	CodeInsufficientFunds  = "ERR_INSUFFICIENT_FUNDS"
	CodeInsufficientBonus  = "ERR_INSUFFICIENT_BONUS_FUNDS"
	CodeInvalidCredential  = "ERR_INVALID_CREDENTIAL"
	CodeBelowMinimum       = "ERR_BELOW_MINIMUM_AMOUNT"
	CodeWalletNotFound     = "ERR_WALLET_NOT_FOUND"
	CodeTransactionMissing = "ERR_TRANSACTION_NOT_FOUND"
	CodeAlreadyClaimed     = "ERR_BONUS_ALREADY_CLAIMED"
	CodeNotCompleted       = "ERR_BONUS_NOT_COMPLETED"
	CodeAlreadyWithdrawn   = "ERR_BONUS_ALREADY_WITHDRAWN"
)

// AppError is an application error carrying an HTTP status and a stable code.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error.
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err}
}

// Common constructors.

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// FromDomain maps a domain sentinel to its client-facing AppError. Unknown
// errors become internal errors.
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return NewAppError(http.StatusUnprocessableEntity, CodeInsufficientFunds, "insufficient funds", err)
	case errors.Is(err, ErrInsufficientBonus):
		return NewAppError(http.StatusUnprocessableEntity, CodeInsufficientBonus, "insufficient bonus funds", err)
	case errors.Is(err, ErrInvalidCredential):
		return NewAppError(http.StatusUnauthorized, CodeInvalidCredential, "invalid credential", err)
	case errors.Is(err, ErrBelowMinimumAmount):
		return NewAppError(http.StatusBadRequest, CodeBelowMinimum, "amount below minimum", err)
	case errors.Is(err, ErrWalletNotFound):
		return NewAppError(http.StatusNotFound, CodeWalletNotFound, "wallet not found", err)
	case errors.Is(err, ErrTransactionNotFound):
		return NewAppError(http.StatusNotFound, CodeTransactionMissing, "transaction not found", err)
	case errors.Is(err, ErrBonusNotFound):
		return NewAppError(http.StatusNotFound, CodeNotFound, "bonus not found", err)
	case errors.Is(err, ErrBonusAlreadyClaimed):
		return NewAppError(http.StatusConflict, CodeAlreadyClaimed, "bonus already claimed", err)
	case errors.Is(err, ErrBonusNotCompleted):
		return NewAppError(http.StatusUnprocessableEntity, CodeNotCompleted, "bonus wagering not completed", err)
	case errors.Is(err, ErrBonusAlreadyWithdrawn):
		return NewAppError(http.StatusConflict, CodeAlreadyWithdrawn, "bonus already withdrawn", err)
	case errors.Is(err, ErrNotFound):
		return NotFound("resource not found")
	case errors.Is(err, ErrInvalidInput):
		return BadRequest(err.Error())
	case errors.Is(err, ErrUnauthorized):
		return Unauthorized("unauthorized")
	default:
		return InternalError(err)
	}
}
