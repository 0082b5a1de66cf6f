package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Payment orchestration (PAY) ----

func ErrInvalidInput(detail string) *AppError {
	return New("PAY_001", detail, http.StatusBadRequest)
}

func ErrNoActiveWallet() *AppError {
	return New("PAY_002", "No active wallet selected", http.StatusConflict)
}

// Classified payment failures (sender trust setup, missing recipient
// trust line, dry liquidity path) are not errors at this level: they
// travel as domain.PaymentOutcome reasons on a successful response.

func ErrLedgerRejected(code string) *AppError {
	return New("PAY_006", fmt.Sprintf("Ledger rejected transaction with code %s", code), http.StatusBadGateway)
}

// ---- Wallet lifecycle (WAL) ----

func ErrInvalidSecret(err error) *AppError {
	return Wrap("WAL_001", "Secret is not a valid ledger seed", http.StatusBadRequest, err)
}

func ErrWalletAlreadyImported(address string) *AppError {
	return New("WAL_002", fmt.Sprintf("Wallet %s is already imported", address), http.StatusConflict)
}

func ErrNoSuchWallet(address string) *AppError {
	return New("WAL_003", fmt.Sprintf("Wallet %s is not in the set", address), http.StatusNotFound)
}

func ErrFundingTimedOut(address string) *AppError {
	return New("WAL_004", fmt.Sprintf("Account %s was not funded in time", address), http.StatusGatewayTimeout)
}

// ---- Network / ledger transport (NET) ----

func ErrConnectionFailed(err error) *AppError {
	return Wrap("NET_001", "Ledger node unreachable", http.StatusBadGateway, err)
}

// ---- Metadata directory (DIR) ----

func ErrMetadataPersistenceFailed(err error) *AppError {
	return Wrap("DIR_001", "Wallet metadata could not be persisted", http.StatusBadGateway, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a PAY_001-style validation error.
func Validation(message string) *AppError {
	return New("PAY_001", message, http.StatusBadRequest)
}
