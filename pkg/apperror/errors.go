package apperror

import (
	"fmt"
	"net/http"
)

// Class groups error codes by how a caller is expected to react.
type Class string

const (
	ClassValidation     Class = "VALIDATION"
	ClassResolution     Class = "RESOLUTION"
	ClassConflict       Class = "CONFLICT"
	ClassExternal       Class = "EXTERNAL"
	ClassPersistence    Class = "PERSISTENCE"
	ClassReconciliation Class = "RECONCILIATION"
	ClassAuth           Class = "AUTH"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string            `json:"error_code"`
	Class      Class             `json:"class"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"` // Wrapped internal error (not exposed to client)
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

// Is matches another AppError by code, so errors.Is(err, apperror.ErrAlreadyResolved("")) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns the error with an extra detail entry.
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code string, class Class, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Class:      class,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, class Class, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Class:      class,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", ClassValidation, "Invalid amount", http.StatusBadRequest)
}

func ErrInvalidPayload(reason string) *AppError {
	return New("VAL_002", ClassValidation, "Invalid payload: "+reason, http.StatusBadRequest)
}

func ErrInvalidRecipient(reason string) *AppError {
	return New("VAL_003", ClassValidation, "Invalid recipient: "+reason, http.StatusBadRequest)
}

// ErrInsufficientBalance lists the shortfall per resource in Details.
func ErrInsufficientBalance(shortfall map[string]string) *AppError {
	e := New("VAL_004", ClassValidation, "Insufficient balance", http.StatusPaymentRequired)
	for k, v := range shortfall {
		e.WithDetail(k, v)
	}
	return e
}

// Validation returns a generic validation error.
func Validation(message string) *AppError {
	return New("VAL_005", ClassValidation, message, http.StatusBadRequest)
}

// ---- Resolution (RES) ----

func ErrNotFound(entity string) *AppError {
	return New("RES_001", ClassResolution, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Conflict (CON) ----

func ErrAlreadyResolved(status string) *AppError {
	e := New("CON_001", ClassConflict, "Request is no longer pending", http.StatusConflict)
	if status != "" {
		e.WithDetail("status", status)
	}
	return e
}

func ErrNotRequester() *AppError {
	return New("CON_002", ClassConflict, "Only the requester can do this", http.StatusForbidden)
}

func ErrSessionStep(message string) *AppError {
	return New("CON_003", ClassConflict, message, http.StatusConflict)
}

func ErrAlreadyExists(entity string) *AppError {
	return New("CON_004", ClassConflict, fmt.Sprintf("%s already exists", entity), http.StatusConflict)
}

// ---- External (EXT) ----

func ErrPaymentFailed(err error) *AppError {
	return Wrap("EXT_001", ClassExternal, "External payment failed, manual follow-up required", http.StatusBadGateway, err)
}

func ErrFeedUnavailable(err error) *AppError {
	return Wrap("EXT_002", ClassExternal, "External transaction feed unavailable", http.StatusBadGateway, err)
}

func ErrMissingCredentials(err error) *AppError {
	return Wrap("EXT_003", ClassExternal, "Credentials for the paying endpoint are missing", http.StatusFailedDependency, err)
}

func ErrFeedBacklog(pageLimit int) *AppError {
	return New("EXT_004", ClassExternal, fmt.Sprintf("Feed backlog exceeds %d pages, nothing applied", pageLimit), http.StatusBadGateway)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", ClassAuth, "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_002", ClassAuth, "Insufficient role for this action", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", ClassAuth, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", ClassPersistence, "Internal database error", http.StatusInternalServerError, err)
}

func ErrDecryptionFailure(err error) *AppError {
	return Wrap("SYS_002", ClassPersistence, "Credential decryption failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", ClassPersistence, "Internal server error", http.StatusInternalServerError, err)
}

// ---- Reconciliation (REC) ----

// ErrReconciliation reports that funds moved externally but the local settlement did not commit.
func ErrReconciliation(requestID, externalRef string, err error) *AppError {
	e := Wrap("REC_001", ClassReconciliation,
		"External payment succeeded but local settlement failed; reconcile manually",
		http.StatusInternalServerError, err)
	e.WithDetail("request_id", requestID)
	e.WithDetail("external_ref", externalRef)
	return e
}
