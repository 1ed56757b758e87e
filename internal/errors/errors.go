package errors

import (
	"errors"
	"fmt"

	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeUnauthenticated indicates the caller has no valid session.
	ErrCodeUnauthenticated ErrorCode = "unauthenticated"
	// ErrCodeAccountInactive indicates a valid session whose account has been
	// administratively disabled. Distinct from unauthenticated so callers can
	// render a specific message instead of a silent login loop.
	ErrCodeAccountInactive ErrorCode = "account_inactive"
	// ErrCodeForbidden indicates a valid active session with insufficient role.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeInvalidRequirement indicates a guard was invoked with a
	// requirement outside the recognized set. Programmer error; fails loudly
	// and never downgrades to allow.
	ErrCodeInvalidRequirement ErrorCode = "invalid_requirement"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (e.g., unique constraint violation).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message,
// and optional cause. It supports error wrapping and unwrapping for use with
// errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
	// Requirement and ActualRole carry authorization context for forbidden
	// errors so callers can pick a role-appropriate redirect target.
	Requirement domainauth.Requirement
	ActualRole  domainauth.Role
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Unauthenticated creates a new Unauthenticated error.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthenticated,
		Message: message,
	}
}

// AccountInactive creates a new AccountInactive error for the given user.
func AccountInactive(userID string) *AppError {
	return &AppError{
		Code:    ErrCodeAccountInactive,
		Message: fmt.Sprintf("account %s is inactive", userID),
	}
}

// Forbidden creates a new Forbidden error carrying the failed requirement and
// the caller's actual role.
func Forbidden(req domainauth.Requirement, actual domainauth.Role) *AppError {
	return &AppError{
		Code:        ErrCodeForbidden,
		Message:     fmt.Sprintf("role %s does not satisfy requirement %s", actual, req),
		Requirement: req,
		ActualRole:  actual,
	}
}

// InvalidRequirement creates a new InvalidRequirement error.
func InvalidRequirement(req domainauth.Requirement) *AppError {
	return &AppError{
		Code:        ErrCodeInvalidRequirement,
		Message:     fmt.Sprintf("unrecognized guard requirement %q", string(req)),
		Requirement: req,
	}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
	}
}

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsUnauthenticated checks if an error is an Unauthenticated error.
func IsUnauthenticated(err error) bool {
	return isCode(err, ErrCodeUnauthenticated)
}

// IsAccountInactive checks if an error is an AccountInactive error.
func IsAccountInactive(err error) bool {
	return isCode(err, ErrCodeAccountInactive)
}

// IsForbidden checks if an error is a Forbidden error.
func IsForbidden(err error) bool {
	return isCode(err, ErrCodeForbidden)
}

// IsInvalidRequirement checks if an error is an InvalidRequirement error.
func IsInvalidRequirement(err error) bool {
	return isCode(err, ErrCodeInvalidRequirement)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool {
	return isCode(err, ErrCodeConflict)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool {
	return isCode(err, ErrCodeInternal)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetActualRole returns the ActualRole recorded on a forbidden error, or the
// empty role when absent.
func GetActualRole(err error) domainauth.Role {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ActualRole
	}
	return ""
}
