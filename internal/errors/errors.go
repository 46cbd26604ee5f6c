package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Network errors (NET-001 to NET-099)
	ErrCodeNetworkUnreachable    ErrorCode = "NET-001"
	ErrCodeNetworkNotConfigured  ErrorCode = "NET-002"
	ErrCodeNetworkTimeout        ErrorCode = "NET-003"
	ErrCodeNetworkInvalidRequest ErrorCode = "NET-004"

	// Remote API errors (API-001 to API-099)
	ErrCodeAPIValidation ErrorCode = "API-001"
	ErrCodeAPIServer     ErrorCode = "API-002"
	ErrCodeAPIDecode     ErrorCode = "API-003"
	ErrCodeAPIContract   ErrorCode = "API-004"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeAuthUnauthorized       ErrorCode = "AUTH-002"
	ErrCodeAuthNoSession          ErrorCode = "AUTH-003"

	// Lead errors (LEAD-001 to LEAD-099)
	ErrCodeLeadInvalid ErrorCode = "LEAD-001"

	// Configuration errors (CFG-001 to CFG-099)
	ErrCodeConfigInvalid  ErrorCode = "CFG-001"
	ErrCodeConfigLoad     ErrorCode = "CFG-002"
	ErrCodeConfigKeyUnset ErrorCode = "CFG-003"

	// Storage errors (STORE-001 to STORE-099)
	ErrCodeStoreRead   ErrorCode = "STORE-001"
	ErrCodeStoreWrite  ErrorCode = "STORE-002"
	ErrCodeStoreDriver ErrorCode = "STORE-003"
)

// Category returns the prefix of the code, e.g. "NET" for "NET-001".
func (c ErrorCode) Category() string {
	prefix, _, _ := strings.Cut(string(c), "-")
	return prefix
}

// AppError represents an enhanced error with code, suggestions, and documentation
type AppError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error

	// Status is the HTTP status returned by the remote API, 0 when no
	// response was received.
	Status int
}

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			fmt.Fprintf(&b, "\n  • %s", suggestion)
		}
	}

	if e.DocsURL != "" {
		fmt.Fprintf(&b, "\n\nDocumentation: %s", e.DocsURL)
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *AppError) WithSuggestion(suggestion string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *AppError) WithSuggestions(suggestions ...string) *AppError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *AppError) WithDocs(url string) *AppError {
	e.DocsURL = url
	return e
}

// WithStatus records the HTTP status the error was derived from
func (e *AppError) WithStatus(status int) *AppError {
	e.Status = status
	return e
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ""
}

// IsNetwork reports whether err is a transport or connectivity failure.
func IsNetwork(err error) bool {
	return CodeOf(err).Category() == "NET"
}

// IsValidation reports whether err is a rejected payload, either by the
// remote API, by the outbound contract check or by local validation.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case ErrCodeAPIValidation, ErrCodeAPIContract, ErrCodeLeadInvalid:
		return true
	}
	return false
}

// IsAuth reports whether err is an authentication or authorization failure.
func IsAuth(err error) bool {
	return CodeOf(err).Category() == "AUTH"
}

// IsServer reports whether err is a remote failure not caused by the request.
func IsServer(err error) bool {
	switch CodeOf(err) {
	case ErrCodeAPIServer, ErrCodeAPIDecode:
		return true
	}
	return false
}

// Common error constructors for frequently used errors

// NewNotConfiguredError is returned by every remote call when no backend URL is set
func NewNotConfiguredError() *AppError {
	return New(ErrCodeNetworkNotConfigured, "backend URL is not configured").
		WithSuggestion("Set CARBONWALLET_BACKEND_URL or BACKEND_URL").
		WithSuggestion("Run 'carbonwallet config set api.backend_url <url>'")
}

// NewUnreachableError wraps a transport failure
func NewUnreachableError(endpoint string, cause error) *AppError {
	return Wrap(ErrCodeNetworkUnreachable, fmt.Sprintf("request to %s failed", endpoint), cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Run 'carbonwallet doctor' to verify the backend is reachable")
}

// NewTimeoutError wraps a request that exceeded its deadline
func NewTimeoutError(endpoint string, cause error) *AppError {
	return Wrap(ErrCodeNetworkTimeout, fmt.Sprintf("request to %s timed out", endpoint), cause).
		WithSuggestion("Increase api.timeout in the configuration")
}

// NewInvalidCredentialsError is returned when the login exchange is rejected
func NewInvalidCredentialsError(status int) *AppError {
	return New(ErrCodeAuthInvalidCredentials, "invalid username or password").
		WithStatus(status).
		WithSuggestion("Check your username and password")
}

// NewUnauthorizedError is returned when a bearer token is missing or rejected
func NewUnauthorizedError(status int, detail string) *AppError {
	msg := "request was not authorized"
	if detail != "" {
		msg += ": " + detail
	}
	return New(ErrCodeAuthUnauthorized, msg).
		WithStatus(status).
		WithSuggestion("Run 'carbonwallet login' to start a new session")
}

// NewNoSessionError is returned when a protected operation runs without a token
func NewNoSessionError() *AppError {
	return New(ErrCodeAuthNoSession, "not logged in").
		WithSuggestion("Run 'carbonwallet login' first")
}

// NewValidationError carries the remote API's explanation of a rejected request
func NewValidationError(status int, detail string) *AppError {
	msg := "request was rejected"
	if detail != "" {
		msg += ": " + detail
	}
	return New(ErrCodeAPIValidation, msg).WithStatus(status)
}

// NewServerError is returned for 5xx responses
func NewServerError(status int, detail string) *AppError {
	msg := fmt.Sprintf("server error (HTTP %d)", status)
	if detail != "" {
		msg += ": " + detail
	}
	return New(ErrCodeAPIServer, msg).
		WithStatus(status).
		WithSuggestion("Try again later")
}

// NewStoreWriteError wraps a failure to persist local state
func NewStoreWriteError(path string, cause error) *AppError {
	return Wrap(ErrCodeStoreWrite, fmt.Sprintf("failed to write %s", path), cause).
		WithSuggestion("Check permissions on the carbonwallet home directory")
}

// NewStoreReadError wraps a failure to load local state
func NewStoreReadError(path string, cause error) *AppError {
	return Wrap(ErrCodeStoreRead, fmt.Sprintf("failed to read %s", path), cause).
		WithSuggestion("Remove the file to reset local state")
}
