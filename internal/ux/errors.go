package ux

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
)

// ErrorWithSuggestion wraps an error with a recovery suggestion
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a recovery suggestion to errors that do not carry one.
// Coded errors that already list suggestions are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	if appErr, ok := errors.As(err); ok {
		if len(appErr.Suggestions) > 0 {
			return err
		}
		if s := suggestForCode(appErr.Code); s != "" {
			return NewErrorWithSuggestion(err, s)
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"), strings.Contains(msg, "no route to host"):
		return NewErrorWithSuggestion(err,
			"Check api.backend_url and run 'carbonwallet doctor'")
	case strings.Contains(msg, "permission denied"):
		return NewErrorWithSuggestion(err,
			"Check permissions on ~/.carbonwallet or set CARBONWALLET_HOME to a writable directory")
	case strings.Contains(msg, "config.yaml"):
		return NewErrorWithSuggestion(err,
			"Run 'carbonwallet config path' to locate the file, or delete it to restore defaults")
	case strings.Contains(msg, "user aborted"):
		return NewErrorWithSuggestion(err,
			"Pass the values as flags to skip the prompts")
	}

	return err
}

func suggestForCode(code errors.ErrorCode) string {
	switch code {
	case errors.ErrCodeAPIValidation, errors.ErrCodeLeadInvalid:
		return "Fix the fields named above and submit again"
	case errors.ErrCodeAPIContract:
		return "Disable api.validate_requests if the remote API changed"
	case errors.ErrCodeAPIDecode:
		return "Check that api.backend_url points at the Carbon Wallet API"
	}
	switch code.Category() {
	case "CFG":
		return "Run 'carbonwallet config view' to inspect the configuration"
	case "STORE":
		return "Run 'carbonwallet doctor' to check local storage"
	}
	return ""
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}
