package exitcode

import (
	"fmt"
	"testing"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"ConfigError", ConfigError, 3},
		{"StorageError", StorageError, 4},
		{"AuthError", AuthError, 5},
		{"NetworkError", NetworkError, 6},
		{"ValidationError", ValidationError, 7},
		{"Interrupted", Interrupted, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error returns success", nil, Success},
		{"no session", errors.NewNoSessionError(), AuthError},
		{"invalid credentials", errors.NewInvalidCredentialsError(400), AuthError},
		{"wrapped unauthorized", fmt.Errorf("admin leads: %w", errors.NewUnauthorizedError(401, "")), AuthError},
		{"backend not configured", errors.NewNotConfiguredError(), NetworkError},
		{"unreachable", errors.NewUnreachableError("/leads", fmt.Errorf("dial tcp")), NetworkError},
		{"timeout", errors.NewTimeoutError("/leads", fmt.Errorf("deadline")), NetworkError},
		{"remote validation", errors.NewValidationError(422, "email: invalid"), ValidationError},
		{"local validation", errors.New(errors.ErrCodeLeadInvalid, "name is required"), ValidationError},
		{"config", errors.New(errors.ErrCodeConfigInvalid, "bad timeout"), ConfigError},
		{"storage", errors.NewStoreWriteError("state.json", fmt.Errorf("read-only")), StorageError},
		{"server", errors.NewServerError(500, ""), GeneralError},
		{"unknown flag", fmt.Errorf("unknown flag: --nope"), UsageError},
		{"unknown command", fmt.Errorf(`unknown command "nope" for "carbonwallet"`), UsageError},
		{"required flag", fmt.Errorf(`required flag(s) "email" not set`), UsageError},
		{"arg count", fmt.Errorf("accepts 1 arg(s), received 0"), UsageError},
		{"plain error", fmt.Errorf("something broke"), GeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{Success, "Success"},
		{UsageError, "Usage error (invalid flags or arguments)"},
		{AuthError, "Authentication error"},
		{NetworkError, "Network error"},
		{ValidationError, "Validation error"},
		{Interrupted, "Interrupted"},
		{99, "Unknown error"},
	}

	for _, tt := range tests {
		if got := GetExitCodeDescription(tt.code); got != tt.want {
			t.Errorf("GetExitCodeDescription(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
