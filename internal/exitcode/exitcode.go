package exitcode

import (
	"os"
	"strings"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ConfigError indicates an unreadable or invalid configuration
	ConfigError = 3

	// StorageError indicates local state could not be read or written
	StorageError = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// ValidationError indicates input rejected locally or by the remote API
	ValidationError = 7

	// Interrupted indicates the user cancelled with Ctrl+C
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error to an exit code. Coded errors are mapped
// by category; uncoded errors from flag parsing count as usage errors.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch {
	case errors.IsAuth(err):
		return AuthError
	case errors.IsNetwork(err):
		return NetworkError
	case errors.IsValidation(err):
		return ValidationError
	}

	switch errors.CodeOf(err).Category() {
	case "CFG":
		return ConfigError
	case "STORE":
		return StorageError
	case "":
		if isUsage(err) {
			return UsageError
		}
	}

	return GeneralError
}

var usageMarkers = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"invalid argument",
	"required flag",
	"accepts ",
	"flag needs an argument",
}

func isUsage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, m := range usageMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ConfigError:
		return "Configuration error"
	case StorageError:
		return "Local storage error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case ValidationError:
		return "Validation error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
