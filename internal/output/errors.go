package output

import "fmt"

// Exit codes following sysexits.h convention
const (
	ExitOK           = 0  // Success
	ExitGeneral      = 1  // General error
	ExitUsage        = 2  // Invalid usage / bad arguments
	ExitAuth         = 3  // Authentication failure
	ExitNotFound     = 4  // Resource not found
	ExitRateLimit    = 75 // Rate limited (EX_TEMPFAIL from sysexits.h)
	ExitAPIError     = 9  // Gmail API error (non-specific)
	ExitConfigError  = 10 // Configuration error
	ExitNetworkError = 11 // Network connectivity error
)

// CLIError represents a structured error with exit code and optional hint
type CLIError struct {
	ExitCode int
	Message  string
	Hint     string
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// NewCLIError creates a new CLIError
func NewCLIError(code int, msg string) *CLIError {
	return &CLIError{
		ExitCode: code,
		Message:  msg,
	}
}

// WithHint adds a user-facing hint to the error
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// UnknownFormatError is returned for an unrecognized output format
// token. Unlike the other error kinds it is non-fatal: the CLI reports
// it to diagnostics and continues without output.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("unknown output format %q", e.Format)
}
