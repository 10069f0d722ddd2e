// Package errors provides error handling conventions for the buildenv CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type for CLI exit code handling, and exit code constants
// following standard Unix conventions.
//
// # Error Taxonomy
//
// Discovery and lookup operations follow three rules:
//
//   - Absence of a requested resource is an expected outcome, reported as an
//     empty result, never as an error. [ErrNotFound] exists only for callers
//     that need to convert absence into a hard failure.
//   - A missing helper executable (wslpath, cygpath, reg.exe) is reported
//     with [ErrExternalToolMissing] so the caller can decide whether to fall
//     back or propagate.
//   - Operations undefined for the host variant return a no-op default
//     (identity path translation, empty discovery results) rather than
//     failing. [ErrUnsupportedPlatform] is reserved for callers that must
//     distinguish the case.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [errors.Is]:
//
//	if errors.Is(err, benverrors.ErrExternalToolMissing) {
//	    // fall back to the unmodified path
//	}
//
// # Exit Codes
//
// The package defines standard exit codes for CLI applications:
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, missing tools, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion
// for CLI applications. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := benverrors.NewUserError(benverrors.ErrInvalidConfig, "Check your config file")
//	var exitErr *benverrors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
