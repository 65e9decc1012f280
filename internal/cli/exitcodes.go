package cli

import (
	"errors"

	"github.com/yaklabco/mdmir/internal/configloader"
	"github.com/yaklabco/mdmir/pkg/fsutil"
	"github.com/yaklabco/mdmir/pkg/wire"
)

// Exit codes for mdmir.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates the command ran but its result is a failure:
	// a file failed to convert or outlines differ.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates malformed input, such as an undecodable
	// token stream or tree.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

// ExitCode maps a command error to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrOutlinesDiffer), errors.Is(err, ErrConversionFailed):
		return ExitFailure
	case errors.Is(err, ErrNoInput):
		return ExitInvalidUsage
	case errors.As(err, &validationErr):
		return ExitConfigError
	case errors.Is(err, wire.ErrUnsupportedFormat),
		errors.Is(err, wire.ErrSyntax),
		errors.Is(err, wire.ErrUnknownKind),
		errors.Is(err, wire.ErrBadRoot),
		errors.Is(err, wire.ErrMalformedTokens):
		return ExitDataError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an exit status for a result
// that was already printed, so it should not be logged again.
func IsReported(err error) bool {
	return errors.Is(err, ErrOutlinesDiffer) || errors.Is(err, ErrConversionFailed)
}
