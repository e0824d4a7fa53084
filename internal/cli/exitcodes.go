package cli

import "errors"

// Exit codes for inkwell.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitNoMatches indicates a search completed without finding anything.
	ExitNoMatches = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrNoMatches signals the no-matches exit code without being a
// loggable failure: the search ran fine, it just found nothing.
var ErrNoMatches = errors.New("no matches found")
