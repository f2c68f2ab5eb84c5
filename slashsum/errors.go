package slashsum

import (
	"errors"
	"fmt"
	"io"
)

const usageHint = "Use -h or --help for usage instructions"

var (
	// ErrUsage marks command-line misuse detected before any I/O.
	ErrUsage = errors.New("usage error")

	// ErrNotFound marks an input path that does not exist.
	ErrNotFound = errors.New("file not found")
)

// UsageError describes a malformed command line.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// Is matches ErrUsage.
func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// NotFoundError reports the input path as the user typed it.
type NotFoundError struct {
	Arg string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("File '%s' not found", e.Arg)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PrintError writes err to w the way the command reports failures:
// an "Error: " line, followed by the help hint for usage and
// not-found errors.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", err)

	if errors.Is(err, ErrUsage) || errors.Is(err, ErrNotFound) {
		_, _ = fmt.Fprintln(w, usageHint)
	}
}
