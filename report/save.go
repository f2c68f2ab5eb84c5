package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// SidecarExt is appended to the input file name to name the saved
// report.
const SidecarExt = ".checksum"

// ErrSave is returned when the sidecar cannot be written.
var ErrSave = errors.New("saving checksums failed")

// SidecarPath returns <dir>/<name>.checksum for the input at path.
func SidecarPath(path string) (string, error) {
	const errCtx = "naming sidecar"

	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf(
			"%s: %w: invalid file name %q", errCtx, ErrSave, path,
		)
	}

	if !utf8.ValidString(base) {
		return "", fmt.Errorf(
			"%s: %w: file name is not valid UTF-8", errCtx, ErrSave,
		)
	}

	return filepath.Join(filepath.Dir(path), base+SidecarExt), nil
}

// Save writes text verbatim to the sidecar of the input at path,
// replacing any previous one, and returns the sidecar path.
func Save(path, text string) (string, error) {
	const errCtx = "saving checksums"

	sp, err := SidecarPath(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errCtx, err)
	}

	//nolint:gosec // sidecar sits next to a user-chosen input
	if err := os.WriteFile(sp, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("%s: %w: %w", errCtx, ErrSave, err)
	}

	return sp, nil
}
