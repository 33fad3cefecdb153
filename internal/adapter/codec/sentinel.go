package codec

import (
	"io"

	"invidx/internal/adapter/fs"
	"invidx/internal/domain"
)

// CheckSentinel verifies that a database file of the given size starts with
// '#' and, ignoring trailing whitespace, ends with '#'.
func CheckSentinel(r io.ReaderAt, size int64) error {
	if size < 2 {
		return &domain.FormatError{Reason: "database file format invalid (too small)"}
	}

	first := make([]byte, 1)
	if _, err := r.ReadAt(first, 0); err != nil && err != io.EOF {
		return err
	}

	last, ok, err := fs.LastNonSpace(r, size)
	if err != nil {
		return err
	}
	if first[0] != '#' || !ok || last != '#' {
		return &domain.FormatError{Reason: "database file format invalid (missing #)"}
	}
	return nil
}
