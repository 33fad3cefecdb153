package fs

import (
	"io"
	"os"

	"invidx/internal/port"
)

// OSFiles opens files from the local filesystem.
type OSFiles struct{}

func (OSFiles) Open(path string) (port.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// IsEmpty reports whether the file behind f has zero length.
func IsEmpty(f port.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}

// Size returns the length of f in bytes.
func Size(f port.File) (int64, error) {
	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// LastNonSpace returns the last byte of r that is not a CR, LF, space or
// tab, scanning backward from size. ok is false when every byte is space.
func LastNonSpace(r io.ReaderAt, size int64) (b byte, ok bool, err error) {
	const block = 512
	buf := make([]byte, block)
	for end := size; end > 0; {
		start := end - block
		if start < 0 {
			start = 0
		}
		chunk := buf[:end-start]
		if _, err := r.ReadAt(chunk, start); err != nil && err != io.EOF {
			return 0, false, err
		}
		for i := len(chunk) - 1; i >= 0; i-- {
			switch chunk[i] {
			case '\r', '\n', ' ', '\t':
				continue
			}
			return chunk[i], true, nil
		}
		end = start
	}
	return 0, false, nil
}
