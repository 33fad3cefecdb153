package port

import (
	"io"
	"io/fs"
)

// File is an open, readable document or database file.
type File interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer
	Stat() (fs.FileInfo, error)
}

// FileAccess opens files for reading.
type FileAccess interface {
	Open(path string) (File, error)
}

// PathExpander turns command-line arguments into candidate paths,
// expanding glob patterns.
type PathExpander interface {
	Expand(args []string) ([]string, error)
}
