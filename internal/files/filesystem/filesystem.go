package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// FileSystemProvider reads whole files by path.
type FileSystemProvider interface {
	// ReadFile reads the file at the given path.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	// Missing files report an error satisfying errors.Is(err, fs.ErrNotExist).
	Stat(path string) (FileInfo, error)
}
