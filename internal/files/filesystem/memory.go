package filesystem

import (
	"io/fs"
	"path"
	"path/filepath"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return false }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths are normalized to forward slashes.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	times map[string]time.Time
}

// NewMemoryFileSystem creates a new, empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string][]byte),
		times: make(map[string]time.Time),
	}
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	key := normalize(filePath)
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[key] = []byte(content)
	mfs.times[key] = time.Now()
}

func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	content, ok := mfs.files[normalize(filePath)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(content))
	copy(out, content)
	return out, nil
}

func (mfs *MemoryFileSystem) Stat(filePath string) (FileInfo, error) {
	key := normalize(filePath)
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	content, ok := mfs.files[key]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
	}
	return &memoryFileInfo{
		name:    path.Base(key),
		size:    int64(len(content)),
		modTime: mfs.times[key],
	}, nil
}

func normalize(filePath string) string {
	return path.Clean(filepath.ToSlash(filePath))
}
