package filesystem

import (
	"errors"
	"io/fs"
	"testing"
)

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("queries/users.sql", "SELECT * FROM users")

	content, err := mfs.ReadFile("queries/users.sql")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "SELECT * FROM users" {
		t.Errorf("unexpected content %q", content)
	}

	// Normalized paths resolve to the same file
	if _, err := mfs.ReadFile("queries/../queries/users.sql"); err != nil {
		t.Errorf("normalized path not found: %v", err)
	}

	// Callers cannot mutate stored content
	content[0] = 'X'
	again, _ := mfs.ReadFile("queries/users.sql")
	if string(again) != "SELECT * FROM users" {
		t.Errorf("stored content was mutated: %q", again)
	}
}

func TestMemoryFileSystem_Missing(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if _, err := mfs.ReadFile("nope.sql"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	if _, err := mfs.Stat("nope.sql"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("a/b.sql", "SELECT 1")

	info, err := mfs.Stat("a/b.sql")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "b.sql" || info.Size() != 8 || info.IsDir() {
		t.Errorf("unexpected info: name=%s size=%d dir=%v", info.Name(), info.Size(), info.IsDir())
	}
}
