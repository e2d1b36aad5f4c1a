package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temp directory holding files (relative name -> content)
// and removes it when the test ends. Returns the directory path.
func TempDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// WriteSource writes a single program file and returns its path.
func WriteSource(t *testing.T, name, text string) string {
	t.Helper()
	return filepath.Join(TempDir(t, map[string]string{name: text}), name)
}
