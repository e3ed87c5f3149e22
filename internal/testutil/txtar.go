// Package testutil provides test fixtures and assertion helpers.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

// Extract writes every file of a txtar archive under a fresh temporary
// directory and returns that directory.
func Extract(t testing.TB, archive string) string {
	t.Helper()
	dir := t.TempDir()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create fixture dir: %v", err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", f.Name, err)
		}
	}
	return dir
}

// Files returns the files of a txtar archive keyed by name.
func Files(archive string) map[string][]byte {
	ar := txtar.Parse([]byte(archive))
	files := make(map[string][]byte, len(ar.Files))
	for _, f := range ar.Files {
		files[f.Name] = f.Data
	}
	return files
}
