package esrename

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads the source of a dependency discovered during a run. path
// is the dependency's canonical path: absolute, with extension.
type Loader interface {
	// Load returns the file content, or an error wrapping fs.ErrNotExist
	// if the file does not exist.
	Load(ctx context.Context, path string) ([]byte, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) ([]byte, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// --- File Loader (operating system filesystem) ---

type fileLoader struct{}

// FileLoader returns a Loader that reads from the operating system
// filesystem. It is the default Loader.
func FileLoader() Loader {
	return fileLoader{}
}

func (fileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// --- FS Loader (for embed.FS, testing, in-memory trees) ---

type fsLoader struct {
	root string
	fsys fs.FS
}

// FSLoader returns a Loader backed by an fs.FS (e.g., embed.FS or
// fstest.MapFS) mounted at root. Canonical paths outside root report
// fs.ErrNotExist.
func FSLoader(root string, fsys fs.FS) Loader {
	return &fsLoader{root: filepath.Clean(root), fsys: fsys}
}

func (l *fsLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(l.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	name := filepath.ToSlash(rel)
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid}
	}
	return fs.ReadFile(l.fsys, name)
}

// --- Multi Loader (combines multiple loaders) ---

type multiLoader struct {
	loaders []Loader
}

// MultiLoader combines multiple loaders into one. Load tries each loader
// in order and returns the first hit; fs.ErrNotExist falls through to the
// next loader, any other error stops the search.
func MultiLoader(loaders ...Loader) Loader {
	return &multiLoader{loaders: loaders}
}

func (m *multiLoader) Load(ctx context.Context, path string) ([]byte, error) {
	for _, l := range m.loaders {
		data, err := l.Load(ctx, path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}
