package esrename

import (
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the file extensions recognized as ES modules. The
// first entry is appended to resolved paths that carry none of them when
// computing the path a dependency is loaded from.
var DefaultExtensions = []string{".js"}

// Normalize turns a resolved path into the value written back into an
// import statement. When basePath is set the result is relative to it
// and slash-separated. A trailing extension is removed only when it is
// one of exts; any other suffix is left alone.
func Normalize(p, basePath string, exts []string) (string, error) {
	n := normalizer{basePath: basePath, extensions: exts}
	return n.normalize(p)
}

type normalizer struct {
	basePath   string
	extensions []string
	strict     bool
}

func (n normalizer) normalize(p string) (string, error) {
	if n.basePath != "" {
		base, err := filepath.Abs(n.basePath)
		if err != nil {
			return "", err
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(base, abs)
		if err != nil {
			return "", err
		}
		p = filepath.ToSlash(rel)
	}

	ext := extension(p)
	switch {
	case ext == "":
	case n.known(ext):
		p = strings.TrimSuffix(p, ext)
	case n.strict:
		return "", &ExtensionError{Path: p, Ext: ext}
	}
	return p, nil
}

// extension returns the extension of the final element of p. A dotfile
// such as ".js" has none.
func extension(p string) string {
	base := path.Base(filepath.ToSlash(p))
	if ext := path.Ext(base); ext != base {
		return ext
	}
	return ""
}

func (n normalizer) known(ext string) bool {
	return slices.Contains(n.extensions, ext)
}

// canonical returns the path a resolved dependency is loaded from and
// deduplicated by: absolute, with the default extension appended unless
// the path already ends in a known one.
func (n normalizer) canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if len(n.extensions) > 0 && !n.known(extension(abs)) {
		abs += n.extensions[0]
	}
	return abs, nil
}
