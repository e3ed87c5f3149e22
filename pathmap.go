package esrename

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// PathMap resolves specifiers the way module loader path configuration
// does: relative specifiers against the parent's directory, bare
// specifiers through a prefix map, and anything left over under a list of
// package roots.
type PathMap struct {
	// BaseDir anchors relative targets in Paths and relative Roots.
	// Empty means the working directory.
	BaseDir string
	// Paths maps a specifier prefix to a target path. A key matches a
	// specifier equal to it or starting with it followed by "/". The
	// longest matching key wins. A key ending in "/*" or "*" matches by
	// plain prefix.
	Paths map[string]string
	// Roots are directories searched in order for bare specifiers not
	// covered by Paths. The first root containing the module wins; when
	// none does, the first root is used.
	Roots []string
	// Extensions are tried when probing Roots. Defaults to
	// DefaultExtensions.
	Extensions []string

	stat func(string) (fs.FileInfo, error)
}

// Resolve implements Resolver.
func (m *PathMap) Resolve(_ context.Context, originalPath, parent string) (string, error) {
	if isRelative(originalPath) {
		return filepath.Abs(filepath.Join(filepath.Dir(parent), filepath.FromSlash(originalPath)))
	}
	if filepath.IsAbs(originalPath) {
		return filepath.Clean(originalPath), nil
	}

	if target, ok := m.match(originalPath); ok {
		return m.abs(target)
	}

	for _, root := range m.Roots {
		candidate := filepath.Join(root, filepath.FromSlash(originalPath))
		if m.exists(candidate) {
			return m.abs(candidate)
		}
	}
	if len(m.Roots) > 0 {
		return m.abs(filepath.Join(m.Roots[0], filepath.FromSlash(originalPath)))
	}
	return "", fmt.Errorf("%w: %q imported by %s", ErrUnresolved, originalPath, parent)
}

// match applies the longest matching Paths entry.
func (m *PathMap) match(specifier string) (string, bool) {
	best := ""
	found := false
	var target string
	for key, to := range m.Paths {
		rest, ok := matchPrefix(key, specifier)
		if !ok || (found && len(key) <= len(best)) {
			continue
		}
		best, found = key, true
		target = strings.TrimSuffix(strings.TrimSuffix(to, "*"), "/")
		if rest != "" {
			target += "/" + rest
		}
	}
	return filepath.FromSlash(target), found
}

// matchPrefix reports whether key matches specifier and returns the part
// of specifier after the matched prefix.
func matchPrefix(key, specifier string) (string, bool) {
	if prefix, ok := strings.CutSuffix(key, "*"); ok {
		rest, ok := strings.CutPrefix(specifier, prefix)
		return strings.TrimPrefix(rest, "/"), ok
	}
	if specifier == key {
		return "", true
	}
	if rest, ok := strings.CutPrefix(specifier, key+"/"); ok {
		return rest, true
	}
	return "", false
}

func (m *PathMap) abs(p string) (string, error) {
	if !filepath.IsAbs(p) && m.BaseDir != "" {
		p = filepath.Join(m.BaseDir, p)
	}
	return filepath.Abs(p)
}

func (m *PathMap) exists(candidate string) bool {
	stat := m.stat
	if stat == nil {
		stat = os.Stat
	}
	if !filepath.IsAbs(candidate) && m.BaseDir != "" {
		candidate = filepath.Join(m.BaseDir, candidate)
	}
	exts := m.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	for _, ext := range append([]string{""}, exts...) {
		info, err := stat(candidate + ext)
		if err == nil && !info.IsDir() {
			return true
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false
		}
	}
	return false
}
