package esrename

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
)

// Resolver maps a module specifier found in a statement to the path of
// the module it names. parent is the logical name or path of the unit
// containing the statement.
//
// Resolve is called concurrently for the statements of one unit. A
// Resolver that blocks should honour ctx; the run is cancelled as soon as
// any resolution fails.
type Resolver interface {
	Resolve(ctx context.Context, originalPath, parent string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, originalPath, parent string) (string, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, originalPath, parent string) (string, error) {
	return f(ctx, originalPath, parent)
}

// CallbackResolver adapts a resolver that reports its result through a
// completion callback. fn may call done synchronously or from another
// goroutine. Only the first call to done counts. A panic in fn before
// done is called is reported as the resolution error.
func CallbackResolver(fn func(originalPath, parent string, done func(string, error))) Resolver {
	return callbackResolver(fn)
}

type callbackResolver func(originalPath, parent string, done func(string, error))

type resolution struct {
	path string
	err  error
}

func (c callbackResolver) Resolve(ctx context.Context, originalPath, parent string) (string, error) {
	ch := make(chan resolution, 1)
	var once sync.Once
	done := func(path string, err error) {
		once.Do(func() { ch <- resolution{path: path, err: err} })
	}

	if err := c.invoke(originalPath, parent, done); err != nil {
		done("", err)
	}

	select {
	case r := <-ch:
		return r.path, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c callbackResolver) invoke(originalPath, parent string, done func(string, error)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	c(originalPath, parent, done)
	return nil
}

// RelativeResolver returns a Resolver that resolves relative specifiers
// ("./x", "../x") against the directory of the parent and every other
// specifier against root. Results are absolute paths.
func RelativeResolver(root string) Resolver {
	return ResolverFunc(func(_ context.Context, originalPath, parent string) (string, error) {
		switch {
		case isRelative(originalPath):
			return filepath.Abs(filepath.Join(filepath.Dir(parent), filepath.FromSlash(originalPath)))
		case filepath.IsAbs(originalPath):
			return filepath.Clean(originalPath), nil
		default:
			return filepath.Abs(filepath.Join(root, filepath.FromSlash(originalPath)))
		}
	})
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}
