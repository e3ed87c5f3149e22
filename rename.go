package esrename

import (
	"context"
	"log/slog"
)

// Option configures Rename and RenameAsync.
type Option func(*config)

type config struct {
	logger             *slog.Logger
	basePath           string
	renameDependencies bool
	extensions         []string
	strictExtensions   bool
	loader             Loader
	concurrency        int
}

func defaultConfig() config {
	return config{
		extensions: DefaultExtensions,
		loader:     FileLoader(),
	}
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithBasePath makes rewritten specifiers relative to basePath.
func WithBasePath(basePath string) Option {
	return func(c *config) { c.basePath = basePath }
}

// WithRenameDependencies enables following every renamed specifier to the
// module it names, loading and rewriting that module too.
func WithRenameDependencies(enabled bool) Option {
	return func(c *config) { c.renameDependencies = enabled }
}

// WithExtensions sets the file extensions recognized as modules. The first
// one is appended to resolved paths without a known extension.
func WithExtensions(exts ...string) Option {
	return func(c *config) { c.extensions = exts }
}

// WithStrictExtensions makes a resolved path whose extension is not one of
// the recognized ones an *ExtensionError instead of keeping it as is.
func WithStrictExtensions(enabled bool) Option {
	return func(c *config) { c.strictExtensions = enabled }
}

// WithLoader sets the Loader used for discovered dependencies.
// Defaults to FileLoader.
func WithLoader(loader Loader) Option {
	return func(c *config) {
		if loader != nil {
			c.loader = loader
		}
	}
}

// WithConcurrency bounds the number of resolutions (and dependency loads)
// in flight at once. Zero or negative means no limit.
func WithConcurrency(n int) Option {
	return func(c *config) { c.concurrency = n }
}

// Rename rewrites the specifier of every import and re-export statement
// in units using resolver, and returns the units in processing order.
//
// With WithRenameDependencies, each resolved path is loaded (once per
// canonical path), parsed and appended to the result, and its statements
// are rewritten in turn until no new module is found.
//
// The first error from any resolution, load or parse ends the run and is
// returned; no units are returned with it. Resolver errors are returned
// unchanged.
//
// Example:
//
//	units, err := esrename.Rename(ctx, []*esrename.Unit{unit},
//	    esrename.RelativeResolver("node_modules"),
//	    esrename.WithRenameDependencies(true),
//	    esrename.WithBasePath("/srv/app"),
//	)
func Rename(ctx context.Context, units []*Unit, resolver Resolver, opts ...Option) ([]*Unit, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if resolver == nil {
		return nil, ErrNilResolver
	}
	for _, u := range units {
		if u == nil || u.AST == nil {
			return nil, ErrNilUnit
		}
	}

	e, err := newEngine(units, resolver, cfg)
	if err != nil {
		return nil, err
	}
	return e.run(ctx)
}

// RenameAsync runs Rename on a new goroutine and calls done exactly once
// with its result.
func RenameAsync(ctx context.Context, units []*Unit, resolver Resolver, done func([]*Unit, error), opts ...Option) {
	go func() {
		done(Rename(ctx, units, resolver, opts...))
	}()
}
