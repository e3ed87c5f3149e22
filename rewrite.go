package esrename

import (
	"context"
	"log/slog"

	"github.com/esrename/esrename/internal/parser"
	"github.com/esrename/esrename/internal/types"
)

// rewrite is the outcome of resolving one statement.
type rewrite struct {
	// value is the normalized specifier to write into the statement.
	value string
	// canonical is the dependency the statement names, set only when
	// dependencies are followed.
	canonical string
	// unit is the loaded dependency, set on the one statement that
	// claimed canonical.
	unit *Unit
}

// rewriter resolves statements and loads the dependencies they name.
// Its methods are safe for concurrent use.
type rewriter struct {
	resolver     Resolver
	norm         normalizer
	follow       bool
	loader       Loader
	parserLogger *slog.Logger
	types.Logger
}

// rewrite resolves specifier on behalf of parent. It does not touch the
// statement; the engine applies the result once every statement of the
// unit has resolved. A panic in the resolver is returned as an error.
func (r *rewriter) rewrite(ctx context.Context, specifier, parent string) (res rewrite, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = recovered(v)
		}
	}()

	renamed, err := r.resolver.Resolve(ctx, specifier, parent)
	if err != nil {
		return res, err
	}
	if res.value, err = r.norm.normalize(renamed); err != nil {
		return res, err
	}
	if r.follow {
		if res.canonical, err = r.norm.canonical(renamed); err != nil {
			return res, err
		}
	}

	if r.TraceEnabled() {
		r.Trace("resolved",
			slog.String("parent", parent),
			slog.String("specifier", specifier),
			slog.String("resolved", renamed),
			slog.String("value", res.value))
	}
	return res, nil
}

// load reads and parses the dependency at canonical path.
func (r *rewriter) load(ctx context.Context, path string) (u *Unit, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &LoadError{Path: path, Err: recovered(v)}
		}
	}()

	src, err := r.loader.Load(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	mod, err := parser.Parse(src, r.parserLogger)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if r.Enabled(slog.LevelDebug) {
		r.Log(slog.LevelDebug, "dependency loaded",
			slog.String("path", path),
			slog.Int("bytes", len(src)))
	}
	return &Unit{AST: mod, Path: path}, nil
}
