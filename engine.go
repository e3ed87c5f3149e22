package esrename

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/esrename/esrename/internal/types"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-statement logging.
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// engine walks the worklist. units and cursor change between joins only.
// visited is shared with the statement tasks of the unit in progress.
type engine struct {
	rw          *rewriter
	concurrency int

	units  []*Unit
	cursor int

	mu      sync.Mutex
	visited map[string]struct{}

	types.Logger
}

func newEngine(units []*Unit, resolver Resolver, cfg config) (*engine, error) {
	norm := normalizer{
		basePath:   cfg.basePath,
		extensions: cfg.extensions,
		strict:     cfg.strictExtensions,
	}
	e := &engine{
		rw: &rewriter{
			resolver:     resolver,
			norm:         norm,
			follow:       cfg.renameDependencies,
			loader:       cfg.loader,
			parserLogger: types.Component(cfg.logger, "parser"),
			Logger:       types.Logger{L: types.Component(cfg.logger, "loader")},
		},
		concurrency: cfg.concurrency,
		units:       make([]*Unit, 0, len(units)),
		visited:     make(map[string]struct{}, len(units)),
		Logger:      types.Logger{L: types.Component(cfg.logger, "engine")},
	}

	for _, u := range units {
		e.units = append(e.units, u)
		if u.Path == "" {
			continue
		}
		e.visited[u.Path] = struct{}{}
		canonical, err := norm.canonical(u.Path)
		if err != nil {
			return nil, err
		}
		e.visited[canonical] = struct{}{}
	}
	return e, nil
}

func (e *engine) run(ctx context.Context) ([]*Unit, error) {
	initial := len(e.units)
	e.Log(slog.LevelInfo, "rename started",
		slog.Int("units", initial),
		slog.Bool("dependencies", e.rw.follow))

	for e.cursor < len(e.units) {
		if err := ctx.Err(); err != nil {
			return nil, e.fail(err)
		}
		unit := e.units[e.cursor]
		e.cursor++

		deps, err := e.process(ctx, unit)
		if err != nil {
			return nil, e.fail(err)
		}
		if len(deps) > 0 && e.Enabled(slog.LevelDebug) {
			e.Log(slog.LevelDebug, "dependencies discovered",
				slog.String("parent", unit.Path),
				slog.Int("count", len(deps)))
		}
		e.units = append(e.units, deps...)
	}

	e.Log(slog.LevelInfo, "rename finished",
		slog.Int("units", len(e.units)),
		slog.Int("discovered", len(e.units)-initial))
	return e.units, nil
}

func (e *engine) fail(err error) error {
	e.Log(slog.LevelDebug, "rename failed",
		slog.Int("processed", e.cursor),
		slog.String("error", err.Error()))
	return err
}

func (e *engine) group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	return g, gctx
}

// wait joins g. Cancellation of the caller's context wins over whatever
// error the group recorded.
func wait(ctx context.Context, g *errgroup.Group) error {
	err := g.Wait()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}

// claim marks path visited and reports whether the caller was first.
func (e *engine) claim(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, seen := e.visited[path]; seen {
		return false
	}
	e.visited[path] = struct{}{}
	return true
}

// process rewrites every statement of unit. When dependencies are followed
// a statement loads the module it names as part of its own task, unless
// another task claimed that module first. The loaded units are returned in
// the order their first referencing statement appears.
func (e *engine) process(ctx context.Context, unit *Unit) ([]*Unit, error) {
	stmts := Scan(unit.AST)
	if e.Enabled(slog.LevelDebug) {
		e.Log(slog.LevelDebug, "processing unit",
			slog.String("path", unit.Path),
			slog.Int("statements", len(stmts)))
	}
	if len(stmts) == 0 {
		return nil, nil
	}

	parent := unit.parent()
	results := make([]rewrite, len(stmts))
	g, gctx := e.group(ctx)
	for i, stmt := range stmts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.rw.rewrite(gctx, stmt.Source.Value, parent)
			if err != nil {
				return err
			}
			if res.canonical != "" && e.claim(res.canonical) {
				if res.unit, err = e.rw.load(gctx, res.canonical); err != nil {
					return err
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := wait(ctx, g); err != nil {
		return nil, err
	}

	loaded := make(map[string]*Unit)
	for _, res := range results {
		if res.unit != nil {
			loaded[res.canonical] = res.unit
		}
	}
	var deps []*Unit
	for i, stmt := range stmts {
		stmt.Source.Value = results[i].value
		c := results[i].canonical
		if u, ok := loaded[c]; ok {
			deps = append(deps, u)
			delete(loaded, c)
		}
	}
	return deps, nil
}
