package esrename

import (
	"errors"
	"fmt"
)

var (
	// ErrNilResolver is returned when Rename is called without a resolver.
	ErrNilResolver = errors.New("no resolver provided")

	// ErrNilUnit is returned when a unit passed to Rename is nil or has
	// no syntax tree.
	ErrNilUnit = errors.New("nil unit or unit without AST")

	// ErrUnresolved is returned by the built-in resolvers when a bare
	// specifier matches no mapping or root.
	ErrUnresolved = errors.New("unresolved module specifier")
)

// LoadError reports that a dependency discovered during a run could not
// be read or parsed.
type LoadError struct {
	// Path is the canonical path of the dependency.
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// FaultError reports a panic inside a resolver or rewrite whose value was
// not an error. Panics with error values are returned unchanged.
type FaultError struct {
	Value any
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("panic during rewrite: %v", e.Value)
}

// ExtensionError reports a resolved path whose extension is not one of the
// known module extensions while strict extension checking is enabled.
type ExtensionError struct {
	Path string
	Ext  string
}

func (e *ExtensionError) Error() string {
	return fmt.Sprintf("%s: unknown module extension %q", e.Path, e.Ext)
}

// recovered converts a value obtained from recover into an error.
func recovered(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &FaultError{Value: v}
}
