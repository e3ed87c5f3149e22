package esrename

import (
	"log/slog"

	"github.com/esrename/esrename/internal/parser"
	"github.com/esrename/esrename/internal/printer"
)

// Unit is one parsed module taking part in a rename run.
type Unit struct {
	AST *Module
	// Path identifies the unit on disk. Units discovered during a run
	// carry their canonical path.
	Path string
	// Name is an optional logical module id. When set it is passed to
	// the resolver as the parent instead of Path.
	Name string
}

// parent returns the identifier passed to the resolver for statements
// of this unit.
func (u *Unit) parent() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Path
}

// Bytes renders the unit's source with its current specifier values.
func (u *Unit) Bytes() []byte {
	return printer.Print(u.AST)
}

// Parse parses ES module source text. Syntax errors are returned as
// *SyntaxError. Pass nil for logger to disable logging.
func Parse(source []byte, logger *slog.Logger) (*Module, error) {
	return parser.Parse(source, logger)
}

// ParseUnit parses source into a Unit with the given path.
func ParseUnit(path string, source []byte) (*Unit, error) {
	mod, err := parser.Parse(source, nil)
	if err != nil {
		return nil, err
	}
	return &Unit{AST: mod, Path: path}, nil
}
