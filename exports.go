// Package esrename rewrites the module specifiers of ES module import and
// re-export statements, optionally following every renamed specifier to
// its dependency and rewriting that too.
package esrename

import (
	"github.com/esrename/esrename/internal/ast"
	"github.com/esrename/esrename/internal/parser"
)

// Type aliases for the syntax tree. All types come from internal/ast.

// Module is a parsed source file: its text and top-level statements.
type Module = ast.Module

// Statement is a top-level statement of a Module.
type Statement = ast.Statement

// StringLit is the module specifier of an import or re-export.
type StringLit = ast.StringLit

// StmtKind discriminates statements.
type StmtKind = ast.StmtKind

// Statement kinds.
const (
	StmtOther      = ast.StmtOther
	StmtImport     = ast.StmtImport
	StmtExportFrom = ast.StmtExportFrom
)

// SyntaxError reports the first error found while parsing a module.
type SyntaxError = parser.SyntaxError
