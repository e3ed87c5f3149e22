package parser

import (
	"fmt"
	"log/slog"

	"github.com/esrename/esrename/internal/ast"
	"github.com/esrename/esrename/internal/types"
)

// SyntaxError reports the earliest error found while parsing a module.
type SyntaxError struct {
	Pos     types.Position
	Message string
	// Count is the total number of error diagnostics.
	Count int
}

func (e *SyntaxError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("%s: %s (and %d more errors)", e.Pos, e.Message, e.Count-1)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Parse parses source as an ECMAScript module. It returns a *SyntaxError
// if the lexer or parser reported any error diagnostics.
func Parse(source []byte, logger *slog.Logger) (*ast.Module, error) {
	p := New(source, logger)
	mod := p.ParseModule()
	if err := firstError(source, p.Diagnostics()); err != nil {
		return nil, err
	}
	return mod, nil
}

func firstError(source []byte, diags []types.SpanDiagnostic) *SyntaxError {
	var first *types.SpanDiagnostic
	count := 0
	for i := range diags {
		d := &diags[i]
		if d.Severity != types.SeverityError {
			continue
		}
		count++
		if first == nil || d.Span.Start < first.Span.Start {
			first = d
		}
	}
	if first == nil {
		return nil
	}
	return &SyntaxError{
		Pos:     types.PositionOf(source, first.Span.Start),
		Message: first.Message,
		Count:   count,
	}
}
