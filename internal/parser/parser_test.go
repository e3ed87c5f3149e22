package parser

import (
	"testing"

	"github.com/esrename/esrename/internal/ast"
	"github.com/esrename/esrename/internal/testutil"
)

func parse(t *testing.T, src string) *ast.Module {
	t.Helper()
	mod, err := Parse([]byte(src), nil)
	testutil.NoError(t, err)
	return mod
}

// sources returns the specifier of every statement that references
// another module, in order.
func sources(mod *ast.Module) []string {
	var out []string
	for _, stmt := range mod.Body {
		if stmt.HasSource() {
			out = append(out, stmt.Source.Value)
		}
	}
	return out
}

func TestParseEmptyModule(t *testing.T) {
	mod := parse(t, "")
	testutil.Len(t, mod.Body, 0)

	mod = parse(t, "// only a comment\n")
	testutil.Len(t, mod.Body, 0)
}

func TestParseImportForms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"side effect", `import './side';`, "./side"},
		{"default", `import foo from "./foo";`, "./foo"},
		{"named", `import { a, b as c } from './ab';`, "./ab"},
		{"namespace", `import * as ns from 'ns';`, "ns"},
		{"default and named", `import d, { e } from './de'`, "./de"},
		{"default and namespace", `import d, * as ns from './dn'`, "./dn"},
		{"string export name", `import { "a-b" as ab } from './str';`, "./str"},
		{"binding named from", `import from from './from';`, "./from"},
		{"named from", `import { from } from './from';`, "./from"},
		{"multiline", "import {\n  a,\n  b,\n} from\n  './multi'\n", "./multi"},
		{"escaped", `import x from '.\/escaped';`, "./escaped"},
		{"with attributes", `import data from './data.json' with { type: 'json' };`, "./data.json"},
		{"assert attributes", `import data from './data.json' assert { type: 'json' };`, "./data.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := parse(t, tt.src)
			testutil.Len(t, mod.Body, 1)
			stmt := mod.Body[0]
			testutil.Equal(t, ast.StmtImport, stmt.Kind)
			testutil.NotNil(t, stmt.Source)
			testutil.Equal(t, tt.want, stmt.Source.Value)
			testutil.False(t, stmt.Source.Modified(), "modified")
			testutil.Equal(t, len(tt.src)-trailing(tt.src), int(stmt.Span.End), "span end")
		})
	}
}

// trailing counts trailing whitespace, which is not part of a statement span.
func trailing(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && (s[i] == '\n' || s[i] == ' '); i-- {
		n++
	}
	return n
}

func TestParseExportFrom(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"star", `export * from './all';`, "./all"},
		{"star as", `export * as ns from './ns';`, "./ns"},
		{"named", `export { a, b as c } from './ab';`, "./ab"},
		{"default", `export { default } from './def';`, "./def"},
		{"default as", `export { default as Foo } from "./foo"`, "./foo"},
		{"empty list", `export {} from './empty';`, "./empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := parse(t, tt.src)
			testutil.Len(t, mod.Body, 1)
			stmt := mod.Body[0]
			testutil.Equal(t, ast.StmtExportFrom, stmt.Kind)
			testutil.NotNil(t, stmt.Source)
			testutil.Equal(t, tt.want, stmt.Source.Value)
		})
	}
}

func TestParseLocalExportsAreOpaque(t *testing.T) {
	mod := parse(t, `
const a = 1, b = 2;
export { a, b as c };
export default function () {}
export const x = 1;
export class Y {}
`)
	testutil.Len(t, sources(mod), 0)
	for _, stmt := range mod.Body {
		testutil.Equal(t, ast.StmtOther, stmt.Kind)
	}
}

func TestParseDynamicImportIgnored(t *testing.T) {
	mod := parse(t, `
import a from './a';
const lazy = import('./lazy');
console.log(import.meta.url);
await import("./later").then(m => m.run());
`)
	testutil.SliceEqual(t, []string{"./a"}, sources(mod))
}

func TestParseNestedImportKeywordIgnored(t *testing.T) {
	mod := parse(t, `
function f() { return { import: 1, export: 2 }; }
obj.import('./x');
obj.export;
import b from './b';
`)
	testutil.SliceEqual(t, []string{"./b"}, sources(mod))
}

func TestParseLiteralsAndCommentsNotMisread(t *testing.T) {
	mod := parse(t, "// import a from './comment-line';\n"+
		"/* import b from './comment-block'; */\n"+
		"const s = \"import c from './string'\";\n"+
		"const t = `import d from './template' ${x}`;\n"+
		"const r = /import e from '.\\/regexp'/;\n"+
		"import real from './real';\n")
	testutil.SliceEqual(t, []string{"./real"}, sources(mod))
}

func TestParseTypeOnly(t *testing.T) {
	mod := parse(t, `
import type { T } from './types';
import type Def from './def';
import type, { u } from './binding';
export type { V } from './v';
export type * from './all';
`)
	testutil.SliceEqual(t, []string{"./types", "./def", "./binding", "./v", "./all"}, sources(mod))
	testutil.True(t, mod.Body[0].TypeOnly, "import type {}")
	testutil.True(t, mod.Body[1].TypeOnly, "import type Def")
	testutil.False(t, mod.Body[2].TypeOnly, "binding named type")
	testutil.True(t, mod.Body[3].TypeOnly, "export type {}")
	testutil.True(t, mod.Body[4].TypeOnly, "export type *")
}

func TestParseImportEqualsIsOpaque(t *testing.T) {
	mod := parse(t, `import fs = require("fs");`)
	testutil.Len(t, sources(mod), 0)
	testutil.Len(t, mod.Body, 1)
	testutil.Equal(t, ast.StmtOther, mod.Body[0].Kind)
}

func TestParseStatementOrderAndSpans(t *testing.T) {
	src := "const x = 1;\nimport a from './a'\nlet y = x\nexport * from './b'\n"
	mod := parse(t, src)

	kinds := make([]ast.StmtKind, len(mod.Body))
	for i, stmt := range mod.Body {
		kinds[i] = stmt.Kind
	}
	testutil.SliceEqual(t, []ast.StmtKind{ast.StmtOther, ast.StmtImport, ast.StmtOther, ast.StmtExportFrom}, kinds)
	testutil.Equal(t, "import a from './a'", string(mod.Body[1].Span.Text(mod.Source)))
	testutil.Equal(t, "'./a'", string(mod.Body[1].Source.Span.Text(mod.Source)))
	testutil.Equal(t, byte('\''), mod.Body[1].Source.Quote)
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unterminated string", "import a from './a", "unterminated"},
		{"missing from", "import { a } './a';", "expected 'from'"},
		{"export star without from", "export * ;", "expected 'from'"},
		{"missing specifier", "import a from b;", "expected module specifier"},
		{"unbalanced", "}\nimport a from './a';", "unbalanced"},
		{"unclosed", "function f() {\n", "unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), nil)
			syntaxErr := testutil.ErrorAs[*SyntaxError](t, err)
			testutil.Contains(t, syntaxErr.Message, tt.msg)
		})
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := Parse([]byte("const a = 1;\n\nimport { a } './a';"), nil)
	syntaxErr := testutil.ErrorAs[*SyntaxError](t, err)
	testutil.Equal(t, 3, syntaxErr.Pos.Line)
	testutil.Equal(t, 14, syntaxErr.Pos.Column)
	testutil.Equal(t, "3:14: expected 'from' in import declaration", err.Error())
}

func TestParserCollectsDiagnostics(t *testing.T) {
	p := New([]byte("import a from b;\nexport * ;"), nil)
	mod := p.ParseModule()
	testutil.NotNil(t, mod)
	testutil.Len(t, p.Diagnostics(), 2)
	// import, the stray "b;" and the export
	testutil.Len(t, mod.Body, 3)
}

func TestParseRegExpAfterControlHead(t *testing.T) {
	mod := parse(t, "if (x) /foo'/.test(y); import a from './a';")
	testutil.SliceEqual(t, []string{"./a"}, sources(mod))
}
