package esrename

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/esrename/esrename/internal/testutil"
)

// fixture is the module tree used by most rename tests: foo imports bar
// and dependency1, bar imports dependency2, and dependency2 imports
// dependency1 back.
const fixture = `
-- src/foo.js --
import bar from './bar';
import core from "dependency1/core";

export default bar(core);
-- src/bar.js --
import core2 from 'dependency2/core';
export default function bar(x) { return core2(x); }
-- src/export.js --
export { default } from 'dependency1/core';
export * from './bar';
export { local };
const local = 1;
-- src/plain.js --
const x = import('./lazy');
export default x;
-- src/broken.js --
import missing from './missing';
-- src/bad-dep.js --
import bad from './bad';
-- src/bad.js --
import { from 'nowhere';
-- deps/dependency1/core.js --
export const one = 1;
-- deps/dependency2/core.js --
import { one } from 'dependency1/core';
export default function core2(x) { return x + one; }
`

func extractFixture(t *testing.T) string {
	t.Helper()
	return testutil.Extract(t, fixture)
}

func parseFile(t *testing.T, path string) *Unit {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	u, err := ParseUnit(path, data)
	require.NoError(t, err)
	return u
}

// specifiers returns the current specifier values of u.
func specifiers(u *Unit) []string {
	var out []string
	for _, stmt := range Scan(u.AST) {
		out = append(out, stmt.Source.Value)
	}
	return out
}

func paths(units []*Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Path
	}
	return out
}

func fixtureResolver(dir string) Resolver {
	return RelativeResolver(filepath.Join(dir, "deps"))
}
