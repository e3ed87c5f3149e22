package esrename

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeResolver(t *testing.T) {
	r := RelativeResolver("/deps")
	tests := []struct {
		spec   string
		parent string
		want   string
	}{
		{"./bar", "/app/src/foo.js", "/app/src/bar"},
		{"../lib/x", "/app/src/foo.js", "/app/lib/x"},
		{"dependency1/core", "/app/src/foo.js", "/deps/dependency1/core"},
		{"/abs/path", "/app/src/foo.js", "/abs/path"},
		{".", "/app/src/foo.js", "/app/src"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.spec, tt.parent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCallbackResolverAsync(t *testing.T) {
	r := CallbackResolver(func(spec, parent string, done func(string, error)) {
		go func() {
			time.Sleep(time.Millisecond)
			done(filepath.Join(filepath.Dir(parent), spec), nil)
		}()
	})
	got, err := r.Resolve(context.Background(), "x", "/a/b.js")
	require.NoError(t, err)
	assert.Equal(t, "/a/x", got)
}

func TestPathMapResolve(t *testing.T) {
	m := &PathMap{
		BaseDir: "/srv/app",
		Paths: map[string]string{
			"lodash":    "vendor/lodash-4",
			"lodash/fp": "vendor/lodash-fp",
			"app/*":     "src/*",
			"polyfill":  "/opt/polyfill/index",
		},
		Roots: []string{"node_modules", "vendor"},
		stat: func(name string) (fs.FileInfo, error) {
			if name == "/srv/app/vendor/jquery.js" {
				return fakeFile{}, nil
			}
			return nil, os.ErrNotExist
		},
	}
	tests := []struct {
		spec string
		want string
	}{
		{"./x", "/srv/app/src/x"},
		{"lodash", "/srv/app/vendor/lodash-4"},
		{"lodash/map", "/srv/app/vendor/lodash-4/map"},
		{"lodash/fp", "/srv/app/vendor/lodash-fp"},
		{"lodash/fp/map", "/srv/app/vendor/lodash-fp/map"},
		{"lodashx", "/srv/app/node_modules/lodashx"},
		{"app/models/user", "/srv/app/src/models/user"},
		{"polyfill", "/opt/polyfill/index"},
		{"jquery", "/srv/app/vendor/jquery"},
		{"react", "/srv/app/node_modules/react"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := m.Resolve(context.Background(), tt.spec, "/srv/app/src/main.js")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPathMapUnresolved(t *testing.T) {
	m := &PathMap{Paths: map[string]string{"a": "/lib/a"}}
	_, err := m.Resolve(context.Background(), "b", "/src/main.js")
	assert.ErrorIs(t, err, ErrUnresolved)
}

func TestPathMapRootsOnDisk(t *testing.T) {
	dir := extractFixture(t)
	m := &PathMap{BaseDir: dir, Roots: []string{"src", "deps"}}

	got, err := m.Resolve(context.Background(), "dependency2/core", filepath.Join(dir, "src", "foo.js"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deps", "dependency2", "core"), got)

	got, err = m.Resolve(context.Background(), "bar", filepath.Join(dir, "src", "foo.js"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src", "bar"), got)
}

type fakeFile struct{ fs.FileInfo }

func (fakeFile) IsDir() bool { return false }
