package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const archive = `comment is ignored
-- src/a.js --
import b from './b';
-- src/b.js --
export default 1;
`

func TestExtract(t *testing.T) {
	dir := Extract(t, archive)

	data, err := os.ReadFile(filepath.Join(dir, "src", "a.js"))
	NoError(t, err)
	Equal(t, "import b from './b';\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "src", "b.js"))
	NoError(t, err)
	Equal(t, "export default 1;\n", string(data))
}

func TestFiles(t *testing.T) {
	files := Files(archive)
	if len(files) != 2 {
		t.Fatalf("Files() returned %d files, want 2", len(files))
	}
	Equal(t, "export default 1;\n", string(files["src/b.js"]))
}

func TestSliceEqual(t *testing.T) {
	SliceEqual(t, []string{"a", "b"}, []string{"a", "b"})
	SliceEqual[int](t, nil, []int{})
}

func TestErrorAs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &fs.PathError{Op: "open", Path: "x", Err: fs.ErrNotExist})
	pathErr := ErrorAs[*fs.PathError](t, err)
	Equal(t, "x", pathErr.Path)
	ErrorIs(t, err, fs.ErrNotExist)
}
