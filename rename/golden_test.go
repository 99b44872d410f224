package rename_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/internal/filetest"
	"github.com/mna/pyrename/rename"
)

func readTestdata(t *testing.T, dir, name string) (string, error) {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	return string(b), err
}

var updateGolden = func() *bool { b := false; return &b }()

// rulesFor returns the rename rules to apply for a given golden testdata
// file. Add an entry here when adding a new .py/.py.want pair whose rename
// isn't unrestricted, and one in targetFor when it isn't "x" -> "total".
var rulesFor = map[string]rename.Rules{
	"scoped.py": {ScopeFilter: rename.FilterLocal},
}

var targetFor = map[string][2]string{
	"scoped.py": {"x", "y"},
}

func TestRenameGoldenFiles(t *testing.T) {
	dir := "testdata/golden"
	for _, fi := range filetest.SourceFiles(t, dir, ".py") {
		fi := fi
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := readTestdata(t, dir, fi.Name())
			require.NoError(t, err)

			target, replacement := "x", "total"
			if pair, ok := targetFor[fi.Name()]; ok {
				target, replacement = pair[0], pair[1]
			}
			rules := rulesFor[fi.Name()]

			out, _, err := rename.Rename(src, target, replacement, rules)
			require.NoError(t, err)

			filetest.DiffOutput(t, fi, out, dir, updateGolden)
		})
	}
}
