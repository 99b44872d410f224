package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/pyrename/internal/maincmd"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCmd(args []string) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	c := maincmd.Cmd{BuildVersion: "test", BuildDate: "test"}
	exit := c.Main(args, mainer.Stdio{Stdout: &outBuf, Stderr: &errBuf})
	return outBuf.String(), errBuf.String(), int(exit)
}

func TestCLIRenamePrintsRewrittenSource(t *testing.T) {
	path := writeTempFile(t, "x = 1\nprint(x)\n")
	out, _, code := runCmd([]string{"pyrename", "rename", path, "x", "total"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "total = 1\nprint(total)\n", out)
}

func TestCLIInfoReportsBindingCounts(t *testing.T) {
	path := writeTempFile(t, "x = 1\nx = 2\nprint(x)\n")
	out, _, code := runCmd([]string{"pyrename", "info", path, "x"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "2 def(s), 1 use(s)")
}

func TestCLISummarizeListsStructure(t *testing.T) {
	path := writeTempFile(t, "def greet():\n\treturn 1\n")
	out, _, code := runCmd([]string{"pyrename", "summarize", path})
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "def greet")
}

func TestCLIUnknownCommandFails(t *testing.T) {
	path := writeTempFile(t, "x = 1\n")
	_, stderr, code := runCmd([]string{"pyrename", "bogus", path, "x"})
	assert.NotEqual(t, 0, code)
	assert.Contains(t, stderr, "invalid arguments")
}

func TestCLIHelp(t *testing.T) {
	out, _, code := runCmd([]string{"pyrename", "--help"})
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "usage: pyrename")
}
