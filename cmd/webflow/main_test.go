package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mpoindexter/spring-webflow/internal/testutils"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFlows(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"base.yaml": `id: base
abstract: true
states:
  - id: cancelled
    type: end
global-transitions:
  - on: cancel
    to: cancelled
`,
		"booking.yaml": `id: booking
parent: base
start-state: enter
states:
  - id: enter
    type: view
    view: enter.html
    transitions:
      - on: submit
        to: done
  - id: done
    type: end
`,
		"broken.yaml": `id: broken
states:
  - id: enter
    type: view
    transitions:
      - on: submit
        to: ghost
`,
	}
	testutils.WriteFlows(t, dir, files)
	return dir
}

func TestMergeCommand(t *testing.T) {
	dir := writeFlows(t)

	out, err := execute(t, "merge", "booking", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "id: booking")
	assert.Contains(t, out, "id: cancelled")
	assert.Contains(t, out, "global-transitions:")

	out, err = execute(t, "merge", "booking", "--dir", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "booking"`)

	_, err = execute(t, "merge", "booking", "--dir", dir, "--format", "xml")
	assert.Error(t, err)

	target := filepath.Join(t.TempDir(), "merged.yaml")
	_, err = execute(t, "merge", "booking", "--dir", dir, "--out", target)
	require.NoError(t, err)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(written), "id: booking")
}

func TestValidateCommand(t *testing.T) {
	dir := writeFlows(t)

	out, err := execute(t, "validate", "booking", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ booking")

	out, err = execute(t, "validate", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 flows failed validation")
	assert.Contains(t, out, "➖ base (abstract)")
	assert.Contains(t, out, "❌ broken")
	assert.Contains(t, out, "ghost")
}

func TestDiffCommand(t *testing.T) {
	dir := writeFlows(t)

	out, err := execute(t, "diff", "booking", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "--- booking (declared)")
	assert.Contains(t, out, "+++ booking (assembled)")
	added := false
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "+") && strings.Contains(line, "id: cancelled") {
			added = true
		}
	}
	assert.True(t, added, "expected the inherited state to be added:\n%s", out)

	out, err = execute(t, "diff", "booking", "booking", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "No differences.\n", out)
}

func TestGraphAndDescribeCommands(t *testing.T) {
	dir := writeFlows(t)

	out, err := execute(t, "graph", "booking", "--dir", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, "class cancelled inherited;")

	out, err = execute(t, "describe", "booking", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "# booking")
	assert.Contains(t, out, "| enter | view-state | submit → done |")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "webflow version dev\n", out)
}

func TestPublishCommand(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	dir := writeFlows(t)

	_, err = execute(t, "publish", filepath.Join(dir, "booking.yaml"))
	assert.ErrorIs(t, err, errNoStore)

	for _, name := range []string{"base.yaml", "booking.yaml"} {
		out, err := execute(t, "publish", filepath.Join(dir, name), "--redis", mr.Addr())
		require.NoError(t, err)
		assert.Contains(t, out, "Published")
	}

	out, err := execute(t, "merge", "booking", "--redis", mr.Addr())
	require.NoError(t, err)
	assert.Contains(t, out, "id: cancelled")

	out, err = execute(t, "unpublish", "booking", "--redis", mr.Addr())
	require.NoError(t, err)
	assert.Contains(t, out, "Removed booking")

	_, err = execute(t, "merge", "booking", "--redis", mr.Addr())
	assert.Error(t, err)
}
