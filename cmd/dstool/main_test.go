package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const model = `name: cascade
equations:
  - "x1. = a + b*x1*x2 - c*x1"
  - "x2. = c*x1 - x2"
dependent: [x1, x2]
point:
  - {name: a, value: 1}
  - {name: b, value: 1}
  - {name: c, value: 10}
plot: {x: b, y: c, xlim: [0.01, 100], ylim: [0.01, 100]}
`

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(model), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, logs bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCasesCommand(t *testing.T) {
	path := writeModel(t)

	out, err := run(t, "cases", path)
	require.NoError(t, err)
	assert.Equal(t, "Number of cases: 2\nValid cases: 2\nCase 1: 1111\nCase 2: 2111\n", out)

	out, err = run(t, "cases", path, "--slice", "a=1, b=1, c=0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid cases: 0\n")

	out, err = run(t, "cases", path, "--slice", "a=1, b=0.01:100, c=100")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid cases: 2\n")

	_, err = run(t, "cases", path, "--slice", "a")
	require.Error(t, err)
}

func TestCaseCommand(t *testing.T) {
	path := writeModel(t)

	out, err := run(t, "case", path, "1", "--log")
	require.NoError(t, err)
	assert.Contains(t, out, "Case 1: 1111\n")
	assert.Contains(t, out, "Boundaries:\n  -log(a)-log(b)+log(c) > 0\n")
	assert.Contains(t, out, "Valid: true\n")

	_, err = run(t, "case", path, "9")
	require.Error(t, err)
	_, err = run(t, "case", path, "x")
	require.Error(t, err)
}

func TestSteadyStateCommand(t *testing.T) {
	path := writeModel(t)

	out, err := run(t, "steady-state", path, "1")
	require.NoError(t, err)
	assert.Equal(t, "x1 = 0.1\nx2 = 1\nV_x1 = 1\nV_x2 = 1\nValid: true\n", out)

	out, err = run(t, "steady-state", path, "1", "--at", "a=1, b=1, c=0.1")
	require.NoError(t, err)
	assert.Contains(t, out, "x1 = 10\n")
	assert.Contains(t, out, "Valid: false\n")
}

func TestPlotCommand(t *testing.T) {
	path := writeModel(t)
	dir := t.TempDir()
	png := filepath.Join(dir, "slice.png")
	scene := filepath.Join(dir, "scene.json")

	out, err := run(t, "--log-level", "debug", "plot", path, "-o", png, "--scene", scene)
	require.NoError(t, err)
	assert.Equal(t, png+"\n", out)
	for _, p := range []string{png, scene} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestLoggingFlags(t *testing.T) {
	path := writeModel(t)

	_, err := run(t, "--log-format", "json", "cases", path)
	require.NoError(t, err)
	_, err = run(t, "--log-format", "xml", "cases", path)
	require.Error(t, err)
	_, err = run(t, "--log-level", "loud", "cases", path)
	require.Error(t, err)
}
