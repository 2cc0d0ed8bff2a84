package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthome-go/lox/lox/config"
	"github.com/smarthome-go/lox/lox/interpreter/value"
)

func TestExampleProgramsPass(t *testing.T) {
	output := new(strings.Builder)

	failed, err := runTestSuite(output, "../lox/testdata/programs", config.Default(), true)
	require.NoError(t, err)
	assert.Equal(t, 0, failed, output.String())
	assert.Contains(t, output.String(), "PASS fibonacci")
	assert.Contains(t, output.String(), "7 passed, 0 failed")
}

func TestFailingProgramShowsDiff(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.lox"), []byte("print 1 + 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wrong.out"), []byte("3\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "untested.lox"), []byte("print 1;"), 0o644))

	output := new(strings.Builder)
	failed, err := runTestSuite(output, dir, config.Default(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, failed)
	assert.Contains(t, output.String(), "FAIL wrong")
	assert.Contains(t, output.String(), "-3")
	assert.Contains(t, output.String(), "+2")
	assert.Contains(t, output.String(), "0 passed, 1 failed")
}

func TestMissingDirectory(t *testing.T) {
	_, err := runTestSuite(new(strings.Builder), filepath.Join(t.TempDir(), "missing"), config.Default(), false)
	assert.Error(t, err)
}

func TestReplDisplay(t *testing.T) {
	assert.Equal(t, `"hi"`, replDisplay(value.NewValueString("hi"), false))
	assert.Equal(t, "\x1b[32m\"hi\"\x1b[0m", replDisplay(value.NewValueString("hi"), true))
}
