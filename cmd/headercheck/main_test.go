package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/headercheck/header"
	"go.jacobcolvin.com/headercheck/stringtest"
)

func TestMain(m *testing.M) {
	color.NoColor = true

	os.Exit(m.Run())
}

const exampleTemplate = "Example project\n\n@copyright 2024 Foo\n@license   MIT\n"

var (
	validPHP = stringtest.File(
		"<?php",
		"",
		"/**",
		" * Example project",
		" *",
		" * @copyright 2024 Foo",
		" * @license   MIT",
		" */",
		"",
		"echo 1;",
	)
	missingPHP = stringtest.File("<?php", "", "echo 1;")
)

// writeProject creates a project directory from files, keyed by slash
// separated paths relative to the directory.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--progress", "never"}, args...))

	err := cmd.ExecuteContext(t.Context())

	return stdout.String(), err
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()

	b, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
	require.NoError(t, err)

	return string(b)
}

// The command installs a process-wide logger, so these tests run serially.

func TestRootCheck(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".licence-header": exampleTemplate,
		"src/valid.php":   validPHP,
		"src/missing.php": missingPHP,
	})

	out, err := execute(t, "-d", dir)
	require.ErrorIs(t, err, errHeadersInvalid)
	assert.Equal(t, 1, exitCode(err))

	assert.Contains(t, out, "missing    src/missing.php")
	assert.NotContains(t, out, "src/valid.php")
	assert.Contains(t, out, "Found 1 file(s) without header and 0 file(s) with outdated header.")

	assert.Equal(t, missingPHP, readFile(t, dir, "src/missing.php"))
}

func TestRootValid(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".licence-header": exampleTemplate,
		"a.php":           validPHP,
		"b.php":           validPHP,
	})

	out, err := execute(t, "-d", dir)
	require.NoError(t, err)
	assert.Equal(t, 0, exitCode(err))
	assert.Equal(t, "File headers are valid. (2 files)\n", out)
}

func TestRootFix(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".licence-header": exampleTemplate,
		"src/missing.php": missingPHP,
		"bin/tool":        stringtest.File("#!/bin/sh", "echo hi"),
	})

	out, err := execute(t, "-d", dir, "--fix", "-j", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "fixed      src/missing.php")
	assert.Contains(t, out, "fixed      bin/tool")
	assert.Contains(t, out, "Fixed 2 file(s) without header and 0 file(s) with outdated header.")

	assert.Equal(t, validPHP, readFile(t, dir, "src/missing.php"))
	assert.Equal(t, stringtest.File(
		"#!/bin/sh",
		"",
		"#",
		"# Example project",
		"#",
		"# @copyright 2024 Foo",
		"# @license   MIT",
		"#",
		"",
		"echo hi",
	), readFile(t, dir, "bin/tool"))

	// A second run finds nothing to do.
	out, err = execute(t, "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "File headers are valid. (2 files)")
}

func TestRootList(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".licence-header": exampleTemplate,
		"a.php":           validPHP,
		"b.php":           missingPHP,
	})

	out, err := execute(t, "-d", dir, "--list", "--fix")
	require.ErrorIs(t, err, errHeadersInvalid)
	assert.Equal(t, "b.php\n", out)
	assert.Equal(t, missingPHP, readFile(t, dir, "b.php"))
}

func TestRootDiff(t *testing.T) {
	dir := writeProject(t, map[string]string{
		".licence-header": exampleTemplate,
		"b.php":           missingPHP,
	})

	out, err := execute(t, "-d", dir, "--diff")
	require.ErrorIs(t, err, errHeadersInvalid)

	assert.Contains(t, out, "--- b.php\n+++ b.php (fixed)\n")
	assert.Contains(t, out, "+ * @copyright 2024 Foo\n")
	assert.Contains(t, out, " echo 1;\n")
	assert.Equal(t, missingPHP, readFile(t, dir, "b.php"))
}

func TestRootSettings(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"tools/HEADER": exampleTemplate,
		".headercheck.toml": stringtest.JoinLF(
			`headerFile = "tools/HEADER"`,
			`extensions = ["vue"]`,
			"",
			"[[exclude]]",
			`pattern = 'extra/.+'`,
			"",
		),
		"a.vue":         stringtest.File("<template></template>"),
		"extra/lib.php": missingPHP,
		"valid.php":     validPHP,
	})

	out, err := execute(t, "-d", dir, "--list")
	require.ErrorIs(t, err, errHeadersInvalid)
	assert.Equal(t, "a.vue\n", out)

	t.Run("flag wins over settings", func(t *testing.T) {
		other := filepath.Join(t.TempDir(), "HEADER")
		require.NoError(t, os.WriteFile(other, []byte("Other\n"), 0o600))

		out, err := execute(t, "-d", dir, "--list", "--header-file", other)
		require.ErrorIs(t, err, errHeadersInvalid)
		assert.Equal(t, "a.vue\nvalid.php\n", out)
	})

	t.Run("explicit config", func(t *testing.T) {
		cfg := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(cfg, []byte("headerFile = '"+filepath.Join(dir, "tools", "HEADER")+"'\n"), 0o600))

		out, err := execute(t, "-d", dir, "--list", "--config", cfg)
		require.ErrorIs(t, err, errHeadersInvalid)
		assert.Equal(t, "extra/lib.php\n", out)
	})
}

func TestRootErrors(t *testing.T) {
	tcs := map[string]struct {
		files map[string]string
		err   error
		args  []string
	}{
		"no header file": {
			files: map[string]string{"a.php": missingPHP},
			err:   header.ErrMissingTemplate,
		},
		"bad progress mode": {
			files: map[string]string{".licence-header": exampleTemplate},
			args:  []string{"--progress", "sometimes"},
			err:   errInvalidFlag,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			dir := writeProject(t, tc.files)

			_, err := execute(t, append([]string{"-d", dir}, tc.args...)...)
			require.ErrorIs(t, err, tc.err)
			assert.Equal(t, 1, exitCode(err))
		})
	}
}

func TestSchemaCommand(t *testing.T) {
	var stdout bytes.Buffer

	cmd := newRootCmd(&stdout, &bytes.Buffer{})
	cmd.SetArgs([]string{"schema"})
	require.NoError(t, cmd.Execute())

	var got map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "headercheck settings", got["title"])
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errHeadersInvalid))
	assert.Equal(t, 2, exitCode(errFixFailed))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
