package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/configuror/internal/errors"
)

func TestSettings_Path(t *testing.T) {
	dir := isolate(t)

	out, _, err := execute(t, "settings", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings", "config.yaml")+"\n", out)
}

func TestSettings_InitAndShow(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "settings", "config.yaml")

	out, _, err := execute(t, "settings", "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, _, err = execute(t, "settings", "init")
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, "Pass --force to overwrite it", exitErr.Suggestion)

	_, _, err = execute(t, "settings", "init", "--force")
	require.NoError(t, err)

	out, _, err = execute(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "output: yaml")
	assert.Contains(t, out, "interpolation: basic")
}

func TestSettings_EnvOverrideShown(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIGUROR_OUTPUT", "json")

	out, _, err := execute(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "output: json")
}

func TestSettings_BrokenFileStillReachable(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "settings/config.yaml", "output: xml\n")

	_, _, err := execute(t, "settings", "path")
	assert.NoError(t, err)

	_, _, err = execute(t, "show")
	assert.Error(t, err)
}

func TestSettings_Edit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script editor")
	}
	dir := isolate(t)
	path := filepath.Join(dir, "settings", "config.yaml")

	// The editor switches the output format.
	editorScript := writeFile(t, dir, "edit.sh", "#!/bin/sh\necho 'output: json' > \"$1\"\n")
	require.NoError(t, os.Chmod(editorScript, 0o755))
	t.Setenv("EDITOR", editorScript)
	t.Setenv("VISUAL", "")

	_, stderr, err := execute(t, "settings", "edit")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Location: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "output: json\n", string(data))
}

func TestSettings_EditRejectsInvalidResult(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script editor")
	}
	dir := isolate(t)

	editorScript := writeFile(t, dir, "edit.sh", "#!/bin/sh\necho 'output: xml' > \"$1\"\n")
	require.NoError(t, os.Chmod(editorScript, 0o755))
	t.Setenv("EDITOR", editorScript)

	_, _, err := execute(t, "settings", "edit")
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, "Check your configuror settings file", exitErr.Suggestion)
}
