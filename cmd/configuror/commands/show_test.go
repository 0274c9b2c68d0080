package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/configuror/internal/errors"
)

func TestShow_Formats(t *testing.T) {
	dir := isolate(t)
	base := writeFile(t, dir, "base.yaml", "NAME: app\nWORKERS: 4\n")
	local := writeFile(t, dir, "local.toml", "WORKERS = 8\nDEBUG = true\n")

	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"yaml", "yaml", "NAME: app\nWORKERS: 8\nDEBUG: true\n"},
		{"json", "json", "{\n  \"NAME\": \"app\",\n  \"WORKERS\": 8,\n  \"DEBUG\": true\n}\n"},
		{"toml sorts keys", "toml", "DEBUG = true\nNAME = 'app'\nWORKERS = 8\n"},
		{"env", "env", "DEBUG=\"true\"\nNAME=\"app\"\nWORKERS=8\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "show", "-o", tt.output, "-f", base, "-f", local)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestShow_OutputFile(t *testing.T) {
	dir := isolate(t)
	src := writeFile(t, dir, "app.json", `{"PASSWORD": "hunter2hunter2", "HOST": "db"}`)
	dest := filepath.Join(dir, "out.yaml")

	out, stderr, err := execute(t, "show", "-f", src, "--mask", "--output-file", dest)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Wrote 2 keys to "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "PASSWORD: '****ter2'\nHOST: db\n", string(data))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestShow_Errors(t *testing.T) {
	dir := isolate(t)
	bad := writeFile(t, dir, "bad.json", `{"A": `)
	ps := writeFile(t, dir, "script.ps1", "")

	tests := []struct {
		name     string
		args     []string
		wantKind error
		wantMsg  string
	}{
		{
			name:     "missing file",
			args:     []string{"show", "-f", filepath.Join(dir, "nope.json")},
			wantKind: errors.ErrNotFound,
			wantMsg:  "not found on the filesystem",
		},
		{
			name:     "malformed json",
			args:     []string{"show", "-f", bad},
			wantKind: errors.ErrDecode,
			wantMsg:  "is not well json formatted",
		},
		{
			name:     "unknown extension",
			args:     []string{"show", "-f", ps},
			wantKind: errors.ErrUnknownExtension,
			wantMsg:  "does not have a correct extension",
		},
		{
			name:     "unknown source tag",
			args:     []string{"show", "-s", "xml=" + bad},
			wantKind: errors.ErrUnknownExtension,
			wantMsg:  `extension "xml" is not supported`,
		},
		{
			name:     "bad interpolation",
			args:     []string{"show", "--interpolation", "fancy"},
			wantKind: errors.ErrInvalidValue,
			wantMsg:  "interpolation method must be either",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var exitErr *errors.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, errors.ExitUser, exitErr.Code)
		})
	}
}

func TestShow_IgnoreMissing(t *testing.T) {
	dir := isolate(t)
	src := writeFile(t, dir, "a.env", "KEY_FROM_SHOW_TEST=1\n")
	t.Setenv("KEY_FROM_SHOW_TEST", "")

	out, _, err := execute(t, "show", "-i", "-o", "json", "-f", filepath.Join(dir, "missing.yml"), "-f", src)
	require.NoError(t, err)
	assert.JSONEq(t, `{"KEY_FROM_SHOW_TEST": "1"}`, out)
}

func TestShow_InvalidOutput(t *testing.T) {
	isolate(t)
	_, _, err := execute(t, "show", "-o", "xml")
	assert.ErrorIs(t, err, errors.ErrInvalidValue)
}
