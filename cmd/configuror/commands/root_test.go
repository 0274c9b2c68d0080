package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/logging"
	"github.com/thoreinstein/configuror/pkg/configuror"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(debugEnv, "")
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"CONFIGUROR_DEBUG=1", "1", slog.LevelDebug},
		{"CONFIGUROR_DEBUG=true", "true", slog.LevelDebug},
		{"CONFIGUROR_DEBUG=2", "2", logging.LevelTrace},
		{"CONFIGUROR_DEBUG=0", "0", slog.LevelWarn},
		{"CONFIGUROR_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv(debugEnv, tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected Trace level to be disabled")
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	origVerbosity, origQuiet := verbosity, quiet
	defer func() { verbosity, quiet = origVerbosity, origQuiet }()

	verbosity = 1
	quiet = true
	err := setupLogging(rootCmd)

	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, errors.ExitUser, exitErr.Code)
}

func TestSetupLogging_LogFile(t *testing.T) {
	origFile := logFile
	defer func() { logFile = origFile }()
	t.Setenv(debugEnv, "1")

	logFile = filepath.Join(t.TempDir(), "configuror.log")
	require.NoError(t, setupLogging(rootCmd))

	slog.Debug("written to file", "path", "app.env", "db_password", "hunter2hunter2")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
	assert.Contains(t, string(data), `"path":"app.env"`)
	assert.Contains(t, string(data), `"db_password":"****ter2"`)
	assert.NotContains(t, string(data), "hunter2hunter2")
}

func TestSetupLogging_LogFormat(t *testing.T) {
	origFormat := logFormat
	defer func() { logFormat = origFormat }()
	t.Setenv(debugEnv, "")

	logFormat = "JSON"
	require.NoError(t, setupLogging(rootCmd))

	logFormat = "logfmt"
	err := setupLogging(rootCmd)
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, errors.ExitUser, exitErr.Code)
	assert.Contains(t, err.Error(), "logfmt")
}

func TestParseSources(t *testing.T) {
	groups, err := parseSources([]string{"yaml=a.yml", "json=b.json", "yaml=c.yml"})
	require.NoError(t, err)
	assert.Equal(t, configuror.MappingFiles{
		{Tag: "yaml", Paths: []string{"a.yml", "c.yml"}},
		{Tag: "json", Paths: []string{"b.json"}},
	}, groups)

	for _, bad := range []string{"a.yml", "=a.yml", "yaml="} {
		_, err := parseSources([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestNewRunner(t *testing.T) {
	for _, name := range []string{"", "python", "LUA"} {
		r, err := newRunner(name)
		require.NoError(t, err, name)
		assert.NotNil(t, r)
	}

	_, err := newRunner("ruby")
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, errors.ExitUser, exitErr.Code)
}

func TestRoot_SettingsFileDefaults(t *testing.T) {
	dir := isolate(t)
	data := writeFile(t, dir, "data/app.json", `{"NAME": "app", "API_TOKEN": "tok-123456"}`)
	writeFile(t, dir, "settings/config.yaml", "output: json\nmask_secrets: true\nfiles:\n  - "+data+"\n")

	out, _, err := execute(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"NAME": "app"`)
	assert.NotContains(t, out, "tok-123456")
}

func TestRoot_InvalidSettings(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "settings/config.yaml", "output: xml\n")

	_, _, err := execute(t, "show")
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, errors.ExitUser, exitErr.Code)
	assert.Equal(t, "Check your configuror settings file", exitErr.Suggestion)

	// version ignores broken settings
	_, _, err = execute(t, "version")
	assert.NoError(t, err)
}

func TestRoot_SourcesBeforeFiles(t *testing.T) {
	dir := isolate(t)
	src := writeFile(t, dir, "base.conf", "A: from-source\nB: source\n")
	file := writeFile(t, dir, "override.json", `{"A": "from-file"}`)

	out, _, err := execute(t, "show", "-o", "json", "-f", file, "-s", "yaml="+src)
	require.NoError(t, err)
	assert.JSONEq(t, `{"A": "from-file", "B": "source"}`, out)
}
