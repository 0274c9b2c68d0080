// Package commands implements the CLI commands for configuror.
package commands

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/configuror/cmd"
	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/logging"
	"github.com/thoreinstein/configuror/internal/settings"
	"github.com/thoreinstein/configuror/pkg/configuror"
	"github.com/thoreinstein/configuror/pkg/script"
)

// debugEnv raises the log level when no -v flag is given.
const debugEnv = settings.EnvPrefix + "_DEBUG"

// Script runners selectable with --runner.
const (
	runnerPython = "python"
	runnerLua    = "lua"
)

// annotationSkipSettings marks commands, and their children, that run even
// when the settings file fails to load.
const annotationSkipSettings = "configuror/skip-settings"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// fileFlags holds the -f/--file values, loaded by extension.
var fileFlags []string

// sourceFlags holds the -s/--source tag=path values.
var sourceFlags []string

// ignoreMissing holds the value of the -i/--ignore-missing flag.
var ignoreMissing bool

// interpolationFlag holds the value of the --interpolation flag.
var interpolationFlag string

// runnerFlag selects the script runner for .py sources.
var runnerFlag string

// settingsFile holds an explicit settings file path.
var settingsFile string

// cliSettings holds the settings read at startup.
var cliSettings *settings.Settings

// settingsLoadErr holds any error that occurred during settings loading.
var settingsLoadErr error

func init() {
	cobra.OnInitialize(initSettings)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.PersistentFlags().StringArrayVarP(&fileFlags, "file", "f", nil,
		"configuration file, format picked from its extension (repeatable)")
	rootCmd.PersistentFlags().StringArrayVarP(&sourceFlags, "source", "s", nil,
		"configuration file with an explicit format, as tag=path (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&ignoreMissing, "ignore-missing", "i", false,
		"skip files that do not exist")
	rootCmd.PersistentFlags().StringVar(&interpolationFlag, "interpolation", "",
		"INI interpolation: basic, extended (default from settings)")
	rootCmd.PersistentFlags().StringVar(&runnerFlag, "runner", runnerPython,
		"script runner for .py sources: python, lua")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "",
		"settings file (default $XDG_CONFIG_HOME/configuror/config.yaml)")

	rootCmd.Version = cmd.Info().Version
	rootCmd.SetVersionTemplate("configuror version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initSettings() {
	settings.Init()
	// Capture load errors for later reporting
	cliSettings, settingsLoadErr = settings.Load(settingsFile)
}

var rootCmd = &cobra.Command{
	Use:   "configuror",
	Short: "Aggregate configuration from json, yaml, toml, ini, env and script files",
	Long: `configuror merges configuration files of several formats into one
ordered set of keys. Later files override earlier ones; a key keeps the
position where it first appeared.

Files given with --file are loaded by extension. Files given with
--source name their format explicitly (json, yaml, toml, ini, python, env).
Sources load before files. Defaults for every flag can be kept in
$XDG_CONFIG_HOME/configuror/config.yaml.`,
	Example: `  # Show the merged configuration
  configuror show -f base.yaml -f local.env

  # Load an INI file with extended interpolation
  configuror show -s ini=app.cfg --interpolation extended

  # Print one key
  configuror get DATABASE_URL -f settings.py

  See Also: configuror formats, configuror namespace`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if settingsLoadErr != nil && !skipsSettings(cmd) {
			return errors.NewConfigError(settingsLoadErr)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	primaryHandler := logging.NewFormatHandler(format, cmd.ErrOrStderr(), level)

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, logging.NewFormatHandler(logging.FormatJSON, f, level))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// skipsSettings reports whether cmd tolerates a settings load error.
func skipsSettings(cmd *cobra.Command) bool {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipSettings] == "true" {
			return true
		}
	}
	return false
}

// currentSettings returns the loaded settings, or the defaults when
// initialization has not run.
func currentSettings() *settings.Settings {
	if cliSettings != nil {
		return cliSettings
	}
	return settings.Default()
}

// parseSources turns tag=path flags into mapping files. Repeated tags keep
// the order in which they were given.
func parseSources(values []string) (configuror.MappingFiles, error) {
	var groups configuror.MappingFiles
	index := make(map[string]int)
	for _, v := range values {
		tag, path, ok := strings.Cut(v, "=")
		if !ok || tag == "" || path == "" {
			return nil, errors.NewUserError(
				errors.Newf("invalid --source %q", v),
				"Use the form tag=path, e.g. --source yaml=app.yml",
			)
		}
		if i, seen := index[tag]; seen {
			groups[i].Paths = append(groups[i].Paths, path)
			continue
		}
		index[tag] = len(groups)
		groups = append(groups, configuror.FileGroup{Tag: tag, Paths: []string{path}})
	}
	return groups, nil
}

func newRunner(name string) (script.Runner, error) {
	switch strings.ToLower(name) {
	case runnerPython, "":
		return script.NewExecRunner(), nil
	case runnerLua:
		return script.NewLuaRunner(), nil
	default:
		return nil, errors.NewUserError(
			errors.Newf("unknown script runner %q", name),
			"Valid runners: python, lua",
		)
	}
}

// loadPlan is what the settings file and the flags ask to load.
type loadPlan struct {
	groups        configuror.MappingFiles
	files         []string
	runner        script.Runner
	interpolation string
	ignoreMissing bool
}

// planLoad merges settings and flags. Settings sources come first, then flag
// sources, then settings files, then flag files.
func planLoad() (*loadPlan, error) {
	s := currentSettings()

	settingsGroups, err := s.MappingFiles()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	settingsFiles, err := s.ExpandedFiles()
	if err != nil {
		return nil, errors.NewConfigError(err)
	}

	flagGroups, err := parseSources(sourceFlags)
	if err != nil {
		return nil, err
	}

	runner, err := newRunner(runnerFlag)
	if err != nil {
		return nil, err
	}

	interp := s.Interpolation
	if interpolationFlag != "" {
		interp = interpolationFlag
	}

	return &loadPlan{
		groups:        append(settingsGroups, flagGroups...),
		files:         append(settingsFiles, fileFlags...),
		runner:        runner,
		interpolation: interp,
		ignoreMissing: ignoreMissing || s.IgnoreMissing,
	}, nil
}

// loadConfig aggregates every planned source.
func loadConfig(cmd *cobra.Command) (*configuror.Config, error) {
	plan, err := planLoad()
	if err != nil {
		return nil, err
	}

	cfg, err := configuror.New(
		configuror.WithContext(cmd.Context()),
		configuror.WithLogger(logging.FromContext(cmd.Context())),
		configuror.WithScriptRunner(plan.runner),
		configuror.WithInterpolation(plan.interpolation),
		configuror.WithIgnoreFileAbsence(plan.ignoreMissing),
		configuror.WithMappingFiles(plan.groups),
		configuror.WithFiles(plan.files...),
	)
	if err != nil {
		return nil, errors.FromLoadError(err)
	}
	logging.FromContext(cmd.Context()).Debug("configuration loaded", "entries", cfg.Len())
	return cfg, nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
