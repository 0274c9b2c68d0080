package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/configuror/internal/editor"
	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/paths"
	"github.com/thoreinstein/configuror/internal/settings"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

var settingsInitForce bool

func init() {
	settingsInitCmd.Flags().BoolVar(&settingsInitForce, "force", false, "overwrite an existing settings file")

	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsEditCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage configuror's own settings",
	Long: `Manage the settings file that supplies default flags, files and
sources. It lives in $XDG_CONFIG_HOME/configuror/config.yaml unless
CONFIGUROR_CONFIG_DIR names another directory.

Without a subcommand, shows the effective settings.`,
	Example: `  # Create the settings file
  configuror settings init

  # Open it in $EDITOR
  configuror settings edit

See Also: configuror check`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,

	// Broken settings must stay fixable.
	Annotations: map[string]string{annotationSkipSettings: "true"},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), settingsPath())
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Long:  `Print the settings after defaults, the settings file and CONFIGUROR_* variables are merged.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file with the default values",
	Args:  cobra.NoArgs,
	RunE:  runSettingsInit,
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings file in $EDITOR",
	Long: `Open the settings file in your editor, creating it with the default
values first when it does not exist.

Uses $EDITOR, then $VISUAL, then nano or vi.`,
	Example: `  EDITOR="code --wait" configuror settings edit`,
	Args:    cobra.NoArgs,
	RunE:    runSettingsEdit,
}

// settingsPath is the file the settings commands act on.
func settingsPath() string {
	if settingsFile != "" {
		return settingsFile
	}
	if used := settings.FileUsed(); used != "" {
		return used
	}
	return settings.DefaultPath()
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	out, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return errors.Wrap(err, "marshaling settings")
	}
	_, err = cmd.OutOrStdout().Write(out)
	return errors.Wrap(err, "writing output")
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	path := settingsPath()
	if fileutil.IsRegularFile(path) && !settingsInitForce {
		return errors.NewUserError(
			errors.Newf("settings file already exists at %s", path),
			"Pass --force to overwrite it",
		)
	}
	if err := writeDefaultSettings(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func runSettingsEdit(cmd *cobra.Command, _ []string) error {
	path := settingsPath()
	if !fileutil.IsRegularFile(path) {
		if err := writeDefaultSettings(path); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Location: %s\n", path)
	err := editor.Open(cmd.Context(), path, editor.Streams{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	})
	if err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your preferred editor")
	}

	// Reject an edit that leaves the file unusable.
	settings.Init()
	if _, err := settings.Load(path); err != nil {
		return errors.NewConfigError(err)
	}
	return nil
}

func writeDefaultSettings(path string) error {
	out, err := settings.Default().YAML()
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteFile(path, out, 0o600); err != nil {
		return errors.NewSystemError(err, "Check that the settings directory is writable")
	}
	return nil
}
