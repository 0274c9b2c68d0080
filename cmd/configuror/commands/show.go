package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/export"
	"github.com/thoreinstein/configuror/pkg/fileutil"
)

var (
	showOutput     string
	showOutputFile string
	showMask       bool
)

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "",
		"output format: json, yaml, toml, env (default from settings)")
	showCmd.Flags().StringVar(&showOutputFile, "output-file", "",
		"write the result to a file instead of stdout")
	showCmd.Flags().BoolVar(&showMask, "mask", false,
		"mask values of secret-looking keys")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged configuration",
	Long: `Load every source and file and print the resulting keys in order.

JSON, YAML and env output keep the insertion order. TOML output sorts keys
and drops null values.`,
	Example: `  # Merge two files and print YAML
  configuror show -f defaults.json -f override.toml

  # Write a dotenv file
  configuror show -f app.ini -o env --output-file .env

  See Also: configuror get, configuror namespace`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, _ []string) error {
	s := currentSettings()

	name := s.Output
	if showOutput != "" {
		name = showOutput
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return errors.NewUserError(err, "Valid formats: json, yaml, toml, env")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out, err := export.Encode(cfg.All(), format, export.Options{Mask: showMask || s.MaskSecrets})
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	if showOutputFile != "" {
		if err := fileutil.AtomicWriteFile(showOutputFile, out, 0o600); err != nil {
			return errors.NewSystemError(err, "Check that the output directory exists and is writable")
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d keys to %s\n", cfg.Len(), showOutputFile)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(out)
	return errors.Wrap(err, "writing output")
}
