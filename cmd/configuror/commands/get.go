package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/redact"
)

var getMask bool

func init() {
	getCmd.Flags().BoolVar(&getMask, "mask", false, "mask the value if the key looks secret")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Long: `Print the value of a single key from the merged configuration.

Scalars are printed as-is. Lists and tables are printed as YAML.`,
	Example: `  # Print the database URL
  configuror get DATABASE_URL -f settings.py

See Also: configuror show, configuror pick`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	key := args[0]
	value, ok := cfg.Get(key)
	if !ok {
		return errors.NewUserError(
			errors.Newf("key %q not found", key),
			"Run: configuror show to list the loaded keys",
		)
	}
	if getMask || currentSettings().MaskSecrets {
		value = redact.Value(key, value)
	}
	return printValue(cmd, value)
}

// printValue writes scalars on one line and everything else as YAML.
func printValue(cmd *cobra.Command, value any) error {
	w := cmd.OutOrStdout()
	switch v := value.(type) {
	case nil:
		fmt.Fprintln(w, "null")
		return nil
	case map[string]any, map[any]any, []any:
		out, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshaling value")
		}
		_, err = w.Write(out)
		return errors.Wrap(err, "writing output")
	default:
		fmt.Fprintln(w, v)
		return nil
	}
}
