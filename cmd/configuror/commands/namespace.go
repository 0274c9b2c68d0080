package commands

import (
	"iter"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/export"
	"github.com/thoreinstein/configuror/pkg/configuror"
)

var (
	namespaceKeepCase   bool
	namespaceKeepPrefix bool
)

func init() {
	namespaceCmd.Flags().BoolVar(&namespaceKeepCase, "keep-case", false,
		"keep the original case of the keys")
	namespaceCmd.Flags().BoolVar(&namespaceKeepPrefix, "keep-prefix", false,
		"keep the prefix in the keys")
	rootCmd.AddCommand(namespaceCmd)
}

var namespaceCmd = &cobra.Command{
	Use:   "namespace <prefix>",
	Short: "Print the keys sharing a prefix",
	Long: `Print every key starting with prefix as YAML, with the prefix removed
and the keys lower-cased unless --keep-prefix or --keep-case is given.`,
	Example: `  # IMAGE_STORE_TYPE=fs becomes type: fs
  configuror namespace IMAGE_STORE_ -f settings.py

See Also: configuror show`,
	Args: cobra.ExactArgs(1),
	RunE: runNamespace,
}

func runNamespace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var opts []configuror.NamespaceOption
	if namespaceKeepCase {
		opts = append(opts, configuror.KeepCase())
	}
	if namespaceKeepPrefix {
		opts = append(opts, configuror.KeepPrefix())
	}
	ns := cfg.Namespace(args[0], opts...)

	out, err := export.Encode(sortedSeq(ns), export.YAML, export.Options{Mask: currentSettings().MaskSecrets})
	if err != nil {
		return errors.NewSystemError(err, "")
	}
	_, err = cmd.OutOrStdout().Write(out)
	return errors.Wrap(err, "writing output")
}

func sortedSeq(m map[string]any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
