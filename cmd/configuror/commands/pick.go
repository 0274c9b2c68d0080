package commands

import (
	"fmt"
	"io"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/configuror/internal/cli/prompt"
	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/export"
	"github.com/thoreinstein/configuror/internal/logging"
	"github.com/thoreinstein/configuror/pkg/configuror"
)

// keySelector chooses one key. Tests replace it.
type keySelector func(cfg *configuror.Config, in io.Reader, out io.Writer) (string, error)

var selectKey keySelector = defaultSelectKey

func init() {
	rootCmd.AddCommand(pickCmd)
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a key interactively and print its value",
	Long: `Open a fuzzy finder over the loaded keys with a preview of each value.
When stdout is not a terminal a numbered list is shown instead.`,
	Example: `  configuror pick -f settings.py -f .env

See Also: configuror get`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func runPick(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No keys loaded.")
		return nil
	}

	key, err := selectKey(cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return nil
		}
		return errors.NewUserError(err, "")
	}
	if key == "" {
		return nil
	}

	value, _ := cfg.Get(key)
	return printValue(cmd, value)
}

func defaultSelectKey(cfg *configuror.Config, in io.Reader, out io.Writer) (string, error) {
	keys := cfg.Keys()
	if !logging.IsTTY(out) {
		return prompt.NewSelectorWithIO(in, out).SelectKey(keys)
	}

	mask := currentSettings().MaskSecrets
	idx, err := fuzzyfinder.Find(
		keys,
		func(i int) string { return keys[i] },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			value, _ := cfg.Get(keys[i])
			preview, err := export.Encode(func(yield func(string, any) bool) {
				yield(keys[i], value)
			}, export.YAML, export.Options{Mask: mask})
			if err != nil {
				return err.Error()
			}
			return string(preview)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "interactive selection failed")
	}
	return keys[idx], nil
}
