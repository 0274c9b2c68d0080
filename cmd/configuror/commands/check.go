package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/configuror/internal/errors"
	"github.com/thoreinstein/configuror/internal/logging"
	"github.com/thoreinstein/configuror/internal/validator"
)

var checkFormat string

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "report format: text, json")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that every source loads",
	Long: `Load each source and file on its own and report every problem found,
instead of stopping at the first one like show does.

Dotenv files are checked without exporting their keys. The command exits
with a user error when any source fails.`,
	Example: `  configuror check -f base.yaml -s ini=app.cfg

  # Machine-readable report
  configuror check --format json

See Also: configuror show`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	plan, err := planLoad()
	if err != nil {
		return err
	}

	checker := validator.NewChecker(validator.Options{
		IgnoreMissing: plan.ignoreMissing,
		Interpolation: plan.interpolation,
		Runner:        plan.runner,
		Logger:        logging.FromContext(cmd.Context()),
	})
	report := checker.Check(cmd.Context(), plan.groups, plan.files)

	if err := validator.NewReporter(cmd.OutOrStdout(), validator.Format(checkFormat)).Report(report); err != nil {
		return errors.NewSystemError(err, "")
	}
	if report.HasErrors() {
		return errors.NewUserError(
			errors.Newf("%d source(s) failed to load", report.Count(validator.SeverityError)),
			"",
		)
	}
	return nil
}
