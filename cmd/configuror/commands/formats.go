package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/configuror/internal/logging"
	"github.com/thoreinstein/configuror/pkg/configuror"
)

func init() {
	rootCmd.AddCommand(formatsCmd)
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported formats and their file extensions",
	Long: `List the format tags accepted by --source and the extensions
recognized by --file. Extensions are matched case-sensitively.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func runFormats(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	header := fmt.Sprintf("%-8s %s", "FORMAT", "EXTENSIONS")
	if logging.SupportsColor(w) {
		header = color.New(color.Bold).Sprint(header)
	}
	fmt.Fprintln(w, header)

	for _, f := range configuror.Formats() {
		exts := make([]string, 0, len(f.Extensions()))
		for _, ext := range f.Extensions() {
			exts = append(exts, "."+ext)
		}
		fmt.Fprintf(w, "%-8s %s\n", f, strings.Join(exts, ", "))
	}
	return nil
}
